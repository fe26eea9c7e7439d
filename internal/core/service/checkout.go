package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
)

// SubmitOrder runs one checkout attempt: Idle -> Submitting -> done.
//
// The guard rejects invalid customer input and empty carts with
// domain.ErrValidation, and a second submission while one is in flight
// with domain.ErrCheckoutInProgress. On success the cart is cleared and
// the confirmation carries the prefilled message link; on any remote
// failure the cart is left untouched and the session returns to Idle.
func (s *Service) SubmitOrder(
	ctx context.Context, sessionID string, form domain.CheckoutForm,
) (domain.OrderConfirmation, error) {
	const op = "Service.SubmitOrder"

	var zero domain.OrderConfirmation

	if err := s.validate.Struct(form); err != nil {
		return zero, fmt.Errorf(
			"%s: %w: %s", op, domain.ErrValidation, validationMessage(err),
		)
	}

	sess := s.sessions.get(sessionID)

	lines, err := s.beginSubmit(sess)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	defer s.endSubmit(sess)

	order := buildOrder(form, lines)

	receipt, err := s.placer.PlaceOrder(ctx, order)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	totals := domain.ComputeTotals(lines, order.DeliveryMethod, s.cfg.ShippingCost)

	sess.mu.Lock()
	sess.cart.Clear()
	sess.mu.Unlock()

	s.emitEvent(ctx, domain.ClientEvent{
		SessionID: sessionID,
		Type:      domain.EventOrderPlaced,
		Price:     totals.Total,
		Quantity:  countItems(lines),
	})

	return domain.OrderConfirmation{
		OrderID:    receipt.OrderID,
		Total:      receipt.Total,
		MessageURL: s.linker.Link(order, receipt, totals),
	}, nil
}

// beginSubmit moves the session to Submitting and snapshots the cart.
func (s *Service) beginSubmit(sess *session) ([]domain.CartLine, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.submitting {
		return nil, domain.ErrCheckoutInProgress
	}
	if sess.cart.Empty() {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}
	sess.submitting = true
	return sess.cart.Lines(), nil
}

func (s *Service) endSubmit(sess *session) {
	sess.mu.Lock()
	sess.submitting = false
	sess.mu.Unlock()
}

func buildOrder(form domain.CheckoutForm, lines []domain.CartLine) domain.Order {
	items := make([]domain.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = domain.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		}
	}
	return domain.Order{
		Reference:      uuid.NewString(),
		CustomerName:   strings.TrimSpace(form.CustomerName),
		CustomerPhone:  strings.TrimSpace(form.CustomerPhone),
		DeliveryMethod: domain.DeliveryMethod(form.DeliveryMethod),
		PaymentMethod:  form.PaymentMethod,
		Items:          items,
	}
}

func countItems(lines []domain.CartLine) int {
	var n int
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func validationMessage(err error) string {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	var fields []string
	for _, fe := range ve {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}
