package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
)

// AddToCart puts one more unit of the product into the session cart.
// Rejected with domain.ErrStockExceeded when the stock snapshot is
// exhausted and with domain.ErrProductNotFound for unknown ids.
func (s *Service) AddToCart(ctx context.Context, sessionID, productID string) error {
	const op = "Service.AddToCart"

	p, ok := s.catalog.find(productID)
	if !ok {
		return fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}

	sess := s.sessions.get(sessionID)
	sess.mu.Lock()
	err := sess.cart.Add(p)
	sess.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.emitEvent(ctx, domain.ClientEvent{
		SessionID:   sessionID,
		Type:        domain.EventCartItemAdded,
		ProductID:   p.ProductID,
		ProductName: p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    1,
	})
	return nil
}

// RemoveFromCart deletes the line unconditionally.
func (s *Service) RemoveFromCart(sessionID, productID string) {
	sess := s.sessions.get(sessionID)
	sess.mu.Lock()
	sess.cart.Remove(productID)
	sess.mu.Unlock()
}

// SetCartQuantity updates the line quantity within the stock snapshot.
func (s *Service) SetCartQuantity(
	ctx context.Context, sessionID, productID string, quantity int,
) error {
	const op = "Service.SetCartQuantity"

	sess := s.sessions.get(sessionID)
	sess.mu.Lock()
	err := sess.cart.SetQuantity(productID, quantity)
	sess.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Cart recomputes the derived view: lines, badge count and totals for the
// chosen delivery method.
func (s *Service) Cart(sessionID string, dm domain.DeliveryMethod) domain.CartView {
	sess := s.sessions.get(sessionID)
	sess.mu.Lock()
	lines := sess.cart.Lines()
	count := sess.cart.Count()
	sess.mu.Unlock()

	return domain.CartView{
		Lines:  lines,
		Count:  count,
		Totals: domain.ComputeTotals(lines, dm, s.cfg.ShippingCost),
	}
}
