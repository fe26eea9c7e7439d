package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ConfirmationLinker = (*LinkBuilder)(nil)

// LinkBuilder builds wa.me links that open a prefilled confirmation
// message to the shop's number. The message is a hand-off for manual
// confirmation; delivery is not observable.
type LinkBuilder struct {
	number   string
	currency string
}

func NewLinkBuilder(number, currency string) LinkBuilder {
	return LinkBuilder{number: digitsOnly(number), currency: currency}
}

func (b LinkBuilder) Link(
	order domain.Order, receipt domain.OrderReceipt, totals domain.Totals,
) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "New order #%s\n\n", receipt.OrderID)
	for _, it := range order.Items {
		fmt.Fprintf(&sb, "- %d x %s (%s%s)\n",
			it.Quantity, it.Name, b.currency, it.Price.StringFixed(2))
	}
	fmt.Fprintf(&sb, "\nSubtotal: %s%s\n", b.currency, totals.Subtotal.StringFixed(2))
	fmt.Fprintf(&sb, "Shipping: %s%s\n", b.currency, totals.Shipping.StringFixed(2))
	fmt.Fprintf(&sb, "Total: %s%s\n\n", b.currency, totals.Total.StringFixed(2))
	fmt.Fprintf(&sb, "Customer: %s\n", order.CustomerName)
	fmt.Fprintf(&sb, "Phone: %s\n", order.CustomerPhone)
	fmt.Fprintf(&sb, "Delivery: %s\n", order.DeliveryMethod)
	fmt.Fprintf(&sb, "Payment: %s\n", order.PaymentMethod)

	u := url.URL{Scheme: "https", Host: "wa.me", Path: "/" + b.number}
	q := url.Values{}
	q.Set("text", sb.String())
	u.RawQuery = q.Encode()
	return u.String()
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
