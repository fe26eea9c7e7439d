package whatsapp_test

import (
	"net/url"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/whatsapp"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink(t *testing.T) {
	b := whatsapp.NewLinkBuilder("+58 416-636-7466", "$")

	order := domain.Order{
		CustomerName:   "Maria Perez",
		CustomerPhone:  "+58 416 123-4567",
		DeliveryMethod: domain.DeliveryHome,
		PaymentMethod:  "cash",
		Items: []domain.OrderItem{
			{ProductID: "A", Name: "Coffee", Price: decimal.NewFromFloat(7.50), Quantity: 2},
		},
	}
	receipt := domain.OrderReceipt{
		OrderID: "ORD-42",
		Total:   decimal.NewFromFloat(20.00),
	}
	totals := domain.Totals{
		Subtotal: decimal.NewFromFloat(15.00),
		Shipping: decimal.NewFromFloat(5.00),
		Total:    decimal.NewFromFloat(20.00),
	}

	link := b.Link(order, receipt, totals)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/584166367466", u.Path)

	text := u.Query().Get("text")
	assert.Contains(t, text, "New order #ORD-42")
	assert.Contains(t, text, "- 2 x Coffee ($7.50)")
	assert.Contains(t, text, "Subtotal: $15.00")
	assert.Contains(t, text, "Shipping: $5.00")
	assert.Contains(t, text, "Total: $20.00")
	assert.Contains(t, text, "Customer: Maria Perez")
	assert.Contains(t, text, "Delivery: home-delivery")
}
