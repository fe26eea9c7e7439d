package domain

import "github.com/shopspring/decimal"

// CheckoutForm carries the customer input for one submission attempt.
// The phone rule accepts digits, spaces, plus and minus only.
type CheckoutForm struct {
	CustomerName   string `validate:"required"`
	CustomerPhone  string `validate:"required,phone"`
	DeliveryMethod string `validate:"required,oneof=pickup home-delivery"`
	PaymentMethod  string `validate:"required"`
}

// Order is the immutable submission payload captured at checkout time.
type Order struct {
	Reference      string
	CustomerName   string
	CustomerPhone  string
	DeliveryMethod DeliveryMethod
	PaymentMethod  string
	Items          []OrderItem
}

type OrderItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// OrderReceipt is the remote confirmation of a saved order.
type OrderReceipt struct {
	OrderID string
	Total   decimal.Decimal
}

// OrderConfirmation is handed back to the shopper after a successful
// submission. MessageURL opens a prefilled confirmation message.
type OrderConfirmation struct {
	OrderID    string
	Total      decimal.Decimal
	MessageURL string
}
