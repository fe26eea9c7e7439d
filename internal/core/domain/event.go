package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventCartItemAdded = "cart_item_added"
	EventOrderPlaced   = "order_placed"
)

// ClientEvent describes one shopper action for the analytics pipeline.
// Delivery is best effort and never blocks the shopper.
type ClientEvent struct {
	SessionID   string
	Type        string
	ProductID   string
	ProductName string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	OccurredAt  time.Time
}
