package shopapi

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// envelope is the response shape of the spreadsheet-backed shop API.
// Success carries status "success" and a data payload; failures carry an
// error or message field.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type productPayload struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Tags        string          `json:"tags"`
	Image       string          `json:"image"`
}

type orderPayload struct {
	Reference      string             `json:"reference"`
	CustomerName   string             `json:"customerName"`
	CustomerPhone  string             `json:"customerPhone"`
	DeliveryMethod string             `json:"deliveryMethod"`
	PaymentMethod  string             `json:"paymentMethod"`
	Items          []orderItemPayload `json:"items"`
}

type orderItemPayload struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type orderResult struct {
	OrderID string          `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
}
