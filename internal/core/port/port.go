package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Outbound ports.

type CatalogFetcher interface {
	FetchProducts(context.Context) ([]domain.Product, error)
}

type OrderPlacer interface {
	PlaceOrder(context.Context, domain.Order) (domain.OrderReceipt, error)
}

type ClientEventsProducer interface {
	ProduceEvent(context.Context, domain.ClientEvent) error
	Close()
}

type ConfirmationLinker interface {
	Link(domain.Order, domain.OrderReceipt, domain.Totals) string
}

// Inbound ports.

type CatalogLoader interface {
	LoadCatalog(context.Context) error
}

type CatalogViewer interface {
	Products(domain.FilterCriteria) []domain.Product
	Categories() []string
	MaxCatalogPrice() decimal.Decimal
	LowStockThreshold() int
}

type SessionStarter interface {
	StartSession() string
}

type CartEditor interface {
	AddToCart(ctx context.Context, sessionID, productID string) error
	RemoveFromCart(sessionID, productID string)
	SetCartQuantity(ctx context.Context, sessionID, productID string, quantity int) error
	Cart(sessionID string, dm domain.DeliveryMethod) domain.CartView
}

type CheckoutSubmitter interface {
	SubmitOrder(
		ctx context.Context, sessionID string, form domain.CheckoutForm,
	) (domain.OrderConfirmation, error)
}
