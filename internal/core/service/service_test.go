package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogFetcher struct {
	mock.Mock
}

func (m *MockCatalogFetcher) FetchProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	args := m.Called(ctx)
	if ps := args.Get(0); ps != nil {
		return ps.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderPlacer struct {
	mock.Mock
}

func (m *MockOrderPlacer) PlaceOrder(
	ctx context.Context, order domain.Order,
) (domain.OrderReceipt, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(domain.OrderReceipt), args.Error(1)
}

type stubLinker struct {
	lastOrder  domain.Order
	lastTotals domain.Totals
}

func (l *stubLinker) Link(
	order domain.Order, receipt domain.OrderReceipt, totals domain.Totals,
) string {
	l.lastOrder = order
	l.lastTotals = totals
	return "https://wa.me/15550000000?text=order"
}

const defaultImage = "https://shop.example/default.png"

func testConfig() service.Config {
	return service.Config{
		ShippingCost:      decimal.NewFromFloat(5.00),
		DefaultImageURL:   defaultImage,
		LowStockThreshold: 5,
	}
}

func newService(
	t *testing.T, ps []domain.Product,
) (*service.Service, *MockOrderPlacer, *stubLinker) {
	t.Helper()

	fetcher := new(MockCatalogFetcher)
	fetcher.On("FetchProducts", mock.Anything).Return(ps, nil)

	placer := new(MockOrderPlacer)
	linker := &stubLinker{}

	s := service.New(fetcher, placer, nil, linker, testConfig())
	require.NoError(t, s.LoadCatalog(t.Context()))
	return s, placer, linker
}

func TestLoadCatalog(t *testing.T) {
	t.Run("NormalizesImages", func(t *testing.T) {
		ps := []domain.Product{
			{ProductID: "A", Price: decimal.NewFromInt(10), Stock: 1,
				ImageURL: "https://cdn.example/a.png"},
			{ProductID: "B", Price: decimal.NewFromInt(10), Stock: 1,
				ImageURL: "not-a-url"},
		}
		s, _, _ := newService(t, ps)

		got := s.Products(domain.FilterCriteria{})
		require.Len(t, got, 2)
		assert.Equal(t, "https://cdn.example/a.png", got[0].ImageURL)
		assert.Equal(t, defaultImage, got[1].ImageURL)
	})

	t.Run("FailureLeavesCatalogEmpty", func(t *testing.T) {
		fetcher := new(MockCatalogFetcher)
		fetcher.On("FetchProducts", mock.Anything).
			Return(nil, domain.ErrNetworkUnavailable)

		s := service.New(fetcher, nil, nil, &stubLinker{}, testConfig())
		err := s.LoadCatalog(t.Context())
		require.ErrorIs(t, err, domain.ErrNetworkUnavailable)
		assert.Empty(t, s.Products(domain.FilterCriteria{}))
	})
}

func TestCatalogMeta(t *testing.T) {
	ps := []domain.Product{
		{ProductID: "A", Category: "drinks", Price: decimal.NewFromInt(10), Stock: 1},
		{ProductID: "B", Category: "pantry", Price: decimal.NewFromInt(25), Stock: 1},
		{ProductID: "C", Category: "drinks", Price: decimal.NewFromInt(3), Stock: 1},
	}
	s, _, _ := newService(t, ps)

	assert.Equal(t, []string{"drinks", "pantry"}, s.Categories())
	assert.Equal(t, "25.00", s.MaxCatalogPrice().StringFixed(2))
}

func TestCartOperations(t *testing.T) {
	ps := []domain.Product{
		{ProductID: "A", Name: "Coffee", Price: decimal.NewFromInt(10), Stock: 2},
		{ProductID: "Z", Name: "Sold out", Price: decimal.NewFromInt(1), Stock: 0},
	}

	t.Run("UnknownProduct", func(t *testing.T) {
		s, _, _ := newService(t, ps)
		sid := s.StartSession()
		err := s.AddToCart(t.Context(), sid, "nope")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("SoldOutProductNeverEntersCart", func(t *testing.T) {
		s, _, _ := newService(t, ps)
		sid := s.StartSession()

		err := s.AddToCart(t.Context(), sid, "Z")
		require.ErrorIs(t, err, domain.ErrStockExceeded)
		assert.Empty(t, s.Cart(sid, domain.DeliveryPickup).Lines)
	})

	t.Run("StockBoundAndSubtotal", func(t *testing.T) {
		s, _, _ := newService(t, ps)
		sid := s.StartSession()

		require.NoError(t, s.AddToCart(t.Context(), sid, "A"))
		require.NoError(t, s.AddToCart(t.Context(), sid, "A"))
		err := s.AddToCart(t.Context(), sid, "A")
		require.ErrorIs(t, err, domain.ErrStockExceeded)

		view := s.Cart(sid, domain.DeliveryPickup)
		assert.Equal(t, 2, view.Count)
		assert.Equal(t, "20.00", view.Totals.Subtotal.StringFixed(2))
	})

	t.Run("SessionsAreIsolated", func(t *testing.T) {
		s, _, _ := newService(t, ps)
		first := s.StartSession()
		second := s.StartSession()

		require.NoError(t, s.AddToCart(t.Context(), first, "A"))
		assert.Empty(t, s.Cart(second, domain.DeliveryPickup).Lines)
	})
}

func checkoutForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		CustomerName:   "Maria Perez",
		CustomerPhone:  "+58 416 123-4567",
		DeliveryMethod: "home-delivery",
		PaymentMethod:  "cash",
	}
}

func TestSubmitOrder(t *testing.T) {
	ps := []domain.Product{
		{ProductID: "A", Name: "Coffee", Price: decimal.NewFromFloat(7.50), Stock: 5},
	}

	fill := func(t *testing.T, s *service.Service, sid string, n int) {
		t.Helper()
		for range n {
			require.NoError(t, s.AddToCart(t.Context(), sid, "A"))
		}
	}

	t.Run("EmptyPhoneRejectedAndCartKept", func(t *testing.T) {
		s, placer, _ := newService(t, ps)
		sid := s.StartSession()
		fill(t, s, sid, 1)

		form := checkoutForm()
		form.CustomerPhone = ""

		_, err := s.SubmitOrder(t.Context(), sid, form)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.NotEmpty(t, s.Cart(sid, domain.DeliveryPickup).Lines)
		placer.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})

	t.Run("MalformedPhoneRejected", func(t *testing.T) {
		s, _, _ := newService(t, ps)
		sid := s.StartSession()
		fill(t, s, sid, 1)

		form := checkoutForm()
		form.CustomerPhone = "call me"

		_, err := s.SubmitOrder(t.Context(), sid, form)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("EmptyCartRejected", func(t *testing.T) {
		s, _, _ := newService(t, ps)
		sid := s.StartSession()

		_, err := s.SubmitOrder(t.Context(), sid, checkoutForm())
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("SuccessClearsCart", func(t *testing.T) {
		s, placer, linker := newService(t, ps)
		sid := s.StartSession()
		fill(t, s, sid, 2) // subtotal 15.00

		receipt := domain.OrderReceipt{
			OrderID: "ORD-42",
			Total:   decimal.NewFromFloat(20.00),
		}
		placer.On("PlaceOrder", mock.Anything, mock.AnythingOfType("domain.Order")).
			Return(receipt, nil)

		conf, err := s.SubmitOrder(t.Context(), sid, checkoutForm())
		require.NoError(t, err)

		assert.Equal(t, "ORD-42", conf.OrderID)
		assert.Equal(t, "20.00", conf.Total.StringFixed(2))
		assert.NotEmpty(t, conf.MessageURL)

		assert.Equal(t, "20.00", linker.lastTotals.Total.StringFixed(2))
		assert.Equal(t, "5.00", linker.lastTotals.Shipping.StringFixed(2))
		require.Len(t, linker.lastOrder.Items, 1)
		assert.Equal(t, 2, linker.lastOrder.Items[0].Quantity)
		assert.NotEmpty(t, linker.lastOrder.Reference)

		assert.Empty(t, s.Cart(sid, domain.DeliveryPickup).Lines)
	})

	t.Run("RemoteFailureKeepsCart", func(t *testing.T) {
		s, placer, _ := newService(t, ps)
		sid := s.StartSession()
		fill(t, s, sid, 1)

		placer.On("PlaceOrder", mock.Anything, mock.AnythingOfType("domain.Order")).
			Return(domain.OrderReceipt{},
				errors.Join(domain.ErrServerRejected, errors.New("out of range")))

		_, err := s.SubmitOrder(t.Context(), sid, checkoutForm())
		require.ErrorIs(t, err, domain.ErrServerRejected)
		assert.NotEmpty(t, s.Cart(sid, domain.DeliveryPickup).Lines)

		// the session returned to idle, a retry is accepted
		placer.ExpectedCalls = nil
		placer.On("PlaceOrder", mock.Anything, mock.AnythingOfType("domain.Order")).
			Return(domain.OrderReceipt{OrderID: "ORD-43", Total: decimal.NewFromInt(12)}, nil)

		conf, err := s.SubmitOrder(t.Context(), sid, checkoutForm())
		require.NoError(t, err)
		assert.Equal(t, "ORD-43", conf.OrderID)
	})
}
