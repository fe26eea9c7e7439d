package shopapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/shopapi"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsBody = `{
	"status": "success",
	"data": [
		{
			"id": "A",
			"name": "Arabica Coffee",
			"description": "whole beans",
			"price": 12.5,
			"stock": 10,
			"category": "drinks",
			"tags": "coffee, roasted",
			"image": "https://cdn.example/a.png"
		}
	]
}`

func newClient(t *testing.T, h http.HandlerFunc) *shopapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := shopapi.New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	_, err := shopapi.New("not a url")
	assert.Error(t, err)

	_, err = shopapi.New("https://script.example/exec")
	assert.NoError(t, err)
}

func TestFetchProducts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "getProducts", r.URL.Query().Get("action"))
			w.Write([]byte(productsBody))
		})

		ps, err := c.FetchProducts(t.Context())
		require.NoError(t, err)
		require.Len(t, ps, 1)

		p := ps[0]
		assert.Equal(t, "A", p.ProductID)
		assert.True(t, p.Price.Equal(decimal.NewFromFloat(12.5)))
		assert.Equal(t, 10, p.Stock)
		assert.Equal(t, []string{"coffee", "roasted"}, p.Tags)
		assert.Equal(t, "https://cdn.example/a.png", p.ImageURL)
	})

	t.Run("NetworkFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c, err := shopapi.New(srv.URL)
		require.NoError(t, err)

		_, err = c.FetchProducts(t.Context())
		assert.ErrorIs(t, err, domain.ErrNetworkUnavailable)
	})

	t.Run("HTTPErrorStatus", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := c.FetchProducts(t.Context())
		assert.ErrorIs(t, err, domain.ErrServerRejected)
	})

	t.Run("ExplicitErrorField", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": "sheet unavailable"}`))
		})

		_, err := c.FetchProducts(t.Context())
		require.ErrorIs(t, err, domain.ErrServerRejected)
		assert.ErrorContains(t, err, "sheet unavailable")
	})

	t.Run("StatusDiscriminatorMismatch", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "fail", "message": "quota exceeded"}`))
		})

		_, err := c.FetchProducts(t.Context())
		require.ErrorIs(t, err, domain.ErrServerRejected)
		assert.ErrorContains(t, err, "quota exceeded")
	})

	t.Run("MalformedPayload", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>not json</html>`))
		})

		_, err := c.FetchProducts(t.Context())
		assert.ErrorIs(t, err, domain.ErrServerRejected)
	})
}

func testOrder() domain.Order {
	return domain.Order{
		Reference:      "ref-1",
		CustomerName:   "Maria Perez",
		CustomerPhone:  "+58 416 123-4567",
		DeliveryMethod: domain.DeliveryHome,
		PaymentMethod:  "cash",
		Items: []domain.OrderItem{
			{ProductID: "A", Name: "Coffee", Price: decimal.NewFromFloat(7.50), Quantity: 2},
		},
	}
}

func TestPlaceOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t,
				"application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "saveOrder", r.PostForm.Get("action"))

			var payload struct {
				Reference     string `json:"reference"`
				CustomerName  string `json:"customerName"`
				CustomerPhone string `json:"customerPhone"`
				Items         []struct {
					ID       string  `json:"id"`
					Quantity int     `json:"quantity"`
					Price    float64 `json:"price"`
				} `json:"items"`
			}
			err := json.Unmarshal([]byte(r.PostForm.Get("order")), &payload)
			require.NoError(t, err)
			assert.Equal(t, "ref-1", payload.Reference)
			assert.Equal(t, "Maria Perez", payload.CustomerName)
			require.Len(t, payload.Items, 1)
			assert.Equal(t, 2, payload.Items[0].Quantity)

			w.Write([]byte(
				`{"status": "success", "data": {"orderId": "ORD-42", "total": 20}}`,
			))
		})

		receipt, err := c.PlaceOrder(t.Context(), testOrder())
		require.NoError(t, err)
		assert.Equal(t, "ORD-42", receipt.OrderID)
		assert.Equal(t, "20.00", receipt.Total.StringFixed(2))
	})

	t.Run("ServerValidationMessage", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status": "error", "message": "stock changed"}`))
		})

		_, err := c.PlaceOrder(t.Context(), testOrder())
		require.ErrorIs(t, err, domain.ErrServerRejected)
		assert.ErrorContains(t, err, "stock changed")
	})
}
