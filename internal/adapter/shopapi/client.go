package shopapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogFetcher = (*Client)(nil)
var _ port.OrderPlacer = (*Client)(nil)

const (
	actionGetProducts = "getProducts"
	actionSaveOrder   = "saveOrder"
	statusSuccess     = "success"
)

// Client talks to the spreadsheet-backed shop API.
type Client struct {
	baseURL string
	http    *http.Client
}

type Opt func(*Client) error

func HTTPClientOpt(hc *http.Client) Opt {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client is nil")
		}
		c.http = hc
		return nil
	}
}

func New(baseURL string, opts ...Opt) (*Client, error) {
	const op = "shopapi.New"

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: invalid base url %q", op, baseURL)
	}

	c := &Client{baseURL: baseURL, http: http.DefaultClient}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return c, nil
}

// FetchProducts loads the full product list.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "ShopClient.FetchProducts"

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"?action="+actionGetProducts, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	env, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var payloads []productPayload
	if err := json.Unmarshal(env.Data, &payloads); err != nil {
		return nil, fmt.Errorf(
			"%s: %w: malformed product list: %w", op, domain.ErrServerRejected, err,
		)
	}

	ps := make([]domain.Product, len(payloads))
	for i, pl := range payloads {
		ps[i] = domain.Product{
			ProductID:   pl.ID,
			Name:        pl.Name,
			Description: pl.Description,
			Price:       pl.Price,
			Stock:       pl.Stock,
			Category:    pl.Category,
			Tags:        domain.ParseTags(pl.Tags),
			ImageURL:    pl.Image,
		}
	}
	return ps, nil
}

// PlaceOrder submits the order as a form-encoded JSON field, the way the
// spreadsheet backend expects it.
func (c *Client) PlaceOrder(
	ctx context.Context, order domain.Order,
) (domain.OrderReceipt, error) {
	const op = "ShopClient.PlaceOrder"

	var zero domain.OrderReceipt

	body, err := encodeOrderForm(order)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL, strings.NewReader(body),
	)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	env, err := c.do(req)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	var res orderResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return zero, fmt.Errorf(
			"%s: %w: malformed order result: %w", op, domain.ErrServerRejected, err,
		)
	}
	return domain.OrderReceipt{OrderID: res.OrderID, Total: res.Total}, nil
}

// do executes the request and validates the response envelope: HTTP
// status first, then the error field, then the status discriminator.
func (c *Client) do(req *http.Request) (envelope, error) {
	var zero envelope

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		if json.NewDecoder(resp.Body).Decode(&env) == nil && env.Message != "" {
			return zero, fmt.Errorf(
				"%w: %s", domain.ErrServerRejected, env.Message,
			)
		}
		return zero, fmt.Errorf(
			"%w: http status %d", domain.ErrServerRejected, resp.StatusCode,
		)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf(
			"%w: malformed payload: %w", domain.ErrServerRejected, err,
		)
	}
	if env.Error != "" {
		return zero, fmt.Errorf("%w: %s", domain.ErrServerRejected, env.Error)
	}
	if env.Status != statusSuccess {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %q", env.Status)
		}
		return zero, fmt.Errorf("%w: %s", domain.ErrServerRejected, msg)
	}
	return env, nil
}

func encodeOrderForm(order domain.Order) (string, error) {
	items := make([]orderItemPayload, len(order.Items))
	for i, it := range order.Items {
		items[i] = orderItemPayload{
			ID:       it.ProductID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		}
	}

	b, err := json.Marshal(orderPayload{
		Reference:      order.Reference,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		DeliveryMethod: string(order.DeliveryMethod),
		PaymentMethod:  order.PaymentMethod,
		Items:          items,
	})
	if err != nil {
		return "", fmt.Errorf("marshal order: %w", err)
	}

	form := url.Values{}
	form.Set("action", actionSaveOrder)
	form.Set("order", string(b))
	return form.Encode(), nil
}
