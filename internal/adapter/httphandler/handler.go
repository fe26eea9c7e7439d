package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

// GET v1/products?search=&category=&max_price= (200 OK, 400 Bad request)
// GET v1/categories (200 OK)
// POST v1/catalog/reload (204 No content, 502 Bad gateway)

type CatalogHandler struct {
	viewer port.CatalogViewer
	loader port.CatalogLoader
}

func RegisterCatalog(
	mux *http.ServeMux, viewer port.CatalogViewer, loader port.CatalogLoader,
) {
	h := CatalogHandler{viewer, loader}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
	mux.HandleFunc("POST /v1/catalog/reload", h.ReloadCatalog)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	criteria, err := parseCriteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
		log.Warn("failed to parse filter criteria", "err", err)
		return
	}

	ps := h.viewer.Products(criteria)
	writeJSON(w, http.StatusOK, toProducts(ps, h.viewer.LowStockThreshold()), log)
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"
	log := slog.With("op", op)

	meta := CatalogMeta{
		Categories:        h.viewer.Categories(),
		MaxPrice:          h.viewer.MaxCatalogPrice().StringFixed(2),
		LowStockThreshold: h.viewer.LowStockThreshold(),
	}
	writeJSON(w, http.StatusOK, meta, log)
}

func (h CatalogHandler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.ReloadCatalog"
	log := slog.With("op", op)

	if err := h.loader.LoadCatalog(r.Context()); err != nil {
		writeDomainError(w, err)
		log.Error("failed to reload catalog", "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("catalog reloaded")
}

// GET v1/cart?delivery=pickup|home-delivery (200 OK)
// POST v1/cart/items JSON {"product_id"} (204, 404, 409)
// PUT v1/cart/items/{id} JSON {"quantity"} (204, 404, 409)
// DELETE v1/cart/items/{id} (204)

type CartHandler struct {
	editor port.CartEditor
}

func RegisterCart(mux *http.ServeMux, editor port.CartEditor) {
	h := CartHandler{editor}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.AddItem)
	mux.HandleFunc("PUT /v1/cart/items/{id}", h.SetQuantity)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.RemoveItem)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	dm := domain.DeliveryPickup
	if v := r.URL.Query().Get("delivery"); v != "" {
		dm = domain.DeliveryMethod(v)
		if dm != domain.DeliveryPickup && dm != domain.DeliveryHome {
			writeError(w, http.StatusBadRequest,
				"invalid_query", "unknown delivery method")
			return
		}
	}

	view := h.editor.Cart(sessionID(r), dm)
	writeJSON(w, http.StatusOK, toCartView(view), log)
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.editor.AddToCart(r.Context(), sessionID(r), req.ProductID)
	if err != nil {
		writeDomainError(w, err)
		log.Warn("failed to add cart item", "productID", req.ProductID, "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.SetQuantity"
	log := slog.With("op", op)

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	productID := r.PathValue("id")
	err := h.editor.SetCartQuantity(
		r.Context(), sessionID(r), productID, req.Quantity,
	)
	if err != nil {
		writeDomainError(w, err)
		log.Warn("failed to set quantity", "productID", productID, "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.editor.RemoveFromCart(sessionID(r), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// POST v1/checkout JSON (200 OK, 400, 409, 502)

type CheckoutHandler struct {
	submitter port.CheckoutSubmitter
}

func RegisterCheckout(mux *http.ServeMux, submitter port.CheckoutSubmitter) {
	h := CheckoutHandler{submitter}
	mux.HandleFunc("POST /v1/checkout", h.Submit)
}

func (h CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.Submit"
	log := slog.With("op", op)

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	form := domain.CheckoutForm{
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		DeliveryMethod: req.DeliveryMethod,
		PaymentMethod:  req.PaymentMethod,
	}

	conf, err := h.submitter.SubmitOrder(r.Context(), sessionID(r), form)
	if err != nil {
		writeDomainError(w, err)
		log.Warn("checkout rejected", "err", err)
		return
	}

	log.Info("order placed", "orderID", conf.OrderID)
	writeJSON(w, http.StatusOK, CheckoutResponse{
		OrderID:    conf.OrderID,
		Total:      conf.Total.StringFixed(2),
		MessageURL: conf.MessageURL,
	}, log)
}

func parseCriteria(r *http.Request) (domain.FilterCriteria, error) {
	q := r.URL.Query()
	c := domain.FilterCriteria{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	if v := q.Get("max_price"); v != "" {
		maxPrice, err := decimal.NewFromString(v)
		if err != nil {
			return domain.FilterCriteria{}, errors.New("invalid max_price")
		}
		c.MaxPrice = maxPrice
		c.MaxPriceSet = true
	}
	return c, nil
}

func toProducts(ps []domain.Product, lowStockThreshold int) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = Product{
			ProductID:   p.ProductID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			Stock:       p.Stock,
			Category:    p.Category,
			Tags:        p.Tags,
			ImageURL:    p.ImageURL,
			LowStock:    p.LowStock(lowStockThreshold),
		}
	}
	return out
}

func toCartView(v domain.CartView) CartView {
	lines := make([]CartLine, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = CartLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.StringFixed(2),
			ImageURL:  l.ImageURL,
			Stock:     l.Stock,
			Quantity:  l.Quantity,
		}
	}
	return CartView{
		Lines:    lines,
		Count:    v.Count,
		Subtotal: v.Totals.Subtotal.StringFixed(2),
		Shipping: v.Totals.Shipping.StringFixed(2),
		Total:    v.Totals.Total.StringFixed(2),
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_failed", notificationText(err))
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, domain.ErrStockExceeded):
		writeError(w, http.StatusConflict, "stock_exceeded", "max stock reached")
	case errors.Is(err, domain.ErrCheckoutInProgress):
		writeError(w, http.StatusConflict, "checkout_in_progress",
			"an order submission is already in flight")
	case errors.Is(err, domain.ErrNetworkUnavailable):
		writeError(w, http.StatusBadGateway, "network_unavailable",
			"could not reach the shop service, check the connection")
	case errors.Is(err, domain.ErrServerRejected):
		writeError(w, http.StatusBadGateway, "server_rejected", notificationText(err))
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// notificationText strips the op prefixes from a wrapped error chain,
// leaving the user-facing part.
func notificationText(err error) string {
	s := err.Error()
	for {
		i := strings.Index(s, ": ")
		if i < 0 || strings.ContainsRune(s[:i], ' ') {
			return s
		}
		s = s[i+2:]
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: code, Message: message})
}
