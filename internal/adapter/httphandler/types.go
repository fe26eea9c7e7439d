package httphandler

type (
	Product struct {
		ProductID   string   `json:"product_id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       string   `json:"price"`
		Stock       int      `json:"stock"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
		ImageURL    string   `json:"image_url"`
		LowStock    bool     `json:"low_stock"`
	}

	CatalogMeta struct {
		Categories        []string `json:"categories"`
		MaxPrice          string   `json:"max_price"`
		LowStockThreshold int      `json:"low_stock_threshold"`
	}

	CartLine struct {
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
		Price     string `json:"price"`
		ImageURL  string `json:"image_url"`
		Stock     int    `json:"stock"`
		Quantity  int    `json:"quantity"`
	}

	CartView struct {
		Lines    []CartLine `json:"lines"`
		Count    int        `json:"count"`
		Subtotal string     `json:"subtotal"`
		Shipping string     `json:"shipping"`
		Total    string     `json:"total"`
	}
)

type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerName   string `json:"customer_name"`
	CustomerPhone  string `json:"customer_phone"`
	DeliveryMethod string `json:"delivery_method"`
	PaymentMethod  string `json:"payment_method"`
}

type CheckoutResponse struct {
	OrderID    string `json:"order_id"`
	Total      string `json:"total"`
	MessageURL string `json:"message_url"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
