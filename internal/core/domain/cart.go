package domain

import "github.com/shopspring/decimal"

// CartLine denormalizes the product fields at time of add. Stock is the
// snapshot used to enforce the quantity invariant.
type CartLine struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	ImageURL  string
	Stock     int
	Quantity  int
}

// Cart holds the selected products for one shopper session.
//
// Invariant: every line has 0 < Quantity <= Stock. A line is removed
// entirely instead of reaching zero quantity.
type Cart struct {
	lines []CartLine
}

// Add increments the line for p or creates it with quantity 1.
// Returns ErrStockExceeded when one more unit would exceed the stock
// snapshot; the cart is left unchanged.
func (c *Cart) Add(p Product) error {
	if i := c.index(p.ProductID); i >= 0 {
		if c.lines[i].Quantity+1 > c.lines[i].Stock {
			return ErrStockExceeded
		}
		c.lines[i].Quantity++
		return nil
	}

	if !p.InStock() {
		return ErrStockExceeded
	}
	c.lines = append(c.lines, CartLine{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Stock:     p.Stock,
		Quantity:  1,
	})
	return nil
}

// Remove deletes the line unconditionally. Unknown ids are a no-op.
func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// SetQuantity sets the line quantity. Quantities below one remove the
// line; quantities above the stock snapshot return ErrStockExceeded and
// leave the cart unchanged.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	i := c.index(productID)
	if i < 0 {
		return ErrProductNotFound
	}
	if quantity < 1 {
		c.Remove(productID)
		return nil
	}
	if quantity > c.lines[i].Stock {
		return ErrStockExceeded
	}
	c.lines[i].Quantity = quantity
	return nil
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Count is the cart badge value: the sum of line quantities.
func (c *Cart) Count() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) index(productID string) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

type DeliveryMethod string

const (
	DeliveryPickup DeliveryMethod = "pickup"
	DeliveryHome   DeliveryMethod = "home-delivery"
)

type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives subtotal, shipping and total from the cart lines.
// Shipping is the flat cost for home delivery and zero otherwise; an empty
// cart never pays shipping.
func ComputeTotals(
	lines []CartLine, dm DeliveryMethod, shippingCost decimal.Decimal,
) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	shipping := decimal.Zero
	if dm == DeliveryHome && len(lines) > 0 {
		shipping = shippingCost
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}

// CartView is the derived read model for one cart: lines, badge count and
// totals for the chosen delivery method.
type CartView struct {
	Lines  []CartLine
	Count  int
	Totals Totals
}
