package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID   string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	Tags        []string
	ImageURL    string
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// LowStock reports whether the remaining stock is at or below threshold.
func (p Product) LowStock(threshold int) bool {
	return p.Stock > 0 && p.Stock <= threshold
}

// ParseTags splits a comma-separated tags string into trimmed tokens.
func ParseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// NormalizeImageURL returns raw when it looks like a usable image URL,
// otherwise fallback.
func NormalizeImageURL(raw, fallback string) string {
	u := strings.TrimSpace(raw)
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return fallback
}

// CategoryAny matches every product category.
const CategoryAny = "any"

type FilterCriteria struct {
	Search      string
	Category    string
	MaxPrice    decimal.Decimal
	MaxPriceSet bool
}

func (c FilterCriteria) Matches(p Product) bool {
	return c.matchesSearch(p) &&
		c.matchesCategory(p) &&
		c.matchesPrice(p)
}

func (c FilterCriteria) matchesSearch(p Product) bool {
	s := strings.ToLower(strings.TrimSpace(c.Search))
	if s == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), s) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), s) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), s) {
			return true
		}
	}
	return false
}

func (c FilterCriteria) matchesCategory(p Product) bool {
	cat := strings.TrimSpace(c.Category)
	return cat == "" || cat == CategoryAny || cat == p.Category
}

func (c FilterCriteria) matchesPrice(p Product) bool {
	return !c.MaxPriceSet || p.Price.LessThanOrEqual(c.MaxPrice)
}

// FilterProducts derives the filtered view. Pure: ps is never mutated.
func FilterProducts(ps []Product, c FilterCriteria) []Product {
	var out []Product
	for _, p := range ps {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
