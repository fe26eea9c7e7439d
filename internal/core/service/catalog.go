package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// catalog is the session-wide product snapshot. It is replaced as a whole
// on load and never mutated in place.
type catalog struct {
	mu       sync.RWMutex
	products []domain.Product
}

func (c *catalog) replace(ps []domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = ps
}

func (c *catalog) snapshot() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

func (c *catalog) find(productID string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ProductID == productID {
			return p, true
		}
	}
	return domain.Product{}, false
}

// LoadCatalog fetches the product list from the remote shop API and
// replaces the catalog snapshot. On any failure the catalog is left empty
// and the classified error is returned for the caller to surface.
func (s *Service) LoadCatalog(ctx context.Context) error {
	const op = "Service.LoadCatalog"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		s.catalog.replace(nil)
		return fmt.Errorf("%s: %w", op, err)
	}

	for i := range ps {
		ps[i].ImageURL = domain.NormalizeImageURL(
			ps[i].ImageURL, s.cfg.DefaultImageURL,
		)
	}
	s.catalog.replace(ps)
	return nil
}

// Products derives the filtered view for the given criteria.
func (s *Service) Products(c domain.FilterCriteria) []domain.Product {
	return domain.FilterProducts(s.catalog.snapshot(), c)
}

// Categories lists the distinct catalog categories, sorted.
func (s *Service) Categories() []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, p := range s.catalog.snapshot() {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return cats
}

// MaxCatalogPrice is the price ceiling of the loaded catalog, used by the
// UI to bound its price slider.
func (s *Service) MaxCatalogPrice() decimal.Decimal {
	max := decimal.Zero
	for _, p := range s.catalog.snapshot() {
		if p.Price.GreaterThan(max) {
			max = p.Price
		}
	}
	return max
}
