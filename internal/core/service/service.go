package service

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CatalogLoader = (*Service)(nil)
var _ port.CatalogViewer = (*Service)(nil)
var _ port.SessionStarter = (*Service)(nil)
var _ port.CartEditor = (*Service)(nil)
var _ port.CheckoutSubmitter = (*Service)(nil)

// Config carries the storefront policy values.
type Config struct {
	ShippingCost      decimal.Decimal
	DefaultImageURL   string
	LowStockThreshold int
}

type Service struct {
	fetcher port.CatalogFetcher
	placer  port.OrderPlacer
	events  port.ClientEventsProducer
	linker  port.ConfirmationLinker
	cfg     Config

	validate *validator.Validate
	catalog  *catalog
	sessions *sessions
}

// New constructs the core service. events may be nil: client events are
// best effort and the storefront works without a broker.
func New(
	fetcher port.CatalogFetcher,
	placer port.OrderPlacer,
	events port.ClientEventsProducer,
	linker port.ConfirmationLinker,
	cfg Config,
) *Service {
	return &Service{
		fetcher:  fetcher,
		placer:   placer,
		events:   events,
		linker:   linker,
		cfg:      cfg,
		validate: newValidator(),
		catalog:  &catalog{},
		sessions: newSessions(),
	}
}

func (s *Service) LowStockThreshold() int {
	return s.cfg.LowStockThreshold
}

func (s *Service) emitEvent(ctx context.Context, evt domain.ClientEvent) {
	const op = "Service.emitEvent"

	if s.events == nil {
		return
	}
	evt.OccurredAt = time.Now()
	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce client event",
			"op", op, "type", evt.Type, "err", err)
	}
}

// The phone rule mirrors the checkout form: digits, spaces, plus and
// minus only.
var phonePattern = regexp.MustCompile(`^[\d\s+-]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}
