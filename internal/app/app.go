package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/shopapi"
	"github.com/niksmo/storefront/internal/adapter/whatsapp"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	events     port.ClientEventsProducer
	service    *service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initEventsProducer()
	app.initCoreService()
	app.loadCatalog()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	if !app.cfg.Broker.Enabled {
		slog.Info("client events are disabled")
		return
	}

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	topic := app.cfg.Broker.ClientEventsTopic
	serde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(app.ctx, app.cfg.Broker.SeedBrokers, topic),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.events = producer
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	shopClient, err := shopapi.New(app.cfg.Shop.APIURL)
	if err != nil {
		app.fallDown(op, err)
	}

	linker := whatsapp.NewLinkBuilder(
		app.cfg.Shop.WhatsAppNumber, app.cfg.Shop.Currency,
	)

	app.service = service.New(
		shopClient,
		shopClient,
		app.events,
		linker,
		service.Config{
			ShippingCost:      decimal.NewFromFloat(app.cfg.Shop.ShippingCost),
			DefaultImageURL:   app.cfg.Shop.DefaultImageURL,
			LowStockThreshold: app.cfg.Shop.LowStockThreshold,
		},
	)
}

// loadCatalog fills the catalog once on startup. A failure is surfaced
// and the storefront starts empty; a reload can be requested over HTTP.
func (app *App) loadCatalog() {
	const op = "App.loadCatalog"

	if err := app.service.LoadCatalog(app.ctx); err != nil {
		slog.Error("failed to load catalog, storefront starts empty",
			"op", op, "err", err)
	}
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.service, app.service)
	httphandler.RegisterCart(mux, app.service)
	httphandler.RegisterCheckout(mux, app.service)

	handler := httphandler.WithSession(httphandler.AllowJSON(mux), app.service)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.events != nil {
		app.events.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
