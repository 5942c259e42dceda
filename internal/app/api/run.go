package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	aquaflowserver "github.com/aquaflow/aquaflow-api/go"

	accountsmemory "github.com/aquaflow/aquaflow-api/internal/domains/accounts/adapters/memory"
	accountspostgres "github.com/aquaflow/aquaflow-api/internal/domains/accounts/adapters/persistence/postgres"
	accountsapp "github.com/aquaflow/aquaflow-api/internal/domains/accounts/application"
	accountsports "github.com/aquaflow/aquaflow-api/internal/domains/accounts/ports"

	catalogmemory "github.com/aquaflow/aquaflow-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/aquaflow/aquaflow-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/aquaflow/aquaflow-api/internal/domains/catalog/application"
	catalogports "github.com/aquaflow/aquaflow-api/internal/domains/catalog/ports"

	ordersexternal "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/external"
	ordersmemory "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/persistence/postgres"
	ordersobs "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/aquaflow/aquaflow-api/internal/domains/orders/application"
	ordersports "github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"

	"github.com/aquaflow/aquaflow-api/internal/platform/migrations"
	platformobservability "github.com/aquaflow/aquaflow-api/internal/platform/observability"
	platformpostgres "github.com/aquaflow/aquaflow-api/internal/platform/postgres"
)

// Run boots the AquaFlow HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "aquaflow-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	repos, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	accountsService := accountsapp.NewService(repos.accounts)
	catalogService := catalogapp.NewService(repos.catalog)

	directory := ordersexternal.NewCustomerDirectory(accountsService)
	vendorCatalog := ordersexternal.NewVendorCatalog(catalogService)

	ordersRepo := repos.orders(catalogService)
	ordersOptions := []ordersapp.Option{}
	if cfg.InvoiceDueDays > 0 {
		ordersOptions = append(ordersOptions, ordersapp.WithInvoiceDue(time.Duration(cfg.InvoiceDueDays)*24*time.Hour))
	}
	coreOrdersService := ordersapp.NewService(ordersRepo, directory, vendorCatalog, ordersOptions...)
	ordersService := ordersobs.New(
		coreOrdersService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	booking := ordersapp.NewBooking(ordersService, directory, vendorCatalog)

	var deliveryWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineDeliveryWorkflows(ordersService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, fulfilling deliveries inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		deliveryWorkflows = ordersworkflows.NewTemporalDeliveryWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := aquaflowserver.ApiHandleFunctions{
		AccountAPI: aquaflowserver.NewAccountAPI(accountsService),
		CatalogAPI: aquaflowserver.NewCatalogAPI(catalogService),
		OrderAPI:   aquaflowserver.NewOrderAPI(ordersService, booking, deliveryWorkflows),
	}

	router := aquaflowserver.NewRouter(
		handlers,
		otelgin.Middleware(serviceName),
		aquaflowserver.NewIdentityMiddleware(accountsService, logger),
	)
	addr := ":" + cfg.Port
	logger.Info("AquaFlow API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("AquaFlow API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// repositories carries the storage adapters for every bounded context.
// The orders repository is built lazily because its in-memory variant
// decrements stock through the catalog service.
type repositories struct {
	accounts accountsports.Repository
	catalog  catalogports.Repository
	orders   func(stock ordersports.StockAdjuster) ordersports.Repository
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memoryRepositories(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return memoryRepositories(), func() {}
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		accounts: accountspostgres.NewRepository(db),
		catalog:  catalogpostgres.NewRepository(db),
		orders: func(ordersports.StockAdjuster) ordersports.Repository {
			// The relational adapter folds the stock decrement into its
			// delivery transaction.
			return orderspostgres.NewRepository(db)
		},
	}, func() { _ = sqlDB.Close() }
}

func memoryRepositories() repositories {
	return repositories{
		accounts: accountsmemory.NewRepository(),
		catalog:  catalogmemory.NewRepository(),
		orders: func(stock ordersports.StockAdjuster) ordersports.Repository {
			return ordersmemory.NewRepository(stock)
		},
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
