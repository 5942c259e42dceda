package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	accountsmemory "github.com/aquaflow/aquaflow-api/internal/domains/accounts/adapters/memory"
	accountspostgres "github.com/aquaflow/aquaflow-api/internal/domains/accounts/adapters/persistence/postgres"
	accountsapp "github.com/aquaflow/aquaflow-api/internal/domains/accounts/application"
	catalogmemory "github.com/aquaflow/aquaflow-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/aquaflow/aquaflow-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/aquaflow/aquaflow-api/internal/domains/catalog/application"
	ordersexternal "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/external"
	ordersmemory "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/persistence/postgres"
	ordersobs "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/observability"
	ordersapp "github.com/aquaflow/aquaflow-api/internal/domains/orders/application"
	ordersports "github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
	orderactivities "github.com/aquaflow/aquaflow-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/aquaflow/aquaflow-api/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/aquaflow/aquaflow-api/internal/platform/observability"
	platformpostgres "github.com/aquaflow/aquaflow-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "aquaflow-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	ordersService, cleanupRepo := buildOrdersService(ctx, logger, instruments)
	defer cleanupRepo()
	activities := orderactivities.NewActivities(ordersService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.DeliveryFulfillmentTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.DeliveryFulfillmentWorkflow, workflow.RegisterOptions{Name: orderworkflows.DeliveryFulfillmentWorkflowName})
	w.RegisterActivityWithOptions(activities.FulfillDelivery, activity.RegisterOptions{Name: orderactivities.FulfillDeliveryActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.DeliveryFulfillmentTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOrdersService(ctx context.Context, logger *slog.Logger, instruments *platformobservability.Instruments) (ordersports.Service, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)

	var accountsService *accountsapp.Service
	var catalogService *catalogapp.Service
	var ordersRepo ordersports.Repository
	if db == nil {
		accountsService = accountsapp.NewService(accountsmemory.NewRepository())
		catalogService = catalogapp.NewService(catalogmemory.NewRepository())
		ordersRepo = ordersmemory.NewRepository(catalogService)
	} else {
		logger.Info("worker repositories configured with postgres")
		accountsService = accountsapp.NewService(accountspostgres.NewRepository(db))
		catalogService = catalogapp.NewService(catalogpostgres.NewRepository(db))
		ordersRepo = orderspostgres.NewRepository(db)
	}

	directory := ordersexternal.NewCustomerDirectory(accountsService)
	vendorCatalog := ordersexternal.NewVendorCatalog(catalogService)
	core := ordersapp.NewService(ordersRepo, directory, vendorCatalog)
	decorated := ordersobs.New(
		core,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return decorated, cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
