//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	accountspostgres "github.com/aquaflow/aquaflow-api/internal/domains/accounts/adapters/persistence/postgres"
	accountsdomain "github.com/aquaflow/aquaflow-api/internal/domains/accounts/domain"
	catalogpostgres "github.com/aquaflow/aquaflow-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/aquaflow/aquaflow-api/internal/domains/catalog/domain"
	orderspostgres "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/persistence/postgres"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
	"github.com/aquaflow/aquaflow-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("aquaflow_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedVendor(t *testing.T, db *gorm.DB) *accountsdomain.User {
	t.Helper()
	vendor, err := accountsdomain.NewUser(0, "clearsprings", "ClearSprings Water", accountsdomain.TypeVendor)
	require.NoError(t, err)
	saved, err := accountspostgres.NewRepository(db).SaveUser(context.Background(), vendor)
	require.NoError(t, err)
	return saved
}

func seedItem(t *testing.T, db *gorm.DB, vendorID int64, stock int32) *catalogdomain.InventoryItem {
	t.Helper()
	item, err := catalogdomain.NewInventoryItem(vendorID, "19L Bottle", 5.5, stock)
	require.NoError(t, err)
	saved, err := catalogpostgres.NewRepository(db).SaveItem(context.Background(), item)
	require.NoError(t, err)
	return saved
}

func buildOrder(t *testing.T, vendorID, itemID int64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(1, vendorID, 10, 55, []domain.OrderItem{
		{ItemID: itemID, Name: "19L Bottle", Quantity: 3, Price: 5.5},
	})
	require.NoError(t, err)
	order.CustomerName = "Amina Diallo"
	order.VendorName = "ClearSprings Water"
	order.OrderedAt = time.Now().UTC()
	order.DeliveryDate = order.OrderedAt.AddDate(0, 0, 1)
	return order
}

func TestOrdersRepository_CreateAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()
	vendor := seedVendor(t, db)
	item := seedItem(t, db, vendor.ID, 12)

	created, err := repo.Create(ctx, buildOrder(t, vendor.ID, item.ID))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Len(t, created.Items, 1)
	assert.Equal(t, created.ID, created.Items[0].OrderID)
	assert.InDelta(t, 16.5, created.Total, 1e-9)

	retrieved, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amina Diallo", retrieved.CustomerName)
	assert.Len(t, retrieved.Items, 1)

	_, err = repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestOrdersRepository_MarkDeliveredIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	catalogRepo := catalogpostgres.NewRepository(db)
	ctx := context.Background()
	vendor := seedVendor(t, db)
	item := seedItem(t, db, vendor.ID, 12)

	created, err := repo.Create(ctx, buildOrder(t, vendor.ID, item.ID))
	require.NoError(t, err)

	delivered, performed, err := repo.MarkDelivered(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, performed)
	assert.Equal(t, domain.StatusDelivered, delivered.Status)

	remaining, err := catalogRepo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(9), remaining.Stock)

	// Second delivery keeps the status and skips the decrement.
	_, performed, err = repo.MarkDelivered(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, performed)

	remaining, err = catalogRepo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(9), remaining.Stock)
}

func TestOrdersRepository_MarkDeliveredClampsStockAtZero(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	catalogRepo := catalogpostgres.NewRepository(db)
	ctx := context.Background()
	vendor := seedVendor(t, db)
	item := seedItem(t, db, vendor.ID, 2)

	created, err := repo.Create(ctx, buildOrder(t, vendor.ID, item.ID))
	require.NoError(t, err)

	_, _, err = repo.MarkDelivered(ctx, created.ID)
	require.NoError(t, err)

	remaining, err := catalogRepo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(0), remaining.Stock)
}

func TestOrdersRepository_CancelledOrdersAreFrozen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()
	vendor := seedVendor(t, db)
	item := seedItem(t, db, vendor.ID, 12)

	created, err := repo.Create(ctx, buildOrder(t, vendor.ID, item.ID))
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, created.ID, domain.StatusCancelled)
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, created.ID, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)

	_, _, err = repo.MarkDelivered(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
}

func TestOrdersRepository_CreateInvoiceOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()
	vendor := seedVendor(t, db)
	item := seedItem(t, db, vendor.ID, 12)

	created, err := repo.Create(ctx, buildOrder(t, vendor.ID, item.ID))
	require.NoError(t, err)

	issued := time.Now().UTC()
	invoice, err := repo.CreateInvoice(ctx, &domain.Invoice{
		Code:     "INV-1A2B3C4D",
		OrderID:  created.ID,
		Amount:   created.Total,
		IssuedAt: issued,
		DueAt:    issued.Add(7 * 24 * time.Hour),
		Status:   domain.InvoiceDraft,
	})
	require.NoError(t, err)
	require.NotZero(t, invoice.ID)

	linked, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.InvoiceID)
	assert.Equal(t, invoice.ID, *linked.InvoiceID)

	_, err = repo.CreateInvoice(ctx, &domain.Invoice{
		Code:     "INV-5E6F7A8B",
		OrderID:  created.ID,
		Amount:   created.Total,
		IssuedAt: issued,
		DueAt:    issued.Add(7 * 24 * time.Hour),
		Status:   domain.InvoiceDraft,
	})
	assert.ErrorIs(t, err, domain.ErrInvoiceExists)
}

func TestOrdersRepository_MessageThreadOrdering(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()
	vendor := seedVendor(t, db)
	item := seedItem(t, db, vendor.ID, 12)

	created, err := repo.Create(ctx, buildOrder(t, vendor.ID, item.ID))
	require.NoError(t, err)

	base := time.Now().UTC()
	for i, body := range []string{"Is the truck on time?", "Yes, leaving now."} {
		msg, err := domain.NewOrderMessage(created.ID, domain.SenderCustomer, "Amina Diallo", body)
		require.NoError(t, err)
		if i == 1 {
			msg.Sender = domain.SenderVendor
			msg.SenderName = "ClearSprings Water"
		}
		msg.SentAt = base.Add(time.Duration(i) * time.Second)
		_, err = repo.AppendMessage(ctx, msg)
		require.NoError(t, err)
	}

	thread, err := repo.ListMessages(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, domain.SenderCustomer, thread[0].Sender)
	assert.Equal(t, domain.SenderVendor, thread[1].Sender)
}
