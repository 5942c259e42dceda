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
	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/ports"
	catalogpostgres "github.com/aquaflow/aquaflow-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/aquaflow/aquaflow-api/internal/domains/catalog/domain"
	catalogports "github.com/aquaflow/aquaflow-api/internal/domains/catalog/ports"
	"github.com/aquaflow/aquaflow-api/internal/platform/migrations"
	platformpostgres "github.com/aquaflow/aquaflow-api/internal/platform/postgres"
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

func seedUser(t *testing.T, repo *accountspostgres.Repository, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(0, username, "Amina Diallo", domain.TypeCustomer)
	require.NoError(t, err)
	saved, err := repo.SaveUser(context.Background(), user)
	require.NoError(t, err)
	return saved
}

func TestAccountsRepository_SaveAndResolveUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := accountspostgres.NewRepository(db)
	ctx := context.Background()

	saved := seedUser(t, repo, "amina")
	require.NotZero(t, saved.ID)

	resolved, err := repo.FindUserByUsername(ctx, "amina")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, resolved.ID)
	assert.Equal(t, domain.TypeCustomer, resolved.Type)

	_, err = repo.FindUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestAccountsRepository_UsernameUniqueness(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := accountspostgres.NewRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "amina")

	dup, err := domain.NewUser(0, "amina", "Another Amina", domain.TypeCustomer)
	require.NoError(t, err)
	_, err = repo.SaveUser(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, platformpostgres.ErrUniqueViolation)
	assert.True(t, platformpostgres.IsConstraint(err))
}

func TestAccountsRepository_DefaultAddressClearsOthers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := accountspostgres.NewRepository(db)
	ctx := context.Background()
	owner := seedUser(t, repo, "amina")

	first, err := domain.NewAddress(owner.ID, "home", "12 Well Lane", "Riverside", "", "")
	require.NoError(t, err)
	first.IsDefault = true
	savedFirst, err := repo.SaveAddress(ctx, first)
	require.NoError(t, err)
	require.True(t, savedFirst.IsDefault)

	second, err := domain.NewAddress(owner.ID, "office", "4 Spring Road", "Riverside", "", "")
	require.NoError(t, err)
	second.IsDefault = true
	savedSecond, err := repo.SaveAddress(ctx, second)
	require.NoError(t, err)
	require.True(t, savedSecond.IsDefault)

	list, err := repo.ListAddresses(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, savedSecond.ID, list[0].ID)
	assert.True(t, list[0].IsDefault)
	assert.False(t, list[1].IsDefault)
}

func TestAccountsRepository_DeleteUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := accountspostgres.NewRepository(db)
	catalogRepo := catalogpostgres.NewRepository(db)
	ctx := context.Background()
	owner := seedUser(t, repo, "amina")

	home, err := domain.NewAddress(owner.ID, "home", "12 Well Lane", "Riverside", "", "")
	require.NoError(t, err)
	savedHome, err := repo.SaveAddress(ctx, home)
	require.NoError(t, err)

	item, err := catalogdomain.NewInventoryItem(owner.ID, "19L Bottle", 5.5, 12)
	require.NoError(t, err)
	savedItem, err := catalogRepo.SaveItem(ctx, item)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteUser(ctx, owner.ID))

	_, err = repo.GetUser(ctx, owner.ID)
	assert.ErrorIs(t, err, ports.ErrUserNotFound)

	// Addresses and inventory go with the account.
	_, err = repo.GetAddress(ctx, savedHome.ID)
	assert.ErrorIs(t, err, ports.ErrAddressNotFound)
	_, err = catalogRepo.GetItem(ctx, savedItem.ID)
	assert.ErrorIs(t, err, catalogports.ErrItemNotFound)

	err = repo.DeleteUser(ctx, owner.ID)
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}
