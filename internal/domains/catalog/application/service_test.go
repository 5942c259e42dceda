package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/aquaflow/aquaflow-api/internal/domains/catalog/adapters/memory"
	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/application"
	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/ports"
)

func newService() *application.Service {
	return application.NewService(catalogmemory.NewRepository())
}

func createItem(t *testing.T, svc *application.Service, stock int32) *domain.InventoryItem {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), types.CreateItemInput{
		VendorID:  7,
		Name:      "19L Bottle",
		Price:     5.5,
		Stock:     stock,
		ImageURLs: []string{"https://cdn.example/bottle.jpg"},
	})
	require.NoError(t, err)
	return item
}

func TestCreateItem_Validates(t *testing.T) {
	svc := newService()

	item := createItem(t, svc, 12)
	require.Equal(t, int64(7), item.VendorID)
	require.Equal(t, []string{"https://cdn.example/bottle.jpg"}, item.ImageURLs)

	_, err := svc.CreateItem(context.Background(), types.CreateItemInput{
		VendorID: 7,
		Name:     "Bottle",
		Price:    -1,
	})
	require.ErrorIs(t, err, application.ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNegativePrice)

	_, err = svc.CreateItem(context.Background(), types.CreateItemInput{
		Name:  "Bottle",
		Price: 1,
	})
	require.ErrorIs(t, err, domain.ErrMissingOwner)
}

func TestUpdateItem_AppliesOnlyPresentFields(t *testing.T) {
	svc := newService()
	item := createItem(t, svc, 12)

	price := 6.0
	updated, err := svc.UpdateItem(context.Background(), types.UpdateItemInput{
		ID:    item.ID,
		Price: &price,
	})
	require.NoError(t, err)
	require.InDelta(t, 6.0, updated.Price, 1e-9)
	require.Equal(t, item.Name, updated.Name)
	require.Equal(t, item.Stock, updated.Stock)

	stock := int32(-1)
	_, err = svc.UpdateItem(context.Background(), types.UpdateItemInput{
		ID:    item.ID,
		Stock: &stock,
	})
	require.ErrorIs(t, err, application.ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNegativeStock)

	_, err = svc.UpdateItem(context.Background(), types.UpdateItemInput{ID: 404})
	require.ErrorIs(t, err, ports.ErrItemNotFound)
}

func TestDecrementStock_ClampsAtZero(t *testing.T) {
	svc := newService()
	item := createItem(t, svc, 5)

	remaining, err := svc.DecrementStock(context.Background(), item.ID, 3)
	require.NoError(t, err)
	require.Equal(t, int32(2), remaining)

	remaining, err = svc.DecrementStock(context.Background(), item.ID, 10)
	require.NoError(t, err)
	require.Equal(t, int32(0), remaining)

	_, err = svc.DecrementStock(context.Background(), 404, 1)
	require.ErrorIs(t, err, ports.ErrItemNotFound)
}

func TestListItemsByArea_ResolvesOwningVendor(t *testing.T) {
	svc := newService()
	item := createItem(t, svc, 12)

	area, err := svc.CreateArea(context.Background(), types.CreateAreaInput{
		Name:       "Riverside",
		VendorID:   7,
		VendorName: "ClearSprings Water",
	})
	require.NoError(t, err)

	items, err := svc.ListItemsByArea(context.Background(), area.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, item.ID, items[0].ID)

	// An unknown area renders an empty shelf rather than an error.
	items, err = svc.ListItemsByArea(context.Background(), 404)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestDeleteArea_NotFound(t *testing.T) {
	svc := newService()

	err := svc.DeleteArea(context.Background(), 404)
	require.ErrorIs(t, err, ports.ErrAreaNotFound)
}
