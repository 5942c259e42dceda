package ports

import (
	"context"

	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/domain"
)

// Service exposes the catalog use cases to transport adapters.
type Service interface {
	CreateArea(ctx context.Context, input types.CreateAreaInput) (*domain.ServiceArea, error)
	GetArea(ctx context.Context, id int64) (*domain.ServiceArea, error)
	ListAreas(ctx context.Context) ([]*domain.ServiceArea, error)
	DeleteArea(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, input types.CreateItemInput) (*domain.InventoryItem, error)
	GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, input types.UpdateItemInput) (*domain.InventoryItem, error)
	ListItemsByVendor(ctx context.Context, vendorID int64) ([]*domain.InventoryItem, error)
	ListItemsByArea(ctx context.Context, areaID int64) ([]*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, id int64) error
	DecrementStock(ctx context.Context, itemID int64, quantity int32) (int32, error)
}
