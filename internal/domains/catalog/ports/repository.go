package ports

import (
	"context"
	"errors"

	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/domain"
)

var (
	ErrAreaNotFound = errors.New("service area not found")
	ErrItemNotFound = errors.New("inventory item not found")
)

// Repository persists service areas and inventory items.
type Repository interface {
	SaveArea(ctx context.Context, area *domain.ServiceArea) (*domain.ServiceArea, error)
	GetArea(ctx context.Context, id int64) (*domain.ServiceArea, error)
	ListAreas(ctx context.Context) ([]*domain.ServiceArea, error)
	DeleteArea(ctx context.Context, id int64) error

	SaveItem(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error)
	ListItemsByVendor(ctx context.Context, vendorID int64) ([]*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, id int64) error

	// DecrementStock atomically subtracts quantity from the item's stock,
	// clamping at zero, and returns the resulting level.
	DecrementStock(ctx context.Context, itemID int64, quantity int32) (int32, error)
}
