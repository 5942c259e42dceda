package application

import (
	"context"
	"errors"
	"strings"

	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/ports"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateArea registers a delivery zone.
func (s *Service) CreateArea(ctx context.Context, input types.CreateAreaInput) (*domain.ServiceArea, error) {
	area, err := domain.NewServiceArea(input.Name, input.VendorID, input.VendorName)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.SaveArea(ctx, area)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetArea loads a single delivery zone.
func (s *Service) GetArea(ctx context.Context, id int64) (*domain.ServiceArea, error) {
	area, err := s.repo.GetArea(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return area, nil
}

// ListAreas returns every zone; areas are publicly readable.
func (s *Service) ListAreas(ctx context.Context) ([]*domain.ServiceArea, error) {
	areas, err := s.repo.ListAreas(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return areas, nil
}

// DeleteArea removes a zone by identifier.
func (s *Service) DeleteArea(ctx context.Context, id int64) error {
	return mapError(s.repo.DeleteArea(ctx, id))
}

// CreateItem adds a product to the vendor's inventory.
func (s *Service) CreateItem(ctx context.Context, input types.CreateItemInput) (*domain.InventoryItem, error) {
	item, err := domain.NewInventoryItem(input.VendorID, input.Name, input.Price, input.Stock)
	if err != nil {
		return nil, mapError(err)
	}
	item.Description = strings.TrimSpace(input.Description)
	item.ImageURLs = append([]string{}, input.ImageURLs...)
	saved, err := s.repo.SaveItem(ctx, item)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetItem loads a single inventory item.
func (s *Service) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

// UpdateItem applies the fields present in the patch.
func (s *Service) UpdateItem(ctx context.Context, input types.UpdateItemInput) (*domain.InventoryItem, error) {
	item, err := s.repo.GetItem(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if input.Name != nil {
		if err := item.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Price != nil {
		if err := item.SetPrice(*input.Price); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Stock != nil {
		if err := item.SetStock(*input.Stock); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.ImageURLs != nil {
		item.ImageURLs = append([]string{}, (*input.ImageURLs)...)
	}
	saved, err := s.repo.SaveItem(ctx, item)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListItemsByVendor returns the vendor's inventory.
func (s *Service) ListItemsByVendor(ctx context.Context, vendorID int64) ([]*domain.InventoryItem, error) {
	items, err := s.repo.ListItemsByVendor(ctx, vendorID)
	if err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

// ListItemsByArea resolves the zone's owning vendor and returns that
// vendor's inventory. A missing area yields an empty list, not an error,
// so booking flows can render an empty shelf.
func (s *Service) ListItemsByArea(ctx context.Context, areaID int64) ([]*domain.InventoryItem, error) {
	area, err := s.repo.GetArea(ctx, areaID)
	if err != nil {
		if errors.Is(err, ports.ErrAreaNotFound) {
			return []*domain.InventoryItem{}, nil
		}
		return nil, mapError(err)
	}
	items, err := s.repo.ListItemsByVendor(ctx, area.VendorID)
	if err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

// DeleteItem removes a product by identifier.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	return mapError(s.repo.DeleteItem(ctx, id))
}

// DecrementStock subtracts delivered quantity, clamped at zero.
func (s *Service) DecrementStock(ctx context.Context, itemID int64, quantity int32) (int32, error) {
	remaining, err := s.repo.DecrementStock(ctx, itemID, quantity)
	if err != nil {
		return 0, mapError(err)
	}
	return remaining, nil
}

var _ ports.Service = (*Service)(nil)
