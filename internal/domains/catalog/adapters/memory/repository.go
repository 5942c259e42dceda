package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu         sync.RWMutex
	areas      map[int64]*domain.ServiceArea
	items      map[int64]*domain.InventoryItem
	nextAreaID int64
	nextItemID int64
}

func NewRepository() *Repository {
	return &Repository{
		areas: map[int64]*domain.ServiceArea{},
		items: map[int64]*domain.InventoryItem{},
	}
}

func (r *Repository) SaveArea(_ context.Context, area *domain.ServiceArea) (*domain.ServiceArea, error) {
	if area == nil {
		return nil, errors.New("area is nil")
	}
	clone := *area
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextAreaID++
		clone.ID = r.nextAreaID
	} else if clone.ID > r.nextAreaID {
		r.nextAreaID = clone.ID
	}
	r.areas[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetArea(_ context.Context, id int64) (*domain.ServiceArea, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	area, ok := r.areas[id]
	if !ok {
		return nil, ports.ErrAreaNotFound
	}
	clone := *area
	return &clone, nil
}

func (r *Repository) ListAreas(_ context.Context) ([]*domain.ServiceArea, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.ServiceArea, 0, len(r.areas))
	for _, area := range r.areas {
		clone := *area
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) DeleteArea(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.areas[id]; !ok {
		return ports.ErrAreaNotFound
	}
	delete(r.areas, id)
	return nil
}

func (r *Repository) SaveItem(_ context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	clone := *item
	clone.ImageURLs = append([]string{}, item.ImageURLs...)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextItemID++
		clone.ID = r.nextItemID
	} else if clone.ID > r.nextItemID {
		r.nextItemID = clone.ID
	}
	r.items[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetItem(_ context.Context, id int64) (*domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *Repository) ListItemsByVendor(_ context.Context, vendorID int64) ([]*domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.InventoryItem, 0)
	for _, item := range r.items {
		if item.VendorID == vendorID {
			clone := *item
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) DeleteItem(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ports.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *Repository) DecrementStock(_ context.Context, itemID int64, quantity int32) (int32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return 0, ports.ErrItemNotFound
	}
	item.Consume(quantity)
	return item.Stock, nil
}
