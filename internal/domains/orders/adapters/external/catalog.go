package external

import (
	"context"

	catalogports "github.com/aquaflow/aquaflow-api/internal/domains/catalog/ports"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
)

var _ ports.VendorCatalog = (*VendorCatalog)(nil)

// VendorCatalog adapts the catalog service to the area and item snapshots
// the order flow copies at placement time.
type VendorCatalog struct {
	catalog catalogports.Service
}

// NewVendorCatalog wraps the catalog service.
func NewVendorCatalog(catalog catalogports.Service) *VendorCatalog {
	return &VendorCatalog{catalog: catalog}
}

func (c *VendorCatalog) LookupArea(ctx context.Context, id int64) (*ports.AreaRef, error) {
	area, err := c.catalog.GetArea(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.AreaRef{
		ID:         area.ID,
		Name:       area.Name,
		VendorID:   area.VendorID,
		VendorName: area.VendorName,
	}, nil
}

func (c *VendorCatalog) LookupItem(ctx context.Context, id int64) (*ports.ItemRef, error) {
	item, err := c.catalog.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.ItemRef{
		ID:       item.ID,
		VendorID: item.VendorID,
		Name:     item.Name,
		Price:    item.Price,
		Stock:    item.Stock,
	}, nil
}

func (c *VendorCatalog) ListAreaItems(ctx context.Context, areaID int64) ([]*ports.ItemRef, error) {
	items, err := c.catalog.ListItemsByArea(ctx, areaID)
	if err != nil {
		return nil, err
	}
	refs := make([]*ports.ItemRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, &ports.ItemRef{
			ID:       item.ID,
			VendorID: item.VendorID,
			Name:     item.Name,
			Price:    item.Price,
			Stock:    item.Stock,
		})
	}
	return refs, nil
}
