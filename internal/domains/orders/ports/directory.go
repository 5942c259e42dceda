package ports

import "context"

// CustomerRef is the slice of account data an order denormalizes.
type CustomerRef struct {
	ID    int64
	Name  string
	Phone string
}

// AreaRef resolves a delivery zone to its owning vendor.
type AreaRef struct {
	ID         int64
	Name       string
	VendorID   int64
	VendorName string
}

// ItemRef is the inventory snapshot copied into an order line.
type ItemRef struct {
	ID       int64
	VendorID int64
	Name     string
	Price    float64
	Stock    int32
}

// AddressRef is the slice of address data booking validation needs.
type AddressRef struct {
	ID     int64
	UserID int64
	AreaID *int64
}

// CustomerDirectory resolves customer accounts for denormalization.
type CustomerDirectory interface {
	LookupCustomer(ctx context.Context, id int64) (*CustomerRef, error)
	LookupAddress(ctx context.Context, id int64) (*AddressRef, error)
}

// VendorCatalog resolves areas and inventory snapshots at order time.
type VendorCatalog interface {
	LookupArea(ctx context.Context, id int64) (*AreaRef, error)
	LookupItem(ctx context.Context, id int64) (*ItemRef, error)
	ListAreaItems(ctx context.Context, areaID int64) ([]*ItemRef, error)
}
