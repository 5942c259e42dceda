package types

// CreateAreaInput registers a delivery zone for a vendor.
type CreateAreaInput struct {
	Name       string
	VendorID   int64
	VendorName string
}

// CreateItemInput adds a product to a vendor's inventory.
type CreateItemInput struct {
	VendorID    int64
	Name        string
	Price       float64
	Stock       int32
	Description string
	ImageURLs   []string
}

// UpdateItemInput applies a partial item update; only non-nil fields are
// written.
type UpdateItemInput struct {
	ID          int64
	Name        *string
	Price       *float64
	Stock       *int32
	Description *string
	ImageURLs   *[]string
}
