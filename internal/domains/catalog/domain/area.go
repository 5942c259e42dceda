package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyAreaName  = errors.New("area name is required")
	ErrMissingVendor  = errors.New("area must reference a vendor")
)

// ServiceArea is a named delivery zone owned by one vendor. It determines
// which inventory items are visible to a customer at a given address.
type ServiceArea struct {
	ID         int64
	Name       string
	VendorID   int64
	VendorName string
}

// NewServiceArea validates and constructs a service area.
func NewServiceArea(name string, vendorID int64, vendorName string) (*ServiceArea, error) {
	area := &ServiceArea{VendorID: vendorID, VendorName: strings.TrimSpace(vendorName)}
	if vendorID <= 0 {
		return nil, ErrMissingVendor
	}
	if err := area.Rename(name); err != nil {
		return nil, err
	}
	return area, nil
}

// Rename trims and validates the zone name.
func (a *ServiceArea) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyAreaName
	}
	a.Name = name
	return nil
}

// Validate re-applies invariants for persistence.
func (a *ServiceArea) Validate() error {
	if a.VendorID <= 0 {
		return ErrMissingVendor
	}
	return a.Rename(a.Name)
}
