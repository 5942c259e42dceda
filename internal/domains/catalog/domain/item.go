package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyItemName = errors.New("item name is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
	ErrMissingOwner  = errors.New("item must reference a vendor")
)

// InventoryItem is a vendor-owned product: bottled water, dispensers and
// the like. Stock never goes below zero.
type InventoryItem struct {
	ID          int64
	VendorID    int64
	Name        string
	Price       float64
	Stock       int32
	Description string
	ImageURLs   []string
}

// NewInventoryItem validates and constructs an item.
func NewInventoryItem(vendorID int64, name string, price float64, stock int32) (*InventoryItem, error) {
	item := &InventoryItem{VendorID: vendorID}
	if vendorID <= 0 {
		return nil, ErrMissingOwner
	}
	if err := item.Rename(name); err != nil {
		return nil, err
	}
	if err := item.SetPrice(price); err != nil {
		return nil, err
	}
	if err := item.SetStock(stock); err != nil {
		return nil, err
	}
	return item, nil
}

// Rename trims and validates the product name.
func (i *InventoryItem) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyItemName
	}
	i.Name = name
	return nil
}

// SetPrice rejects negative prices.
func (i *InventoryItem) SetPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	i.Price = price
	return nil
}

// SetStock rejects negative stock levels.
func (i *InventoryItem) SetStock(stock int32) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	i.Stock = stock
	return nil
}

// Consume subtracts delivered quantity, clamping at zero.
func (i *InventoryItem) Consume(quantity int32) {
	if quantity <= 0 {
		return
	}
	if quantity >= i.Stock {
		i.Stock = 0
		return
	}
	i.Stock -= quantity
}

// Validate re-applies invariants for persistence.
func (i *InventoryItem) Validate() error {
	if i.VendorID <= 0 {
		return ErrMissingOwner
	}
	if err := i.Rename(i.Name); err != nil {
		return err
	}
	if err := i.SetPrice(i.Price); err != nil {
		return err
	}
	return i.SetStock(i.Stock)
}
