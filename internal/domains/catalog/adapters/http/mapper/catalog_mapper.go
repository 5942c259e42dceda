package mapper

import (
	catalogtypes "github.com/aquaflow/aquaflow-api/internal/domains/catalog/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/domain"
)

// ServiceArea is the HTTP representation of a delivery zone.
type ServiceArea struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	VendorID   int64  `json:"vendorId"`
	VendorName string `json:"vendorName,omitempty"`
}

// CreateArea captures the inbound zone registration payload.
type CreateArea struct {
	Name       string `json:"name" binding:"required"`
	VendorID   int64  `json:"vendorId" binding:"required"`
	VendorName string `json:"vendorName"`
}

// InventoryItem is the HTTP representation of a product.
type InventoryItem struct {
	ID          int64    `json:"id"`
	VendorID    int64    `json:"vendorId"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Stock       int32    `json:"stock"`
	Description string   `json:"description,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
}

// CreateItem captures the inbound product payload.
type CreateItem struct {
	VendorID    int64    `json:"vendorId" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price"`
	Stock       int32    `json:"stock"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"imageUrls"`
}

// MutationItem captures partial product updates while preserving field presence.
type MutationItem struct {
	Name        *string   `json:"name,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Stock       *int32    `json:"stock,omitempty"`
	Description *string   `json:"description,omitempty"`
	ImageURLs   *[]string `json:"imageUrls,omitempty"`
}

// ToCreateAreaInput converts the zone payload into an application input.
func ToCreateAreaInput(model CreateArea) catalogtypes.CreateAreaInput {
	return catalogtypes.CreateAreaInput{
		Name:       model.Name,
		VendorID:   model.VendorID,
		VendorName: model.VendorName,
	}
}

// ToCreateItemInput converts the product payload into an application input.
func ToCreateItemInput(model CreateItem) catalogtypes.CreateItemInput {
	return catalogtypes.CreateItemInput{
		VendorID:    model.VendorID,
		Name:        model.Name,
		Price:       model.Price,
		Stock:       model.Stock,
		Description: model.Description,
		ImageURLs:   append([]string{}, model.ImageURLs...),
	}
}

// ToUpdateItemInput converts a partial product update, preserving presence.
func ToUpdateItemInput(id int64, model MutationItem) catalogtypes.UpdateItemInput {
	input := catalogtypes.UpdateItemInput{ID: id}
	if model.Name != nil {
		name := *model.Name
		input.Name = &name
	}
	if model.Price != nil {
		price := *model.Price
		input.Price = &price
	}
	if model.Stock != nil {
		stock := *model.Stock
		input.Stock = &stock
	}
	if model.Description != nil {
		description := *model.Description
		input.Description = &description
	}
	if model.ImageURLs != nil {
		urls := append([]string{}, (*model.ImageURLs)...)
		input.ImageURLs = &urls
	}
	return input
}

// FromDomainArea maps a zone into its transport shape.
func FromDomainArea(a *domain.ServiceArea) ServiceArea {
	return ServiceArea{
		ID:         a.ID,
		Name:       a.Name,
		VendorID:   a.VendorID,
		VendorName: a.VendorName,
	}
}

// FromDomainAreaList maps a slice of zones to transport shapes.
func FromDomainAreaList(list []*domain.ServiceArea) []ServiceArea {
	result := make([]ServiceArea, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomainArea(a))
	}
	return result
}

// FromDomainItem maps a product into its transport shape.
func FromDomainItem(i *domain.InventoryItem) InventoryItem {
	return InventoryItem{
		ID:          i.ID,
		VendorID:    i.VendorID,
		Name:        i.Name,
		Price:       i.Price,
		Stock:       i.Stock,
		Description: i.Description,
		ImageURLs:   append([]string{}, i.ImageURLs...),
	}
}

// FromDomainItemList maps a slice of products to transport shapes.
func FromDomainItemList(list []*domain.InventoryItem) []InventoryItem {
	result := make([]InventoryItem, 0, len(list))
	for _, i := range list {
		result = append(result, FromDomainItem(i))
	}
	return result
}
