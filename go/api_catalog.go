package aquaflowserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/aquaflow/aquaflow-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/aquaflow/aquaflow-api/internal/domains/catalog/ports"
)

// CatalogAPI wires HTTP transport with the catalog bounded context service.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Post /v1/areas
// Register a service area for a vendor
func (api *CatalogAPI) CreateArea(c *gin.Context) {
	var payload catalogmapper.CreateArea
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateArea(c.Request.Context(), catalogmapper.ToCreateAreaInput(payload))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainArea(saved))
}

// Get /v1/areas
// List all service areas
func (api *CatalogAPI) ListAreas(c *gin.Context) {
	list, err := api.service.ListAreas(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainAreaList(list))
}

// Get /v1/areas/:areaId
// Find a service area by ID
func (api *CatalogAPI) GetAreaById(c *gin.Context) {
	id, ok := parseIDParam(c, "areaId")
	if !ok {
		return
	}
	area, err := api.service.GetArea(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainArea(area))
}

// Delete /v1/areas/:areaId
// Delete a service area
func (api *CatalogAPI) DeleteArea(c *gin.Context) {
	id, ok := parseIDParam(c, "areaId")
	if !ok {
		return
	}
	if err := api.service.DeleteArea(c.Request.Context(), id); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/areas/:areaId/items
// List the inventory available in a service area; an unknown area yields
// an empty list
func (api *CatalogAPI) ListAreaItems(c *gin.Context) {
	id, ok := parseIDParam(c, "areaId")
	if !ok {
		return
	}
	list, err := api.service.ListItemsByArea(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainItemList(list))
}

// Post /v1/items
// Add a product to a vendor's inventory
func (api *CatalogAPI) CreateItem(c *gin.Context) {
	var payload catalogmapper.CreateItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateItem(c.Request.Context(), catalogmapper.ToCreateItemInput(payload))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainItem(saved))
}

// Get /v1/items/:itemId
// Find a product by ID
func (api *CatalogAPI) GetItemById(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	item, err := api.service.GetItem(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainItem(item))
}

// Patch /v1/items/:itemId
// Update product fields
func (api *CatalogAPI) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var payload catalogmapper.MutationItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateItem(c.Request.Context(), catalogmapper.ToUpdateItemInput(id, payload))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainItem(updated))
}

// Delete /v1/items/:itemId
// Delete a product
func (api *CatalogAPI) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	if err := api.service.DeleteItem(c.Request.Context(), id); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/vendors/:vendorId/items
// List a vendor's inventory
func (api *CatalogAPI) ListVendorItems(c *gin.Context) {
	id, ok := parseIDParam(c, "vendorId")
	if !ok {
		return
	}
	list, err := api.service.ListItemsByVendor(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainItemList(list))
}
