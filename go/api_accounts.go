package aquaflowserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	accountmapper "github.com/aquaflow/aquaflow-api/internal/domains/accounts/adapters/http/mapper"
	accountsports "github.com/aquaflow/aquaflow-api/internal/domains/accounts/ports"
)

// AccountAPI wires HTTP transport with the accounts bounded context service.
type AccountAPI struct {
	service accountsports.Service
}

// NewAccountAPI creates an AccountAPI backed by the provided service.
func NewAccountAPI(service accountsports.Service) AccountAPI {
	return AccountAPI{service: service}
}

// Post /v1/users
// Register a customer or vendor account
func (api *AccountAPI) CreateUser(c *gin.Context) {
	var payload accountmapper.CreateUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateUser(c.Request.Context(), accountmapper.ToCreateUserInput(payload))
	if err != nil {
		respondAccountsError(c, err)
		return
	}
	c.JSON(http.StatusCreated, accountmapper.FromDomainUser(saved))
}

// Get /v1/users/me
// Resolve the authenticated caller's account
func (api *AccountAPI) GetCurrentUser(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondProblem(c, errMissingIdentity)
		return
	}
	c.JSON(http.StatusOK, accountmapper.FromDomainUser(user))
}

// Get /v1/users/:userId
// Find an account by ID
func (api *AccountAPI) GetUserById(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	user, err := api.service.GetUser(c.Request.Context(), id)
	if err != nil {
		respondAccountsError(c, err)
		return
	}
	c.JSON(http.StatusOK, accountmapper.FromDomainUser(user))
}

// Patch /v1/users/:userId
// Update profile fields; the account type is immutable
func (api *AccountAPI) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var payload accountmapper.MutationUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateUser(c.Request.Context(), accountmapper.ToUpdateUserInput(id, payload))
	if err != nil {
		respondAccountsError(c, err)
		return
	}
	c.JSON(http.StatusOK, accountmapper.FromDomainUser(updated))
}

// Delete /v1/users/:userId
// Delete an account
func (api *AccountAPI) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	if err := api.service.DeleteUser(c.Request.Context(), id); err != nil {
		respondAccountsError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/users/:userId/addresses
// Add a delivery address to an account
func (api *AccountAPI) CreateAddress(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var payload accountmapper.CreateAddress
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateAddress(c.Request.Context(), accountmapper.ToCreateAddressInput(id, payload))
	if err != nil {
		respondAccountsError(c, err)
		return
	}
	c.JSON(http.StatusCreated, accountmapper.FromDomainAddress(saved))
}

// Get /v1/users/:userId/addresses
// List an account's addresses, default first
func (api *AccountAPI) ListAddresses(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	list, err := api.service.ListAddresses(c.Request.Context(), id)
	if err != nil {
		respondAccountsError(c, err)
		return
	}
	c.JSON(http.StatusOK, accountmapper.FromDomainAddressList(list))
}

// Patch /v1/addresses/:addressId
// Update address fields
func (api *AccountAPI) UpdateAddress(c *gin.Context) {
	id, ok := parseIDParam(c, "addressId")
	if !ok {
		return
	}
	var payload accountmapper.MutationAddress
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateAddress(c.Request.Context(), accountmapper.ToUpdateAddressInput(id, payload))
	if err != nil {
		respondAccountsError(c, err)
		return
	}
	c.JSON(http.StatusOK, accountmapper.FromDomainAddress(updated))
}

// Delete /v1/addresses/:addressId
// Delete an address
func (api *AccountAPI) DeleteAddress(c *gin.Context) {
	id, ok := parseIDParam(c, "addressId")
	if !ok {
		return
	}
	if err := api.service.DeleteAddress(c.Request.Context(), id); err != nil {
		respondAccountsError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}
