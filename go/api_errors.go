package aquaflowserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accountsapp "github.com/aquaflow/aquaflow-api/internal/domains/accounts/application"
	accountsports "github.com/aquaflow/aquaflow-api/internal/domains/accounts/ports"
	catalogapp "github.com/aquaflow/aquaflow-api/internal/domains/catalog/application"
	catalogports "github.com/aquaflow/aquaflow-api/internal/domains/catalog/ports"
	ordersapp "github.com/aquaflow/aquaflow-api/internal/domains/orders/application"
	ordersdomain "github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	ordersports "github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
	platformpostgres "github.com/aquaflow/aquaflow-api/internal/platform/postgres"
	apierrors "github.com/aquaflow/aquaflow-api/internal/shared/errors"
)

// ErrUpstreamUnavailable reports a storage or network fault behind the API.
var ErrUpstreamUnavailable = apierrors.ProblemDetail{
	Type:   "/problems/upstream-unavailable",
	Title:  "Upstream Unavailable",
	Status: http.StatusServiceUnavailable,
}

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves the handler call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	case http.StatusServiceUnavailable:
		problem = ErrUpstreamUnavailable.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondStorageError classifies faults every domain shares: transport
// failures, constraint violations, and everything else.
func respondStorageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, platformpostgres.ErrTransport):
		respondError(c, http.StatusServiceUnavailable, err)
	case platformpostgres.IsConstraint(err):
		respondError(c, http.StatusConflict, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func respondAccountsError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, accountsports.ErrUserNotFound), errors.Is(err, accountsports.ErrAddressNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, accountsapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondStorageError(c, err)
	}
}

func respondCatalogError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, catalogports.ErrAreaNotFound), errors.Is(err, catalogports.ErrItemNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondStorageError(c, err)
	}
}

func respondOrdersError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrNotFound), errors.Is(err, ordersports.ErrInvoiceNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, ordersdomain.ErrOrderCancelled),
		errors.Is(err, ordersdomain.ErrInvoiceExists),
		errors.Is(err, ordersdomain.ErrInvoiceForbidden):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, ordersapp.ErrInvalidInput),
		errors.Is(err, ordersapp.ErrNoAddress),
		errors.Is(err, ordersapp.ErrEmptyCart),
		errors.Is(err, ordersapp.ErrNoPreferredTime),
		errors.Is(err, ordersapp.ErrDeliveryTooSoon),
		errors.Is(err, ordersapp.ErrOutOfStock):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, accountsports.ErrUserNotFound), errors.Is(err, accountsports.ErrAddressNotFound),
		errors.Is(err, catalogports.ErrAreaNotFound), errors.Is(err, catalogports.ErrItemNotFound):
		respondError(c, http.StatusNotFound, err)
	default:
		respondStorageError(c, err)
	}
}
