package aquaflowserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	accountsdomain "github.com/aquaflow/aquaflow-api/internal/domains/accounts/domain"
	accountsports "github.com/aquaflow/aquaflow-api/internal/domains/accounts/ports"
	platformpostgres "github.com/aquaflow/aquaflow-api/internal/platform/postgres"
)

type stubAccounts struct {
	accountsports.Service
	resolve func(email string) (*accountsdomain.User, error)
}

func (s *stubAccounts) ResolveByEmail(_ context.Context, email string) (*accountsdomain.User, error) {
	return s.resolve(email)
}

func identityRouter(accounts accountsports.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewIdentityMiddleware(accounts, nil))
	router.GET("/ping", func(c *gin.Context) {
		if user, ok := CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"user": user.Username})
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	})
	return router
}

func pingWithIdentity(router *gin.Engine, email string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if email != "" {
		req.Header.Set(IdentityHeader, email)
	}
	router.ServeHTTP(rec, req)
	return rec
}

func TestIdentityMiddleware_ResolvesCurrentUser(t *testing.T) {
	router := identityRouter(&stubAccounts{resolve: func(string) (*accountsdomain.User, error) {
		return &accountsdomain.User{ID: 1, Username: "amina", Name: "Amina Diallo", Type: accountsdomain.TypeCustomer}, nil
	}})

	rec := pingWithIdentity(router, "amina@example.com")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "amina")
}

func TestIdentityMiddleware_MissingHeaderPassesThrough(t *testing.T) {
	router := identityRouter(&stubAccounts{resolve: func(string) (*accountsdomain.User, error) {
		return nil, accountsports.ErrUserNotFound
	}})

	rec := pingWithIdentity(router, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentityMiddleware_UnknownUserIsUnauthorized(t *testing.T) {
	router := identityRouter(&stubAccounts{resolve: func(string) (*accountsdomain.User, error) {
		return nil, accountsports.ErrUserNotFound
	}})

	rec := pingWithIdentity(router, "nobody@example.com")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityMiddleware_StorageFaultIsNotACredentialError(t *testing.T) {
	router := identityRouter(&stubAccounts{resolve: func(string) (*accountsdomain.User, error) {
		return nil, fmt.Errorf("resolve account: %w", platformpostgres.ErrTransport)
	}})

	rec := pingWithIdentity(router, "amina@example.com")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
