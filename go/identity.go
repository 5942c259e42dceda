package aquaflowserver

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	accountsapp "github.com/aquaflow/aquaflow-api/internal/domains/accounts/application"
	accountsdomain "github.com/aquaflow/aquaflow-api/internal/domains/accounts/domain"
	accountsports "github.com/aquaflow/aquaflow-api/internal/domains/accounts/ports"
	apierrors "github.com/aquaflow/aquaflow-api/internal/shared/errors"
)

// IdentityHeader carries the authenticated email set by the fronting proxy.
const IdentityHeader = "X-Authenticated-Email"

const identityContextKey = "aquaflow.identity"

var errMissingIdentity = apierrors.ErrUnauthorized.WithDetail("no authenticated account for this request")

// NewIdentityMiddleware resolves the caller's account from the identity
// header and stores it on the request context. Requests without the
// header pass through unauthenticated; handlers that need an identity
// reject them individually.
func NewIdentityMiddleware(accounts accountsports.Service, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader(IdentityHeader))
		if email == "" {
			c.Next()
			return
		}
		user, err := accounts.ResolveByEmail(c.Request.Context(), email)
		if err != nil {
			if logger != nil {
				logger.Warn("identity resolution failed",
					slog.String("email", email), slog.String("error", err.Error()))
			}
			// An unknown or malformed identity is the caller's problem; a
			// storage fault is ours and must not read as a credential error.
			if errors.Is(err, accountsports.ErrUserNotFound) || errors.Is(err, accountsapp.ErrInvalidInput) {
				respondProblem(c, errMissingIdentity)
			} else {
				respondStorageError(c, err)
			}
			c.Abort()
			return
		}
		c.Set(identityContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the account resolved for this request, if any.
func CurrentUser(c *gin.Context) (*accountsdomain.User, bool) {
	value, ok := c.Get(identityContextKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*accountsdomain.User)
	return user, ok
}

// RequireIdentity aborts requests that reach a protected route without a
// resolved account.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			respondProblem(c, errMissingIdentity)
			c.Abort()
			return
		}
		c.Next()
	}
}
