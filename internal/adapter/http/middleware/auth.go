package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
	"devflow/pkg/apierrors"
)

const (
	// SessionCookie carries the session token for browser clients.
	SessionCookie = "devflow_session"

	identityKey = "identity"
)

// RequireSession resolves the caller from a Bearer token or the session
// cookie and aborts with 401 before the handler runs when it cannot.
func RequireSession(authenticator ports.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			abortUnauthorized(c, apierrors.MsgUnauthorized)
			return
		}

		identity, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidSession) {
				zap.L().Error("failed to authenticate session", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgInternalError, GetLang(c)))
				return
			}
			abortUnauthorized(c, apierrors.MsgInvalidSession)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity returns the caller stored by RequireSession.
func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := value.(domain.Identity)
	return identity, ok && identity.UserID != ""
}

func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context, msgKey string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, msgKey, GetLang(c)))
}
