package middleware

import (
	"context"
	"net/http"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// BasicAuthRealm is announced in the challenge of admin-only generation endpoints.
const BasicAuthRealm = "Task Generation API"

// AdminAuthenticator verifies administrator credentials.
type AdminAuthenticator interface {
	AuthenticateAdmin(ctx context.Context, email, password string) (*domain.User, error)
}

// AdminBasicAuth accepts only HTTP Basic credentials of an ADMIN account.
// Every failure is a 401 with a Basic challenge.
func AdminBasicAuth(auth AdminAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		email, password, ok := c.Request.BasicAuth()
		if !ok {
			logger.Warn("Basic credentials missing or malformed")
			abortBasicChallenge(c)
			return
		}

		user, err := auth.AuthenticateAdmin(c.Request.Context(), email, password)
		if err != nil {
			logger.Warn("Admin basic authentication failed", "error", err)
			abortBasicChallenge(c)
			return
		}

		setViewer(c, domain.Viewer{UserID: user.UserID, Role: user.Role})
		c.Next()
	}
}

func abortBasicChallenge(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="`+BasicAuthRealm+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Admin credentials required"})
}
