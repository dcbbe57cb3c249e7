package middleware

import (
	"context"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// viewerKey is the key used to store the authenticated caller in the request context.
const viewerKey = contextKey("viewer")

// WithViewer returns a copy of ctx carrying the authenticated caller.
func WithViewer(ctx context.Context, viewer domain.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

// GetViewerFromContext retrieves the authenticated caller from the Gin context.
// It returns nil when the request is unauthenticated.
func GetViewerFromContext(c *gin.Context) *domain.Viewer {
	viewer, ok := c.Request.Context().Value(viewerKey).(domain.Viewer)
	if !ok {
		return nil
	}
	return &viewer
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	viewer := GetViewerFromContext(c)
	if viewer == nil {
		return 0, false
	}
	return viewer.UserID, true
}
