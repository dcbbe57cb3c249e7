package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/cabinet_contabil_app/internal/apperrors"
	"github.com/SscSPs/cabinet_contabil_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body of every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError writes err with the status its kind maps to. Server errors are
// logged and replaced by a generic message.
func respondError(c *gin.Context, err error, msg string) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: "Internal Server Error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: errorMessage(err)})
}

func errorMessage(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// pathID parses the int64 path parameter name, answering 400 when it is not one.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return id, true
}
