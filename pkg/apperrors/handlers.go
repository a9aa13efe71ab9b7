package apperrors

import (
	"carpicks_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// HandleError is the single terminal boundary that shapes every error
// response. Handlers never write partial success bodies before calling it.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		// Raw errors (storage layer, panics recovered upstream) default to 500
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", appErr, "path", c.Request.URL.Path)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, appErr)
}

// AsAppError attempts to interpret err as *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
