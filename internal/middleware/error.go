package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "taskdeck/internal/errors"
	"taskdeck/internal/logger"
)

// ErrorHandler converts errors attached to the gin context into the
// response envelope. It is the backstop behind the handler-level respond
// helpers: nothing foreseeable should reach it, and whatever does is logged
// and returned as a generic failure without internal detail.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			if appErr.Fields != nil {
				c.JSON(appErr.StatusCode, gin.H{"status": "error", "errors": appErr.Fields})
				return
			}
			c.JSON(appErr.StatusCode, gin.H{"status": "error", "message": appErr.Message})
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.JSON(apperrors.ErrInternalServer.StatusCode,
			gin.H{"status": "error", "message": apperrors.ErrInternalServer.Message})
	}
}
