package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "taskdeck/internal/errors"
	"taskdeck/internal/logger"
)

// Recovery recovers from handler panics and answers with the generic error
// envelope instead of an empty 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Get().Errorw("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.AbortWithStatusJSON(apperrors.ErrInternalServer.StatusCode,
			gin.H{"status": "error", "message": apperrors.ErrInternalServer.Message})
	})
}
