package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/config"
	apperrors "taskdeck/internal/errors"
	"taskdeck/internal/logger"
	"taskdeck/internal/models"
	"taskdeck/internal/services"
)

// Context keys set by RequireSession for downstream handlers.
const (
	IdentityKey = "identity"
	SessionKey  = "session"
)

// RequireSession resolves the session cookie into an Identity and stores it
// in the gin context. Unauthenticated requests branch on what the caller
// expects back: JSON/AJAX clients get a structured 401, plain browser
// navigations are redirected to the login page. This dual behavior lets the
// same gate serve both the JSON API and server-rendered pages.
func RequireSession(sessions services.SessionServicer, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cfg.SessionCookieName)

		session, user, err := sessions.Resolve(token)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.StatusCode == http.StatusInternalServerError {
				logger.Get().Errorw("session resolution failed",
					"internal", appErr.Internal,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"status": "error", "message": appErr.Message})
				return
			}

			if wantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					gin.H{"status": "error", "message": "Unauthorized"})
				return
			}
			c.Redirect(http.StatusFound, cfg.LoginURL)
			c.Abort()
			return
		}

		c.Set(SessionKey, session)
		c.Set(IdentityKey, models.NewIdentity(user))
		c.Next()
	}
}

// wantsJSON reports whether the request signals that it expects a JSON
// response rather than a navigable page.
func wantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.Contains(c.ContentType(), "json")
}
