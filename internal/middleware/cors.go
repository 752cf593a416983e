package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/config"
)

// CORS echoes allow-listed origins back with the credentials flag and
// answers preflight requests centrally. Origins off the list get no CORS
// headers at all, which makes the browser refuse the response. Preflights
// are answered with the regular ok envelope so clients can treat them like
// any other response.
func CORS(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if cfg.OriginAllowed(origin) {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", origin)
			header.Add("Vary", "Origin")
			header.Set("Access-Control-Allow-Credentials", "true")
			header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}

		c.Next()
	}
}
