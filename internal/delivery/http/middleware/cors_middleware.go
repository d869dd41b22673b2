package middleware

import (
	"net/http"

	"go-touring-backend/config"
	"go-touring-backend/pkg/sanity"

	"github.com/gin-gonic/gin"
)

var devOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:3001",
}

// CORSMiddleware adds CORS headers for the site frontend.
//
// Allowed origins are SITE_URL, FRONTEND_URL and ALLOWED_ORIGINS; the local
// Next.js dev servers are added outside production. Requests from any other
// origin get no CORS headers and their preflight is refused.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, origin := range append([]string{cfg.SiteURL, cfg.FrontendURL}, cfg.AllowedOrigins...) {
		if origin != "" {
			allowed[origin] = true
		}
	}
	if cfg.Environment != "production" {
		for _, origin := range devOrigins {
			allowed[origin] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Same-origin and server-to-server requests carry no Origin.
		isAllowed := origin == "" || allowed[origin]

		if isAllowed && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Authorization, X-Request-ID, "+sanity.SignatureHeader)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			if isAllowed {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		c.Next()
	}
}
