package middleware

import (
	"io"
	"net/http"

	"go-touring-backend/internal/delivery/http/response"
	"go-touring-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the generic JSON 500. The panic value is
// logged server-side only.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered interface{}) {
		logger.Log.ErrorContext(c.Request.Context(), "Panic recovered",
			"panic", recovered,
			"path", c.FullPath(),
			"request_id", response.RequestID(c),
		)
		response.Error(c, http.StatusInternalServerError, internalErrorMessage, nil)
		c.Abort()
	})
}
