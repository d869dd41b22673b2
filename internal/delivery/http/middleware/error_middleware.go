package middleware

import (
	"errors"
	"net/http"

	"go-touring-backend/internal/delivery/http/response"
	"go-touring-backend/pkg/apperror"
	"go-touring-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Error interno del servidor."

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.ErrorContext(c.Request.Context(), "Request failed",
					"path", c.FullPath(),
					"request_id", response.RequestID(c),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Internal error details stay in the server log.
		logger.Log.ErrorContext(c.Request.Context(), "Internal Server Error",
			"path", c.FullPath(),
			"request_id", response.RequestID(c),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, internalErrorMessage, nil)
	}
}
