package middleware

import (
	"errors"
	"net/http"

	"offer-form-backend/internal/delivery/http/response"
	"offer-form-backend/pkg/apperror"
	"offer-form-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// Never expose internal error details to clients. Log the
				// actual error server-side and send a generic message.
				logger.Log.Error("internal server error",
					"error", err.Error(),
					"path", c.FullPath(),
				)
				response.Error(c, http.StatusInternalServerError, "Ein unerwarteter Fehler ist aufgetreten. Bitte später erneut versuchen.", nil)
			}
		}
	}
}
