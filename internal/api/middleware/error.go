package middleware

import (
	"net/http"

	"finsim/internal/api/models"

	"github.com/gin-gonic/gin"
)

// Recovery turns panics escaping a handler into the API's standard error
// envelope instead of a closed connection.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "an unexpected error occurred"
		switch v := recovered.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: msg,
			},
		})
	})
}
