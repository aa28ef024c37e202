// README: Recovery middleware that logs the panic and answers with a JSON 500.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"wardharides/internal/logger"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Warn(GetRequestID(c), "http", "panic", c.Request.URL.Path, fmt.Errorf("%v", r))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}
