// README: Admin auth middleware: checks the X-Admin-Password header against the gate.
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wardharides/internal/logger"
	"wardharides/internal/modules/admin"
)

const AdminPasswordHeader = "X-Admin-Password"

func AdminAuth(gate *admin.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := gate.Verify(c.GetHeader(AdminPasswordHeader))
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, admin.ErrGateDisabled):
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			logger.Event(GetRequestID(c), "admin", "auth", "rejected "+c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		}
	}
}
