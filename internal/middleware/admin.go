package middleware

import (
	"net/http"

	"github.com/01moynul/artstudio-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

// AdminMiddleware lets only logged-in admins through. It must run after SessionMiddleware.
func AdminMiddleware(sessions *auth.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		container := sessions.For(c.Request.Context(), SessionID(c))
		user := container.Session()

		if container.Status() != auth.Authenticated || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: admin role required"})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}
