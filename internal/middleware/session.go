package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/01moynul/artstudio-golang/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	SessionCookie = "studio_session"
	SessionHeader = "X-Session-Token"

	// ContextSessionID is the gin context key holding the session id.
	ContextSessionID = "sessionID"
	// ContextUser is the gin context key holding the admin's *models.UserSession.
	ContextUser = "user"
)

// SessionMiddleware makes sure every request belongs to a session.
// The token is read from "Authorization: Bearer" or the session cookie;
// when absent or invalid a new session is started and its token returned
// in both the cookie and the X-Session-Token header.
// secure marks the cookie Secure; set it when the site is served over https.
func SessionMiddleware(tokens *auth.Tokens, ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, ok := sessionFromRequest(c, tokens); ok {
			c.Set(ContextSessionID, sid)
			c.Next()
			return
		}

		sid := uuid.NewString()
		token, err := tokens.Issue(sid)
		if err != nil {
			log.WithError(err).Error("Failed to issue session token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not start a session"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
		c.Header(SessionHeader, token)
		c.Set(ContextSessionID, sid)
		c.Next()
	}
}

func sessionFromRequest(c *gin.Context, tokens *auth.Tokens) (string, bool) {
	var raw string
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			raw = parts[1]
		}
	}
	if raw == "" {
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			raw = cookie
		}
	}
	if raw == "" {
		return "", false
	}

	sid, err := tokens.Validate(raw)
	if err != nil {
		log.WithError(err).Debug("Rejected session token")
		return "", false
	}
	return sid, true
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
