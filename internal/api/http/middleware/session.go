package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "sa_session"
	sessionKey    = "session_id"
	sessionMaxAge = 7 * 24 * 60 * 60
)

// SessionMiddleware gives each browser an anonymous session id. It only
// scopes the one-analysis-at-a-time rule and carries no user identity.
func SessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(strings.TrimSpace(sid)) != nil {
			sid = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sid, sessionMaxAge, "/", "", secure, true)
		}
		c.Set(sessionKey, sid)
		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
