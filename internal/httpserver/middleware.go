package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopswift/internal/service/session"
)

const sessionCtxKey = "session"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// sessionMiddleware resolves the bearer token to a session. Unknown but well
// formed tokens are resumed rather than rejected.
func sessionMiddleware(sessions sessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			writeError(c, http.StatusUnauthorized, "Missing session token")
			return
		}
		sess, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrInvalidToken) {
				writeError(c, http.StatusUnauthorized, "Invalid session token")
				return
			}
			writeError(c, http.StatusInternalServerError, "Failed to load session")
			return
		}
		c.Set(sessionCtxKey, sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionCtxKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

// requireAdmin must run after sessionMiddleware.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		if sess == nil || !sess.Auth.IsAdmin() {
			writeError(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}
