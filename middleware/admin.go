package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talemaro/wheel-backend/services"
	"github.com/talemaro/wheel-backend/utils/logger"
)

const (
	HeaderAdminToken   = "x-admin-token"
	HeaderAdminSession = "x-admin-session"
)

// AdminOnly gates mutating routes. Either the static admin token or a live
// session id is accepted; a session that passes is also extended (touch), so
// admin activity keeps it alive. All failures collapse into one 401.
func AdminOnly(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader(HeaderAdminToken); token != "" {
			if sessions.ValidateStaticToken(token) {
				c.Next()
				return
			}
			logger.Warnf("Admin request rejected: invalid static token")
			abortUnauthorized(c)
			return
		}

		sessionID := c.GetHeader(HeaderAdminSession)
		if sessionID == "" {
			logger.Debugf("Admin request rejected: no credentials supplied")
			abortUnauthorized(c)
			return
		}

		if _, err := sessions.Touch(sessionID); err != nil {
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin authentication required"})
}
