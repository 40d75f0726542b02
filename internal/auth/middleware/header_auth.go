package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/auth"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserName  = "X-User-Name"
)

// HeaderAuth trusts the X-User-Id header as the caller's subject.
// Use this ONLY for development/testing.
func HeaderAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sub := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing " + HeaderUserID + " header"})
			return
		}

		auth.SetIdentity(c, auth.Identity{
			Subject:     sub,
			Email:       strings.TrimSpace(c.GetHeader(HeaderUserEmail)),
			DisplayName: strings.TrimSpace(c.GetHeader(HeaderUserName)),
		})
		c.Next()
	}
}
