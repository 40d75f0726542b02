package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/auth"
)

// BearerAuth validates the bearer token with v and stores the caller's
// identity in the gin context.
func BearerAuth(v auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
			return
		}

		id, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": auth.ErrInvalidToken.Error()})
			return
		}

		auth.SetIdentity(c, id)
		c.Next()
	}
}
