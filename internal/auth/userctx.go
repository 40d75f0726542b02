package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/users"
)

// WithUser resolves the authenticated subject to a local user row, creating
// it on first sight, and stores the numeric id under CtxUserDBID.
func WithUser(store users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub := Subject(c)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": ErrMissingToken.Error()})
			return
		}

		uid, err := store.EnsureUser(c.Request.Context(), users.UpsertUser{
			ExternalID:  sub,
			Email:       c.GetString(CtxEmail),
			DisplayName: c.GetString(CtxName),
		})
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user failed"})
			return
		}

		c.Set(CtxUserDBID, uid)
		c.Next()
	}
}
