package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxSubject  = "auth_subject"
	CtxEmail    = "auth_email"
	CtxName     = "auth_name"
	CtxUserDBID = "user_db_id"
)

// Subject returns the external subject set by the authentication middleware.
func Subject(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxSubject))
}

// SetIdentity stores a verified identity in the gin context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(CtxSubject, id.Subject)
	if id.Email != "" {
		c.Set(CtxEmail, id.Email)
	}
	if id.DisplayName != "" {
		c.Set(CtxName, id.DisplayName)
	}
}

// UserID returns the local user id stored by WithUser.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserDBID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
