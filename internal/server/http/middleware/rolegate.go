package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/domain/model"
)

// CanAccess reports whether the actor holds one of the allowed roles.
func CanAccess(actor lifecycle.Actor, roles ...model.Role) bool {
	for _, role := range roles {
		if actor.Role == role {
			return true
		}
	}
	return false
}

// RequireRole rejects requests whose actor is outside the allowed roles.
// It must run after AuthRequired.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(ActorContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		actor, ok := val.(lifecycle.Actor)
		if !ok || !CanAccess(actor, roles...) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
