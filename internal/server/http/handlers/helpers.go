package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aurumdent/goldbuy/internal/domain/model"
	"github.com/aurumdent/goldbuy/internal/server/http/middleware"
	"github.com/aurumdent/goldbuy/internal/usecase"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentActor extracts the authenticated identity plus role from context.
func CurrentActor(c *gin.Context) usecase.Actor {
	actor := usecase.Actor{ID: CurrentUserID(c)}
	if val, ok := c.Get(middleware.UserRoleContextKey); ok {
		role, _ := val.(string)
		actor.Admin = role == string(model.RoleAdmin)
	}
	return actor
}
