package routes

import (
	"github.com/gin-gonic/gin"

	"contacts-api/handlers"
)

func UserRoutes(r *gin.Engine, h *handlers.UserHandler, authn, limit gin.HandlerFunc) {
	users := r.Group("/users", authn)
	{
		users.GET("/me", limit, h.Me)
		users.PATCH("/avatar", h.UpdateAvatar)
	}
}
