package routes

import (
	"github.com/gin-gonic/gin"

	"contacts-api/handlers"
)

func AuthRoutes(r *gin.Engine, h *handlers.AuthHandler, authn, limit gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", limit, h.Signup)
		auth.POST("/login", limit, h.Login)
		auth.GET("/refresh_token", h.RefreshToken)
		auth.GET("/confirmed_email/:token", h.ConfirmedEmail)
		auth.POST("/logout", authn, h.Logout)
	}
}
