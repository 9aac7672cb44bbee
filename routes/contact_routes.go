package routes

import (
	"github.com/gin-gonic/gin"

	"contacts-api/handlers"
)

func ContactRoutes(r *gin.Engine, h *handlers.ContactHandler, authn, limit, privileged gin.HandlerFunc) {
	contacts := r.Group("/contacts", authn, limit)
	{
		contacts.GET("", h.GetContacts)
		contacts.GET("/all", privileged, h.GetAllContacts)
		contacts.GET("/search", h.SearchContacts)
		contacts.GET("/birthdays", h.GetUpcomingBirthdays)
		contacts.GET("/:id", h.GetContact)
		contacts.POST("", h.CreateContact)
		contacts.PUT("/:id", h.UpdateContact)
		contacts.DELETE("/:id", h.DeleteContact)
	}
}
