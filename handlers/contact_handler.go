package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"contacts-api/models"
	"contacts-api/repository"
	"contacts-api/utils"
)

type ContactHandler struct {
	contacts *repository.ContactRepository
}

func NewContactHandler(contacts *repository.ContactRepository) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type contactCreateRequest struct {
	FirstName   string      `json:"first_name" binding:"required,min=3,max=25"`
	LastName    string      `json:"last_name" binding:"required,min=3,max=25"`
	Email       string      `json:"email" binding:"required,min=3,max=75"`
	PhoneNumber string      `json:"phone_number" binding:"omitempty,min=3,max=15"`
	Birthday    models.Date `json:"birthday"`
}

// contactUpdateRequest marks every field optional, but the update path
// still overwrites all of them; an omitted field clears the stored value.
type contactUpdateRequest struct {
	FirstName   string      `json:"first_name" binding:"omitempty,min=3,max=25"`
	LastName    string      `json:"last_name" binding:"omitempty,min=3,max=25"`
	Email       string      `json:"email" binding:"omitempty,min=3,max=75"`
	PhoneNumber string      `json:"phone_number" binding:"omitempty,min=3,max=15"`
	Birthday    models.Date `json:"birthday"`
}

func (h *ContactHandler) GetContacts(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	limit, offset, err := pagination(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	contacts, err := h.contacts.List(c.Request.Context(), limit, offset, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch contacts"})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// GetAllContacts lists contacts across every owner. The role gate in front
// of the route is what keeps regular users out.
func (h *ContactHandler) GetAllContacts(c *gin.Context) {
	limit, offset, err := pagination(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	contacts, err := h.contacts.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch contacts"})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) SearchContacts(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	contacts, err := h.contacts.Search(
		c.Request.Context(),
		c.Query("first_name"),
		c.Query("last_name"),
		c.Query("email"),
		user.ID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search contacts"})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) GetUpcomingBirthdays(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	contacts, err := h.contacts.UpcomingBirthdays(c.Request.Context(), user.ID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch birthdays"})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) GetContact(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	id, err := contactID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	contact, err := h.contacts.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch contact"})
		return
	}
	if contact == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	var body contactCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	contact := &models.Contact{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Email:       body.Email,
		PhoneNumber: body.PhoneNumber,
		Birthday:    body.Birthday,
	}
	created, err := h.contacts.Create(c.Request.Context(), contact, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create contact"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	id, err := contactID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var body contactUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	fields := repository.ContactFields{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Email:       body.Email,
		PhoneNumber: body.PhoneNumber,
		Birthday:    body.Birthday,
	}
	contact, err := h.contacts.Update(c.Request.Context(), id, fields, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update contact"})
		return
	}
	if contact == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusAccepted, contact)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	id, err := contactID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	contact, err := h.contacts.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete contact"})
		return
	}
	if contact == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func contactID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// pagination rejects out-of-bounds values before the repository sees them.
func pagination(c *gin.Context) (int, int, error) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 10 || limit > 500 {
		return 0, 0, errors.New("limit must be between 10 and 500")
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, errors.New("offset must not be negative")
	}
	return limit, offset, nil
}
