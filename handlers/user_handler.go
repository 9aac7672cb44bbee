package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contacts-api/repository"
	"contacts-api/utils"
)

// AvatarUploader stores an avatar image and returns its public URL.
type AvatarUploader interface {
	Upload(file io.ReadSeeker, contentType string) (string, error)
}

type UserHandler struct {
	users   *repository.UserRepository
	cache   UserCache
	avatars AvatarUploader
}

func NewUserHandler(users *repository.UserRepository, cache UserCache, avatars AvatarUploader) *UserHandler {
	return &UserHandler{users: users, cache: cache, avatars: avatars}
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only images are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	url, err := h.avatars.Upload(file, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload avatar"})
		return
	}

	ctx := c.Request.Context()
	updated, err := h.users.UpdateAvatar(ctx, user.Email, url)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update avatar"})
		return
	}
	_ = h.cache.Set(ctx, updated)
	c.JSON(http.StatusOK, updated)
}
