package utils

import (
	"errors"

	"github.com/gin-gonic/gin"

	"contacts-api/models"
)

// CurrentUserKey is the gin context key the auth middleware stores the
// resolved user under.
const CurrentUserKey = "currentUser"

func CurrentUser(c *gin.Context) (*models.User, error) {
	val, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, errors.New("no authenticated user in context")
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil, errors.New("unexpected user type in context")
	}
	return user, nil
}
