package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contacts-api/auth"
	"contacts-api/models"
	"contacts-api/utils"
)

// UserSource resolves an email to a persisted user.
type UserSource interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserCache is the read/write slice of the auth cache the middleware needs.
type UserCache interface {
	Get(ctx context.Context, email string) (*models.User, error)
	Set(ctx context.Context, user *models.User) error
}

// Auth resolves the bearer token to a user and stores it in the gin
// context. Lookups go through the cache first; the database is only asked
// on a miss, and the result is cached for the next request.
func Auth(tokens *auth.TokenManager, users UserSource, cache UserCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "), auth.ScopeAccess)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		ctx := c.Request.Context()
		user, err := cache.Get(ctx, claims.Subject)
		if err != nil {
			// cache outage falls through to the database
			user = nil
		}
		if user == nil {
			user, err = users.GetByEmail(ctx, claims.Subject)
			if err != nil || user == nil {
				abortUnauthorized(c)
				return
			}
			_ = cache.Set(ctx, user)
		}

		c.Set(utils.CurrentUserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
}
