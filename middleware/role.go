package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contacts-api/models"
	"contacts-api/utils"
)

// RequireRole admits only callers whose role is in the allow-set. It must
// run after Auth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		user, err := utils.CurrentUser(c)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		if _, ok := allowed[models.ParseRole(string(user.Role))]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
