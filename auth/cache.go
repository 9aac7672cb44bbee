package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"contacts-api/models"
)

const userCacheTTL = 15 * time.Minute

// UserCache keeps recently authenticated users in redis so the auth
// middleware does not hit the database on every request. Entries are
// dropped on logout and refresh-token rotation.
type UserCache struct {
	rdb *redis.Client
}

func NewUserCache(rdb *redis.Client) *UserCache {
	return &UserCache{rdb: rdb}
}

func cacheKey(email string) string {
	return "user:" + email
}

func (c *UserCache) Get(ctx context.Context, email string) (*models.User, error) {
	data, err := c.rdb.Get(ctx, cacheKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserCache) Set(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(user.Email), data, userCacheTTL).Err()
}

func (c *UserCache) Delete(ctx context.Context, email string) error {
	return c.rdb.Del(ctx, cacheKey(email)).Err()
}
