package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimit builds a per-route limiter with its counters in redis. Each
// route gets its own key prefix so limits do not bleed across routes;
// within a route, callers are counted separately by client IP.
func RateLimit(rdb *redis.Client, name string, limit int64, period time.Duration) gin.HandlerFunc {
	store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix: "limiter:" + name,
	})
	if err != nil {
		log.Fatalf("❌ Failed to init rate limiter %q: %v", name, err)
	}
	return mgin.NewMiddleware(limiter.New(store, limiter.Rate{Period: period, Limit: limit}))
}
