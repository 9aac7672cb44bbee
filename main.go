package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"contacts-api/auth"
	"contacts-api/config"
	"contacts-api/handlers"
	"contacts-api/mailer"
	"contacts-api/middleware"
	"contacts-api/models"
	"contacts-api/repository"
	"contacts-api/routes"
	"contacts-api/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Failed to load config: ", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("❌ Failed to connect to database: ", err)
	}
	rdb := config.NewRedisClient(cfg)

	users := repository.NewUserRepository(db)
	contacts := repository.NewContactRepository(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	cache := auth.NewUserCache(rdb)
	avatars, err := storage.NewAvatarStore(cfg)
	if err != nil {
		log.Fatal("❌ Failed to init avatar storage: ", err)
	}
	mail := mailer.New(cfg)

	authn := middleware.Auth(tokens, users, cache)
	privileged := middleware.RequireRole(models.RoleAdmin, models.RoleModerator)

	r := gin.Default()
	routes.AuthRoutes(r, handlers.NewAuthHandler(users, tokens, cache, mail, cfg.BaseURL),
		authn, middleware.RateLimit(rdb, "auth", 2, 30*time.Second))
	routes.UserRoutes(r, handlers.NewUserHandler(users, cache, avatars),
		authn, middleware.RateLimit(rdb, "users", 4, 30*time.Second))
	routes.ContactRoutes(r, handlers.NewContactHandler(contacts),
		authn, middleware.RateLimit(rdb, "contacts", 1, 20*time.Second), privileged)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello world"})
	})
	r.GET("/healthchecker", healthchecker(db))

	if err := r.Run("0.0.0.0:" + cfg.AppPort); err != nil {
		log.Fatal("❌ Server failed: ", err)
	}
}

func healthchecker(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var one int
		if err := db.WithContext(c.Request.Context()).Raw("SELECT 1").Scan(&one).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error connecting to the database"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the contacts API"})
	}
}
