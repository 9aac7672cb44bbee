package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"contacts-api/auth"
	"contacts-api/models"
	"contacts-api/repository"
	"contacts-api/utils"
)

// UserCache is the slice of the auth cache the handlers need to keep it in
// sync with user mutations.
type UserCache interface {
	Set(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, email string) error
}

// ConfirmationMailer sends the signup confirmation email.
type ConfirmationMailer interface {
	SendConfirmation(to, username, confirmURL string) error
}

type AuthHandler struct {
	users   *repository.UserRepository
	tokens  *auth.TokenManager
	cache   UserCache
	mail    ConfirmationMailer
	baseURL string
}

func NewAuthHandler(users *repository.UserRepository, tokens *auth.TokenManager, cache UserCache, mail ConfirmationMailer, baseURL string) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, cache: cache, mail: mail, baseURL: baseURL}
}

type signupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=25"`
	Email    string `json:"email" binding:"required,email,max=75"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var body signupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	ctx := c.Request.Context()
	existing, err := h.users.GetByEmail(ctx, body.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password hashing failed"})
		return
	}

	user := &models.User{
		Username: body.Username,
		Email:    body.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := h.users.Create(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	h.sendConfirmation(user)
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) sendConfirmation(user *models.User) {
	token, err := h.tokens.CreateEmailToken(user.Email)
	if err != nil {
		log.Println("failed to create email token:", err)
		return
	}
	confirmURL := fmt.Sprintf("%s/auth/confirmed_email/%s", h.baseURL, token)
	go func() {
		if err := h.mail.SendConfirmation(user.Email, user.Username, confirmURL); err != nil {
			log.Println("failed to send confirmation email:", err)
		}
	}()
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.GetByEmail(ctx, body.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email"})
		return
	}
	if !user.Confirmed {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email not confirmed"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	tokens, err := h.issueTokens(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// RefreshToken rotates the token pair. The presented refresh token must
// match the stored one; a mismatch clears it so a stolen token cannot be
// replayed later.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	claims, err := h.tokens.Parse(raw, auth.ScopeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.GetByEmail(ctx, claims.Subject)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	if user.RefreshToken != raw {
		_ = h.users.UpdateRefreshToken(ctx, user.ID, "")
		_ = h.cache.Delete(ctx, user.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	tokens, err := h.issueTokens(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh token"})
		return
	}
	_ = h.cache.Delete(ctx, user.Email)
	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) issueTokens(ctx context.Context, user *models.User) (*tokenResponse, error) {
	access, err := h.tokens.CreateAccessToken(user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := h.tokens.CreateRefreshToken(user.Email)
	if err != nil {
		return nil, err
	}
	if err := h.users.UpdateRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, err
	}
	return &tokenResponse{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

func (h *AuthHandler) ConfirmedEmail(c *gin.Context) {
	claims, err := h.tokens.Parse(c.Param("token"), auth.ScopeEmail)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid token for email verification"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "verification error"})
		return
	}
	if user.Confirmed {
		c.JSON(http.StatusOK, gin.H{"message": "your email is already confirmed"})
		return
	}

	if err := h.users.ConfirmEmail(ctx, user.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email confirmed"})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	ctx := c.Request.Context()
	if err := h.users.UpdateRefreshToken(ctx, user.ID, ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	_ = h.cache.Delete(ctx, user.Email)
	c.Status(http.StatusNoContent)
}
