package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token scopes. A token minted for one scope never validates under another.
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
	ScopeEmail   = "email_token"
)

const emailTokenTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Scope string `json:"scope"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (m *TokenManager) CreateAccessToken(email, role string) (string, error) {
	return m.sign(email, ScopeAccess, role, m.accessTTL)
}

func (m *TokenManager) CreateRefreshToken(email string) (string, error) {
	return m.sign(email, ScopeRefresh, "", m.refreshTTL)
}

func (m *TokenManager) CreateEmailToken(email string) (string, error) {
	return m.sign(email, ScopeEmail, "", emailTokenTTL)
}

func (m *TokenManager) sign(email, scope, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: scope,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse validates the signature, expiry and scope, and returns the claims.
func (m *TokenManager) Parse(tokenStr, scope string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || claims.Scope != scope {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
