package models

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// ParseRole maps a stored role string onto a known Role. Anything
// unrecognized collapses to RoleUser so a bad row never widens access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleModerator:
		return RoleModerator
	default:
		return RoleUser
	}
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:25;not null" json:"username"`
	Email        string    `gorm:"size:75;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	RefreshToken string    `gorm:"size:255" json:"-"`
	Role         Role      `gorm:"size:15;default:user" json:"role"`
	Confirmed    bool      `gorm:"default:false" json:"confirmed"`
	Avatar       string    `gorm:"size:255" json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
