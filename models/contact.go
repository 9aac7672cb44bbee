package models

import "time"

// Contact belongs to the user who created it. UserID stays nullable so rows
// predating ownership remain loadable; every write path sets it from the
// authenticated caller.
type Contact struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `gorm:"size:25;not null" json:"first_name"`
	LastName    string    `gorm:"size:25;not null" json:"last_name"`
	Email       string    `gorm:"size:75" json:"email"`
	PhoneNumber string    `gorm:"size:15" json:"phone_number"`
	Birthday    Date      `gorm:"type:date" json:"birthday"`
	UserID      *uint     `gorm:"index" json:"user_id,omitempty"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
