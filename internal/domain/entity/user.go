package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentworks/scentworks-api/internal/domain/enum"
)

// User is a console operator account. Sign-in is by email/password or
// Google OAuth; GoogleID is set for accounts linked to Google.
type User struct {
	ID       uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Name     string        `gorm:"size:255;not null" json:"name"`
	Email    string        `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string        `gorm:"size:255" json:"-"`
	Role     enum.UserRole `gorm:"size:50;not null;default:'operator'" json:"role"`
	GoogleID *string       `gorm:"size:255;index" json:"-"`
	Photo    *string       `gorm:"size:255" json:"photo,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
