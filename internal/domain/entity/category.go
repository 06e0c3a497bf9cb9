package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a purchase category label. The registry is durable: labels
// survive restarts and are shared across operators.
type Category struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"size:100;not null" json:"name"`
	Slug   string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
