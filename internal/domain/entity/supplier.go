package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Supplier represents a supplier of scenting products and services.
// Balance is the signed prior balance carried on the record; the derived
// credit/payable figures are always recomputed from the full order set and
// never stored.
type Supplier struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name    string    `gorm:"size:255;not null" json:"name"`
	Email   *string   `gorm:"size:255" json:"email,omitempty"`
	Phone   *string   `gorm:"size:50" json:"phone,omitempty"`
	Address *string   `gorm:"type:text" json:"address,omitempty"`

	Balance decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"balance"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User           User            `gorm:"foreignKey:UserID" json:"-"`
	PurchaseOrders []PurchaseOrder `gorm:"foreignKey:SupplierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
