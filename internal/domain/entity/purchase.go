package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/scentworks/scentworks-api/internal/domain/enum"
)

// PurchaseOrder represents a purchase order placed with a supplier. Payment
// fields are written once at creation and never edited afterwards; only the
// delivery status moves through its own lifecycle.
type PurchaseOrder struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	SupplierID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"supplier_id"`
	CreatedByID *uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`

	Date       time.Time `gorm:"type:date;not null" json:"date"`
	PurchaseNo string    `gorm:"size:100;unique;not null" json:"purchase_no"`
	Category   string    `gorm:"size:100;not null" json:"category"`

	TaxRate         decimal.Decimal `gorm:"type:decimal(5,2);default:15" json:"tax_rate"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	AppliedCredit   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"applied_credit"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"paid_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"remaining_amount"`

	PaymentStatus  enum.PaymentStatus  `gorm:"size:20;not null;index" json:"payment_status"`
	DeliveryStatus enum.DeliveryStatus `gorm:"size:20;not null;default:'pending';index" json:"delivery_status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Supplier  *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	CreatedBy *User          `gorm:"foreignKey:CreatedByID" json:"created_by_user,omitempty"`
	Items     []PurchaseItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase order
func (p *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseItem represents a line item in a purchase order. Position keeps
// the insertion order stable for display; returned figures come from the
// returns ledger and are never derived here.
type PurchaseItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	Position        int             `gorm:"not null" json:"position"`
	ItemName        string          `gorm:"size:255;not null" json:"item_name"`
	Quantity        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Total           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`

	ReturnedQuantity *decimal.Decimal `gorm:"type:decimal(15,2)" json:"returned_quantity,omitempty"`
	ReturnedAmount   *decimal.Decimal `gorm:"type:decimal(15,2)" json:"returned_amount,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PurchaseOrder PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new purchase item
func (pi *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseItem model
func (PurchaseItem) TableName() string {
	return "purchase_items"
}
