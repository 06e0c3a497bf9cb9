package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
	"github.com/scentworks/scentworks-api/internal/domain/enum"
	"github.com/scentworks/scentworks-api/pkg/pagination"
)

// PurchaseOrderRepository defines the interface for purchase order data operations
type PurchaseOrderRepository interface {
	// Create persists an order together with its line items.
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// CreateWithCreditApplied persists the order and increments the
	// supplier's stored balance by appliedCredit in one transaction, so a
	// failed order write never consumes credit and a failed balance write
	// rolls the order back.
	CreateWithCreditApplied(ctx context.Context, order *entity.PurchaseOrder, appliedCredit decimal.Decimal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, userID uuid.UUID, params *PurchaseFilterParams) ([]entity.PurchaseOrder, int64, error)
	ListForExport(ctx context.Context, userID uuid.UUID, params *PurchaseFilterParams) ([]entity.PurchaseOrder, error)
	ListWithItems(ctx context.Context) ([]entity.PurchaseOrder, error)
	UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status enum.DeliveryStatus) error
	UpdateAggregates(ctx context.Context, id uuid.UUID, subtotal, taxAmount, totalAmount decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SumRemainingBySupplier returns the outstanding total across one
	// supplier's orders; the supplier balance view is derived from it on
	// every read.
	SumRemainingBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error)
	SumRemaining(ctx context.Context, userID uuid.UUID, skipUserFilter bool) (decimal.Decimal, error)
	CountByPaymentStatus(ctx context.Context, userID uuid.UUID, skipUserFilter bool) (map[enum.PaymentStatus]int64, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int, skipUserFilter bool) ([]entity.PurchaseOrder, error)
}

// PurchaseFilterParams contains filtering parameters for purchase order queries
type PurchaseFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	PaymentStatus  *enum.PaymentStatus
	DeliveryStatus *enum.DeliveryStatus
	SupplierID     *uuid.UUID
	Category       string
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
	SkipUserFilter bool // If true, returns all orders (for admins)
}
