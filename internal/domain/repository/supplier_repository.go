package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
	"github.com/scentworks/scentworks-api/pkg/pagination"
)

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	// AdjustBalance atomically adds delta to the supplier's stored balance.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Supplier, int64, error)
	Count(ctx context.Context, userID uuid.UUID, skipUserFilter bool) (int64, error)
}
