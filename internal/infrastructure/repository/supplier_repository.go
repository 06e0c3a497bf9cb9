package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
	domainRepo "github.com/scentworks/scentworks-api/internal/domain/repository"
	"github.com/scentworks/scentworks-api/pkg/pagination"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *supplierRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&entity.Supplier{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Supplier{}, "id = ?", id).Error
}

func (r *supplierRepository) Count(ctx context.Context, userID uuid.UUID, skipUserFilter bool) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&entity.Supplier{})
	if !skipUserFilter {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Count(&total).Error
	return total, err
}

func (r *supplierRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Supplier{})
	if !skipUserFilter {
		query = query.Where("user_id = ?", userID)
	}
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&suppliers).Error

	return suppliers, total, err
}
