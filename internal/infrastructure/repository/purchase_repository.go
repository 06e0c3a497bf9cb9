package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
	"github.com/scentworks/scentworks-api/internal/domain/enum"
	domainRepo "github.com/scentworks/scentworks-api/internal/domain/repository"
)

type purchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *gorm.DB) domainRepo.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// CreateWithCreditApplied writes the order (with its items) and consumes the
// supplier's credit inside one transaction. The balance increment uses a
// single UPDATE expression so concurrent submissions cannot lose a write.
func (r *purchaseOrderRepository) CreateWithCreditApplied(ctx context.Context, order *entity.PurchaseOrder, appliedCredit decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if appliedCredit.GreaterThan(decimal.Zero) {
			res := tx.Model(&entity.Supplier{}).
				Where("id = ?", order.SupplierID).
				Update("balance", gorm.Expr("balance + ?", appliedCredit))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *purchaseOrderRepository) GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := r.db.WithContext(ctx).First(&order, "purchase_no = ?", purchaseNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *purchaseOrderRepository) applyFilters(ctx context.Context, userID uuid.UUID, params *domainRepo.PurchaseFilterParams) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}
	if params.Search != "" {
		query = query.Where("purchase_no ILIKE ?", "%"+params.Search+"%")
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.DeliveryStatus != nil {
		query = query.Where("delivery_status = ?", *params.DeliveryStatus)
	}
	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}
	return query
}

func (r *purchaseOrderRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.PurchaseFilterParams) ([]entity.PurchaseOrder, int64, error) {
	var orders []entity.PurchaseOrder
	var total int64

	query := r.applyFilters(ctx, userID, params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	switch params.SortBy {
	case "date", "purchase_no", "total_amount", "remaining_amount", "created_at":
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Supplier").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

func (r *purchaseOrderRepository) ListForExport(ctx context.Context, userID uuid.UUID, params *domainRepo.PurchaseFilterParams) ([]entity.PurchaseOrder, error) {
	var orders []entity.PurchaseOrder
	err := r.applyFilters(ctx, userID, params).
		Preload("Supplier").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("date DESC, created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepository) ListWithItems(ctx context.Context) ([]entity.PurchaseOrder, error) {
	var orders []entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepository) UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status enum.DeliveryStatus) error {
	return r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("id = ?", id).
		Update("delivery_status", status).Error
}

func (r *purchaseOrderRepository) UpdateAggregates(ctx context.Context, id uuid.UUID, subtotal, taxAmount, totalAmount decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"subtotal":     subtotal,
			"tax_amount":   taxAmount,
			"total_amount": totalAmount,
		}).Error
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.PurchaseItem{}, "purchase_order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.PurchaseOrder{}, "id = ?", id).Error
	})
}

func (r *purchaseOrderRepository) SumRemainingBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("supplier_id = ?", supplierID).
		Select("COALESCE(SUM(remaining_amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *purchaseOrderRepository) SumRemaining(ctx context.Context, userID uuid.UUID, skipUserFilter bool) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})
	if !skipUserFilter {
		query = query.Where("user_id = ?", userID)
	}
	row := query.Select("COALESCE(SUM(remaining_amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *purchaseOrderRepository) CountByPaymentStatus(ctx context.Context, userID uuid.UUID, skipUserFilter bool) (map[enum.PaymentStatus]int64, error) {
	type statusCount struct {
		PaymentStatus enum.PaymentStatus
		Count         int64
	}
	var rows []statusCount

	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})
	if !skipUserFilter {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Select("payment_status, COUNT(*) as count").
		Group("payment_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.PaymentStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.PaymentStatus] = row.Count
	}
	return counts, nil
}

func (r *purchaseOrderRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int, skipUserFilter bool) ([]entity.PurchaseOrder, error) {
	var orders []entity.PurchaseOrder
	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})
	if !skipUserFilter {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Preload("Supplier").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
