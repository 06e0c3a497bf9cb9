package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
	"github.com/scentworks/scentworks-api/internal/domain/enum"
	"github.com/scentworks/scentworks-api/internal/domain/repository"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	purchaseRepo repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(purchaseRepo repository.PurchaseOrderRepository, supplierRepo repository.SupplierRepository) *DashboardService {
	return &DashboardService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalSuppliers   int64                  `json:"total_suppliers"`
	TotalOrders      int64                  `json:"total_orders"`
	PaidOrders       int64                  `json:"paid_orders"`
	PartialOrders    int64                  `json:"partial_orders"`
	UnpaidOrders     int64                  `json:"unpaid_orders"`
	TotalOutstanding decimal.Decimal        `json:"total_outstanding"`
	RecentOrders     []entity.PurchaseOrder `json:"recent_orders"`
}

// GetDashboardStats returns dashboard statistics. Admins see figures across
// every operator; everyone else sees only their own.
func (s *DashboardService) GetDashboardStats(ctx context.Context, userID uuid.UUID, isAdmin bool) (*DashboardStats, error) {
	stats := &DashboardStats{}

	supplierCount, err := s.supplierRepo.Count(ctx, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	stats.TotalSuppliers = supplierCount

	counts, err := s.purchaseRepo.CountByPaymentStatus(ctx, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	stats.PaidOrders = counts[enum.PaymentStatusPaid]
	stats.PartialOrders = counts[enum.PaymentStatusPartial]
	stats.UnpaidOrders = counts[enum.PaymentStatusUnpaid]
	stats.TotalOrders = stats.PaidOrders + stats.PartialOrders + stats.UnpaidOrders

	outstanding, err := s.purchaseRepo.SumRemaining(ctx, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	stats.TotalOutstanding = outstanding

	recent, err := s.purchaseRepo.ListRecent(ctx, userID, 5, isAdmin)
	if err != nil {
		return nil, err
	}
	stats.RecentOrders = recent

	return stats, nil
}
