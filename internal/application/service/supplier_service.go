package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
	"github.com/scentworks/scentworks-api/internal/domain/ledger"
	"github.com/scentworks/scentworks-api/internal/domain/repository"
	"github.com/scentworks/scentworks-api/pkg/apperror"
	"github.com/scentworks/scentworks-api/pkg/pagination"
)

// SupplierService handles supplier-related operations
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	purchaseRepo repository.PurchaseOrderRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository, purchaseRepo repository.PurchaseOrderRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		purchaseRepo: purchaseRepo,
	}
}

// CreateSupplierInput represents the create supplier input
type CreateSupplierInput struct {
	UserID         uuid.UUID
	Name           string
	Email          *string
	Phone          *string
	Address        *string
	OpeningBalance float64
}

// UpdateSupplierInput represents the update supplier input
type UpdateSupplierInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// CreateSupplier creates a new supplier. A negative opening balance means
// the supplier owes the business (credit); positive means the business
// owes the supplier.
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewValidationError("Supplier name is required")
	}

	supplier := &entity.Supplier{
		UserID:  input.UserID,
		Name:    strings.TrimSpace(input.Name),
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Balance: ledger.FromFloat(input.OpeningBalance),
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// GetSupplierBalance computes the supplier's financial view fresh from the
// full order set plus the stored prior balance. Nothing derived is read
// back from storage.
func (s *SupplierService) GetSupplierBalance(ctx context.Context, id uuid.UUID) (*ledger.SupplierBalance, error) {
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	outstanding, err := s.purchaseRepo.SumRemainingBySupplier(ctx, supplier.ID)
	if err != nil {
		return nil, err
	}

	balance := ledger.ComputeBalance(outstanding, supplier.Balance)
	return &balance, nil
}

// UpdateSupplier updates supplier contact details. The stored balance is
// never edited directly here; it only moves through order submission.
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *UpdateSupplierInput) (*entity.Supplier, error) {
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.NewValidationError("Supplier name is required")
		}
		supplier.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.Phone != nil {
		supplier.Phone = input.Phone
	}
	if input.Address != nil {
		supplier.Address = input.Address
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// DeleteSupplier deletes a supplier that has no outstanding orders
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return err
	}

	outstanding, err := s.purchaseRepo.SumRemainingBySupplier(ctx, supplier.ID)
	if err != nil {
		return err
	}
	if outstanding.GreaterThan(decimal.Zero) {
		return apperror.NewConflictError("Supplier has outstanding purchase orders")
	}

	return s.supplierRepo.Delete(ctx, id)
}

// ListSuppliers lists suppliers with pagination and search
func (s *SupplierService) ListSuppliers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, userID, params, search, skipUserFilter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, pag), nil
}
