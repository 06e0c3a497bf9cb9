package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
	"github.com/scentworks/scentworks-api/internal/domain/enum"
	"github.com/scentworks/scentworks-api/internal/domain/ledger"
	"github.com/scentworks/scentworks-api/internal/domain/repository"
	"github.com/scentworks/scentworks-api/pkg/apperror"
	"github.com/scentworks/scentworks-api/pkg/pagination"
	"github.com/scentworks/scentworks-api/pkg/utils"
)

// DefaultTaxRatePercent is applied when a draft does not specify a rate.
const DefaultTaxRatePercent = 15

// PurchaseService handles purchase order composition and submission
type PurchaseService struct {
	purchaseRepo repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	categoryRepo repository.CategoryRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	categoryRepo repository.CategoryRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		categoryRepo: categoryRepo,
	}
}

// PurchaseItemInput is one line item of a draft as entered by the operator.
// Values arrive as raw floats and are normalized before any derivation.
type PurchaseItemInput struct {
	ItemName  string
	Quantity  float64
	UnitPrice float64
}

// CreatePurchaseInput represents the create purchase order input
type CreatePurchaseInput struct {
	UserID        uuid.UUID
	SupplierID    uuid.UUID
	Date          time.Time
	Category      string
	TaxRate       *float64
	UseBalance    bool
	EnteredAmount float64
	Items         []PurchaseItemInput
}

// normalizeItems coerces raw draft values into ledger items, recomputing
// every row total. Stored or client-sent derived figures are never trusted.
func normalizeItems(inputs []PurchaseItemInput) []ledger.DraftItem {
	items := make([]ledger.DraftItem, 0, len(inputs))
	for _, in := range inputs {
		qty := ledger.FromFloat(in.Quantity)
		price := ledger.FromFloat(in.UnitPrice)
		items = append(items, ledger.DraftItem{
			ItemName:  strings.TrimSpace(in.ItemName),
			Quantity:  qty,
			UnitPrice: price,
			Total:     ledger.LineTotal(qty, price),
		})
	}
	return items
}

func (s *PurchaseService) validateDraft(input *CreatePurchaseInput, supplier *entity.Supplier) error {
	switch {
	case input.Date.IsZero():
		return apperror.NewValidationError("Purchase date is required")
	case supplier == nil:
		return apperror.NewValidationError("Supplier is required")
	case strings.TrimSpace(input.Category) == "":
		return apperror.NewValidationError("Category is required")
	case len(input.Items) == 0:
		return apperror.NewValidationError("At least one line item is required")
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.ItemName) == "" {
			return apperror.NewValidationError("Every line item needs a name")
		}
	}
	return nil
}

func (s *PurchaseService) taxRate(input *CreatePurchaseInput) decimal.Decimal {
	if input.TaxRate == nil {
		return decimal.NewFromInt(DefaultTaxRatePercent)
	}
	return ledger.FromFloat(*input.TaxRate)
}

// CreatePurchase validates the draft, recomputes every derived figure from
// the normalized items, allocates payment, and persists the order. When
// supplier credit is consumed, the supplier's stored balance moves in the
// same transaction, so no partial state survives a failed write. On any
// failure the draft is untouched and the operator can retry.
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.PurchaseOrder, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if err := s.validateDraft(input, supplier); err != nil {
		return nil, err
	}

	items := normalizeItems(input.Items)
	totals := ledger.Aggregate(items, s.taxRate(input))

	outstanding, err := s.purchaseRepo.SumRemainingBySupplier(ctx, supplier.ID)
	if err != nil {
		return nil, err
	}
	balance := ledger.ComputeBalance(outstanding, supplier.Balance)

	form := ledger.PaymentForm{
		UseBalance:    input.UseBalance,
		EnteredAmount: ledger.FromFloat(input.EnteredAmount),
	}
	// A toggle that arrived enabled but is no longer eligible is dropped,
	// along with the manual entry, before allocating.
	form.Sync(true, balance.Credit)
	alloc := form.Allocate(totals.TotalAmount, balance.Credit)

	order := &entity.PurchaseOrder{
		UserID:          input.UserID,
		SupplierID:      supplier.ID,
		CreatedByID:     &input.UserID,
		Date:            input.Date,
		PurchaseNo:      utils.GeneratePurchaseNo(),
		Category:        strings.TrimSpace(input.Category),
		TaxRate:         s.taxRate(input),
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		TotalAmount:     totals.TotalAmount,
		AppliedCredit:   alloc.AppliedCredit,
		PaidAmount:      alloc.PaidAmount,
		RemainingAmount: alloc.RemainingAmount,
		PaymentStatus:   ledger.ClassifyPayment(alloc.PaidAmount, alloc.RemainingAmount),
		DeliveryStatus:  enum.DeliveryStatusPending,
	}
	for i, item := range items {
		order.Items = append(order.Items, entity.PurchaseItem{
			Position:  i,
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}

	if err := s.purchaseRepo.CreateWithCreditApplied(ctx, order, alloc.AppliedCredit); err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetByID(ctx, order.ID)
}

// PurchasePreview is the read-only projection of a draft before submission:
// what the figures and the supplier balance would become. Nothing is written.
type PurchasePreview struct {
	Subtotal         decimal.Decimal     `json:"subtotal"`
	TaxAmount        decimal.Decimal     `json:"tax_amount"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	AppliedCredit    decimal.Decimal     `json:"applied_credit"`
	ManualPayment    decimal.Decimal     `json:"manual_payment"`
	PaidAmount       decimal.Decimal     `json:"paid_amount"`
	RemainingAmount  decimal.Decimal     `json:"remaining_amount"`
	PaymentStatus    enum.PaymentStatus  `json:"payment_status"`
	CreditBalance    decimal.Decimal     `json:"credit_balance"`
	PayableBalance   decimal.Decimal     `json:"payable_balance"`
	ProjectedCredit  decimal.Decimal     `json:"projected_credit"`
	ProjectedPayable decimal.Decimal     `json:"projected_payable"`
	ProjectedNet     decimal.Decimal     `json:"projected_net"`
	BalanceLabel     ledger.BalanceLabel `json:"balance_label"`
}

// PreviewPurchase computes the draft's derived figures and the supplier's
// projected post-submission balance without persisting anything.
func (s *PurchaseService) PreviewPurchase(ctx context.Context, input *CreatePurchaseInput) (*PurchasePreview, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	items := normalizeItems(input.Items)
	totals := ledger.Aggregate(items, s.taxRate(input))

	outstanding, err := s.purchaseRepo.SumRemainingBySupplier(ctx, supplier.ID)
	if err != nil {
		return nil, err
	}
	balance := ledger.ComputeBalance(outstanding, supplier.Balance)

	form := ledger.PaymentForm{
		UseBalance:    input.UseBalance,
		EnteredAmount: ledger.FromFloat(input.EnteredAmount),
	}
	form.Sync(true, balance.Credit)
	alloc := form.Allocate(totals.TotalAmount, balance.Credit)
	projection := ledger.Project(balance, alloc, form.UseBalance)

	return &PurchasePreview{
		Subtotal:         totals.Subtotal,
		TaxAmount:        totals.TaxAmount,
		TotalAmount:      totals.TotalAmount,
		AppliedCredit:    alloc.AppliedCredit,
		ManualPayment:    alloc.ManualPayment,
		PaidAmount:       alloc.PaidAmount,
		RemainingAmount:  alloc.RemainingAmount,
		PaymentStatus:    ledger.ClassifyPayment(alloc.PaidAmount, alloc.RemainingAmount),
		CreditBalance:    balance.Credit,
		PayableBalance:   balance.Payable,
		ProjectedCredit:  projection.ProjectedCredit,
		ProjectedPayable: projection.ProjectedPayable,
		ProjectedNet:     projection.ProjectedNet,
		BalanceLabel:     projection.Label,
	}, nil
}

// GetPurchase retrieves a purchase order by ID
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return order, nil
}

// ListPurchases lists purchase orders with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, userID uuid.UUID, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.PurchaseOrder], error) {
	orders, total, err := s.purchaseRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateDeliveryStatus moves an order through its delivery lifecycle. The
// delivery state is independent of payment and only ever moves forward.
func (s *PurchaseService) UpdateDeliveryStatus(ctx context.Context, userID, orderID uuid.UUID, status enum.DeliveryStatus, isAdmin bool) error {
	if !status.IsValid() {
		return apperror.NewBadRequestError("Invalid delivery status")
	}

	order, err := s.purchaseRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Purchase order")
	}
	if !isAdmin && order.UserID != userID {
		return apperror.ErrForbidden
	}
	if !order.DeliveryStatus.CanTransitionTo(status) {
		return apperror.NewBadRequestError("Delivery status cannot move from " + order.DeliveryStatus.String() + " to " + status.String())
	}

	return s.purchaseRepo.UpdateDeliveryStatus(ctx, orderID, status)
}

// DeletePurchase deletes a purchase order and its items
func (s *PurchaseService) DeletePurchase(ctx context.Context, userID, orderID uuid.UUID, isAdmin bool) error {
	order, err := s.purchaseRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Purchase order")
	}
	if !isAdmin && order.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.purchaseRepo.Delete(ctx, orderID)
}
