package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
	"github.com/scentworks/scentworks-api/internal/domain/enum"
	"github.com/scentworks/scentworks-api/internal/domain/repository"
	"github.com/scentworks/scentworks-api/pkg/apperror"
	"github.com/scentworks/scentworks-api/pkg/pagination"
)

type fakePurchaseRepo struct {
	orders    map[uuid.UUID]*entity.PurchaseOrder
	suppliers *fakeSupplierRepo
}

func newFakePurchaseRepo(suppliers *fakeSupplierRepo) *fakePurchaseRepo {
	return &fakePurchaseRepo{
		orders:    make(map[uuid.UUID]*entity.PurchaseOrder),
		suppliers: suppliers,
	}
}

func (f *fakePurchaseRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakePurchaseRepo) CreateWithCreditApplied(ctx context.Context, order *entity.PurchaseOrder, appliedCredit decimal.Decimal) error {
	if err := f.Create(ctx, order); err != nil {
		return err
	}
	if appliedCredit.IsPositive() {
		return f.suppliers.AdjustBalance(ctx, order.SupplierID, appliedCredit)
	}
	return nil
}

func (f *fakePurchaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return f.orders[id], nil
}

func (f *fakePurchaseRepo) GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.PurchaseOrder, error) {
	for _, o := range f.orders {
		if o.PurchaseNo == purchaseNo {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakePurchaseRepo) List(ctx context.Context, userID uuid.UUID, params *repository.PurchaseFilterParams) ([]entity.PurchaseOrder, int64, error) {
	var out []entity.PurchaseOrder
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakePurchaseRepo) ListForExport(ctx context.Context, userID uuid.UUID, params *repository.PurchaseFilterParams) ([]entity.PurchaseOrder, error) {
	out, _, err := f.List(ctx, userID, params)
	return out, err
}

func (f *fakePurchaseRepo) ListWithItems(ctx context.Context) ([]entity.PurchaseOrder, error) {
	out, _, err := f.List(ctx, uuid.Nil, nil)
	return out, err
}

func (f *fakePurchaseRepo) UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status enum.DeliveryStatus) error {
	if o, ok := f.orders[id]; ok {
		o.DeliveryStatus = status
	}
	return nil
}

func (f *fakePurchaseRepo) UpdateAggregates(ctx context.Context, id uuid.UUID, subtotal, taxAmount, totalAmount decimal.Decimal) error {
	if o, ok := f.orders[id]; ok {
		o.Subtotal = subtotal
		o.TaxAmount = taxAmount
		o.TotalAmount = totalAmount
	}
	return nil
}

func (f *fakePurchaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.orders, id)
	return nil
}

func (f *fakePurchaseRepo) SumRemainingBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range f.orders {
		if o.SupplierID == supplierID {
			sum = sum.Add(o.RemainingAmount)
		}
	}
	return sum, nil
}

func (f *fakePurchaseRepo) SumRemaining(ctx context.Context, userID uuid.UUID, skipUserFilter bool) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range f.orders {
		sum = sum.Add(o.RemainingAmount)
	}
	return sum, nil
}

func (f *fakePurchaseRepo) CountByPaymentStatus(ctx context.Context, userID uuid.UUID, skipUserFilter bool) (map[enum.PaymentStatus]int64, error) {
	counts := make(map[enum.PaymentStatus]int64)
	for _, o := range f.orders {
		counts[o.PaymentStatus]++
	}
	return counts, nil
}

func (f *fakePurchaseRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int, skipUserFilter bool) ([]entity.PurchaseOrder, error) {
	out, _, err := f.List(ctx, userID, nil)
	return out, err
}

type fakeSupplierRepo struct {
	suppliers map[uuid.UUID]*entity.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: make(map[uuid.UUID]*entity.Supplier)}
}

func (f *fakeSupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	f.suppliers[supplier.ID] = supplier
	return nil
}

func (f *fakeSupplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	return f.suppliers[id], nil
}

func (f *fakeSupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	f.suppliers[supplier.ID] = supplier
	return nil
}

func (f *fakeSupplierRepo) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	s, ok := f.suppliers[id]
	if !ok {
		return apperror.ErrNotFound
	}
	s.Balance = s.Balance.Add(delta)
	return nil
}

func (f *fakeSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.suppliers, id)
	return nil
}

func (f *fakeSupplierRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Supplier, int64, error) {
	var out []entity.Supplier
	for _, s := range f.suppliers {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSupplierRepo) Count(ctx context.Context, userID uuid.UUID, skipUserFilter bool) (int64, error) {
	return int64(len(f.suppliers)), nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.categories, id)
	return nil
}

type purchaseServiceFixture struct {
	service      *PurchaseService
	purchaseRepo *fakePurchaseRepo
	supplierRepo *fakeSupplierRepo
	userID       uuid.UUID
	supplier     *entity.Supplier
}

func newPurchaseServiceFixture(t *testing.T, supplierBalance string) *purchaseServiceFixture {
	t.Helper()

	supplierRepo := newFakeSupplierRepo()
	purchaseRepo := newFakePurchaseRepo(supplierRepo)
	categoryRepo := newFakeCategoryRepo()

	userID := uuid.New()
	supplier := &entity.Supplier{
		UserID:  userID,
		Name:    "Aroma Trading Co",
		Balance: decimal.RequireFromString(supplierBalance),
	}
	require.NoError(t, supplierRepo.Create(context.Background(), supplier))

	return &purchaseServiceFixture{
		service:      NewPurchaseService(purchaseRepo, supplierRepo, categoryRepo),
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		userID:       userID,
		supplier:     supplier,
	}
}

func (fx *purchaseServiceFixture) input() *CreatePurchaseInput {
	return &CreatePurchaseInput{
		UserID:     fx.userID,
		SupplierID: fx.supplier.ID,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Category:   "Scent Oils",
		Items: []PurchaseItemInput{
			{ItemName: "Lavender oil 500ml", Quantity: 2, UnitPrice: 100},
		},
	}
}

func TestCreatePurchase_ManualPartialPayment(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "0")
	input := fx.input()
	input.EnteredAmount = 100

	order, err := fx.service.CreatePurchase(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "200.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "30.00", order.TaxAmount.StringFixed(2))
	assert.Equal(t, "230.00", order.TotalAmount.StringFixed(2))
	assert.Equal(t, "100.00", order.PaidAmount.StringFixed(2))
	assert.Equal(t, "130.00", order.RemainingAmount.StringFixed(2))
	assert.True(t, order.AppliedCredit.IsZero())
	assert.Equal(t, enum.PaymentStatusPartial, order.PaymentStatus)
	assert.Equal(t, enum.DeliveryStatusPending, order.DeliveryStatus)
	assert.NotEmpty(t, order.PurchaseNo)

	// Manual payment never touches the supplier's stored balance
	assert.True(t, fx.supplier.Balance.IsZero())
}

func TestCreatePurchase_WithSupplierCredit(t *testing.T) {
	// Supplier holds 500 credit (stored balance -500)
	fx := newPurchaseServiceFixture(t, "-500")
	input := fx.input()
	input.UseBalance = true
	input.EnteredAmount = 999 // ignored in balance mode

	order, err := fx.service.CreatePurchase(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "230.00", order.AppliedCredit.StringFixed(2))
	assert.Equal(t, "230.00", order.PaidAmount.StringFixed(2))
	assert.True(t, order.RemainingAmount.IsZero())
	assert.Equal(t, enum.PaymentStatusPaid, order.PaymentStatus)

	// The consumed credit moves the stored balance toward zero
	assert.Equal(t, "-270.00", fx.supplier.Balance.StringFixed(2))
}

func TestCreatePurchase_UseBalanceWithoutCreditIsDropped(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "0")
	input := fx.input()
	input.UseBalance = true
	input.EnteredAmount = 100

	order, err := fx.service.CreatePurchase(context.Background(), input)
	require.NoError(t, err)

	// The toggle was invalid, so both it and the stale entry are cleared
	assert.True(t, order.AppliedCredit.IsZero())
	assert.True(t, order.PaidAmount.IsZero())
	assert.Equal(t, enum.PaymentStatusUnpaid, order.PaymentStatus)
	assert.True(t, fx.supplier.Balance.IsZero())
}

func TestCreatePurchase_DefaultTaxRate(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "0")

	order, err := fx.service.CreatePurchase(context.Background(), fx.input())
	require.NoError(t, err)
	assert.Equal(t, "15.00", order.TaxRate.StringFixed(2))

	zero := 0.0
	input := fx.input()
	input.TaxRate = &zero
	order, err = fx.service.CreatePurchase(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, order.TaxAmount.IsZero())
	assert.True(t, order.TotalAmount.Equal(order.Subtotal))
}

func TestCreatePurchase_ValidationFailures(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "0")

	tests := []struct {
		name   string
		mutate func(*CreatePurchaseInput)
	}{
		{"missing date", func(in *CreatePurchaseInput) { in.Date = time.Time{} }},
		{"unknown supplier", func(in *CreatePurchaseInput) { in.SupplierID = uuid.New() }},
		{"blank category", func(in *CreatePurchaseInput) { in.Category = "  " }},
		{"no items", func(in *CreatePurchaseInput) { in.Items = nil }},
		{"unnamed item", func(in *CreatePurchaseInput) {
			in.Items = append(in.Items, PurchaseItemInput{ItemName: " ", Quantity: 1, UnitPrice: 5})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := fx.input()
			tt.mutate(input)

			_, err := fx.service.CreatePurchase(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, 422, apperror.GetAppError(err).Code)
			assert.Empty(t, fx.purchaseRepo.orders, "nothing may persist on a failed submission")
		})
	}
}

func TestCreatePurchase_NormalizesRowTotals(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "0")
	input := fx.input()
	input.Items = []PurchaseItemInput{
		{ItemName: "Sample vials", Quantity: 3, UnitPrice: 0.335},
	}
	zero := 0.0
	input.TaxRate = &zero

	order, err := fx.service.CreatePurchase(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "1.01", order.Items[0].Total.StringFixed(2))
	assert.Equal(t, "1.01", order.Subtotal.StringFixed(2))
	assert.Equal(t, 0, order.Items[0].Position)
}

func TestPreviewPurchase_DoesNotPersist(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "-500")
	input := fx.input()
	input.UseBalance = true

	preview, err := fx.service.PreviewPurchase(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "230.00", preview.TotalAmount.StringFixed(2))
	assert.Equal(t, "230.00", preview.AppliedCredit.StringFixed(2))
	assert.Equal(t, "500.00", preview.CreditBalance.StringFixed(2))
	assert.Equal(t, "270.00", preview.ProjectedCredit.StringFixed(2))
	assert.Equal(t, enum.PaymentStatusPaid, preview.PaymentStatus)

	assert.Empty(t, fx.purchaseRepo.orders)
	assert.Equal(t, "-500.00", fx.supplier.Balance.StringFixed(2))
}

func TestUpdateDeliveryStatus_ForwardOnly(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "0")
	order, err := fx.service.CreatePurchase(context.Background(), fx.input())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, fx.service.UpdateDeliveryStatus(ctx, fx.userID, order.ID, enum.DeliveryStatusInTransit, false))
	require.NoError(t, fx.service.UpdateDeliveryStatus(ctx, fx.userID, order.ID, enum.DeliveryStatusDelivered, false))

	// Moving backwards is rejected
	err = fx.service.UpdateDeliveryStatus(ctx, fx.userID, order.ID, enum.DeliveryStatusPending, false)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestUpdateDeliveryStatus_OwnershipEnforced(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "0")
	order, err := fx.service.CreatePurchase(context.Background(), fx.input())
	require.NoError(t, err)

	stranger := uuid.New()
	err = fx.service.UpdateDeliveryStatus(context.Background(), stranger, order.ID, enum.DeliveryStatusInTransit, false)
	require.Error(t, err)
	assert.Equal(t, 403, apperror.GetAppError(err).Code)

	// Admins may update any order
	require.NoError(t, fx.service.UpdateDeliveryStatus(context.Background(), stranger, order.ID, enum.DeliveryStatusInTransit, true))
}

func TestDeletePurchase(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "0")
	order, err := fx.service.CreatePurchase(context.Background(), fx.input())
	require.NoError(t, err)

	err = fx.service.DeletePurchase(context.Background(), uuid.New(), order.ID, false)
	require.Error(t, err)

	require.NoError(t, fx.service.DeletePurchase(context.Background(), fx.userID, order.ID, false))
	assert.Empty(t, fx.purchaseRepo.orders)
}
