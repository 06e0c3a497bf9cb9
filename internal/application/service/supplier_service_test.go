package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentworks/scentworks-api/pkg/apperror"
)

func TestGetSupplierBalance_DerivedFromOrders(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "-500")
	supplierService := NewSupplierService(fx.supplierRepo, fx.purchaseRepo)

	// No orders yet: the whole stored balance is credit
	balance, err := supplierService.GetSupplierBalance(context.Background(), fx.supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "500.00", balance.Credit.StringFixed(2))
	assert.True(t, balance.Payable.IsZero())

	// An unpaid 230 order eats into the credit
	_, err = fx.service.CreatePurchase(context.Background(), fx.input())
	require.NoError(t, err)

	balance, err = supplierService.GetSupplierBalance(context.Background(), fx.supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "230.00", balance.Outstanding.StringFixed(2))
	assert.Equal(t, "270.00", balance.Credit.StringFixed(2))
	assert.True(t, balance.Payable.IsZero())
}

func TestDeleteSupplier_BlockedWithOutstandingOrders(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "0")
	supplierService := NewSupplierService(fx.supplierRepo, fx.purchaseRepo)

	_, err := fx.service.CreatePurchase(context.Background(), fx.input())
	require.NoError(t, err)

	err = supplierService.DeleteSupplier(context.Background(), fx.supplier.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreateSupplier_RequiresName(t *testing.T) {
	fx := newPurchaseServiceFixture(t, "0")
	supplierService := NewSupplierService(fx.supplierRepo, fx.purchaseRepo)

	_, err := supplierService.CreateSupplier(context.Background(), &CreateSupplierInput{
		UserID: fx.userID,
		Name:   "   ",
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}
