package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/scentworks/scentworks-api/internal/domain/repository"
)

var purchaseExportHeaders = []string{
	"Purchase No", "Date", "Supplier", "Category", "Items",
	"Subtotal", "Tax Rate %", "Tax Amount", "Total Amount",
	"Applied Credit", "Paid Amount", "Remaining Amount",
	"Payment Status", "Delivery Status",
}

// ExportService builds spreadsheet exports of the purchase ledger
type ExportService struct {
	purchaseRepo repository.PurchaseOrderRepository
}

// NewExportService creates a new export service
func NewExportService(purchaseRepo repository.PurchaseOrderRepository) *ExportService {
	return &ExportService{purchaseRepo: purchaseRepo}
}

// ExportPurchases writes the filtered order set to an xlsx workbook and
// returns the file together with a suggested filename. The stored derived
// figures are exported as-is; the nightly reconciler keeps them honest.
func (s *ExportService) ExportPurchases(ctx context.Context, userID uuid.UUID, params *repository.PurchaseFilterParams) (*excelize.File, string, error) {
	orders, err := s.purchaseRepo.ListForExport(ctx, userID, params)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Purchases"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range purchaseExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, order := range orders {
		row := rowIdx + 2
		supplierName := ""
		if order.Supplier != nil {
			supplierName = order.Supplier.Name
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), order.PurchaseNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), order.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), supplierName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), order.Category)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), len(order.Items))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), order.Subtotal.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), order.TaxRate.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), order.TaxAmount.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), order.TotalAmount.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), order.AppliedCredit.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), order.PaidAmount.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), order.RemainingAmount.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("M%d", row), string(order.PaymentStatus))
		f.SetCellValue(sheet, fmt.Sprintf("N%d", row), string(order.DeliveryStatus))
	}

	f.SetColWidth(sheet, "A", "N", 16)

	filename := fmt.Sprintf("purchases_%s.xlsx", time.Now().Format("20060102_150405"))
	return f, filename, nil
}
