package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/scentworks/scentworks-api/internal/application/service"
	"github.com/scentworks/scentworks-api/internal/domain/enum"
	"github.com/scentworks/scentworks-api/internal/domain/repository"
	"github.com/scentworks/scentworks-api/internal/presentation/http/dto/response"
	"github.com/scentworks/scentworks-api/pkg/pagination"
)

// PurchaseHandler handles purchase order HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
	exportService   *service.ExportService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService, exportService *service.ExportService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		exportService:   exportService,
	}
}

func (h *PurchaseHandler) filterParams(c *gin.Context) *repository.PurchaseFilterParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.PurchaseFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:         c.Query("search"),
		Category:       c.Query("category"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
		SkipUserFilter: IsAdmin(c),
	}

	if statusStr := c.Query("payment_status"); statusStr != "" {
		status := enum.PaymentStatus(statusStr)
		if status.IsValid() {
			params.PaymentStatus = &status
		}
	}

	if statusStr := c.Query("delivery_status"); statusStr != "" {
		status := enum.DeliveryStatus(statusStr)
		if status.IsValid() {
			params.DeliveryStatus = &status
		}
	}

	if supplierIDStr := c.Query("supplier_id"); supplierIDStr != "" {
		if supplierID, err := uuid.Parse(supplierIDStr); err == nil {
			params.SupplierID = &supplierID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	return params
}

// List handles listing purchase orders
func (h *PurchaseHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), *userID, h.filterParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Purchase orders retrieved successfully", result)
}

type purchaseItemRequest struct {
	ItemName  string  `json:"item_name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type createPurchaseRequest struct {
	SupplierID    uuid.UUID             `json:"supplier_id" binding:"required"`
	Date          string                `json:"date" binding:"required"`
	Category      string                `json:"category" binding:"required"`
	TaxRate       *float64              `json:"tax_rate"`
	UseBalance    bool                  `json:"use_balance"`
	EnteredAmount float64               `json:"entered_amount"`
	Items         []purchaseItemRequest `json:"items" binding:"required"`
}

func (r *createPurchaseRequest) toInput(userID uuid.UUID) (*service.CreatePurchaseInput, bool) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, false
	}

	items := make([]service.PurchaseItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.PurchaseItemInput{
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &service.CreatePurchaseInput{
		UserID:        userID,
		SupplierID:    r.SupplierID,
		Date:          date,
		Category:      r.Category,
		TaxRate:       r.TaxRate,
		UseBalance:    r.UseBalance,
		EnteredAmount: r.EnteredAmount,
		Items:         items,
	}, true
}

// Create handles purchase order submission
func (h *PurchaseHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, ok := req.toInput(*userID)
	if !ok {
		response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	order, err := h.purchaseService.CreatePurchase(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Purchase order created successfully", order)
}

// Preview computes the derived figures and projected supplier balance for a
// draft without creating anything
func (h *PurchaseHandler) Preview(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, ok := req.toInput(*userID)
	if !ok {
		response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	preview, err := h.purchaseService.PreviewPurchase(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Purchase preview computed", preview)
}

// Get handles retrieving a single purchase order
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	order, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Purchase order retrieved successfully", order)
}

// UpdateDeliveryStatus handles delivery lifecycle transitions
func (h *PurchaseHandler) UpdateDeliveryStatus(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req struct {
		DeliveryStatus string `json:"delivery_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err = h.purchaseService.UpdateDeliveryStatus(c.Request.Context(), *userID, id, enum.DeliveryStatus(req.DeliveryStatus), IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Delivery status updated successfully", nil)
}

// Delete handles deleting a purchase order
func (h *PurchaseHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), *userID, id, IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Purchase order deleted successfully", nil)
}

// Export streams the filtered order set as an xlsx workbook
func (h *PurchaseHandler) Export(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	file, filename, err := h.exportService.ExportPurchases(c.Request.Context(), *userID, h.filterParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := file.Write(c.Writer); err != nil {
		response.ErrorWithCode(c, http.StatusInternalServerError, "Failed to write export")
	}
}
