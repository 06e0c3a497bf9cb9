package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/scentworks/scentworks-api/internal/application/service"
	"github.com/scentworks/scentworks-api/internal/presentation/http/dto/response"
	"github.com/scentworks/scentworks-api/pkg/pagination"
)

// SupplierHandler handles supplier-related HTTP requests
type SupplierHandler struct {
	supplierService *service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List handles listing suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.supplierService.ListSuppliers(c.Request.Context(), *userID, params, c.Query("search"), IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Suppliers retrieved successfully", result)
}

// Create handles creating a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name           string  `json:"name" binding:"required"`
		Email          *string `json:"email"`
		Phone          *string `json:"phone"`
		Address        *string `json:"address"`
		OpeningBalance float64 `json:"opening_balance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), &service.CreateSupplierInput{
		UserID:         *userID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Supplier created successfully", supplier)
}

// Get handles retrieving a single supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Supplier retrieved successfully", supplier)
}

// Balance returns the supplier's derived financial view
func (h *SupplierHandler) Balance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	balance, err := h.supplierService.GetSupplierBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Supplier balance retrieved successfully", gin.H{
		"outstanding": balance.Outstanding,
		"persisted":   balance.Persisted,
		"current":     balance.Current,
		"credit":      balance.Credit,
		"payable":     balance.Payable,
	})
}

// Update handles updating supplier contact details
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), id, &service.UpdateSupplierInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Supplier updated successfully", supplier)
}

// Delete handles deleting a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Supplier deleted successfully", nil)
}
