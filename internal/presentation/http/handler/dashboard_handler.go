package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scentworks/scentworks-api/internal/application/service"
	"github.com/scentworks/scentworks-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns dashboard statistics
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context(), *userID, IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard statistics retrieved successfully", stats)
}
