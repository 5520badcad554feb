package handler

import (
	reportapp "github.com/bizledger/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the account dashboard aggregates
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns counts and revenue totals for the authenticated account
func (h *DashboardHandler) Summary(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), accountID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
