package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mwangikib/dukapos-api/internal/application/service"
	"github.com/mwangikib/dukapos-api/internal/presentation/http/dto/response"
)

// ReportHandler handles reporting and dashboard HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns today's headline figures
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// SalesReport returns the sales report for a period or date range
func (h *ReportHandler) SalesReport(c *gin.Context) {
	window, err := h.reportService.ResolveWindow(
		c.Query("period"),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.reportService.GetSalesReport(c.Request.Context(), window)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report retrieved successfully", report)
}
