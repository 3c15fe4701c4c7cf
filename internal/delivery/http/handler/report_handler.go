package handler

import (
	"net/http"

	"delivery-tracker/internal/usecase/report"

	"github.com/gin-gonic/gin"
)

// ReportHandler returns the aggregated report document directly, without the
// standard response envelope. Failures collapse to a 400 with a bare error
// object so misconfigured report queries never surface as server faults.
type ReportHandler struct {
	service *report.Service
}

func NewReportHandler(service *report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("", h.Generate)
		reports.GET("/delivery-reports", h.Generate)
	}
}

func (h *ReportHandler) Generate(c *gin.Context) {
	var req report.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	doc, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, doc)
}
