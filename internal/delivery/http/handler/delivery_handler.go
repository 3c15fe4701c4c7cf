package handler

import (
	"net/http"

	"delivery-tracker/internal/middleware"
	"delivery-tracker/internal/usecase/delivery"
	"delivery-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DeliveryHandler struct {
	service *delivery.Service
}

func NewDeliveryHandler(service *delivery.Service) *DeliveryHandler {
	return &DeliveryHandler{service: service}
}

func (h *DeliveryHandler) RegisterRoutes(router *gin.RouterGroup) {
	deliveries := router.Group("/deliveries")
	{
		deliveries.GET("", h.List)
		deliveries.POST("", h.Create)
		deliveries.GET("/stats", h.Stats)
		deliveries.GET("/:id", h.Get)
		deliveries.PUT("/:id", h.Update)
		deliveries.PATCH("/:id", h.Update)
		deliveries.DELETE("/:id", h.Delete)
		deliveries.POST("/:id/mark_completed", h.MarkCompleted)
	}
}

func (h *DeliveryHandler) List(c *gin.Context) {
	var req delivery.ListDeliveriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	items, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", items)
}

func (h *DeliveryHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid delivery ID")
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", detail)
}

func (h *DeliveryHandler) Create(c *gin.Context) {
	var req delivery.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	detail, err := h.service.Create(c.Request.Context(), principal.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Delivery created successfully", detail)
}

func (h *DeliveryHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid delivery ID")
		return
	}

	var req delivery.UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	detail, err := h.service.Update(c.Request.Context(), id, principal.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Delivery updated successfully", detail)
}

func (h *DeliveryHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid delivery ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *DeliveryHandler) MarkCompleted(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid delivery ID")
		return
	}

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	detail, err := h.service.MarkCompleted(c.Request.Context(), id, principal.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Delivery marked as completed", detail)
}

func (h *DeliveryHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}
