package handler

import (
	"net/http"
	"strconv"

	"delivery-tracker/internal/middleware"
	"delivery-tracker/internal/usecase/catalog"
	"delivery-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves one reference catalog; the same handler is mounted
// once per catalog under its own path.
type CatalogHandler struct {
	service *catalog.Service
	path    string
}

func NewCatalogHandler(service *catalog.Service, path string) *CatalogHandler {
	return &CatalogHandler{service: service, path: path}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group(h.path)
	{
		entries.GET("", h.List)
		entries.POST("", h.Create)
		entries.GET("/:id", h.Get)
		entries.PUT("/:id", h.Update)
		entries.PATCH("/:id", h.Update)
		entries.DELETE("/:id", h.Delete)
	}
}

func (h *CatalogHandler) List(c *gin.Context) {
	var req catalog.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	entries, err := h.service.List(c.Request.Context(), &req, principal.IsStaff)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", entries)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	entry, err := h.service.Get(c.Request.Context(), id, principal.IsStaff)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", entry)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req catalog.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Entry created successfully", entry)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	var req catalog.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Entry updated successfully", entry)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
