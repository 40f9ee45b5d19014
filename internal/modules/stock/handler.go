package stock

import (
	"errors"
	"net/http"
	"strconv"

	"b2bportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.PATCH("/variants/:id/stock", h.UpdateStock)
	admin.GET("/stock/low", h.LowStockReport)
}

func (h *Handler) UpdateStock(c *gin.Context) {
	variantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid variant ID")
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	variant, err := h.service.UpdateStock(c.Request.Context(), variantID, req.Operation, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrVariantNotFound):
			response.Error(c, http.StatusNotFound, "VARIANT_NOT_FOUND", "Variant not found")
		case errors.Is(err, ErrInvalidOperation):
			response.Error(c, http.StatusBadRequest, "INVALID_OPERATION", "Operation must be set, add or subtract")
		case errors.Is(err, ErrInvalidQuantity):
			response.Error(c, http.StatusBadRequest, "INVALID_QUANTITY", "Quantity must not be negative")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Stock update failed")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"variant": variant})
}

func (h *Handler) LowStockReport(c *gin.Context) {
	alerts, err := h.service.LowStockReport(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load low stock report")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"alerts": alerts})
}
