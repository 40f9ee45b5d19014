package cart

import (
	"errors"
	"net/http"
	"strconv"

	"b2bportal/internal/middleware"
	"b2bportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(client *gin.RouterGroup) {
	client.GET("/cart", h.GetCart)
	client.POST("/cart/items", h.AddItem)
	client.PUT("/cart/items/:id", h.UpdateItem)
	client.DELETE("/cart/items/:id", h.RemoveItem)
	client.DELETE("/cart", h.ClearCart)
}

func (h *Handler) GetCart(c *gin.Context) {
	clientID := c.GetInt64(middleware.CtxClientID)

	view, err := h.service.GetCart(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load cart")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cart": view})
}

func (h *Handler) AddItem(c *gin.Context) {
	clientID := c.GetInt64(middleware.CtxClientID)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	view, err := h.service.AddItem(c.Request.Context(), clientID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"cart": view})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	clientID := c.GetInt64(middleware.CtxClientID)

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item ID")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	view, err := h.service.UpdateItemQuantity(c.Request.Context(), clientID, itemID, req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cart": view})
}

func (h *Handler) RemoveItem(c *gin.Context) {
	clientID := c.GetInt64(middleware.CtxClientID)

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item ID")
		return
	}

	view, err := h.service.RemoveItem(c.Request.Context(), clientID, itemID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cart": view})
}

func (h *Handler) ClearCart(c *gin.Context) {
	clientID := c.GetInt64(middleware.CtxClientID)

	if err := h.service.ClearCart(c.Request.Context(), clientID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to clear cart")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Cart cleared"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, ErrVariantNotFound):
		response.Error(c, http.StatusNotFound, "VARIANT_NOT_FOUND", "Variant not found")
	case errors.Is(err, ErrVariantMismatch):
		response.Error(c, http.StatusBadRequest, "VARIANT_MISMATCH", "Variant does not belong to this product")
	case errors.Is(err, ErrBelowMinQuantity):
		response.Error(c, http.StatusBadRequest, "BELOW_MIN_QUANTITY", "Quantity is below the product minimum")
	case errors.Is(err, ErrNotCustomizable):
		response.Error(c, http.StatusBadRequest, "NOT_CUSTOMIZABLE", "Product does not support customization")
	case errors.Is(err, ErrUnknownCustomization):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_CUSTOMIZATION", "Unknown customization option")
	case errors.Is(err, ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Cart item not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Cart operation failed")
	}
}
