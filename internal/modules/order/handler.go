package order

import (
	"errors"
	"net/http"
	"strconv"

	"b2bportal/internal/middleware"
	"b2bportal/internal/pkg/pagination"
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
	client.POST("/orders", h.CreateOrder)
	client.GET("/orders", h.ListOrders)
	client.GET("/orders/:id", h.GetOrder)
	client.POST("/orders/:id/cancel", h.CancelOrder)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	clientID := c.GetInt64(middleware.CtxClientID)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.CreateOrder(c.Request.Context(), clientID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"order": o})
}

func (h *Handler) ListOrders(c *gin.Context) {
	clientID := c.GetInt64(middleware.CtxClientID)
	p := pagination.FromQuery(c)

	orders, total, err := h.service.ListOrders(c.Request.Context(), clientID, c.Query("status"), p.PageSize, p.Offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load orders")
		return
	}
	response.Paginated(c, http.StatusOK, orders, total, p.Page, p.PageSize, pagination.TotalPages(p, total))
}

func (h *Handler) GetOrder(c *gin.Context) {
	clientID := c.GetInt64(middleware.CtxClientID)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order ID")
		return
	}

	o, err := h.service.GetOrder(c.Request.Context(), clientID, orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": o})
}

func (h *Handler) CancelOrder(c *gin.Context) {
	clientID := c.GetInt64(middleware.CtxClientID)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order ID")
		return
	}

	o, err := h.service.CancelOrder(c.Request.Context(), clientID, orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": o})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingShippingInfo):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrCartEmpty):
		response.Error(c, http.StatusBadRequest, "CART_EMPTY", "Cart is empty")
	case errors.Is(err, ErrClientNotApproved):
		response.Error(c, http.StatusForbidden, "CLIENT_NOT_APPROVED", "Account must be approved before ordering")
	case errors.Is(err, ErrInsufficientStock):
		response.Error(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, ErrProductUnavailable), errors.Is(err, ErrVariantUnavailable), errors.Is(err, ErrInvalidCustomization):
		response.Error(c, http.StatusConflict, "ITEM_UNAVAILABLE", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	case errors.Is(err, ErrNotCancellable):
		response.Error(c, http.StatusConflict, "NOT_CANCELLABLE", "Order can no longer be cancelled")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Order operation failed")
	}
}
