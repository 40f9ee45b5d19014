package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"b2bportal/internal/domain"
	"b2bportal/internal/middleware"
	"b2bportal/internal/modules/order"
	"b2bportal/internal/pkg/pagination"
	"b2bportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CookieSettings controls how the admin session cookie is issued.
type CookieSettings struct {
	Secure   bool
	SameSite http.SameSite
	Domain   string
	TTL      time.Duration
}

// OnlineCounter reports how many back-office sessions hold a live event feed.
type OnlineCounter interface {
	OnlineCount() int
}

type Handler struct {
	service *Service
	orders  *order.Service
	online  OnlineCounter
	cookie  CookieSettings
}

func NewHandler(service *Service, orders *order.Service, online OnlineCounter, cookie CookieSettings) *Handler {
	return &Handler{service: service, orders: orders, online: online, cookie: cookie}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/admin/auth/login", h.Login)
}

// RegisterProtectedRoutes wires the back office under a group that already
// carries RequireAdmin. Client status and discounts additionally need an
// admin-level role; managers get read and fulfilment access only.
func (h *Handler) RegisterProtectedRoutes(admin *gin.RouterGroup) {
	admin.POST("/auth/logout", h.Logout)
	admin.GET("/auth/me", h.GetMe)

	admin.GET("/dashboard", h.GetDashboard)

	admin.GET("/clients", h.ListClients)
	admin.PATCH("/clients/:id/status",
		middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin), h.UpdateClientStatus)

	admin.GET("/categories", h.ListCategories)
	admin.POST("/categories", h.CreateCategory)
	admin.PUT("/categories/:id", h.UpdateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)

	admin.GET("/products", h.ListProducts)
	admin.GET("/products/:id", h.GetProduct)
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)

	admin.POST("/products/:id/variants", h.CreateVariant)
	admin.PUT("/variants/:id", h.UpdateVariant)
	admin.DELETE("/variants/:id", h.DeleteVariant)

	admin.GET("/orders", h.ListOrders)
	admin.GET("/orders/:id", h.GetOrder)
	admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	admin.PATCH("/orders/:id/payment", h.UpdateOrderPayment)
	admin.PATCH("/orders/:id/discount",
		middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin), h.ApplyOrderDiscount)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	admin, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	h.setSessionCookie(c, token, int(h.cookie.TTL.Seconds()))
	response.Success(c, http.StatusOK, gin.H{"admin": admin})
}

func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.AdminSessionCookie)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) GetMe(c *gin.Context) {
	adminID := c.GetInt64(middleware.CtxAdminID)

	admin, err := h.service.GetCurrentAdmin(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Admin not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"admin": admin})
}

func (h *Handler) GetDashboard(c *gin.Context) {
	online := 0
	if h.online != nil {
		online = h.online.OnlineCount()
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), online)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load dashboard")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dashboard": dashboard})
}

func (h *Handler) ListClients(c *gin.Context) {
	p := pagination.FromQuery(c)

	clients, total, err := h.service.ListClients(c.Request.Context(), c.Query("status"), p.PageSize, p.Offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load clients")
		return
	}
	response.Paginated(c, http.StatusOK, clients, total, p.Page, p.PageSize, pagination.TotalPages(p, total))
}

func (h *Handler) UpdateClientStatus(c *gin.Context) {
	clientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid client ID")
		return
	}

	var req UpdateClientStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	client, err := h.service.UpdateClientStatus(c.Request.Context(), clientID, domain.ClientStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"client": client})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load categories")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"category": category})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category ID")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": category})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category ID")
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Category deactivated"})
}

func (h *Handler) ListProducts(c *gin.Context) {
	p := pagination.FromQuery(c)
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)

	products, total, err := h.service.ListProducts(c.Request.Context(), categoryID, c.Query("search"), p.PageSize, p.Offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load products")
		return
	}
	response.Paginated(c, http.StatusOK, products, total, p.Page, p.PageSize, pagination.TotalPages(p, total))
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product ID")
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product ID")
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Product deactivated"})
}

func (h *Handler) CreateVariant(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product ID")
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	variant, err := h.service.CreateVariant(c.Request.Context(), productID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"variant": variant})
}

func (h *Handler) UpdateVariant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid variant ID")
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	variant, err := h.service.UpdateVariant(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"variant": variant})
}

func (h *Handler) DeleteVariant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid variant ID")
		return
	}

	if err := h.service.DeleteVariant(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Variant deactivated"})
}

func (h *Handler) ListOrders(c *gin.Context) {
	p := pagination.FromQuery(c)
	clientID, _ := strconv.ParseInt(c.Query("client_id"), 10, 64)

	orders, total, err := h.orders.AdminListOrders(c.Request.Context(), clientID, c.Query("status"), p.PageSize, p.Offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load orders")
		return
	}
	response.Paginated(c, http.StatusOK, orders, total, p.Page, p.PageSize, pagination.TotalPages(p, total))
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order ID")
		return
	}

	o, err := h.orders.AdminGetOrder(c.Request.Context(), id)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": o})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order ID")
		return
	}

	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": o})
}

func (h *Handler) UpdateOrderPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order ID")
		return
	}

	var req order.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.orders.UpdatePaymentStatus(c.Request.Context(), id, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": o})
}

func (h *Handler) ApplyOrderDiscount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order ID")
		return
	}

	var req order.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.orders.ApplyDiscount(c.Request.Context(), id, req.Discount)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": o})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrClientNotFound):
		response.Error(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Status must be pending, approved or suspended")
	case errors.Is(err, ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, ErrVariantNotFound):
		response.Error(c, http.StatusNotFound, "VARIANT_NOT_FOUND", "Variant not found")
	case errors.Is(err, ErrSKUExists):
		response.Error(c, http.StatusConflict, "SKU_EXISTS", "SKU is already in use")
	case errors.Is(err, ErrInvalidPayload):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Customization options must be a JSON object")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Operation failed")
	}
}

func (h *Handler) writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	case errors.Is(err, order.ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, order.ErrInvalidPaymentStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_PAYMENT_STATUS", "Unknown payment status")
	case errors.Is(err, order.ErrInvalidDiscount):
		response.Error(c, http.StatusBadRequest, "INVALID_DISCOUNT", "Discount must be between zero and the order total")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Operation failed")
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(middleware.AdminSessionCookie, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
