package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"b2bportal/internal/database"
	"b2bportal/internal/domain"
	"b2bportal/internal/events"
	"b2bportal/internal/middleware"
	"b2bportal/internal/modules/admin"
	"b2bportal/internal/modules/auth"
	"b2bportal/internal/modules/cart"
	"b2bportal/internal/modules/catalog"
	"b2bportal/internal/modules/order"
	"b2bportal/internal/modules/stock"
	"b2bportal/internal/pkg/password"
	"b2bportal/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Suite struct {
	router  *gin.Engine
	db      *gorm.DB
	variant *domain.ProductVariant
	product *domain.Product
}

func setupSuite(t *testing.T) *Suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	clientRepo := repository.NewClientRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	hub := events.NewHub()

	cookie := auth.CookieSettings{SameSite: http.SameSiteLaxMode, TTL: 168 * time.Hour}
	authService := auth.NewService(clientRepo, sessionRepo, resetRepo, cookie.TTL, time.Hour, "e2e-reset-secret")
	authHandler := auth.NewHandler(authService, cookie, true)

	catalogHandler := catalog.NewHandler(catalog.NewService(categoryRepo, productRepo, variantRepo))
	cartHandler := cart.NewHandler(cart.NewService(cartRepo, productRepo, variantRepo))

	orderService := order.NewService(orderRepo, cartRepo, productRepo, variantRepo, clientRepo, db, hub)
	orderHandler := order.NewHandler(orderService)

	stockHandler := stock.NewHandler(stock.NewService(variantRepo, db, hub))

	adminService := admin.NewService(adminRepo, sessionRepo, clientRepo,
		categoryRepo, productRepo, variantRepo, orderRepo, 24*time.Hour)
	adminHandler := admin.NewHandler(adminService, orderService, hub, admin.CookieSettings{
		SameSite: http.SameSiteLaxMode,
		TTL:      24 * time.Hour,
	})

	sessionAuth := middleware.NewSessionAuth(sessionRepo, clientRepo, adminRepo)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		adminHandler.RegisterPublicRoutes(v1)

		client := v1.Group("/")
		client.Use(sessionAuth.RequireClient())
		{
			authHandler.RegisterProtectedRoutes(client)
			cartHandler.RegisterRoutes(client)
			orderHandler.RegisterRoutes(client)
		}

		back := v1.Group("/admin")
		back.Use(sessionAuth.RequireAdmin())
		{
			adminHandler.RegisterProtectedRoutes(back)
			stockHandler.RegisterRoutes(back)
		}
	}

	s := &Suite{router: r, db: db}
	s.seed(t, adminRepo, categoryRepo, productRepo, variantRepo)
	return s
}

func (s *Suite) seed(
	t *testing.T,
	admins *repository.AdminRepository,
	categories *repository.CategoryRepository,
	products *repository.ProductRepository,
	variants *repository.VariantRepository,
) {
	t.Helper()
	ctx := context.Background()

	hash, err := password.Hash("admin123")
	require.NoError(t, err)
	require.NoError(t, admins.Create(ctx, &domain.Admin{
		Email:        "super@portal.test",
		PasswordHash: hash,
		Name:         "Super",
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
	}))

	category := &domain.Category{Name: "Bags", IsActive: true}
	require.NoError(t, categories.Create(ctx, category))

	s.product = &domain.Product{
		CategoryID:       category.ID,
		Name:             "Canvas Tote Bag",
		BasePrice:        300,
		MinOrderQuantity: 10,
		IsCustomizable:   true,
		IsActive:         true,
	}
	require.NoError(t, products.Create(ctx, s.product))

	s.variant = &domain.ProductVariant{
		ProductID:         s.product.ID,
		SKU:               "TOTE-NV-L",
		Name:              "Navy / Large",
		Price:             350,
		StockQuantity:     500,
		LowStockThreshold: 50,
		IsActive:          true,
	}
	require.NoError(t, variants.Create(ctx, s.variant))
}

func (s *Suite) do(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) (*httptest.ResponseRecorder, *TestResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, &resp
}

func sessionCookies(w *httptest.ResponseRecorder) []*http.Cookie {
	return w.Result().Cookies()
}

func registerAndApprove(t *testing.T, s *Suite, email string) (clientCookies, adminCookies []*http.Cookie) {
	t.Helper()

	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":          email,
		"password":       "client123",
		"company_name":   "ACME",
		"contact_person": "Dana",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	client := resp.Data["client"].(map[string]interface{})
	require.Equal(t, "pending", client["status"])
	clientID := int64(client["id"].(float64))

	w, _ = s.do(t, http.MethodPost, "/api/v1/admin/auth/login", gin.H{
		"email":    "super@portal.test",
		"password": "admin123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	adminCookies = sessionCookies(w)

	w, _ = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/clients/%d/status", clientID),
		gin.H{"status": "approved"}, adminCookies)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    email,
		"password": "client123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	clientCookies = sessionCookies(w)
	return clientCookies, adminCookies
}

func TestOrderJourney(t *testing.T) {
	s := setupSuite(t)
	clientCookies, adminCookies := registerAndApprove(t, s, "buyer@acme.test")

	// catalog is public
	w, resp := s.do(t, http.MethodGet, "/api/v1/products", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := resp.Data["data"].([]interface{})
	require.Len(t, page, 1)

	// 10 totes, navy variant, medium logo: (350+100)*10
	w, _ = s.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{
		"product_id": s.product.ID,
		"variant_id": s.variant.ID,
		"quantity":   10,
		"logo_size":  "medium",
	}, clientCookies)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/cart", nil, clientCookies)
	require.Equal(t, http.StatusOK, w.Code)
	summary := resp.Data["cart"].(map[string]interface{})["summary"].(map[string]interface{})
	assert.Equal(t, 4500.0, summary["subtotal"])
	assert.Equal(t, 810.0, summary["tax"])
	assert.Equal(t, 500.0, summary["shipping"])
	assert.Equal(t, 5810.0, summary["total"])

	w, resp = s.do(t, http.MethodPost, "/api/v1/orders", gin.H{
		"shipping_name":    "Dana",
		"shipping_phone":   "+7 700 000 0000",
		"shipping_address": "1 Warehouse Way",
	}, clientCookies)
	require.Equal(t, http.StatusCreated, w.Code)
	o := resp.Data["order"].(map[string]interface{})
	assert.Equal(t, 5810.0, o["total_amount"])
	assert.Equal(t, "pending", o["status"])
	orderID := int64(o["id"].(float64))

	// cart was cleared and stock decremented in the same transaction
	w, resp = s.do(t, http.MethodGet, "/api/v1/cart", nil, clientCookies)
	require.Equal(t, http.StatusOK, w.Code)
	items := resp.Data["cart"].(map[string]interface{})["items"].([]interface{})
	assert.Empty(t, items)

	w, resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", s.product.ID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	variants := resp.Data["product"].(map[string]interface{})["variants"].([]interface{})
	assert.Equal(t, 490.0, variants[0].(map[string]interface{})["stock_quantity"])

	// fulfilment moves through the back office
	w, _ = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/status", orderID),
		gin.H{"status": "confirmed"}, adminCookies)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/payment", orderID),
		gin.H{"payment_status": "paid"}, adminCookies)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/discount", orderID),
		gin.H{"discount": 300}, adminCookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5510.0, resp.Data["order"].(map[string]interface{})["total_amount"])

	// once confirmed, the client can no longer cancel
	w, resp = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", orderID), nil, clientCookies)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NOT_CANCELLABLE", resp.Error.Code)

	// skipping from confirmed straight to shipped is rejected
	w, resp = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/status", orderID),
		gin.H{"status": "shipped"}, adminCookies)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", resp.Error.Code)
}

func TestPendingClientCannotCheckout(t *testing.T) {
	s := setupSuite(t)

	w, _ := s.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":          "new@acme.test",
		"password":       "client123",
		"company_name":   "ACME",
		"contact_person": "Dana",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// pending clients may log in and browse
	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "new@acme.test",
		"password": "client123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := sessionCookies(w)

	w, _ = s.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{
		"product_id": s.product.ID,
		"quantity":   10,
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	// but not order
	w, resp := s.do(t, http.MethodPost, "/api/v1/orders", gin.H{
		"shipping_name":    "Dana",
		"shipping_phone":   "+7 700 000 0000",
		"shipping_address": "1 Warehouse Way",
	}, cookies)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "CLIENT_NOT_APPROVED", resp.Error.Code)
}

func TestSuspensionCutsOffLiveSession(t *testing.T) {
	s := setupSuite(t)
	clientCookies, adminCookies := registerAndApprove(t, s, "soon-gone@acme.test")

	w, resp := s.do(t, http.MethodGet, "/api/v1/admin/clients?status=approved", nil, adminCookies)
	require.Equal(t, http.StatusOK, w.Code)
	listed := resp.Data["data"].([]interface{})
	require.Len(t, listed, 1)
	clientID := int64(listed[0].(map[string]interface{})["id"].(float64))

	w, _ = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/clients/%d/status", clientID),
		gin.H{"status": "suspended"}, adminCookies)
	require.Equal(t, http.StatusOK, w.Code)

	// the old session cookie no longer works
	w, _ = s.do(t, http.MethodGet, "/api/v1/cart", nil, clientCookies)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// and a fresh login is refused outright
	w, resp = s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "soon-gone@acme.test",
		"password": "client123",
	}, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ACCOUNT_SUSPENDED", resp.Error.Code)
}

func TestAuthGates(t *testing.T) {
	s := setupSuite(t)

	w, _ := s.do(t, http.MethodGet, "/api/v1/cart", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/admin/orders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a client cookie does not open the back office
	clientCookies, _ := registerAndApprove(t, s, "buyer@acme.test")
	w, _ = s.do(t, http.MethodGet, "/api/v1/admin/orders", nil, clientCookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminStockEndpoints(t *testing.T) {
	s := setupSuite(t)
	_, adminCookies := registerAndApprove(t, s, "buyer@acme.test")

	w, resp := s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/variants/%d/stock", s.variant.ID),
		gin.H{"operation": "subtract", "quantity": 460}, adminCookies)
	require.Equal(t, http.StatusOK, w.Code)
	variant := resp.Data["variant"].(map[string]interface{})
	assert.Equal(t, 40.0, variant["stock_quantity"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/admin/stock/low", nil, adminCookies)
	require.Equal(t, http.StatusOK, w.Code)
	alerts := resp.Data["alerts"].([]interface{})
	require.Len(t, alerts, 1)
	assert.Equal(t, "TOTE-NV-L", alerts[0].(map[string]interface{})["sku"])
}
