package admin

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"b2bportal/internal/domain"
	"b2bportal/internal/pkg/password"
	"b2bportal/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	admins     AdminRepositoryInterface
	sessions   SessionRepositoryInterface
	clients    ClientRepositoryInterface
	categories CategoryRepositoryInterface
	products   ProductRepositoryInterface
	variants   VariantRepositoryInterface
	orders     OrderStatsInterface
	sessionTTL time.Duration
}

func NewService(
	admins AdminRepositoryInterface,
	sessions SessionRepositoryInterface,
	clients ClientRepositoryInterface,
	categories CategoryRepositoryInterface,
	products ProductRepositoryInterface,
	variants VariantRepositoryInterface,
	orders OrderStatsInterface,
	sessionTTL time.Duration,
) *Service {
	return &Service{
		admins:     admins,
		sessions:   sessions,
		clients:    clients,
		categories: categories,
		products:   products,
		variants:   variants,
		orders:     orders,
		sessionTTL: sessionTTL,
	}
}

// Login authenticates an operator and opens a back-office session. Disabled
// accounts are rejected after the password check so the two failures are not
// distinguishable by timing.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Admin, string, error) {
	admin, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !password.Verify(req.Password, admin.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, "", ErrAccountDisabled
	}

	token, err := generateOpaqueToken()
	if err != nil {
		return nil, "", err
	}

	session := &domain.Session{
		UserID:    admin.ID,
		UserType:  domain.UserTypeAdmin,
		TokenHash: password.HashToken(token),
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByTokenHash(ctx, password.HashToken(token))
}

func (s *Service) GetCurrentAdmin(ctx context.Context, adminID int64) (*domain.Admin, error) {
	return s.admins.GetByID(ctx, adminID)
}

func (s *Service) ListClients(ctx context.Context, status string, limit, offset int) ([]domain.Client, int64, error) {
	return s.clients.List(ctx, status, limit, offset)
}

// UpdateClientStatus moves a client between pending, approved and suspended.
// Suspension revokes every live session so the lockout is immediate.
func (s *Service) UpdateClientStatus(ctx context.Context, clientID int64, status domain.ClientStatus) (*domain.Client, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.clients.UpdateStatus(ctx, clientID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	if status == domain.ClientSuspended {
		if err := s.sessions.DeleteByUser(ctx, clientID, domain.UserTypeClient); err != nil {
			return nil, err
		}
	}

	return s.clients.GetByID(ctx, clientID)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.GetAll(ctx, false)
}

func (s *Service) CreateCategory(ctx context.Context, req CategoryRequest) (*domain.Category, error) {
	c := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	c.Name = req.Name
	c.Description = req.Description
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory deactivates; order history keeps referencing the row.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	err := s.categories.SetActive(ctx, id, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

// ListProducts is the back-office view: inactive products are included.
func (s *Service) ListProducts(ctx context.Context, categoryID int64, search string, limit, offset int) ([]domain.Product, int64, error) {
	f := repository.ProductFilters{
		CategoryID: categoryID,
		Search:     strings.ToLower(strings.TrimSpace(search)),
	}
	return s.products.List(ctx, f, limit, offset)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	variants, err := s.variants.GetByProductID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return p, nil
}

func (s *Service) CreateProduct(ctx context.Context, req ProductRequest) (*domain.Product, error) {
	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if err := validateCustomizationOptions(req.CustomizationOptions); err != nil {
		return nil, err
	}

	p := &domain.Product{
		CategoryID:           req.CategoryID,
		Name:                 req.Name,
		Description:          req.Description,
		BasePrice:            req.BasePrice,
		MinOrderQuantity:     req.MinOrderQuantity,
		IsCustomizable:       req.IsCustomizable,
		CustomizationOptions: req.CustomizationOptions,
		IsActive:             true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if err := validateCustomizationOptions(req.CustomizationOptions); err != nil {
		return nil, err
	}

	p.CategoryID = req.CategoryID
	p.Name = req.Name
	p.Description = req.Description
	p.BasePrice = req.BasePrice
	p.MinOrderQuantity = req.MinOrderQuantity
	p.IsCustomizable = req.IsCustomizable
	p.CustomizationOptions = req.CustomizationOptions
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	err := s.products.SetActive(ctx, id, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return err
}

func (s *Service) CreateVariant(ctx context.Context, productID int64, req VariantRequest) (*domain.ProductVariant, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	v := &domain.ProductVariant{
		ProductID:         productID,
		SKU:               req.SKU,
		Name:              req.Name,
		Price:             req.Price,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		IsActive:          true,
	}
	if err := s.variants.Create(ctx, v); err != nil {
		if isUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSKUExists
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) UpdateVariant(ctx context.Context, id int64, req VariantRequest) (*domain.ProductVariant, error) {
	v, err := s.variants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	v.SKU = req.SKU
	v.Name = req.Name
	v.Price = req.Price
	v.StockQuantity = req.StockQuantity
	v.LowStockThreshold = req.LowStockThreshold
	if err := s.variants.Update(ctx, v); err != nil {
		if isUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSKUExists
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) DeleteVariant(ctx context.Context, id int64) error {
	err := s.variants.SetActive(ctx, id, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrVariantNotFound
	}
	return err
}

// Dashboard aggregates the landing-page counters in one round trip per store.
func (s *Service) Dashboard(ctx context.Context, adminsOnline int) (*Dashboard, error) {
	clientCounts, err := s.clients.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	orderCounts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.SumPaidRevenue(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.variants.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		ClientsByStatus: clientCounts,
		OrdersByStatus:  orderCounts,
		PaidRevenue:     revenue,
		LowStockCount:   lowStock,
		AdminsOnline:    adminsOnline,
	}, nil
}

// validateCustomizationOptions accepts empty input or a JSON object keyed by
// sizes/positions maps.
func validateCustomizationOptions(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var v struct {
		Sizes     map[string]float64 `json:"sizes"`
		Positions map[string]float64 `json:"positions"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ErrInvalidPayload
	}
	return nil
}

func generateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
