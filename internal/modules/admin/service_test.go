package admin

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"b2bportal/internal/domain"
	"b2bportal/internal/pkg/password"
	"b2bportal/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *MockAdminRepository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, s *domain.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteByTokenHash(ctx context.Context, hash string) error {
	args := m.Called(ctx, hash)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteByUser(ctx context.Context, userID int64, userType domain.UserType) error {
	args := m.Called(ctx, userID, userType)
	return args.Error(0)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.Client, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Client), args.Get(1).(int64), args.Error(2)
}

func (m *MockClientRepository) UpdateStatus(ctx context.Context, id int64, status domain.ClientStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockClientRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetAll(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, f repository.ProductFilters, limit, offset int) ([]domain.Product, int64, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) Create(ctx context.Context, v *domain.ProductVariant) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVariantRepository) GetByID(ctx context.Context, id int64) (*domain.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) GetByProductID(ctx context.Context, productID int64, activeOnly bool) ([]domain.ProductVariant, error) {
	args := m.Called(ctx, productID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) Update(ctx context.Context, v *domain.ProductVariant) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVariantRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockVariantRepository) CountLowStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderStats struct {
	mock.Mock
}

func (m *MockOrderStats) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockOrderStats) SumPaidRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

type mocks struct {
	admins     *MockAdminRepository
	sessions   *MockSessionRepository
	clients    *MockClientRepository
	categories *MockCategoryRepository
	products   *MockProductRepository
	variants   *MockVariantRepository
	orders     *MockOrderStats
}

func newService() (*Service, *mocks) {
	m := &mocks{
		admins:     new(MockAdminRepository),
		sessions:   new(MockSessionRepository),
		clients:    new(MockClientRepository),
		categories: new(MockCategoryRepository),
		products:   new(MockProductRepository),
		variants:   new(MockVariantRepository),
		orders:     new(MockOrderStats),
	}
	svc := NewService(m.admins, m.sessions, m.clients, m.categories, m.products, m.variants, m.orders, 24*time.Hour)
	return svc, m
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	svc, m := newService()

	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	m.admins.On("GetByEmail", ctx, "ops@portal.test").Return(&domain.Admin{
		ID: 1, Email: "ops@portal.test", PasswordHash: hash, Role: domain.RoleManager, IsActive: true,
	}, nil)
	m.sessions.On("Create", ctx, mock.AnythingOfType("*domain.Session")).Return(nil)

	admin, token, err := svc.Login(ctx, LoginRequest{Email: "ops@portal.test", Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(1), admin.ID)

	session := m.sessions.Calls[0].Arguments.Get(1).(*domain.Session)
	assert.Equal(t, domain.UserTypeAdmin, session.UserType)
	assert.NotEqual(t, token, session.TokenHash)
}

func TestLogin_DisabledAccount(t *testing.T) {
	ctx := context.Background()
	svc, m := newService()

	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	m.admins.On("GetByEmail", ctx, "gone@portal.test").Return(&domain.Admin{
		ID: 2, PasswordHash: hash, IsActive: false,
	}, nil)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "gone@portal.test", Password: "secret123"})

	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, m := newService()

	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	m.admins.On("GetByEmail", ctx, "ops@portal.test").Return(&domain.Admin{
		ID: 1, PasswordHash: hash, IsActive: true,
	}, nil)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "ops@portal.test", Password: "nope"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateClientStatus_SuspensionRevokesSessions(t *testing.T) {
	ctx := context.Background()
	svc, m := newService()

	m.clients.On("UpdateStatus", ctx, int64(7), domain.ClientSuspended).Return(nil)
	m.sessions.On("DeleteByUser", ctx, int64(7), domain.UserTypeClient).Return(nil)
	m.clients.On("GetByID", ctx, int64(7)).Return(&domain.Client{ID: 7, Status: domain.ClientSuspended}, nil)

	client, err := svc.UpdateClientStatus(ctx, 7, domain.ClientSuspended)

	require.NoError(t, err)
	assert.Equal(t, domain.ClientSuspended, client.Status)
	m.sessions.AssertCalled(t, "DeleteByUser", ctx, int64(7), domain.UserTypeClient)
}

func TestUpdateClientStatus_ApprovalKeepsSessions(t *testing.T) {
	ctx := context.Background()
	svc, m := newService()

	m.clients.On("UpdateStatus", ctx, int64(7), domain.ClientApproved).Return(nil)
	m.clients.On("GetByID", ctx, int64(7)).Return(&domain.Client{ID: 7, Status: domain.ClientApproved}, nil)

	_, err := svc.UpdateClientStatus(ctx, 7, domain.ClientApproved)

	require.NoError(t, err)
	m.sessions.AssertNotCalled(t, "DeleteByUser", ctx, int64(7), domain.UserTypeClient)
}

func TestUpdateClientStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newService()

	_, err := svc.UpdateClientStatus(context.Background(), 7, domain.ClientStatus("banned"))

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateClientStatus_MissingClient(t *testing.T) {
	ctx := context.Background()
	svc, m := newService()

	m.clients.On("UpdateStatus", ctx, int64(404), domain.ClientApproved).Return(gorm.ErrRecordNotFound)

	_, err := svc.UpdateClientStatus(ctx, 404, domain.ClientApproved)

	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestCreateProduct_RejectsMalformedCustomization(t *testing.T) {
	ctx := context.Background()
	svc, m := newService()

	m.categories.On("GetByID", ctx, int64(1)).Return(&domain.Category{ID: 1, IsActive: true}, nil)

	_, err := svc.CreateProduct(ctx, ProductRequest{
		CategoryID:           1,
		Name:                 "Mug",
		BasePrice:            250,
		MinOrderQuantity:     1,
		IsCustomizable:       true,
		CustomizationOptions: json.RawMessage(`"not an object"`),
	})

	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	svc, m := newService()

	m.categories.On("GetByID", ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateProduct(ctx, ProductRequest{CategoryID: 99, Name: "Mug", BasePrice: 250, MinOrderQuantity: 1})

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateVariant_DuplicateSKU(t *testing.T) {
	ctx := context.Background()
	svc, m := newService()

	m.products.On("GetByID", ctx, int64(1)).Return(&domain.Product{ID: 1, IsActive: true}, nil)
	m.variants.On("Create", ctx, mock.AnythingOfType("*domain.ProductVariant")).
		Return(&pgconn.PgError{Code: "23505"})

	_, err := svc.CreateVariant(ctx, 1, VariantRequest{SKU: "MUG-WH-330", Name: "White", Price: 250})

	assert.ErrorIs(t, err, ErrSKUExists)
}

func TestDashboard_AggregatesCounters(t *testing.T) {
	ctx := context.Background()
	svc, m := newService()

	m.clients.On("CountByStatus", ctx).Return(map[string]int64{"pending": 3, "approved": 12}, nil)
	m.orders.On("CountByStatus", ctx).Return(map[string]int64{"pending": 4, "delivered": 20}, nil)
	m.orders.On("SumPaidRevenue", ctx).Return(125000.0, nil)
	m.variants.On("CountLowStock", ctx).Return(int64(2), nil)

	d, err := svc.Dashboard(ctx, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), d.ClientsByStatus["pending"])
	assert.Equal(t, int64(20), d.OrdersByStatus["delivered"])
	assert.Equal(t, 125000.0, d.PaidRevenue)
	assert.Equal(t, int64(2), d.LowStockCount)
	assert.Equal(t, 3, d.AdminsOnline)
}
