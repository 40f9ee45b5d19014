package cart

import (
	"context"
	"testing"

	"b2bportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetOrCreate(ctx context.Context, clientID int64) (*domain.Cart, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartRepository) AddItem(ctx context.Context, i *domain.CartItem) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockCartRepository) GetItem(ctx context.Context, itemID int64) (*domain.CartItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) GetByID(ctx context.Context, id int64) (*domain.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductVariant), args.Error(1)
}

func activeProduct() *domain.Product {
	return &domain.Product{
		ID:               1,
		Name:             "Tote Bag",
		BasePrice:        300,
		MinOrderQuantity: 10,
		IsCustomizable:   true,
		IsActive:         true,
	}
}

func TestAddItem_MergesSameLine(t *testing.T) {
	ctx := context.Background()

	products := new(MockProductRepository)
	products.On("GetByID", ctx, int64(1)).Return(activeProduct(), nil)

	carts := new(MockCartRepository)
	carts.On("GetOrCreate", ctx, int64(7)).Return(&domain.Cart{
		ID:       3,
		ClientID: 7,
		Items: []domain.CartItem{
			{ID: 42, CartID: 3, ProductID: 1, Quantity: 10, LogoSize: "medium", LogoPosition: "center"},
		},
	}, nil)
	carts.On("UpdateItemQuantity", ctx, int64(42), 25).Return(nil)

	svc := NewService(carts, products, new(MockVariantRepository))

	_, err := svc.AddItem(ctx, 7, AddItemRequest{
		ProductID:    1,
		Quantity:     15,
		LogoSize:     "medium",
		LogoPosition: "center",
	})

	assert.NoError(t, err)
	carts.AssertCalled(t, "UpdateItemQuantity", ctx, int64(42), 25)
	carts.AssertNotCalled(t, "AddItem", ctx, mock.Anything)
}

func TestAddItem_DifferentCustomizationIsNewLine(t *testing.T) {
	ctx := context.Background()

	products := new(MockProductRepository)
	products.On("GetByID", ctx, int64(1)).Return(activeProduct(), nil)

	carts := new(MockCartRepository)
	carts.On("GetOrCreate", ctx, int64(7)).Return(&domain.Cart{
		ID:       3,
		ClientID: 7,
		Items: []domain.CartItem{
			{ID: 42, CartID: 3, ProductID: 1, Quantity: 10, LogoSize: "medium", LogoPosition: "center"},
		},
	}, nil)
	carts.On("AddItem", ctx, mock.AnythingOfType("*domain.CartItem")).Return(nil)

	svc := NewService(carts, products, new(MockVariantRepository))

	_, err := svc.AddItem(ctx, 7, AddItemRequest{
		ProductID:    1,
		Quantity:     10,
		LogoSize:     "large",
		LogoPosition: "center",
	})

	assert.NoError(t, err)
	carts.AssertCalled(t, "AddItem", ctx, mock.AnythingOfType("*domain.CartItem"))
}

func TestAddItem_BelowMinQuantity(t *testing.T) {
	ctx := context.Background()

	products := new(MockProductRepository)
	products.On("GetByID", ctx, int64(1)).Return(activeProduct(), nil)

	svc := NewService(new(MockCartRepository), products, new(MockVariantRepository))

	_, err := svc.AddItem(ctx, 7, AddItemRequest{ProductID: 1, Quantity: 5})

	assert.ErrorIs(t, err, ErrBelowMinQuantity)
}

func TestAddItem_InactiveProductRejected(t *testing.T) {
	ctx := context.Background()

	products := new(MockProductRepository)
	products.On("GetByID", ctx, int64(2)).Return(&domain.Product{ID: 2, IsActive: false}, nil)

	svc := NewService(new(MockCartRepository), products, new(MockVariantRepository))

	_, err := svc.AddItem(ctx, 7, AddItemRequest{ProductID: 2, Quantity: 1})

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddItem_VariantMismatch(t *testing.T) {
	ctx := context.Background()

	products := new(MockProductRepository)
	products.On("GetByID", ctx, int64(1)).Return(activeProduct(), nil)

	variants := new(MockVariantRepository)
	variants.On("GetByID", ctx, int64(9)).Return(&domain.ProductVariant{ID: 9, ProductID: 99, IsActive: true}, nil)

	svc := NewService(new(MockCartRepository), products, variants)

	variantID := int64(9)
	_, err := svc.AddItem(ctx, 7, AddItemRequest{ProductID: 1, VariantID: &variantID, Quantity: 10})

	assert.ErrorIs(t, err, ErrVariantMismatch)
}

func TestAddItem_CustomizationRequiresCustomizableProduct(t *testing.T) {
	ctx := context.Background()

	plain := activeProduct()
	plain.IsCustomizable = false

	products := new(MockProductRepository)
	products.On("GetByID", ctx, int64(1)).Return(plain, nil)

	svc := NewService(new(MockCartRepository), products, new(MockVariantRepository))

	_, err := svc.AddItem(ctx, 7, AddItemRequest{ProductID: 1, Quantity: 10, LogoSize: "small"})

	assert.ErrorIs(t, err, ErrNotCustomizable)
}

func TestAddItem_UnknownCustomizationKey(t *testing.T) {
	ctx := context.Background()

	products := new(MockProductRepository)
	products.On("GetByID", ctx, int64(1)).Return(activeProduct(), nil)

	svc := NewService(new(MockCartRepository), products, new(MockVariantRepository))

	_, err := svc.AddItem(ctx, 7, AddItemRequest{ProductID: 1, Quantity: 10, LogoSize: "gigantic"})

	assert.ErrorIs(t, err, ErrUnknownCustomization)
}

func TestGetCart_SummaryMatchesLineMath(t *testing.T) {
	ctx := context.Background()

	products := new(MockProductRepository)
	products.On("GetByID", ctx, int64(1)).Return(activeProduct(), nil)

	variantID := int64(5)
	variants := new(MockVariantRepository)
	variants.On("GetByID", ctx, variantID).Return(&domain.ProductVariant{
		ID: 5, ProductID: 1, Name: "Navy / L", SKU: "TOTE-NV-L", Price: 350, IsActive: true,
	}, nil)

	carts := new(MockCartRepository)
	carts.On("GetOrCreate", ctx, int64(7)).Return(&domain.Cart{
		ID:       3,
		ClientID: 7,
		Items: []domain.CartItem{
			// variant price 350 + medium 100 = 450 each
			{ID: 1, CartID: 3, ProductID: 1, VariantID: &variantID, Quantity: 10, LogoSize: "medium"},
			// base price 300, no customization
			{ID: 2, CartID: 3, ProductID: 1, Quantity: 2},
		},
	}, nil)

	svc := NewService(carts, products, variants)

	view, err := svc.GetCart(ctx, 7)

	assert.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 450.0, view.Items[0].UnitPrice)
	assert.Equal(t, 4500.0, view.Items[0].LineTotal)
	assert.Equal(t, 300.0, view.Items[1].UnitPrice)
	assert.Equal(t, 5100.0, view.Summary.Subtotal)
	assert.Equal(t, 918.0, view.Summary.Tax)
	assert.Equal(t, 500.0, view.Summary.Shipping)
	assert.Equal(t, 6518.0, view.Summary.Total)
}

func TestRemoveItem_ForeignItemHidden(t *testing.T) {
	ctx := context.Background()

	carts := new(MockCartRepository)
	carts.On("GetItem", ctx, int64(42)).Return(&domain.CartItem{ID: 42, CartID: 99}, nil)
	carts.On("GetOrCreate", ctx, int64(7)).Return(&domain.Cart{ID: 3, ClientID: 7}, nil)

	svc := NewService(carts, new(MockProductRepository), new(MockVariantRepository))

	_, err := svc.RemoveItem(ctx, 7, 42)

	assert.ErrorIs(t, err, ErrItemNotFound)
	carts.AssertNotCalled(t, "DeleteItem", ctx, int64(42))
}

func TestUpdateItemQuantity_MissingItem(t *testing.T) {
	ctx := context.Background()

	carts := new(MockCartRepository)
	carts.On("GetItem", ctx, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(carts, new(MockProductRepository), new(MockVariantRepository))

	_, err := svc.UpdateItemQuantity(ctx, 7, 404, 20)

	assert.ErrorIs(t, err, ErrItemNotFound)
}
