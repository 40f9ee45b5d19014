package catalog

import (
	"context"
	"errors"
	"strings"

	"b2bportal/internal/domain"
	"b2bportal/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	categories CategoryRepositoryInterface
	products   ProductRepositoryInterface
	variants   VariantRepositoryInterface
}

func NewService(
	categories CategoryRepositoryInterface,
	products ProductRepositoryInterface,
	variants VariantRepositoryInterface,
) *Service {
	return &Service{categories: categories, products: products, variants: variants}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.GetAll(ctx, true)
}

// ListProducts returns a page of active products. Search is a case-insensitive
// substring match on the name.
func (s *Service) ListProducts(ctx context.Context, categoryID int64, search string, limit, offset int) ([]domain.Product, int64, error) {
	f := repository.ProductFilters{
		CategoryID: categoryID,
		Search:     strings.ToLower(strings.TrimSpace(search)),
		ActiveOnly: true,
	}
	return s.products.List(ctx, f, limit, offset)
}

// GetProduct loads one active product with its active variants and their
// computed stock levels.
func (s *Service) GetProduct(ctx context.Context, id int64) (*ProductDetail, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrNotFound
	}

	variants, err := s.variants.GetByProductID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetail{
		ID:                   product.ID,
		CategoryID:           product.CategoryID,
		Name:                 product.Name,
		Description:          product.Description,
		BasePrice:            product.BasePrice,
		MinOrderQuantity:     product.MinOrderQuantity,
		IsCustomizable:       product.IsCustomizable,
		CustomizationOptions: product.CustomizationOptions,
		CreatedAt:            product.CreatedAt,
		Variants:             make([]VariantView, 0, len(variants)),
	}
	for _, v := range variants {
		detail.Variants = append(detail.Variants, toVariantView(v))
	}
	return detail, nil
}
