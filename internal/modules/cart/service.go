package cart

import (
	"context"
	"errors"

	"b2bportal/internal/domain"
	"b2bportal/internal/pricing"

	"gorm.io/gorm"
)

type Service struct {
	carts    CartRepositoryInterface
	products ProductRepositoryInterface
	variants VariantRepositoryInterface
}

func NewService(
	carts CartRepositoryInterface,
	products ProductRepositoryInterface,
	variants VariantRepositoryInterface,
) *Service {
	return &Service{carts: carts, products: products, variants: variants}
}

// GetCart returns the client's cart with every line resolved and priced plus
// the money summary. The summary uses the same arithmetic as order creation.
func (s *Service) GetCart(ctx context.Context, clientID int64) (*View, error) {
	c, err := s.carts.GetOrCreate(ctx, clientID)
	if err != nil {
		return nil, err
	}

	view := &View{ID: c.ID, Items: make([]Line, 0, len(c.Items))}
	lines := make([]pricing.Line, 0, len(c.Items))

	for _, item := range c.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		var variant *domain.ProductVariant
		if item.VariantID != nil {
			variant, err = s.variants.GetByID(ctx, *item.VariantID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}

		unitPrice, ok := pricing.UnitPrice(product, variant, item.LogoSize, item.LogoPosition)
		if !ok {
			// A surcharge key that was valid at add time can go stale when an
			// admin edits the product's overrides. Price without it here;
			// checkout rejects the line.
			unitPrice, _ = pricing.UnitPrice(product, variant, "", "")
		}

		line := Line{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  product.Name,
			VariantID:    item.VariantID,
			Quantity:     item.Quantity,
			LogoSize:     item.LogoSize,
			LogoPosition: item.LogoPosition,
			UnitPrice:    unitPrice,
			LineTotal:    unitPrice * float64(item.Quantity),
		}
		if variant != nil {
			line.VariantName = variant.Name
			line.SKU = variant.SKU
		}

		view.Items = append(view.Items, line)
		lines = append(lines, pricing.Line{UnitPrice: unitPrice, Quantity: item.Quantity})
	}

	view.Summary = pricing.QuoteFor(lines, 0)
	return view, nil
}

// AddItem validates the line against the live catalog and either appends it or
// merges it into an existing line with the same product, variant and
// customization.
func (s *Service) AddItem(ctx context.Context, clientID int64, req AddItemRequest) (*View, error) {
	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}

	if req.Quantity < product.MinOrderQuantity {
		return nil, ErrBelowMinQuantity
	}

	if req.VariantID != nil {
		variant, err := s.variants.GetByID(ctx, *req.VariantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVariantNotFound
			}
			return nil, err
		}
		if !variant.IsActive {
			return nil, ErrVariantNotFound
		}
		if variant.ProductID != product.ID {
			return nil, ErrVariantMismatch
		}
	}

	if req.LogoSize != "" || req.LogoPosition != "" {
		if !product.IsCustomizable {
			return nil, ErrNotCustomizable
		}
		if _, ok := domain.CustomizationSurcharge(product.CustomizationOptions, req.LogoSize, req.LogoPosition); !ok {
			return nil, ErrUnknownCustomization
		}
	}

	c, err := s.carts.GetOrCreate(ctx, clientID)
	if err != nil {
		return nil, err
	}

	item := &domain.CartItem{
		CartID:       c.ID,
		ProductID:    req.ProductID,
		VariantID:    req.VariantID,
		Quantity:     req.Quantity,
		LogoSize:     req.LogoSize,
		LogoPosition: req.LogoPosition,
	}

	for i := range c.Items {
		if c.Items[i].SameLine(item) {
			if err := s.carts.UpdateItemQuantity(ctx, c.Items[i].ID, c.Items[i].Quantity+req.Quantity); err != nil {
				return nil, err
			}
			return s.GetCart(ctx, clientID)
		}
	}

	if err := s.carts.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, clientID)
}

func (s *Service) UpdateItemQuantity(ctx context.Context, clientID, itemID int64, quantity int) (*View, error) {
	item, err := s.ownedItem(ctx, clientID, itemID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, item.ProductID)
	if err == nil && quantity < product.MinOrderQuantity {
		return nil, ErrBelowMinQuantity
	}

	if err := s.carts.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, clientID)
}

func (s *Service) RemoveItem(ctx context.Context, clientID, itemID int64) (*View, error) {
	if _, err := s.ownedItem(ctx, clientID, itemID); err != nil {
		return nil, err
	}
	if err := s.carts.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, clientID)
}

func (s *Service) ClearCart(ctx context.Context, clientID int64) error {
	c, err := s.carts.GetOrCreate(ctx, clientID)
	if err != nil {
		return err
	}
	return s.carts.Clear(ctx, c.ID)
}

// ownedItem loads an item and verifies it belongs to the client's cart. A
// foreign item reads as not found so item IDs cannot be probed across clients.
func (s *Service) ownedItem(ctx context.Context, clientID, itemID int64) (*domain.CartItem, error) {
	item, err := s.carts.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	c, err := s.carts.GetOrCreate(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if item.CartID != c.ID {
		return nil, ErrItemNotFound
	}
	return item, nil
}
