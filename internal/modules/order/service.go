package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"b2bportal/internal/domain"
	"b2bportal/internal/events"
	"b2bportal/internal/pkg/validator"
	"b2bportal/internal/pricing"
	"b2bportal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	orders   OrderRepositoryInterface
	carts    CartRepositoryInterface
	products ProductRepositoryInterface
	variants VariantRepositoryInterface
	clients  ClientRepositoryInterface
	db       *gorm.DB
	events   Publisher
}

func NewService(
	orders OrderRepositoryInterface,
	carts CartRepositoryInterface,
	products ProductRepositoryInterface,
	variants VariantRepositoryInterface,
	clients ClientRepositoryInterface,
	db *gorm.DB,
	publisher Publisher,
) *Service {
	return &Service{
		orders:   orders,
		carts:    carts,
		products: products,
		variants: variants,
		clients:  clients,
		db:       db,
		events:   publisher,
	}
}

// CreateOrder turns the client's cart into an order. Stock decrements, order
// rows and the cart clear all commit in one transaction; a failed line rolls
// everything back. Prices and names are snapshotted into the order items.
func (s *Service) CreateOrder(ctx context.Context, clientID int64, req CreateOrderRequest) (*domain.Order, error) {
	if violations := validator.Validate(req); violations != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingShippingInfo, validator.Describe(violations))
	}

	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.Status != domain.ClientApproved {
		return nil, ErrClientNotApproved
	}

	cart, err := s.carts.GetOrCreate(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	var (
		order     *domain.Order
		lowStocks []events.LowStockPayload
	)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := make([]domain.OrderItem, 0, len(cart.Items))
		lines := make([]pricing.Line, 0, len(cart.Items))

		for _, ci := range cart.Items {
			product, err := s.products.GetByID(ctx, ci.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductUnavailable
				}
				return err
			}
			if !product.IsActive {
				return fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
			}

			var variant *domain.ProductVariant
			if ci.VariantID != nil {
				variant, err = s.variants.GetByIDForUpdate(tx, *ci.VariantID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrVariantUnavailable
					}
					return err
				}
				if !variant.IsActive {
					return fmt.Errorf("%w: %s", ErrVariantUnavailable, variant.SKU)
				}
				if variant.StockQuantity < ci.Quantity {
					return fmt.Errorf("%w: %s has %d left, %d requested",
						ErrInsufficientStock, variant.SKU, variant.StockQuantity, ci.Quantity)
				}

				remaining := variant.StockQuantity - ci.Quantity
				if err := s.variants.UpdateStockTx(tx, variant.ID, remaining); err != nil {
					return err
				}
				if remaining <= variant.LowStockThreshold {
					lowStocks = append(lowStocks, events.LowStockPayload{
						VariantID: variant.ID,
						SKU:       variant.SKU,
						Remaining: remaining,
						Threshold: variant.LowStockThreshold,
					})
				}
			}

			unitPrice, ok := pricing.UnitPrice(product, variant, ci.LogoSize, ci.LogoPosition)
			if !ok {
				return fmt.Errorf("%w: %s", ErrInvalidCustomization, product.Name)
			}

			item := domain.OrderItem{
				ProductID:    ci.ProductID,
				VariantID:    ci.VariantID,
				ProductName:  product.Name,
				LogoSize:     ci.LogoSize,
				LogoPosition: ci.LogoPosition,
				Quantity:     ci.Quantity,
				UnitPrice:    unitPrice,
				TotalPrice:   unitPrice * float64(ci.Quantity),
			}
			if variant != nil {
				item.VariantName = variant.Name
			}

			items = append(items, item)
			lines = append(lines, pricing.Line{UnitPrice: unitPrice, Quantity: ci.Quantity})
		}

		quote := pricing.QuoteFor(lines, 0)

		order = &domain.Order{
			OrderNumber:    newOrderNumber(),
			ClientID:       clientID,
			Status:         domain.OrderPending,
			PaymentStatus:  domain.PaymentPending,
			Subtotal:       quote.Subtotal,
			TaxAmount:      quote.Tax,
			ShippingAmount: quote.Shipping,
			DiscountAmount: quote.Discount,
			TotalAmount:    quote.Total,
			ShippingName:   req.ShippingName,
			ShippingPhone:  req.ShippingPhone,
			ShippingAddr:   req.ShippingAddr,
			Notes:          req.Notes,
			Items:          items,
		}
		if err := s.orders.CreateTx(tx, order); err != nil {
			return err
		}

		return s.carts.ClearTx(tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Broadcast(events.TypeOrderCreated, events.OrderCreatedPayload{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			ClientID:    order.ClientID,
			TotalAmount: order.TotalAmount,
			ItemCount:   len(order.Items),
		})
		for _, p := range lowStocks {
			s.events.Broadcast(events.TypeLowStock, p)
		}
	}

	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, clientID int64, status string, limit, offset int) ([]domain.Order, int64, error) {
	f := orderFilters(clientID, status)
	return s.orders.List(ctx, f, limit, offset)
}

// GetOrder hides other clients' orders behind not-found so order IDs cannot
// be enumerated.
func (s *Service) GetOrder(ctx context.Context, clientID, orderID int64) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.ClientID != clientID {
		return nil, ErrNotFound
	}
	return o, nil
}

// CancelOrder lets a client cancel their own order while it is still pending.
// Once an admin confirms it, cancellation goes through the back office.
func (s *Service) CancelOrder(ctx context.Context, clientID, orderID int64) (*domain.Order, error) {
	o, err := s.GetOrder(ctx, clientID, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OrderPending {
		return nil, ErrNotCancellable
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderCancelled); err != nil {
		return nil, err
	}
	o.Status = domain.OrderCancelled
	return o, nil
}

func (s *Service) AdminListOrders(ctx context.Context, clientID int64, status string, limit, offset int) ([]domain.Order, int64, error) {
	return s.orders.List(ctx, orderFilters(clientID, status), limit, offset)
}

func (s *Service) AdminGetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// UpdateStatus moves an order along the fulfilment chain. Skipping steps and
// reviving delivered or cancelled orders are rejected.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, next domain.OrderStatus) (*domain.Order, error) {
	o, err := s.AdminGetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, next)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	o.Status = next
	return o, nil
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, orderID int64, next domain.PaymentStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, ErrInvalidPaymentStatus
	}

	o, err := s.AdminGetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orders.UpdatePaymentStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	o.PaymentStatus = next
	return o, nil
}

// ApplyDiscount sets a manual discount and recomputes the total. The discount
// may not exceed what the order would otherwise cost.
func (s *Service) ApplyDiscount(ctx context.Context, orderID int64, discount float64) (*domain.Order, error) {
	o, err := s.AdminGetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	gross := o.Subtotal + o.TaxAmount + o.ShippingAmount
	if discount < 0 || discount > gross {
		return nil, ErrInvalidDiscount
	}

	total := gross - discount
	if err := s.orders.UpdateDiscount(ctx, orderID, discount, total); err != nil {
		return nil, err
	}
	o.DiscountAmount = discount
	o.TotalAmount = total
	return o, nil
}

func orderFilters(clientID int64, status string) repository.OrderFilters {
	return repository.OrderFilters{ClientID: clientID, Status: status}
}

// newOrderNumber builds a human-quotable reference like ORD-20260901-3FA2C1.
// Uniqueness is enforced by the database index; the random suffix makes
// collisions within a day vanishingly unlikely.
func newOrderNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
