package stock

import (
	"context"
	"errors"

	"b2bportal/internal/domain"
	"b2bportal/internal/events"

	"gorm.io/gorm"
)

type Service struct {
	variants VariantRepositoryInterface
	db       *gorm.DB
	events   Publisher
}

func NewService(variants VariantRepositoryInterface, db *gorm.DB, publisher Publisher) *Service {
	return &Service{variants: variants, db: db, events: publisher}
}

// UpdateStock applies a manual ledger mutation under a row lock so it cannot
// race a concurrent checkout. Subtracting below zero clamps to zero rather
// than failing; receiving counts are corrections, not reservations.
func (s *Service) UpdateStock(ctx context.Context, variantID int64, operation string, quantity int) (*domain.ProductVariant, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	switch operation {
	case OpSet, OpAdd, OpSubtract:
	default:
		return nil, ErrInvalidOperation
	}

	var variant *domain.ProductVariant

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := s.variants.GetByIDForUpdate(tx, variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVariantNotFound
			}
			return err
		}

		next := v.StockQuantity
		switch operation {
		case OpSet:
			next = quantity
		case OpAdd:
			next += quantity
		case OpSubtract:
			next -= quantity
			if next < 0 {
				next = 0
			}
		}

		if err := s.variants.UpdateStockTx(tx, v.ID, next); err != nil {
			return err
		}
		v.StockQuantity = next
		variant = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil && variant.StockQuantity <= variant.LowStockThreshold {
		s.events.Broadcast(events.TypeLowStock, events.LowStockPayload{
			VariantID: variant.ID,
			SKU:       variant.SKU,
			Remaining: variant.StockQuantity,
			Threshold: variant.LowStockThreshold,
		})
	}

	return variant, nil
}

// LowStockReport lists active variants at or under their threshold, most
// depleted first.
func (s *Service) LowStockReport(ctx context.Context) ([]Alert, error) {
	variants, err := s.variants.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(variants))
	for i := range variants {
		v := &variants[i]
		alerts = append(alerts, Alert{
			VariantID:     v.ID,
			ProductID:     v.ProductID,
			SKU:           v.SKU,
			Name:          v.Name,
			StockQuantity: v.StockQuantity,
			Threshold:     v.LowStockThreshold,
			StockLevel:    v.StockLevel(),
		})
	}
	return alerts, nil
}
