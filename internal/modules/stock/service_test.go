package stock

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"b2bportal/internal/database"
	"b2bportal/internal/domain"
	"b2bportal/internal/events"
	"b2bportal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published []events.LowStockPayload
}

func (f *fakePublisher) Broadcast(eventType string, payload interface{}) {
	if p, ok := payload.(events.LowStockPayload); ok {
		f.published = append(f.published, p)
	}
}

func newService(t *testing.T) (*Service, *repository.VariantRepository, *fakePublisher) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	variants := repository.NewVariantRepository(db)
	pub := &fakePublisher{}
	return NewService(variants, db, pub), variants, pub
}

func seedVariant(t *testing.T, variants *repository.VariantRepository, stock, threshold int) *domain.ProductVariant {
	t.Helper()
	v := &domain.ProductVariant{
		ProductID:         1,
		SKU:               "MUG-WH-330",
		Name:              "White / 330ml",
		Price:             250,
		StockQuantity:     stock,
		LowStockThreshold: threshold,
		IsActive:          true,
	}
	require.NoError(t, variants.Create(context.Background(), v))
	return v
}

func TestUpdateStock_SubtractClampsAtZero(t *testing.T) {
	svc, variants, _ := newService(t)
	v := seedVariant(t, variants, 6, 2)

	got, err := svc.UpdateStock(context.Background(), v.ID, OpSubtract, 10)

	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
	assert.Equal(t, domain.StockOut, got.StockLevel())
}

func TestUpdateStock_SetIsIdempotent(t *testing.T) {
	svc, variants, _ := newService(t)
	v := seedVariant(t, variants, 6, 2)
	ctx := context.Background()

	first, err := svc.UpdateStock(ctx, v.ID, OpSet, 40)
	require.NoError(t, err)
	second, err := svc.UpdateStock(ctx, v.ID, OpSet, 40)
	require.NoError(t, err)

	assert.Equal(t, first.StockQuantity, second.StockQuantity)
	assert.Equal(t, 40, second.StockQuantity)
}

func TestUpdateStock_AddThenSubtractRestores(t *testing.T) {
	svc, variants, _ := newService(t)
	v := seedVariant(t, variants, 20, 2)
	ctx := context.Background()

	_, err := svc.UpdateStock(ctx, v.ID, OpAdd, 15)
	require.NoError(t, err)
	got, err := svc.UpdateStock(ctx, v.ID, OpSubtract, 15)
	require.NoError(t, err)

	assert.Equal(t, 20, got.StockQuantity)
}

func TestUpdateStock_UnknownVariant(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.UpdateStock(context.Background(), 404, OpSet, 10)

	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestUpdateStock_RejectsBadInput(t *testing.T) {
	svc, variants, _ := newService(t)
	v := seedVariant(t, variants, 6, 2)
	ctx := context.Background()

	_, err := svc.UpdateStock(ctx, v.ID, "increment", 10)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = svc.UpdateStock(ctx, v.ID, OpAdd, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateStock_AlertsWhenCrossingThreshold(t *testing.T) {
	svc, variants, pub := newService(t)
	v := seedVariant(t, variants, 20, 5)

	_, err := svc.UpdateStock(context.Background(), v.ID, OpSubtract, 17)

	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	assert.Equal(t, 3, pub.published[0].Remaining)
	assert.Equal(t, "MUG-WH-330", pub.published[0].SKU)
}

func TestLowStockReport_OnlyAtOrBelowThreshold(t *testing.T) {
	svc, variants, _ := newService(t)
	ctx := context.Background()

	healthy := &domain.ProductVariant{ProductID: 1, SKU: "A", StockQuantity: 50, LowStockThreshold: 5, IsActive: true}
	low := &domain.ProductVariant{ProductID: 1, SKU: "B", StockQuantity: 3, LowStockThreshold: 5, IsActive: true}
	out := &domain.ProductVariant{ProductID: 1, SKU: "C", StockQuantity: 0, LowStockThreshold: 5, IsActive: true}
	for _, v := range []*domain.ProductVariant{healthy, low, out} {
		require.NoError(t, variants.Create(ctx, v))
	}

	alerts, err := svc.LowStockReport(ctx)

	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "C", alerts[0].SKU)
	assert.Equal(t, domain.StockOut, alerts[0].StockLevel)
	assert.Equal(t, "B", alerts[1].SKU)
	assert.Equal(t, domain.StockLow, alerts[1].StockLevel)
}
