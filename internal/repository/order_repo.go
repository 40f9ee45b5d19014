package repository

import (
	"context"
	"time"

	"b2bportal/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	OrderNumber    string    `gorm:"column:order_number;uniqueIndex"`
	ClientID       int64     `gorm:"column:client_id;index"`
	Status         string    `gorm:"column:status"`
	PaymentStatus  string    `gorm:"column:payment_status"`
	Subtotal       float64   `gorm:"column:subtotal"`
	TaxAmount      float64   `gorm:"column:tax_amount"`
	ShippingAmount float64   `gorm:"column:shipping_amount"`
	DiscountAmount float64   `gorm:"column:discount_amount"`
	TotalAmount    float64   `gorm:"column:total_amount"`
	ShippingName   string    `gorm:"column:shipping_name"`
	ShippingPhone  string    `gorm:"column:shipping_phone"`
	ShippingAddr   string    `gorm:"column:shipping_address"`
	Notes          *string   `gorm:"column:notes"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (orderModel) TableName() string { return "orders" }

type orderItemModel struct {
	ID           int64   `gorm:"column:id;primaryKey"`
	OrderID      int64   `gorm:"column:order_id;index"`
	ProductID    int64   `gorm:"column:product_id"`
	VariantID    *int64  `gorm:"column:variant_id"`
	ProductName  string  `gorm:"column:product_name"`
	VariantName  *string `gorm:"column:variant_name"`
	LogoSize     *string `gorm:"column:logo_size"`
	LogoPosition *string `gorm:"column:logo_position"`
	Quantity     int     `gorm:"column:quantity"`
	UnitPrice    float64 `gorm:"column:unit_price"`
	TotalPrice   float64 `gorm:"column:total_price"`
}

func (orderItemModel) TableName() string { return "order_items" }

func toDomainOrder(m orderModel) *domain.Order {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}
	return &domain.Order{
		ID:             m.ID,
		OrderNumber:    m.OrderNumber,
		ClientID:       m.ClientID,
		Status:         domain.OrderStatus(m.Status),
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		Subtotal:       m.Subtotal,
		TaxAmount:      m.TaxAmount,
		ShippingAmount: m.ShippingAmount,
		DiscountAmount: m.DiscountAmount,
		TotalAmount:    m.TotalAmount,
		ShippingName:   m.ShippingName,
		ShippingPhone:  m.ShippingPhone,
		ShippingAddr:   m.ShippingAddr,
		Notes:          notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toOrderModel(o *domain.Order) orderModel {
	var notes *string
	if o.Notes != "" {
		v := o.Notes
		notes = &v
	}
	return orderModel{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		ClientID:       o.ClientID,
		Status:         string(o.Status),
		PaymentStatus:  string(o.PaymentStatus),
		Subtotal:       o.Subtotal,
		TaxAmount:      o.TaxAmount,
		ShippingAmount: o.ShippingAmount,
		DiscountAmount: o.DiscountAmount,
		TotalAmount:    o.TotalAmount,
		ShippingName:   o.ShippingName,
		ShippingPhone:  o.ShippingPhone,
		ShippingAddr:   o.ShippingAddr,
		Notes:          notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toDomainOrderItem(m orderItemModel) domain.OrderItem {
	var variantName, size, pos string
	if m.VariantName != nil {
		variantName = *m.VariantName
	}
	if m.LogoSize != nil {
		size = *m.LogoSize
	}
	if m.LogoPosition != nil {
		pos = *m.LogoPosition
	}
	return domain.OrderItem{
		ID:           m.ID,
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		VariantID:    m.VariantID,
		ProductName:  m.ProductName,
		VariantName:  variantName,
		LogoSize:     size,
		LogoPosition: pos,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		TotalPrice:   m.TotalPrice,
	}
}

func toOrderItemModel(i *domain.OrderItem) orderItemModel {
	var variantName, size, pos *string
	if i.VariantName != "" {
		v := i.VariantName
		variantName = &v
	}
	if i.LogoSize != "" {
		v := i.LogoSize
		size = &v
	}
	if i.LogoPosition != "" {
		v := i.LogoPosition
		pos = &v
	}
	return orderItemModel{
		ID:           i.ID,
		OrderID:      i.OrderID,
		ProductID:    i.ProductID,
		VariantID:    i.VariantID,
		ProductName:  i.ProductName,
		VariantName:  variantName,
		LogoSize:     size,
		LogoPosition: pos,
		Quantity:     i.Quantity,
		UnitPrice:    i.UnitPrice,
		TotalPrice:   i.TotalPrice,
	}
}

// CreateTx inserts the order and its items inside an existing transaction.
// Checkout owns the transaction so the stock decrement and cart clear commit
// atomically with the order rows.
func (r *OrderRepository) CreateTx(tx *gorm.DB, o *domain.Order) error {
	m := toOrderModel(o)
	if err := tx.Create(&m).Error; err != nil {
		return err
	}
	o.ID = m.ID
	o.CreatedAt = m.CreatedAt
	o.UpdatedAt = m.UpdatedAt

	for idx := range o.Items {
		o.Items[idx].OrderID = m.ID
		im := toOrderItemModel(&o.Items[idx])
		if err := tx.Create(&im).Error; err != nil {
			return err
		}
		o.Items[idx].ID = im.ID
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var m orderModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}

	order := toDomainOrder(m)
	items, err := r.getItems(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *OrderRepository) getItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	var models []orderItemModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.OrderItem, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainOrderItem(m))
	}
	return out, nil
}

// OrderFilters narrows List results. Zero values mean "no filter".
type OrderFilters struct {
	ClientID int64
	Status   string
}

func (r *OrderRepository) List(ctx context.Context, f OrderFilters, limit, offset int) ([]domain.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&orderModel{})
	if f.ClientID > 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []orderModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Order, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainOrder(m))
	}
	return out, total, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	tx := r.db.WithContext(ctx).Model(&orderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	tx := r.db.WithContext(ctx).Model(&orderModel{}).
		Where("id = ?", id).
		Update("payment_status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateDiscount sets the discount and the recomputed total in one write so
// the total invariant never observes a half-applied discount.
func (r *OrderRepository) UpdateDiscount(ctx context.Context, id int64, discount, total float64) error {
	tx := r.db.WithContext(ctx).Model(&orderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"discount_amount": discount,
			"total_amount":    total,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Cnt    int64
	}
	var rows []row
	tx := r.db.WithContext(ctx).Model(&orderModel{}).
		Select("status, COUNT(1) AS cnt").
		Group("status").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Cnt
	}
	return out, nil
}

func (r *OrderRepository) SumPaidRevenue(ctx context.Context) (float64, error) {
	var sum *float64
	tx := r.db.WithContext(ctx).Model(&orderModel{}).
		Select("SUM(total_amount)").
		Where("payment_status = ?", string(domain.PaymentPaid)).
		Scan(&sum)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (r *OrderRepository) DB() *gorm.DB { return r.db }
