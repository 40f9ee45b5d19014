package repository

import (
	"context"
	"strings"
	"time"

	"b2bportal/internal/domain"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

type clientModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Email         string    `gorm:"column:email;uniqueIndex"`
	PasswordHash  string    `gorm:"column:password_hash"`
	CompanyName   string    `gorm:"column:company_name"`
	ContactPerson string    `gorm:"column:contact_person"`
	Phone         *string   `gorm:"column:phone"`
	Address       *string   `gorm:"column:address"`
	Status        string    `gorm:"column:status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (clientModel) TableName() string { return "clients" }

func toDomainClient(m clientModel) *domain.Client {
	var phone, address string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.Address != nil {
		address = *m.Address
	}

	return &domain.Client{
		ID:            m.ID,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		CompanyName:   m.CompanyName,
		ContactPerson: m.ContactPerson,
		Phone:         phone,
		Address:       address,
		Status:        domain.ClientStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toClientModel(c *domain.Client) clientModel {
	var phone, address *string
	if c.Phone != "" {
		v := c.Phone
		phone = &v
	}
	if c.Address != "" {
		v := c.Address
		address = &v
	}

	return clientModel{
		ID:            c.ID,
		Email:         strings.TrimSpace(strings.ToLower(c.Email)),
		PasswordHash:  c.PasswordHash,
		CompanyName:   c.CompanyName,
		ContactPerson: c.ContactPerson,
		Phone:         phone,
		Address:       address,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	m := toClientModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainClient(m)
	return nil
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	var m clientModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainClient(m), nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	var m clientModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainClient(m), nil
}

func (r *ClientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&clientModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	m := toClientModel(c)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *ClientRepository) UpdateStatus(ctx context.Context, id int64, status domain.ClientStatus) error {
	tx := r.db.WithContext(ctx).Model(&clientModel{}).
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

func (r *ClientRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return r.db.WithContext(ctx).Model(&clientModel{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

// List returns a page of clients, optionally filtered by status, newest first.
func (r *ClientRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.Client, int64, error) {
	q := r.db.WithContext(ctx).Model(&clientModel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []clientModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Client, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainClient(m))
	}
	return out, total, nil
}

func (r *ClientRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Cnt    int64
	}
	var rows []row
	tx := r.db.WithContext(ctx).Model(&clientModel{}).
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

func (r *ClientRepository) DB() *gorm.DB { return r.db }
