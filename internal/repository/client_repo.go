package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shutterdesk/studio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository interface {
	Create(ctx context.Context, tx *gorm.DB, client *models.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
	FindByEmailForUpdate(ctx context.Context, tx *gorm.DB, email string) (*models.Client, error)
	List(ctx context.Context, status *models.ClientStatus) ([]models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Touch(ctx context.Context, tx *gorm.DB, client *models.Client) error
	AddLifetimeValue(ctx context.Context, id uuid.UUID, amount float64) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, tx *gorm.DB, client *models.Client) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	return r.findByEmail(r.db.WithContext(ctx), email)
}

// FindByEmailForUpdate locks the matching client row within the given transaction.
func (r *clientRepository) FindByEmailForUpdate(ctx context.Context, tx *gorm.DB, email string) (*models.Client, error) {
	return r.findByEmail(tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), email)
}

func (r *clientRepository) findByEmail(q *gorm.DB, email string) (*models.Client, error) {
	var client models.Client
	err := q.Where("lower(email) = ?", models.NormalizeEmail(email)).
		Order("created_at ASC").
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, status *models.ClientStatus) ([]models.Client, error) {
	clients := []models.Client{}
	q := r.db.WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).
		Model(client).
		Select("name", "phone", "status").
		Updates(client).Error
}

// Touch records a new booking against an existing client.
func (r *clientRepository) Touch(ctx context.Context, tx *gorm.DB, client *models.Client) error {
	if tx == nil {
		tx = r.db
	}
	client.UpdatedAt = time.Now().UTC()
	return tx.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", client.ID).
		Updates(map[string]any{
			"phone":      client.Phone,
			"status":     client.Status,
			"updated_at": client.UpdatedAt,
		}).Error
}

func (r *clientRepository) AddLifetimeValue(ctx context.Context, id uuid.UUID, amount float64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Update("lifetime_value", gorm.Expr("lifetime_value + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
