package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shutterdesk/studio/internal/models"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	FindAll(ctx context.Context, activeOnly bool) ([]models.Service, error)
	Update(ctx context.Context, svc *models.Service) error
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	services := []models.Service{}
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("category ASC").Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// Update writes every editable column, including zero values such as IsActive=false.
func (r *serviceRepository) Update(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).
		Model(svc).
		Select("name", "description", "price", "duration", "category", "is_active").
		Updates(svc).Error
}
