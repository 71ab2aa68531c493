package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shutterdesk/studio/internal/models"
	"github.com/shutterdesk/studio/internal/repository"
	"gorm.io/gorm"
)

const (
	DefaultServiceDuration = 60
	DefaultServiceCategory = "General"
)

type UpdateServiceInput struct {
	Name        *string
	Description *string
	Price       *float64
	Duration    *int
	Category    *string
	IsActive    *bool
}

type CatalogService interface {
	CreateService(ctx context.Context, svc *models.Service) error
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	UpdateService(ctx context.Context, id uuid.UUID, in UpdateServiceInput) (*models.Service, error)
}

type catalogService struct {
	repo repository.ServiceRepository
}

func NewCatalogService(repo repository.ServiceRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) CreateService(ctx context.Context, svc *models.Service) error {
	svc.Name = strings.TrimSpace(svc.Name)
	svc.Category = strings.TrimSpace(svc.Category)
	if svc.Duration == 0 {
		svc.Duration = DefaultServiceDuration
	}
	if svc.Category == "" {
		svc.Category = DefaultServiceCategory
	}
	if err := validateService(svc); err != nil {
		return err
	}

	active := svc.IsActive
	if err := s.repo.Create(ctx, svc); err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	// gorm skips zero values on insert, so the column default wins for false.
	if !active {
		svc.IsActive = false
		if err := s.repo.Update(ctx, svc); err != nil {
			return fmt.Errorf("deactivate service: %w", err)
		}
	}
	return nil
}

func (s *catalogService) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	return s.repo.FindAll(ctx, activeOnly)
}

// UpdateService edits the catalog only; bookings keep the price and duration
// they were created with.
func (s *catalogService) UpdateService(ctx context.Context, id uuid.UUID, in UpdateServiceInput) (*models.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		svc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.Price != nil {
		svc.Price = *in.Price
	}
	if in.Duration != nil {
		svc.Duration = *in.Duration
	}
	if in.Category != nil {
		svc.Category = strings.TrimSpace(*in.Category)
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}
	if err := validateService(svc); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return svc, nil
}

func validateService(svc *models.Service) error {
	if svc.Name == "" {
		return validationError("name", "name is required")
	}
	if svc.Price < 0 {
		return validationError("price", "price must not be negative")
	}
	if svc.Duration <= 0 {
		return validationError("duration", "duration must be positive")
	}
	if svc.Category == "" {
		return validationError("category", "category is required")
	}
	return nil
}
