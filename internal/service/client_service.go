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

type UpdateClientInput struct {
	Name   *string
	Phone  *string
	Status *models.ClientStatus
}

type ClientService interface {
	CreateClient(ctx context.Context, client *models.Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error)
	ListClients(ctx context.Context, status *models.ClientStatus) ([]models.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, in UpdateClientInput) (*models.Client, error)
}

type clientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

// CreateClient adds a client by hand. Email is the de facto key, so a second
// client with the same normalized email is refused.
func (s *clientService) CreateClient(ctx context.Context, client *models.Client) error {
	client.Name = strings.TrimSpace(client.Name)
	client.Email = models.NormalizeEmail(client.Email)
	client.Phone = strings.TrimSpace(client.Phone)
	if client.Status == "" {
		client.Status = models.ClientLead
	}
	if client.Name == "" {
		return validationError("name", "name is required")
	}
	if !strings.Contains(client.Email, "@") {
		return validationError("email", "a valid email is required")
	}
	if !client.Status.Valid() {
		return validationError("status", "unknown client status %q", client.Status)
	}

	_, err := s.repo.FindByEmail(ctx, client.Email)
	switch {
	case err == nil:
		return ErrClientExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("find client: %w", err)
	}

	if err := s.repo.Create(ctx, nil, client); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *clientService) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, status *models.ClientStatus) ([]models.Client, error) {
	if status != nil && !status.Valid() {
		return nil, validationError("status", "unknown client status %q", *status)
	}
	return s.repo.List(ctx, status)
}

func (s *clientService) UpdateClient(ctx context.Context, id uuid.UUID, in UpdateClientInput) (*models.Client, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, validationError("name", "name is required")
		}
		client.Name = name
	}
	if in.Phone != nil {
		client.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, validationError("status", "unknown client status %q", *in.Status)
		}
		client.Status = *in.Status
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return client, nil
}
