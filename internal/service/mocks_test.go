package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shutterdesk/studio/internal/models"
	"github.com/shutterdesk/studio/internal/repository"
	"gorm.io/gorm"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn        func(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	findByIDFn      func(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	listFn          func(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error)
	updateFieldsFn  func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	countByStatusFn func(ctx context.Context) (models.StatusCounts, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return m.createFn(ctx, tx, booking)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) List(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	return m.listFn(ctx, filter)
}
func (m *mockBookingRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return m.updateFieldsFn(ctx, id, fields)
}
func (m *mockBookingRepo) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	return m.countByStatusFn(ctx)
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// --- Mock ClientRepository ---

type mockClientRepo struct {
	createFn           func(ctx context.Context, tx *gorm.DB, client *models.Client) error
	findByIDFn         func(ctx context.Context, id uuid.UUID) (*models.Client, error)
	findByEmailFn      func(ctx context.Context, email string) (*models.Client, error)
	findForUpdateFn    func(ctx context.Context, tx *gorm.DB, email string) (*models.Client, error)
	listFn             func(ctx context.Context, status *models.ClientStatus) ([]models.Client, error)
	updateFn           func(ctx context.Context, client *models.Client) error
	touchFn            func(ctx context.Context, tx *gorm.DB, client *models.Client) error
	addLifetimeValueFn func(ctx context.Context, id uuid.UUID, amount float64) error
}

func (m *mockClientRepo) Create(ctx context.Context, tx *gorm.DB, client *models.Client) error {
	return m.createFn(ctx, tx, client)
}
func (m *mockClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockClientRepo) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	return m.findByEmailFn(ctx, email)
}
func (m *mockClientRepo) FindByEmailForUpdate(ctx context.Context, tx *gorm.DB, email string) (*models.Client, error) {
	return m.findForUpdateFn(ctx, tx, email)
}
func (m *mockClientRepo) List(ctx context.Context, status *models.ClientStatus) ([]models.Client, error) {
	return m.listFn(ctx, status)
}
func (m *mockClientRepo) Update(ctx context.Context, client *models.Client) error {
	return m.updateFn(ctx, client)
}
func (m *mockClientRepo) Touch(ctx context.Context, tx *gorm.DB, client *models.Client) error {
	return m.touchFn(ctx, tx, client)
}
func (m *mockClientRepo) AddLifetimeValue(ctx context.Context, id uuid.UUID, amount float64) error {
	return m.addLifetimeValueFn(ctx, id, amount)
}

// --- Mock ServiceRepository ---

type mockServiceRepo struct {
	createFn   func(ctx context.Context, svc *models.Service) error
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Service, error)
	findAllFn  func(ctx context.Context, activeOnly bool) ([]models.Service, error)
	updateFn   func(ctx context.Context, svc *models.Service) error
}

func (m *mockServiceRepo) Create(ctx context.Context, svc *models.Service) error {
	return m.createFn(ctx, svc)
}
func (m *mockServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockServiceRepo) FindAll(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	return m.findAllFn(ctx, activeOnly)
}
func (m *mockServiceRepo) Update(ctx context.Context, svc *models.Service) error {
	return m.updateFn(ctx, svc)
}

// --- Mock EventPublisher ---

type publishedEvent struct {
	key     string
	payload any
}

type mockPublisher struct {
	published []publishedEvent
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	m.published = append(m.published, publishedEvent{key: routingKey, payload: payload})
	return m.err
}
