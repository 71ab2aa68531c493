package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shutterdesk/studio/internal/calendar"
	"github.com/shutterdesk/studio/internal/events"
	"github.com/shutterdesk/studio/internal/models"
	"github.com/shutterdesk/studio/internal/repository"
	"gorm.io/gorm"
)

const DefaultLocation = "To be confirmed"

// EventPublisher is satisfied by *rabbitmq.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type CreateBookingInput struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	ServiceID   uuid.UUID
	Date        time.Time
	Location    string
	Notes       string
	TotalPrice  *float64
	Duration    *int
	DepositPaid bool
	Status      models.BookingStatus
	AddOns      models.AddOns
}

// UpdateBookingInput is a partial update; nil fields are left alone.
type UpdateBookingInput struct {
	Status      *models.BookingStatus
	Notes       *string
	Location    *string
	TotalPrice  *float64
	DepositPaid *bool
}

func (in UpdateBookingInput) empty() bool {
	return in.Status == nil && in.Notes == nil && in.Location == nil && in.TotalPrice == nil && in.DepositPaid == nil
}

type ListBookingsInput struct {
	From   *time.Time
	To     *time.Time
	Status *models.BookingStatus
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListBookings(ctx context.Context, in ListBookingsInput) ([]models.Booking, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, in UpdateBookingInput) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error)
	Stats(ctx context.Context) (models.StatusCounts, error)
	Calendar(ctx context.Context, cursor calendar.Cursor) (calendar.View, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	clientRepo  repository.ClientRepository
	serviceRepo repository.ServiceRepository
	publisher   EventPublisher
	builder     *calendar.Builder
	machine     models.StatusMachine
	log         *slog.Logger
	now         func() time.Time
	withTx      func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	clientRepo repository.ClientRepository,
	serviceRepo repository.ServiceRepository,
	publisher EventPublisher,
	loc *time.Location,
	log *slog.Logger,
) BookingService {
	if log == nil {
		log = slog.Default()
	}
	s := &bookingService{
		bookingRepo: bookingRepo,
		clientRepo:  clientRepo,
		serviceRepo: serviceRepo,
		publisher:   publisher,
		builder:     calendar.NewBuilder(loc),
		log:         log.With(slog.String("component", "bookings")),
		now:         time.Now,
	}
	s.withTx = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return s.bookingRepo.GetDB().WithContext(ctx).Transaction(fn)
	}
	return s
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientEmail = models.NormalizeEmail(in.ClientEmail)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	svc, err := s.serviceRepo.FindByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}

	booking := &models.Booking{
		ServiceID:   svc.ID,
		Date:        in.Date.UTC(),
		Duration:    svc.Duration,
		Location:    strings.TrimSpace(in.Location),
		TotalPrice:  svc.Price,
		DepositPaid: in.DepositPaid,
		Status:      in.Status,
		Notes:       in.Notes,
		AddOns:      in.AddOns,
	}
	if in.Duration != nil {
		booking.Duration = *in.Duration
	}
	if in.TotalPrice != nil {
		booking.TotalPrice = *in.TotalPrice
	}
	if booking.Location == "" {
		booking.Location = DefaultLocation
	}
	if booking.Status == "" {
		booking.Status = models.StatusConfirmed
	}
	if booking.AddOns == nil {
		booking.AddOns = models.AddOns{}
	}

	var client *models.Client
	err = s.withTx(ctx, func(tx *gorm.DB) error {
		c, err := s.resolveClient(ctx, tx, in)
		if err != nil {
			return err
		}
		client = c
		booking.ClientID = c.ID
		return s.bookingRepo.Create(ctx, tx, booking)
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	booking.Client = client
	booking.Service = svc
	s.publish(ctx, events.BookingCreated, events.Created(booking, s.now()))
	return booking, nil
}

// resolveClient finds the client by normalized email or creates one.
// Existing clients are touched and promoted; their name is never overwritten.
func (s *bookingService) resolveClient(ctx context.Context, tx *gorm.DB, in CreateBookingInput) (*models.Client, error) {
	existing, err := s.clientRepo.FindByEmailForUpdate(ctx, tx, in.ClientEmail)
	switch {
	case err == nil:
		if existing.Phone == "" {
			existing.Phone = in.ClientPhone
		}
		existing.Status = existing.Status.AfterBooking()
		if err := s.clientRepo.Touch(ctx, tx, existing); err != nil {
			return nil, fmt.Errorf("touch client: %w", err)
		}
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		client := &models.Client{
			Name:   in.ClientName,
			Email:  in.ClientEmail,
			Phone:  in.ClientPhone,
			Status: models.ClientBooked,
		}
		if err := s.clientRepo.Create(ctx, tx, client); err != nil {
			return nil, fmt.Errorf("create client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("find client: %w", err)
	}
}

func validateCreate(in CreateBookingInput) error {
	var missing []string
	if in.ClientName == "" {
		missing = append(missing, "clientName")
	}
	if in.ClientEmail == "" {
		missing = append(missing, "clientEmail")
	}
	if in.ServiceID == uuid.Nil {
		missing = append(missing, "serviceId")
	}
	if in.Date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return validationError(missing[0], "missing required fields: %s", strings.Join(missing, ", "))
	}
	if !strings.Contains(in.ClientEmail, "@") {
		return validationError("clientEmail", "clientEmail is not a valid email address")
	}
	if in.Duration != nil && *in.Duration <= 0 {
		return validationError("duration", "duration must be positive")
	}
	if in.TotalPrice != nil && *in.TotalPrice < 0 {
		return validationError("totalPrice", "totalPrice must not be negative")
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	for _, a := range in.AddOns {
		if strings.TrimSpace(a.Name) == "" || a.Price < 0 {
			return validationError("addOns", "add-ons need a name and a non-negative price")
		}
	}
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, in ListBookingsInput) ([]models.Booking, error) {
	if in.From != nil && in.To != nil && in.To.Before(*in.From) {
		return nil, ErrInvalidRange
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *in.Status)
	}
	return s.bookingRepo.List(ctx, repository.BookingFilter{From: in.From, To: in.To, Status: in.Status})
}

// ListBetween is the availability query: every booking dated within
// [start, end], earliest first. It does not compute free slots.
func (s *bookingService) ListBetween(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	return s.ListBookings(ctx, ListBookingsInput{From: &start, To: &end})
}

func (s *bookingService) UpdateBooking(ctx context.Context, id uuid.UUID, in UpdateBookingInput) (*models.Booking, error) {
	current, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.empty() {
		return current, nil
	}

	fields := map[string]any{}
	previous := current.Status
	if in.Status != nil {
		next, err := s.machine.Transition(current.Status, *in.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}
		fields["status"] = next
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if in.Location != nil {
		fields["location"] = strings.TrimSpace(*in.Location)
	}
	if in.TotalPrice != nil {
		if *in.TotalPrice < 0 {
			return nil, validationError("totalPrice", "totalPrice must not be negative")
		}
		fields["total_price"] = *in.TotalPrice
	}
	if in.DepositPaid != nil {
		fields["deposit_paid"] = *in.DepositPaid
	}

	if err := s.bookingRepo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}

	updated, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status != nil && updated.Status != previous {
		s.publish(ctx, events.BookingStatusChanged, events.StatusChanged(updated, previous, s.now()))
	}
	return updated, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	return s.UpdateBooking(ctx, id, UpdateBookingInput{Status: &status})
}

func (s *bookingService) Stats(ctx context.Context) (models.StatusCounts, error) {
	counts, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	return counts, nil
}

// Calendar loads the bookings visible from cursor and lays them out. The
// cursor's wall-clock date is read as a studio-local date.
func (s *bookingService) Calendar(ctx context.Context, cursor calendar.Cursor) (calendar.View, error) {
	y, m, d := cursor.Date.Date()
	cursor.Date = time.Date(y, m, d, 0, 0, 0, 0, s.builder.Location())
	start, end := cursor.Range()
	bookings, err := s.ListBetween(ctx, start, end.Add(-time.Microsecond))
	if err != nil {
		return calendar.View{}, err
	}
	return s.builder.Build(cursor, calendar.FromBookings(bookings)), nil
}

// publish is best effort; the booking is already committed.
func (s *bookingService) publish(ctx context.Context, key string, event events.BookingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.log.Warn("publish booking event failed",
			slog.String("routing_key", key),
			slog.String("booking_id", event.BookingID.String()),
			slog.Any("err", err),
		)
	}
}
