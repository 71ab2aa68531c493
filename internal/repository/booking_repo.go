package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shutterdesk/studio/internal/models"
	"gorm.io/gorm"
)

// BookingFilter narrows List. Nil fields are ignored; From and To are inclusive.
type BookingFilter struct {
	From     *time.Time
	To       *time.Time
	Status   *models.BookingStatus
	ClientID *uuid.UUID
}

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	CountByStatus(ctx context.Context) (models.StatusCounts, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Omit("Client", "Service").Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// List returns bookings with their client and service, earliest first.
func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	bookings := []models.Booking{}
	q := r.db.WithContext(ctx).Preload("Client").Preload("Service")
	if filter.From != nil {
		q = q.Where("date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("date <= ?", filter.To.UTC())
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if err := q.Order("date ASC").Order("created_at ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	var rows []struct {
		Status models.BookingStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := models.StatusCounts{}
	for _, s := range models.AllStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
