// Package events defines the booking messages published on the
// studio.bookings exchange.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/shutterdesk/studio/internal/models"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
)

type BookingEvent struct {
	Type           string               `json:"type"`
	BookingID      uuid.UUID            `json:"bookingId"`
	ClientID       uuid.UUID            `json:"clientId"`
	ServiceID      uuid.UUID            `json:"serviceId"`
	Date           time.Time            `json:"date"`
	TotalPrice     float64              `json:"totalPrice"`
	PreviousStatus models.BookingStatus `json:"previousStatus,omitempty"`
	Status         models.BookingStatus `json:"status"`
	OccurredAt     time.Time            `json:"occurredAt"`
}

func Created(b *models.Booking, at time.Time) BookingEvent {
	return newEvent(BookingCreated, b, "", at)
}

func StatusChanged(b *models.Booking, previous models.BookingStatus, at time.Time) BookingEvent {
	return newEvent(BookingStatusChanged, b, previous, at)
}

// CompletedNow reports whether the event moves a booking into completed.
func (e BookingEvent) CompletedNow() bool {
	return e.Type == BookingStatusChanged &&
		e.Status == models.StatusCompleted &&
		e.PreviousStatus != models.StatusCompleted
}

func newEvent(kind string, b *models.Booking, previous models.BookingStatus, at time.Time) BookingEvent {
	return BookingEvent{
		Type:           kind,
		BookingID:      b.ID,
		ClientID:       b.ClientID,
		ServiceID:      b.ServiceID,
		Date:           b.Date,
		TotalPrice:     b.TotalPrice,
		PreviousStatus: previous,
		Status:         b.Status,
		OccurredAt:     at.UTC(),
	}
}
