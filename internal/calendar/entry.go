package calendar

import "github.com/shutterdesk/studio/internal/models"

func FromBooking(b models.Booking) Entry {
	e := Entry{
		ID:       b.ID,
		At:       b.Date,
		Duration: b.Duration,
		Location: b.Location,
		Status:   b.Status,
		Color:    b.Status.Color(),
	}
	if b.Client != nil {
		e.Client = b.Client.Name
	}
	if b.Service != nil {
		e.Service = b.Service.Name
	}
	return e
}

func FromBookings(bookings []models.Booking) []Entry {
	out := make([]Entry, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromBooking(b))
	}
	return out
}
