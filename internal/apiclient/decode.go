package apiclient

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shutterdesk/studio/internal/calendar"
	"github.com/shutterdesk/studio/internal/models"
)

// Booking is a fetched booking that passed the decode boundary: its id
// parsed, its date is a real instant and its status is known.
type Booking struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	ServiceID   uuid.UUID
	Date        time.Time
	Duration    int
	Location    string
	TotalPrice  float64
	DepositPaid bool
	Status      models.BookingStatus
	Notes       string
	AddOns      models.AddOns
	ClientName  string
	ClientEmail string
	ClientPhone string
	ServiceName string
}

func (b Booking) Entry() calendar.Entry {
	return calendar.Entry{
		ID:       b.ID,
		At:       b.Date,
		Duration: b.Duration,
		Client:   b.ClientName,
		Service:  b.ServiceName,
		Location: b.Location,
		Status:   b.Status,
		Color:    b.Status.Color(),
	}
}

func Entries(bookings []Booking) []calendar.Entry {
	out := make([]calendar.Entry, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Entry())
	}
	return out
}

type rawBooking struct {
	ID          string        `json:"id"`
	ClientID    string        `json:"clientId"`
	ServiceID   string        `json:"serviceId"`
	Date        string        `json:"date"`
	Duration    int           `json:"duration"`
	Location    string        `json:"location"`
	TotalPrice  float64       `json:"totalPrice"`
	DepositPaid bool          `json:"depositPaid"`
	Status      string        `json:"status"`
	Notes       string        `json:"notes"`
	AddOns      models.AddOns `json:"addOns"`
	Client      *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"client"`
	Service *struct {
		Name string `json:"name"`
	} `json:"service"`
}

// DecodeBookings turns a JSON array of bookings into typed values. Items
// that do not validate are reported as DecodeErrors and left out; only a
// body that is not an array at all is an error.
func DecodeBookings(data []byte) ([]Booking, []*DecodeError, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, nil, fmt.Errorf("decode bookings: %w", err)
	}

	bookings := make([]Booking, 0, len(items))
	var rejected []*DecodeError
	for i, item := range items {
		b, derr := decodeBooking(i, item)
		if derr != nil {
			rejected = append(rejected, derr)
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, rejected, nil
}

func decodeBooking(index int, data []byte) (Booking, *DecodeError) {
	var raw rawBooking
	if err := json.Unmarshal(data, &raw); err != nil {
		return Booking{}, &DecodeError{Index: index, Reason: err.Error()}
	}
	fail := func(format string, args ...any) (Booking, *DecodeError) {
		return Booking{}, &DecodeError{Index: index, ID: raw.ID, Reason: fmt.Sprintf(format, args...)}
	}

	id, err := uuid.Parse(raw.ID)
	if err != nil {
		return fail("invalid id %q", raw.ID)
	}
	date, err := time.Parse(time.RFC3339, raw.Date)
	if err != nil {
		return fail("invalid date %q", raw.Date)
	}
	status, err := models.ParseBookingStatus(raw.Status)
	if err != nil {
		return fail("unknown status %q", raw.Status)
	}

	b := Booking{
		ID:          id,
		Date:        date,
		Duration:    raw.Duration,
		Location:    raw.Location,
		TotalPrice:  raw.TotalPrice,
		DepositPaid: raw.DepositPaid,
		Status:      status,
		Notes:       raw.Notes,
		AddOns:      raw.AddOns,
	}
	// Foreign keys are informational on the client; a bad one is not fatal.
	b.ClientID, _ = uuid.Parse(raw.ClientID)
	b.ServiceID, _ = uuid.Parse(raw.ServiceID)
	if raw.Client != nil {
		b.ClientName = raw.Client.Name
		b.ClientEmail = raw.Client.Email
		b.ClientPhone = raw.Client.Phone
	}
	if raw.Service != nil {
		b.ServiceName = raw.Service.Name
	}
	return b, nil
}
