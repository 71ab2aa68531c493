package apiclient

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shutterdesk/studio/internal/dto"
	"github.com/shutterdesk/studio/internal/models"
)

const (
	FormDateLayout = "2006-01-02"
	FormTimeLayout = "15:04"
)

// AppointmentForm is the admin "new appointment" form. Date and Time are
// kept as typed text and combined in the studio location on submit.
type AppointmentForm struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	ServiceID   string
	Date        string
	Time        string
	Location    string
	Notes       string
	TotalPrice  *float64
	Duration    *int
	AddOns      []dto.AddOnRequest
}

// Validate reports every missing required field at once, then any field
// that is present but unparseable.
func (f AppointmentForm) Validate(loc *time.Location) error {
	required := []struct {
		name  string
		value string
	}{
		{"clientName", f.ClientName},
		{"clientEmail", f.ClientEmail},
		{"serviceId", f.ServiceID},
		{"date", f.Date},
		{"time", f.Time},
	}

	ferr := &FormError{}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			ferr.Missing = append(ferr.Missing, r.name)
		}
	}
	if len(ferr.Missing) > 0 {
		return ferr
	}

	invalid := map[string]string{}
	if !strings.Contains(f.ClientEmail, "@") {
		invalid["clientEmail"] = "must be an email address"
	}
	if _, err := uuid.Parse(strings.TrimSpace(f.ServiceID)); err != nil {
		invalid["serviceId"] = "must be a service id"
	}
	if _, err := f.startsAt(loc); err != nil {
		invalid["date"] = "expected YYYY-MM-DD and HH:MM"
	}
	if f.TotalPrice != nil && *f.TotalPrice < 0 {
		invalid["totalPrice"] = "must not be negative"
	}
	if f.Duration != nil && *f.Duration <= 0 {
		invalid["duration"] = "must be positive"
	}
	if len(invalid) > 0 {
		ferr.Invalid = invalid
		return ferr
	}
	return nil
}

// Request validates the form and builds the POST body. Admin-entered
// appointments are created confirmed.
func (f AppointmentForm) Request(loc *time.Location) (dto.CreateBookingRequest, error) {
	if err := f.Validate(loc); err != nil {
		return dto.CreateBookingRequest{}, err
	}
	at, _ := f.startsAt(loc)
	at = at.UTC()
	return dto.CreateBookingRequest{
		ClientName:  strings.TrimSpace(f.ClientName),
		ClientEmail: strings.TrimSpace(f.ClientEmail),
		ClientPhone: strings.TrimSpace(f.ClientPhone),
		ServiceID:   strings.TrimSpace(f.ServiceID),
		Date:        &at,
		Location:    strings.TrimSpace(f.Location),
		TotalPrice:  f.TotalPrice,
		Notes:       strings.TrimSpace(f.Notes),
		Duration:    f.Duration,
		Status:      string(models.StatusConfirmed),
		AddOns:      f.AddOns,
	}, nil
}

func (f AppointmentForm) startsAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(FormDateLayout+" "+FormTimeLayout, strings.TrimSpace(f.Date)+" "+strings.TrimSpace(f.Time), loc)
}
