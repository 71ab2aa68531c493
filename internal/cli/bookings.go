package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shutterdesk/studio/internal/apiclient"
	"github.com/shutterdesk/studio/internal/models"
)

type BookingListCmd struct {
	From   string `help:"Earliest day to include (YYYY-MM-DD)."`
	To     string `help:"Last day to include (YYYY-MM-DD)."`
	Status string `help:"Only bookings with this status (pending, confirmed, completed, cancelled)."`
}

func (c *BookingListCmd) Run(ctx *Context) error {
	var filter apiclient.BookingFilter
	if c.From != "" {
		from, err := parseDay(c.From, ctx.Location, time.Now())
		if err != nil {
			return err
		}
		filter.From = &from
	}
	if c.To != "" {
		to, err := parseDay(c.To, ctx.Location, time.Now())
		if err != nil {
			return err
		}
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &end
	}
	if c.Status != "" {
		status, err := models.ParseBookingStatus(c.Status)
		if err != nil {
			return fmt.Errorf("%w (want %s)", err, statusList())
		}
		filter.Status = status
	}

	bookings, err := ctx.API.ListBookings(context.Background(), filter)
	if err != nil {
		return err
	}
	if len(bookings) == 0 {
		ctx.printf("No bookings found\n")
		return nil
	}
	for _, b := range bookings {
		ctx.printf("%s\n", formatBooking(b, ctx.Location))
	}
	return nil
}

type BookingCreateCmd struct {
	Client   string  `help:"Client name." required:""`
	Email    string  `help:"Client email." required:""`
	Phone    string  `help:"Client phone."`
	Service  string  `help:"Service ID." required:""`
	Date     string  `help:"Session date (YYYY-MM-DD)." required:""`
	Time     string  `help:"Session start (HH:MM)." required:""`
	Location string  `help:"Where the session happens."`
	Notes    string  `help:"Free-form notes."`
	Price    float64 `help:"Total price; defaults to the service price."`
	Duration int     `help:"Duration in minutes; defaults to the service duration."`
}

func (c *BookingCreateCmd) Run(ctx *Context) error {
	form := apiclient.AppointmentForm{
		ClientName:  c.Client,
		ClientEmail: c.Email,
		ClientPhone: c.Phone,
		ServiceID:   c.Service,
		Date:        c.Date,
		Time:        c.Time,
		Location:    c.Location,
		Notes:       c.Notes,
	}
	if c.Price > 0 {
		form.TotalPrice = &c.Price
	}
	if c.Duration > 0 {
		form.Duration = &c.Duration
	}

	b, err := ctx.API.CreateBooking(context.Background(), form)
	if err != nil {
		return err
	}
	ctx.printf("Created booking:\n  %s\n", formatBooking(*b, ctx.Location))
	return nil
}

type BookingStatusCmd struct {
	ID     string `arg:"" help:"Booking ID."`
	Status string `arg:"" help:"New status (pending, confirmed, completed, cancelled)."`
}

func (c *BookingStatusCmd) Run(ctx *Context) error {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return fmt.Errorf("invalid booking id %q", c.ID)
	}
	status, err := models.ParseBookingStatus(c.Status)
	if err != nil {
		return fmt.Errorf("%w (want %s)", err, statusList())
	}
	b, err := ctx.API.UpdateStatus(context.Background(), id, status)
	if err != nil {
		return err
	}
	ctx.printf("Booking %s is now %s\n", b.ID, b.Status)
	return nil
}

type BookingStatsCmd struct{}

func (c *BookingStatsCmd) Run(ctx *Context) error {
	stats, err := ctx.API.Stats(context.Background())
	if err != nil {
		return err
	}
	ctx.printf("Bookings: %d\n", stats.Total)
	for _, s := range models.AllStatuses {
		ctx.printf("  %-10s %4d  %3d%%\n", s, stats.Counts[s], stats.Percentages[s])
	}
	return nil
}
