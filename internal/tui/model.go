// Package tui is the interactive studio calendar.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/shutterdesk/studio/internal/apiclient"
	"github.com/shutterdesk/studio/internal/calendar"
	"github.com/shutterdesk/studio/internal/dto"
	"github.com/shutterdesk/studio/internal/models"
)

const requestTimeout = 15 * time.Second

// API is the part of *apiclient.Client the calendar needs.
type API interface {
	Bookings(ctx context.Context) ([]apiclient.Booking, error)
	Services(ctx context.Context) ([]dto.ServiceResponse, error)
	CreateBooking(ctx context.Context, form apiclient.AppointmentForm) (*apiclient.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*apiclient.Booking, error)
	Cache() *apiclient.Cache
}

type SessionState int

const (
	StateCalendar SessionState = iota
	StateCreate
)

type Model struct {
	api     API
	builder *calendar.Builder
	cursor  calendar.Cursor
	now     func() time.Time

	state    SessionState
	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	spinner  spinner.Model
	form     *huh.Form
	draft    *apiclient.AppointmentForm

	bookings []apiclient.Booking
	services []dto.ServiceResponse
	selected int

	loading  bool
	busy     string
	toast    string
	toastErr bool

	width    int
	height   int
	quitting bool
}

func NewModel(api API, loc *time.Location) Model {
	return newModel(api, loc, time.Now)
}

func newModel(api API, loc *time.Location, now func() time.Time) Model {
	builder := calendar.NewBuilder(loc).WithClock(now)
	return Model{
		api:      api,
		builder:  builder,
		cursor:   calendar.NewCursor(now().In(builder.Location()), calendar.ModeMonth),
		now:      now,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBookings(), m.loadServices(), m.spinner.Tick)
}

type bookingsMsg struct {
	bookings []apiclient.Booking
	err      error
}

type servicesMsg struct {
	services []dto.ServiceResponse
	err      error
}

type createdMsg struct {
	booking *apiclient.Booking
	err     error
}

type statusMsg struct {
	booking *apiclient.Booking
	err     error
}

func (m Model) loadBookings() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		bookings, err := api.Bookings(ctx)
		return bookingsMsg{bookings: bookings, err: err}
	}
}

func (m Model) loadServices() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		services, err := api.Services(ctx)
		return servicesMsg{services: services, err: err}
	}
}

func (m Model) createBooking(form apiclient.AppointmentForm) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		b, err := api.CreateBooking(ctx, form)
		return createdMsg{booking: b, err: err}
	}
}

func (m Model) updateStatus(id uuid.UUID, status models.BookingStatus) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		b, err := api.UpdateStatus(ctx, id, status)
		return statusMsg{booking: b, err: err}
	}
}

func (m Model) entries() []calendar.Entry {
	return apiclient.Entries(m.bookings)
}

// dayEntries are the bookings shown in day view, in slot order. Selection
// indexes into this list.
func (m Model) dayEntries() []calendar.Entry {
	day := m.builder.Day(m.cursor.Date, m.entries())
	var out []calendar.Entry
	for _, slot := range day.Slots {
		out = append(out, slot.Entries...)
	}
	return out
}

func (m Model) selectedEntry() (calendar.Entry, bool) {
	if m.cursor.Mode != calendar.ModeDay {
		return calendar.Entry{}, false
	}
	entries := m.dayEntries()
	if m.selected < 0 || m.selected >= len(entries) {
		return calendar.Entry{}, false
	}
	return entries[m.selected], true
}

func newAppointmentForm(draft *apiclient.AppointmentForm, services []dto.ServiceResponse) *huh.Form {
	options := make([]huh.Option[string], 0, len(services))
	for _, s := range services {
		if !s.IsActive {
			continue
		}
		options = append(options, huh.NewOption(s.Name, s.ID.String()))
	}

	required := func(label string) func(string) error {
		return func(s string) error {
			if len(s) == 0 {
				return errRequired(label)
			}
			return nil
		}
	}

	var serviceField huh.Field
	if len(options) > 0 {
		serviceField = huh.NewSelect[string]().
			Title("Service").
			Options(options...).
			Value(&draft.ServiceID)
	} else {
		serviceField = huh.NewInput().
			Title("Service ID").
			Value(&draft.ServiceID).
			Validate(required("service"))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Client name").
				Value(&draft.ClientName).
				Validate(required("client name")),
			huh.NewInput().
				Title("Client email").
				Value(&draft.ClientEmail).
				Validate(required("client email")),
			huh.NewInput().
				Title("Client phone").
				Value(&draft.ClientPhone),
			serviceField,
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&draft.Date).
				Validate(required("date")),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&draft.Time).
				Validate(required("time")),
			huh.NewInput().
				Title("Location").
				Placeholder("To be confirmed").
				Value(&draft.Location),
			huh.NewText().
				Title("Notes").
				Value(&draft.Notes),
		),
	)
}
