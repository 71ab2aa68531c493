package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/shutterdesk/studio/internal/apiclient"
	"github.com/shutterdesk/studio/internal/calendar"
	"github.com/shutterdesk/studio/internal/models"
)

func errRequired(label string) error {
	return fmt.Errorf("%s is required", label)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 5)
		return m, nil

	case spinner.TickMsg:
		if !m.loading && m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bookingsMsg:
		m.loading = false
		if msg.err != nil {
			m.setToast(msg.err)
			return m, nil
		}
		m.bookings = msg.bookings
		m.clampSelection()
		return m, nil

	case servicesMsg:
		if msg.err != nil {
			m.setToast(msg.err)
			return m, nil
		}
		m.services = msg.services
		return m, nil

	case createdMsg:
		m.busy = ""
		if msg.err != nil {
			// Reopen the form with what was typed so the user can retry.
			m.setToast(msg.err)
			return m.openForm()
		}
		m.draft = nil
		m.toast, m.toastErr = "Booking created", false
		m.loading = true
		return m, tea.Batch(m.loadBookings(), m.spinner.Tick)

	case statusMsg:
		m.busy = ""
		if msg.err != nil {
			m.setToast(msg.err)
			return m, nil
		}
		m.toast, m.toastErr = fmt.Sprintf("Status set to %s", msg.booking.Status), false
		m.loading = true
		return m, tea.Batch(m.loadBookings(), m.spinner.Tick)
	}

	if m.state == StateCreate {
		return m.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Next):
		m.cursor = m.cursor.Next()
		m.selected = 0
	case key.Matches(msg, m.keys.Prev):
		m.cursor = m.cursor.Prev()
		m.selected = 0
	case key.Matches(msg, m.keys.Today):
		m.cursor = m.cursor.Today(m.now())
		m.selected = 0
	case key.Matches(msg, m.keys.Month):
		m.cursor = m.cursor.WithMode(calendar.ModeMonth)
	case key.Matches(msg, m.keys.Week):
		m.cursor = m.cursor.WithMode(calendar.ModeWeek)
	case key.Matches(msg, m.keys.Day):
		m.cursor = m.cursor.WithMode(calendar.ModeDay)
		m.clampSelection()
	case key.Matches(msg, m.keys.Refresh):
		m.api.Cache().Invalidate(apiclient.KeyBookings, apiclient.KeyAnalytics, apiclient.KeyServices)
		m.loading = true
		return m, tea.Batch(m.loadBookings(), m.loadServices(), m.spinner.Tick)
	case key.Matches(msg, m.keys.Create):
		m.draft = &apiclient.AppointmentForm{Date: m.cursor.Date.Format(apiclient.FormDateLayout)}
		m.toast = ""
		return m.openForm()
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.dayEntries())-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.SetPending):
		return m.setStatus(models.StatusPending)
	case key.Matches(msg, m.keys.SetConfirmed):
		return m.setStatus(models.StatusConfirmed)
	case key.Matches(msg, m.keys.SetCompleted):
		return m.setStatus(models.StatusCompleted)
	case key.Matches(msg, m.keys.SetCancelled):
		return m.setStatus(models.StatusCancelled)
	}
	return m, nil
}

func (m Model) setStatus(status models.BookingStatus) (tea.Model, tea.Cmd) {
	if m.busy != "" {
		return m, nil
	}
	entry, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}
	m.busy = "Updating..."
	return m, tea.Batch(m.updateStatus(entry.ID, status), m.spinner.Tick)
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	if m.draft == nil {
		m.draft = &apiclient.AppointmentForm{}
	}
	m.state = StateCreate
	m.form = newAppointmentForm(m.draft, m.services)
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateCalendar
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submit()
	case huh.StateAborted:
		m.state = StateCalendar
		m.form = nil
	}
	return m, cmd
}

// submit validates locally and only then sends the create request.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if err := m.draft.Validate(m.builder.Location()); err != nil {
		m.setToast(err)
		return m.openForm()
	}
	m.state = StateCalendar
	m.form = nil
	m.busy = "Creating..."
	return m, tea.Batch(m.createBooking(*m.draft), m.spinner.Tick)
}

func (m *Model) setToast(err error) {
	m.toast, m.toastErr = errorMessage(err), true
}

func (m *Model) clampSelection() {
	n := len(m.dayEntries())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func errorMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
