//go:build integration

package integration

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shutterdesk/studio/internal/calendar"
	"github.com/shutterdesk/studio/internal/consumer"
	"github.com/shutterdesk/studio/internal/events"
	"github.com/shutterdesk/studio/internal/models"
	"github.com/shutterdesk/studio/internal/repository"
	"github.com/shutterdesk/studio/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestService(t *testing.T, name string, price float64, duration int) *models.Service {
	t.Helper()
	svc := &models.Service{Name: name, Price: price, Duration: duration, Category: "Portrait", IsActive: true}
	require.NoError(t, testDB.Create(svc).Error)
	return svc
}

func newBookingService() service.BookingService {
	return service.NewBookingService(
		repository.NewBookingRepository(testDB),
		repository.NewClientRepository(testDB),
		repository.NewServiceRepository(testDB),
		nil,
		time.UTC,
		nil,
	)
}

func countClients(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, testDB.Model(&models.Client{}).Count(&n).Error)
	return n
}

// New email creates one client; the same email (any case) reuses it.
func TestCreateBooking_ResolvesClientByEmail(t *testing.T) {
	cleanTables()
	svc := newBookingService()
	family := createTestService(t, "Family session", 350, 120)

	first, err := svc.CreateBooking(t.Context(), service.CreateBookingInput{
		ClientName:  "Dana Reyes",
		ClientEmail: "dana@example.com",
		ServiceID:   family.ID,
		Date:        time.Date(2025, time.July, 15, 18, 0, 0, 0, time.UTC),
		Status:      models.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countClients(t))
	assert.Equal(t, models.ClientBooked, first.Client.Status)
	assert.Equal(t, 120, first.Duration)
	assert.InDelta(t, 350, first.TotalPrice, 0.001)
	assert.Equal(t, service.DefaultLocation, first.Location)

	second, err := svc.CreateBooking(t.Context(), service.CreateBookingInput{
		ClientName:  "Someone Else",
		ClientEmail: "  DANA@Example.com ",
		ClientPhone: "+15550100",
		ServiceID:   family.ID,
		Date:        time.Date(2025, time.August, 2, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countClients(t))
	assert.Equal(t, first.ClientID, second.ClientID)
	assert.Equal(t, models.StatusConfirmed, second.Status)

	stored, err := repository.NewClientRepository(testDB).FindByID(t.Context(), first.ClientID)
	require.NoError(t, err)
	assert.Equal(t, "Dana Reyes", stored.Name, "name is never overwritten")
	assert.Equal(t, "+15550100", stored.Phone)
	assert.Equal(t, models.ClientRepeat, stored.Status)
}

// Concurrent bookings for an existing client serialize on the client row.
func TestCreateBooking_ConcurrentExistingClient(t *testing.T) {
	cleanTables()
	svc := newBookingService()
	headshots := createTestService(t, "Headshots", 150, 30)
	require.NoError(t, testDB.Create(&models.Client{Name: "Sam", Email: "sam@example.com", Status: models.ClientLead}).Error)

	attempts := 10
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := svc.CreateBooking(t.Context(), service.CreateBookingInput{
				ClientName:  "Sam",
				ClientEmail: "sam@example.com",
				ServiceID:   headshots.ID,
				Date:        time.Date(2025, time.September, 1, 9+i%8, 0, 0, 0, time.UTC),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	assert.Equal(t, int64(1), countClients(t))
	var bookings int64
	testDB.Model(&models.Booking{}).Count(&bookings)
	assert.Equal(t, int64(attempts), bookings)
}

func TestListBetween_InclusiveAndOrdered(t *testing.T) {
	cleanTables()
	svc := newBookingService()
	mini := createTestService(t, "Mini session", 90, 20)

	start := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.July, 31, 23, 59, 0, 0, time.UTC)
	dates := []time.Time{
		end,
		start,
		time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC),
		start.Add(-time.Minute),
		end.Add(time.Minute),
	}
	for i, d := range dates {
		_, err := svc.CreateBooking(t.Context(), service.CreateBookingInput{
			ClientName:  fmt.Sprintf("Client %d", i),
			ClientEmail: fmt.Sprintf("client%d@example.com", i),
			ServiceID:   mini.ID,
			Date:        d,
		})
		require.NoError(t, err)
	}

	got, err := svc.ListBetween(t.Context(), start, end)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Date.Equal(start))
	assert.True(t, got[2].Date.Equal(end))
	for _, b := range got {
		require.NotNil(t, b.Client)
		require.NotNil(t, b.Service)
		assert.Equal(t, "Mini session", b.Service.Name)
	}

	_, err = svc.ListBetween(t.Context(), end, start)
	assert.ErrorIs(t, err, service.ErrInvalidRange)
}

// The scenario from the calendar: a pending evening booking, confirmed
// later, keeps every other field.
func TestUpdateStatus_StoresExactlyRequested(t *testing.T) {
	cleanTables()
	svc := newBookingService()
	family := createTestService(t, "Family session", 350, 120)

	created, err := svc.CreateBooking(t.Context(), service.CreateBookingInput{
		ClientName:  "Dana",
		ClientEmail: "dana@example.com",
		ServiceID:   family.ID,
		Date:        time.Date(2025, time.July, 15, 18, 0, 0, 0, time.UTC),
		Notes:       "Bring the dog",
		Status:      models.StatusPending,
	})
	require.NoError(t, err)

	view, err := svc.Calendar(t.Context(), calendar.NewCursor(created.Date, calendar.ModeWeek))
	require.NoError(t, err)
	require.NotNil(t, view.Week)
	slot := view.Week.Days[2].Slots[18-calendar.FirstHour]
	require.Len(t, slot.Entries, 1)
	assert.Equal(t, "yellow", slot.Entries[0].Color)

	for _, status := range []models.BookingStatus{models.StatusConfirmed, models.StatusCancelled, models.StatusPending, models.StatusConfirmed} {
		updated, err := svc.UpdateStatus(t.Context(), created.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	got, err := svc.GetBooking(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, "green", got.Status.Color())
	assert.True(t, got.Date.Equal(created.Date))
	assert.Equal(t, created.Notes, got.Notes)
	assert.Equal(t, created.Duration, got.Duration)
	assert.Equal(t, created.Location, got.Location)
	assert.InDelta(t, created.TotalPrice, got.TotalPrice, 0.001)

	counts, err := svc.Stats(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.StatusConfirmed])
	assert.Equal(t, int64(0), counts[models.StatusPending])
}

func TestLedgerConsumer_CreditsCompletedBookings(t *testing.T) {
	cleanTables()
	svc := newBookingService()
	clients := repository.NewClientRepository(testDB)
	ledger := consumer.NewLedgerConsumer(clients, nil)
	family := createTestService(t, "Family session", 350, 120)

	b, err := svc.CreateBooking(t.Context(), service.CreateBookingInput{
		ClientName:  "Dana",
		ClientEmail: "dana@example.com",
		ServiceID:   family.ID,
		Date:        time.Date(2025, time.July, 15, 18, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, ledger.Apply(t.Context(), events.Created(b, time.Now())))
	b.Status = models.StatusCompleted
	require.NoError(t, ledger.Apply(t.Context(), events.StatusChanged(b, models.StatusConfirmed, time.Now())))

	client, err := clients.FindByID(t.Context(), b.ClientID)
	require.NoError(t, err)
	assert.InDelta(t, 350, client.LifetimeValue, 0.001)
}
