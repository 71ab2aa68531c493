package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shutterdesk/studio/internal/dto"
	"github.com/shutterdesk/studio/internal/models"
)

type fakeAPI struct {
	*httptest.Server
	hits    map[string]*int32
	created []dto.CreateBookingRequest
}

func newFakeAPI(t *testing.T, bookings string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{hits: map[string]*int32{}}
	count := func(key string) {
		if f.hits[key] == nil {
			f.hits[key] = new(int32)
		}
		atomic.AddInt32(f.hits[key], 1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		count(r.Method + " /api/bookings")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(bookings))
		case http.MethodPost:
			var req dto.CreateBookingRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.created = append(f.created, req)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"` + uuid.NewString() + `","date":"` + req.Date.Format(time.RFC3339) + `","status":"` + req.Status + `","duration":60}`))
		}
	})
	mux.HandleFunc("/api/bookings/stats", func(w http.ResponseWriter, r *http.Request) {
		count("GET /api/bookings/stats")
		_, _ = w.Write([]byte(`{"total":4,"counts":{"confirmed":2,"pending":1,"completed":1,"cancelled":0},"percentages":{"confirmed":50,"pending":25,"completed":25,"cancelled":0}}`))
	})
	mux.HandleFunc("/api/services", func(w http.ResponseWriter, r *http.Request) {
		count(r.Method + " /api/services")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"service name already in use"}`))
	})
	mux.HandleFunc("/api/clients", func(w http.ResponseWriter, r *http.Request) {
		count(r.Method + " /api/clients")
		w.WriteHeader(http.StatusBadGateway)
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAPI) count(key string) int32 {
	if f.hits[key] == nil {
		return 0
	}
	return atomic.LoadInt32(f.hits[key])
}

const twoGoodOneBad = `[
	{"id":"6f1c7c1e-1d7b-4a53-9a53-0c1f8f2a9b01","date":"2025-07-15T18:00:00Z","status":"pending","duration":120,
	 "client":{"name":"Dana","email":"dana@example.com"},"service":{"name":"Family session"}},
	{"id":"6f1c7c1e-1d7b-4a53-9a53-0c1f8f2a9b02","date":"not-a-date","status":"confirmed"},
	{"id":"6f1c7c1e-1d7b-4a53-9a53-0c1f8f2a9b03","date":"2025-07-16T10:00:00Z","status":"confirmed","location":"Studio B"}
]`

func TestBookings_CachedUntilInvalidated(t *testing.T) {
	api := newFakeAPI(t, twoGoodOneBad)
	c := New(api.URL)
	ctx := context.Background()

	first, err := c.Bookings(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Family session", first[0].ServiceName)
	assert.Equal(t, models.StatusPending, first[0].Status)

	_, err = c.Bookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), api.count("GET /api/bookings"))

	c.Cache().Invalidate(KeyBookings)
	_, err = c.Bookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.count("GET /api/bookings"))
}

func TestCreateBooking_InvalidatesBookingsAndAnalytics(t *testing.T) {
	api := newFakeAPI(t, `[]`)
	c := New(api.URL, WithLocation(time.UTC))
	ctx := context.Background()

	_, err := c.Bookings(ctx)
	require.NoError(t, err)
	_, err = c.Stats(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{KeyAnalytics, KeyBookings}, c.Cache().Keys())

	b, err := c.CreateBooking(ctx, AppointmentForm{
		ClientName:  "Dana",
		ClientEmail: "dana@example.com",
		ServiceID:   uuid.NewString(),
		Date:        "2025-07-15",
		Time:        "18:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, b.Status)
	assert.Empty(t, c.Cache().Keys())

	require.Len(t, api.created, 1)
	assert.Equal(t, "confirmed", api.created[0].Status)
	assert.True(t, api.created[0].Date.Equal(time.Date(2025, time.July, 15, 18, 0, 0, 0, time.UTC)))
}

func TestCreateBooking_InvalidFormSendsNothing(t *testing.T) {
	api := newFakeAPI(t, `[]`)
	c := New(api.URL)

	form := AppointmentForm{ClientName: "Dana", Date: "2025-07-15"}
	_, err := c.CreateBooking(context.Background(), form)

	var ferr *FormError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, []string{"clientEmail", "serviceId", "time"}, ferr.Missing)
	assert.Equal(t, int32(0), api.count("POST /api/bookings"))
	assert.Equal(t, "Dana", form.ClientName)
}

func TestAPIError_UsesServerMessage(t *testing.T) {
	api := newFakeAPI(t, `[]`)
	c := New(api.URL)

	_, err := c.CreateService(context.Background(), dto.CreateServiceRequest{Name: "Headshots"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "service name already in use", apiErr.Message)
}

func TestAPIError_GenericTextWithoutBody(t *testing.T) {
	api := newFakeAPI(t, `[]`)
	c := New(api.URL)

	_, err := c.Clients(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestListBookings_FilterBypassesCache(t *testing.T) {
	api := newFakeAPI(t, `[]`)
	c := New(api.URL)
	from := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	_, err := c.ListBookings(context.Background(), BookingFilter{From: &from})
	require.NoError(t, err)
	_, err = c.ListBookings(context.Background(), BookingFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.count("GET /api/bookings"))
	assert.Empty(t, c.Cache().Keys())
}

func TestNew_RequestTimeout(t *testing.T) {
	assert.Equal(t, defaultTimeout, New("http://studio.test").http.Timeout)

	custom := &http.Client{Timeout: time.Second}
	assert.Same(t, custom, New("http://studio.test", WithHTTPClient(custom)).http)
}
