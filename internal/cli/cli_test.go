package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shutterdesk/studio/internal/apiclient"
	"github.com/shutterdesk/studio/internal/calendar"
	"github.com/shutterdesk/studio/internal/dto"
	"github.com/shutterdesk/studio/internal/models"
)

func newTestContext(t *testing.T, handler http.HandlerFunc) (*Context, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	out := &bytes.Buffer{}
	return &Context{
		API:      apiclient.New(srv.URL, apiclient.WithLocation(time.UTC)),
		Location: time.UTC,
		Out:      out,
	}, out
}

func TestParseDay(t *testing.T) {
	now := time.Date(2025, time.July, 15, 23, 30, 0, 0, time.UTC)
	loc := time.FixedZone("UTC+2", 2*3600)

	d, err := parseDay("today", loc, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-16", d.Format("2006-01-02"))

	d, err = parseDay("2025-02-01", loc, now)
	require.NoError(t, err)
	assert.Equal(t, loc, d.Location())

	_, err = parseDay("02/01/2025", loc, now)
	assert.Error(t, err)
}

func TestBookingListCmd_SendsRangeAndPrints(t *testing.T) {
	var query map[string]string
	ctx, out := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{"from": r.URL.Query().Get("from"), "to": r.URL.Query().Get("to"), "status": r.URL.Query().Get("status")}
		_, _ = w.Write([]byte(`[{"id":"6f1c7c1e-1d7b-4a53-9a53-0c1f8f2a9b01","date":"2025-07-15T18:00:00Z","status":"pending","duration":120,"location":"Park","totalPrice":350,
			"client":{"name":"Dana"},"service":{"name":"Family session"}}]`))
	})

	cmd := &BookingListCmd{From: "2025-07-01", To: "2025-07-31", Status: "Pending"}
	require.NoError(t, cmd.Run(ctx))

	assert.Equal(t, "2025-07-01T00:00:00Z", query["from"])
	assert.Equal(t, "2025-07-31T23:59:59Z", query["to"])
	assert.Equal(t, "pending", query["status"])
	assert.Contains(t, out.String(), "2025-07-15 18:00")
	assert.Contains(t, out.String(), "Dana · Family session · 120m @ Park")
}

func TestBookingListCmd_RejectsUnknownStatus(t *testing.T) {
	ctx, _ := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s", r.URL)
	})
	err := (&BookingListCmd{Status: "archived"}).Run(ctx)
	assert.Error(t, err)
}

func TestBookingCreateCmd_InvalidFormSendsNothing(t *testing.T) {
	called := false
	ctx, _ := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	err := (&BookingCreateCmd{Client: "Dana", Email: "dana@example.com", Service: "not-an-id", Date: "2025-07-15", Time: "18:00"}).Run(ctx)
	var ferr *apiclient.FormError
	require.True(t, errors.As(err, &ferr))
	assert.Contains(t, ferr.Invalid, "serviceId")
	assert.False(t, called)
}

func TestBookingStatsCmd(t *testing.T) {
	ctx, out := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.StatsResponse{
			Total:       25,
			Counts:      map[models.BookingStatus]int64{"confirmed": 17, "pending": 5, "completed": 2, "cancelled": 1},
			Percentages: map[models.BookingStatus]int{"confirmed": 68, "pending": 20, "completed": 8, "cancelled": 4},
		})
	})
	require.NoError(t, (&BookingStatsCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Bookings: 25")
	assert.Contains(t, out.String(), "68%")
}

func TestCalendarCmd_PrintsMonth(t *testing.T) {
	var gotQuery string
	ctx, out := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		b := calendar.NewBuilder(time.UTC)
		view := b.Build(calendar.NewCursor(time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), calendar.ModeMonth), []calendar.Entry{{
			At: time.Date(2025, time.July, 15, 18, 0, 0, 0, time.UTC), Status: "pending", Client: "Dana", Service: "Family session",
		}})
		_ = json.NewEncoder(w).Encode(view)
	})

	require.NoError(t, (&CalendarCmd{View: "month", Date: "2025-07-15"}).Run(ctx))
	assert.Contains(t, gotQuery, "view=month")
	assert.Contains(t, gotQuery, "date=2025-07-15")
	assert.Contains(t, out.String(), "July 2025")
	assert.Contains(t, out.String(), "2025-07-15 18:00  [pending] Dana · Family session")
}

func TestCalendarCmd_PrintsTimesInStudioZone(t *testing.T) {
	ctx, out := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		b := calendar.NewBuilder(time.UTC)
		view := b.Build(calendar.NewCursor(time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), calendar.ModeDay), []calendar.Entry{{
			At: time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC), Status: "confirmed", Client: "Dana", Service: "Headshots", Duration: 60, Location: "Studio A",
		}})
		_ = json.NewEncoder(w).Encode(view)
	})
	ctx.Location = time.FixedZone("UTC-4", -4*3600)

	require.NoError(t, (&CalendarCmd{View: "day", Date: "2025-07-15"}).Run(ctx))
	assert.Contains(t, out.String(), "(UTC)")
	assert.Contains(t, out.String(), "  10:00  10:00 [confirmed] Dana · Headshots · 60m @ Studio A")
	assert.NotContains(t, out.String(), "06:00 [confirmed]")
}

func TestGridLocation(t *testing.T) {
	fallback := time.FixedZone("UTC+2", 2*3600)

	assert.Equal(t, fallback, gridLocation(calendar.View{}, fallback))
	assert.Equal(t, fallback, gridLocation(calendar.View{Timezone: "Not/AZone"}, fallback))
	assert.Equal(t, "UTC", gridLocation(calendar.View{Timezone: "UTC"}, fallback).String())
}
