package calendar

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shutterdesk/studio/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func entryAt(at time.Time) Entry {
	return Entry{ID: uuid.New(), At: at, Duration: 60, Status: models.StatusPending, Color: models.StatusPending.Color()}
}

func countIn(days []Day, id uuid.UUID) int {
	n := 0
	for _, d := range days {
		for _, e := range d.Entries {
			if e.ID == id {
				n++
			}
		}
	}
	return n
}

func countSlots(cols []DayColumn, id uuid.UUID) int {
	n := 0
	for _, c := range cols {
		for _, s := range c.Slots {
			for _, e := range s.Entries {
				if e.ID == id {
					n++
				}
			}
		}
	}
	return n
}

func TestMonth_AlwaysFortyTwoCellsStartingSunday(t *testing.T) {
	locs := []*time.Location{time.UTC}
	if ny, err := time.LoadLocation("America/New_York"); err == nil {
		locs = append(locs, ny)
	}

	for _, loc := range locs {
		b := NewBuilder(loc)
		for year := 1999; year <= 2031; year++ {
			for month := time.January; month <= time.December; month++ {
				grid := b.Month(time.Date(year, month, 15, 12, 0, 0, 0, loc), nil)
				require.Len(t, grid.Days, GridDays, "%d-%02d", year, month)
				assert.Equal(t, time.Sunday, grid.Days[0].Date.Weekday(), "%d-%02d", year, month)
				assert.Equal(t, 1, firstInMonth(grid).Date.Day(), "%d-%02d", year, month)
				for i := 1; i < len(grid.Days); i++ {
					prev := grid.Days[i-1].Date
					assert.Equal(t, prev.AddDate(0, 0, 1).Format("2006-01-02"), grid.Days[i].Key)
				}
			}
		}
	}
}

func firstInMonth(g MonthGrid) Day {
	for _, d := range g.Days {
		if d.InMonth {
			return d
		}
	}
	return Day{}
}

func TestMonth_WeeksSplitsIntoSixRows(t *testing.T) {
	grid := NewBuilder(time.UTC).Month(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), nil)
	weeks := grid.Weeks()
	require.Len(t, weeks, 6)
	for _, w := range weeks {
		assert.Len(t, w, 7)
		assert.Equal(t, time.Sunday, w[0].Date.Weekday())
	}
}

func TestMonth_BucketsByLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	b := NewBuilder(loc)

	// 2025-07-16T03:00Z is still the 15th in UTC-7.
	late := entryAt(time.Date(2025, time.July, 16, 3, 0, 0, 0, time.UTC))
	grid := b.Month(time.Date(2025, time.July, 1, 0, 0, 0, 0, loc), []Entry{late})

	assert.Equal(t, 1, countIn(grid.Days, late.ID))
	for _, d := range grid.Days {
		if d.Key == "2025-07-15" {
			require.Len(t, d.Entries, 1)
			assert.Equal(t, late.ID, d.Entries[0].ID)
		}
	}
}

func TestMonth_ZeroDatesAreSkipped(t *testing.T) {
	b := NewBuilder(time.UTC)
	grid := b.Month(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), []Entry{{ID: uuid.New()}})
	for _, d := range grid.Days {
		assert.Empty(t, d.Entries)
	}
}

func TestMonth_TodayFlag(t *testing.T) {
	now := time.Date(2025, time.July, 4, 10, 0, 0, 0, time.UTC)
	grid := NewBuilder(time.UTC).WithClock(fixedClock(now)).Month(now, nil)

	today := 0
	for _, d := range grid.Days {
		if d.IsToday {
			today++
			assert.Equal(t, "2025-07-04", d.Key)
		}
	}
	assert.Equal(t, 1, today)
}

func TestWeek_HourWindow(t *testing.T) {
	b := NewBuilder(time.UTC)
	inside := entryAt(time.Date(2025, time.July, 15, 9, 30, 0, 0, time.UTC))
	lastSlot := entryAt(time.Date(2025, time.July, 15, 18, 45, 0, 0, time.UTC))
	early := entryAt(time.Date(2025, time.July, 15, 7, 0, 0, 0, time.UTC))
	evening := entryAt(time.Date(2025, time.July, 15, 19, 0, 0, 0, time.UTC))
	entries := []Entry{inside, lastSlot, early, evening}

	week := b.Week(time.Date(2025, time.July, 17, 0, 0, 0, 0, time.UTC), entries)
	require.Len(t, week.Days, 7)
	assert.Equal(t, time.Sunday, week.Start.Weekday())
	assert.Equal(t, "2025-07-13", week.Days[0].Key)
	for _, col := range week.Days {
		require.Len(t, col.Slots, 10)
		assert.Equal(t, FirstHour, col.Slots[0].Hour)
		assert.Equal(t, LastHour, col.Slots[len(col.Slots)-1].Hour)
	}

	assert.Equal(t, 1, countSlots(week.Days, inside.ID))
	assert.Equal(t, 1, countSlots(week.Days, lastSlot.ID))
	assert.Equal(t, 0, countSlots(week.Days, early.ID))
	assert.Equal(t, 0, countSlots(week.Days, evening.ID))

	// Still on the month grid.
	month := b.Month(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), entries)
	assert.Equal(t, 1, countIn(month.Days, early.ID))
	assert.Equal(t, 1, countIn(month.Days, evening.ID))
}

func TestDay_ListsEntriesPerHour(t *testing.T) {
	b := NewBuilder(time.UTC)
	first := entryAt(time.Date(2025, time.July, 15, 10, 15, 0, 0, time.UTC))
	second := entryAt(time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC))
	second.Service = "Headshots"
	second.Location = "Studio B"
	other := entryAt(time.Date(2025, time.July, 16, 10, 0, 0, 0, time.UTC))

	day := b.Day(time.Date(2025, time.July, 15, 23, 0, 0, 0, time.UTC), []Entry{first, second, other})
	assert.Equal(t, "2025-07-15", day.Key)
	require.Len(t, day.Slots, 10)

	slot := day.Slots[10-FirstHour]
	require.Len(t, slot.Entries, 2)
	assert.Equal(t, second.ID, slot.Entries[0].ID, "entries are ordered by time")
	assert.Equal(t, "Headshots", slot.Entries[0].Service)
	assert.Equal(t, first.ID, slot.Entries[1].ID)
}

func TestScenario_PendingEveningBooking(t *testing.T) {
	b := NewBuilder(time.UTC)
	booking := models.Booking{
		ID:       uuid.New(),
		Date:     time.Date(2025, time.July, 15, 18, 0, 0, 0, time.UTC),
		Duration: 120,
		Status:   models.StatusPending,
		Service:  &models.Service{Name: "Family session"},
		Client:   &models.Client{Name: "Dana"},
	}

	cursor := NewCursor(time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC), ModeMonth).Next()
	view := b.Build(cursor, FromBookings([]models.Booking{booking}))
	require.NotNil(t, view.Month)
	assert.Equal(t, time.July, view.Month.Month)
	assert.Equal(t, "UTC", view.Timezone)

	var cell Day
	for _, d := range view.Month.Days {
		if d.Key == "2025-07-15" {
			cell = d
		}
	}
	require.Len(t, cell.Entries, 1)
	assert.Equal(t, "yellow", cell.Entries[0].Color)

	view = b.Build(NewCursor(time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), ModeWeek), FromBookings([]models.Booking{booking}))
	require.NotNil(t, view.Week)
	col := view.Week.Days[2]
	assert.Equal(t, "2025-07-15", col.Key)
	row := col.Slots[18-FirstHour]
	assert.Equal(t, 18, row.Hour)
	require.Len(t, row.Entries, 1)
	assert.Equal(t, "Family session", row.Entries[0].Service)

	booking.Status = models.StatusConfirmed
	view = b.Build(NewCursor(booking.Date, ModeDay), FromBookings([]models.Booking{booking}))
	require.NotNil(t, view.Day)
	got := view.Day.Slots[18-FirstHour].Entries[0]
	assert.Equal(t, "green", got.Color)
	assert.True(t, got.At.Equal(booking.Date))
	assert.Equal(t, "Family session", got.Service)
}

func TestEntriesOn(t *testing.T) {
	b := NewBuilder(time.UTC)
	a := entryAt(time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC))
	c := entryAt(time.Date(2025, time.March, 4, 8, 0, 0, 0, time.UTC))
	got := b.EntriesOn(time.Date(2025, time.March, 3, 22, 0, 0, 0, time.UTC), []Entry{c, a})
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}
