// Package calendar lays bookings out on month, week and day grids.
//
// All bucketing is done on the local calendar day of the builder's
// location: two instants share a cell when their "2006-01-02" strings in
// that location are equal. Week and day views only show the business
// window FirstHour..LastHour; bookings outside it stay visible in the
// month view.
package calendar

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/shutterdesk/studio/internal/models"
)

const (
	GridDays  = 42
	FirstHour = 9
	LastHour  = 18

	dayKeyLayout = "2006-01-02"
)

// Entry is the typed booking shape the grids work on.
type Entry struct {
	ID       uuid.UUID            `json:"id"`
	At       time.Time            `json:"date"`
	Duration int                  `json:"duration"`
	Client   string               `json:"client"`
	Service  string               `json:"service"`
	Location string               `json:"location"`
	Status   models.BookingStatus `json:"status"`
	Color    string               `json:"color"`
}

type Day struct {
	Date    time.Time `json:"date"`
	Key     string    `json:"key"`
	InMonth bool      `json:"inMonth"`
	IsToday bool      `json:"isToday"`
	Entries []Entry   `json:"entries"`
}

type MonthGrid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Days  []Day      `json:"days"`
}

// Weeks splits the 42 cells into 6 rows of 7.
func (g MonthGrid) Weeks() [][]Day {
	weeks := make([][]Day, 0, GridDays/7)
	for i := 0; i+7 <= len(g.Days); i += 7 {
		weeks = append(weeks, g.Days[i:i+7])
	}
	return weeks
}

type HourSlot struct {
	Hour    int     `json:"hour"`
	Entries []Entry `json:"entries"`
}

type DayColumn struct {
	Date    time.Time  `json:"date"`
	Key     string     `json:"key"`
	IsToday bool       `json:"isToday"`
	Slots   []HourSlot `json:"slots"`
}

type WeekGrid struct {
	Start time.Time   `json:"start"`
	Days  []DayColumn `json:"days"`
}

type DayGrid struct {
	DayColumn
}

// View is one rendered grid; exactly one of Month/Week/Day is set.
type View struct {
	Mode     Mode       `json:"mode"`
	Title    string     `json:"title"`
	Timezone string     `json:"timezone"`
	Month    *MonthGrid `json:"month,omitempty"`
	Week     *WeekGrid  `json:"week,omitempty"`
	Day      *DayGrid   `json:"day,omitempty"`
}

type Builder struct {
	loc *time.Location
	now func() time.Time
}

func NewBuilder(loc *time.Location) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{loc: loc, now: time.Now}
}

// WithClock overrides the clock used for IsToday flags.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

func (b *Builder) Location() *time.Location { return b.loc }

func (b *Builder) Build(c Cursor, entries []Entry) View {
	c.Date = c.Date.In(b.loc)
	v := View{Mode: c.Mode, Title: c.Title(), Timezone: b.loc.String()}
	switch c.Mode {
	case ModeWeek:
		w := b.Week(c.Date, entries)
		v.Week = &w
	case ModeDay:
		d := b.Day(c.Date, entries)
		v.Day = &d
	default:
		v.Mode = ModeMonth
		m := b.Month(c.Date, entries)
		v.Month = &m
	}
	return v
}

func (b *Builder) Month(anchor time.Time, entries []Entry) MonthGrid {
	anchor = anchor.In(b.loc)
	index := b.index(entries)
	today := b.DayKey(b.now())

	start := monthGridStart(anchor)
	grid := MonthGrid{Year: anchor.Year(), Month: anchor.Month(), Days: make([]Day, 0, GridDays)}
	for i := 0; i < GridDays; i++ {
		d := start.AddDate(0, 0, i)
		key := d.Format(dayKeyLayout)
		grid.Days = append(grid.Days, Day{
			Date:    d,
			Key:     key,
			InMonth: d.Month() == anchor.Month(),
			IsToday: key == today,
			Entries: nonNil(index[key]),
		})
	}
	return grid
}

func (b *Builder) Week(anchor time.Time, entries []Entry) WeekGrid {
	index := b.index(entries)
	start := StartOfWeek(anchor.In(b.loc))
	grid := WeekGrid{Start: start, Days: make([]DayColumn, 0, 7)}
	for i := 0; i < 7; i++ {
		grid.Days = append(grid.Days, b.column(start.AddDate(0, 0, i), index))
	}
	return grid
}

func (b *Builder) Day(anchor time.Time, entries []Entry) DayGrid {
	return DayGrid{DayColumn: b.column(StartOfDay(anchor.In(b.loc)), b.index(entries))}
}

// DayKey is the local calendar-day string used for bucketing.
func (b *Builder) DayKey(t time.Time) string {
	return t.In(b.loc).Format(dayKeyLayout)
}

// EntriesOn filters entries down to the ones on day's local calendar day.
func (b *Builder) EntriesOn(day time.Time, entries []Entry) []Entry {
	return nonNil(b.index(entries)[b.DayKey(day)])
}

func (b *Builder) column(day time.Time, index map[string][]Entry) DayColumn {
	key := day.Format(dayKeyLayout)
	col := DayColumn{
		Date:    day,
		Key:     key,
		IsToday: key == b.DayKey(b.now()),
		Slots:   make([]HourSlot, 0, LastHour-FirstHour+1),
	}
	byHour := make(map[int][]Entry)
	for _, e := range index[key] {
		byHour[e.At.In(b.loc).Hour()] = append(byHour[e.At.In(b.loc).Hour()], e)
	}
	for _, h := range Hours() {
		col.Slots = append(col.Slots, HourSlot{Hour: h, Entries: nonNil(byHour[h])})
	}
	return col
}

func (b *Builder) index(entries []Entry) map[string][]Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })

	out := make(map[string][]Entry)
	for _, e := range sorted {
		if e.At.IsZero() {
			continue
		}
		key := b.DayKey(e.At)
		out[key] = append(out[key], e)
	}
	return out
}

// Hours lists the displayed business hours, both ends inclusive.
func Hours() []int {
	hours := make([]int, 0, LastHour-FirstHour+1)
	for h := FirstHour; h <= LastHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

func InBusinessHours(t time.Time, loc *time.Location) bool {
	h := t.In(loc).Hour()
	return h >= FirstHour && h <= LastHour
}

func monthGridStart(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return StartOfWeek(first)
}

func nonNil(entries []Entry) []Entry {
	if entries == nil {
		return []Entry{}
	}
	return entries
}
