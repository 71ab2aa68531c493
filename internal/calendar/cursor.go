package calendar

import (
	"fmt"
	"strings"
	"time"
)

type Mode string

const (
	ModeMonth Mode = "month"
	ModeWeek  Mode = "week"
	ModeDay   Mode = "day"
)

func ParseMode(raw string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case ModeMonth, ModeWeek, ModeDay:
		return m, nil
	case "":
		return ModeMonth, nil
	}
	return "", fmt.Errorf("unknown calendar view %q", raw)
}

// Cursor is the date the calendar is anchored on plus the active view.
type Cursor struct {
	Date time.Time
	Mode Mode
}

func NewCursor(date time.Time, mode Mode) Cursor {
	return Cursor{Date: StartOfDay(date), Mode: mode}
}

func (c Cursor) Next() Cursor { return c.shift(1) }

func (c Cursor) Prev() Cursor { return c.shift(-1) }

// Today moves the cursor to now without changing the view.
func (c Cursor) Today(now time.Time) Cursor {
	return Cursor{Date: StartOfDay(now.In(c.location())), Mode: c.Mode}
}

func (c Cursor) WithMode(mode Mode) Cursor {
	c.Mode = mode
	return c
}

func (c Cursor) shift(n int) Cursor {
	switch c.Mode {
	case ModeWeek:
		c.Date = c.Date.AddDate(0, 0, 7*n)
	case ModeDay:
		c.Date = c.Date.AddDate(0, 0, n)
	default:
		c.Date = addMonths(c.Date, n)
	}
	return c
}

// Range is the visible window of the cursor: [start, end).
func (c Cursor) Range() (time.Time, time.Time) {
	switch c.Mode {
	case ModeWeek:
		start := StartOfWeek(c.Date)
		return start, start.AddDate(0, 0, 7)
	case ModeDay:
		start := StartOfDay(c.Date)
		return start, start.AddDate(0, 0, 1)
	default:
		start := monthGridStart(c.Date)
		return start, start.AddDate(0, 0, GridDays)
	}
}

func (c Cursor) Title() string {
	switch c.Mode {
	case ModeWeek:
		start := StartOfWeek(c.Date)
		end := start.AddDate(0, 0, 6)
		return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	case ModeDay:
		return c.Date.Format("Monday, January 2, 2006")
	default:
		return c.Date.Format("January 2006")
	}
}

func (c Cursor) location() *time.Location {
	if loc := c.Date.Location(); loc != nil {
		return loc
	}
	return time.Local
}

// addMonths keeps the day of month when the target month has it and
// clamps to the last day otherwise (Jan 31 + 1 month = Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, n, 0)
	day := t.Day()
	if last := daysIn(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}
	return target.AddDate(0, 0, day-1)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}
