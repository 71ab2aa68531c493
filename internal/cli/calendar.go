package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shutterdesk/studio/internal/calendar"
)

type CalendarCmd struct {
	View string `help:"Grid to render: month, week or day." enum:"month,week,day" default:"month"`
	Date string `help:"Date to anchor on (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	mode, err := calendar.ParseMode(c.View)
	if err != nil {
		return err
	}
	day, err := parseDay(c.Date, ctx.Location, time.Now())
	if err != nil {
		return err
	}

	view, err := ctx.API.Calendar(context.Background(), mode, day)
	if err != nil {
		return err
	}

	// Slots are bucketed in the studio's zone, so times print in that zone too.
	zone := gridLocation(view, ctx.Location)
	if zone.String() != ctx.Location.String() {
		ctx.printf("%s (%s)\n\n", view.Title, zone)
	} else {
		ctx.printf("%s\n\n", view.Title)
	}
	switch {
	case view.Month != nil:
		printMonth(ctx, *view.Month, zone)
	case view.Week != nil:
		for _, col := range view.Week.Days {
			printColumn(ctx, col, col.Date.In(zone).Format("Mon Jan 2"), zone)
		}
	case view.Day != nil:
		printColumn(ctx, view.Day.DayColumn, "", zone)
	}
	return nil
}

func gridLocation(view calendar.View, fallback *time.Location) *time.Location {
	if view.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(view.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}

func printMonth(ctx *Context, grid calendar.MonthGrid, zone *time.Location) {
	ctx.printf(" Sun  Mon  Tue  Wed  Thu  Fri  Sat\n")
	for _, week := range grid.Weeks() {
		var row strings.Builder
		for _, day := range week {
			mark := " "
			switch {
			case day.IsToday:
				mark = "*"
			case len(day.Entries) > 0:
				mark = fmt.Sprint(min(len(day.Entries), 9))
			}
			if day.InMonth {
				fmt.Fprintf(&row, " %2d%s ", day.Date.Day(), mark)
			} else {
				fmt.Fprintf(&row, "  .%s ", mark)
			}
		}
		ctx.printf("%s\n", strings.TrimRight(row.String(), " "))
	}

	ctx.printf("\n")
	for _, day := range grid.Days {
		if !day.InMonth {
			continue
		}
		for _, e := range day.Entries {
			ctx.printf("%s %s  [%s] %s · %s\n",
				day.Key, e.At.In(zone).Format("15:04"), e.Status, e.Client, e.Service)
		}
	}
}

func printColumn(ctx *Context, col calendar.DayColumn, heading string, zone *time.Location) {
	if heading != "" {
		ctx.printf("%s\n", heading)
	}
	for _, slot := range col.Slots {
		if len(slot.Entries) == 0 {
			if heading == "" {
				ctx.printf("  %02d:00\n", slot.Hour)
			}
			continue
		}
		for _, e := range slot.Entries {
			ctx.printf("  %02d:00  %s [%s] %s · %s · %dm @ %s\n",
				slot.Hour, e.At.In(zone).Format("15:04"), e.Status, e.Client, e.Service, e.Duration, e.Location)
		}
	}
}
