package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shutterdesk/studio/internal/apiclient"
	"github.com/shutterdesk/studio/internal/models"
)

type Context struct {
	API      *apiclient.Client
	Location *time.Location
	Out      io.Writer
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// parseDay accepts YYYY-MM-DD or "today", in the studio location.
func parseDay(raw string, loc *time.Location, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "today") {
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation(apiclient.FormDateLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or 'today'", raw)
	}
	return t, nil
}

func formatBooking(b apiclient.Booking, loc *time.Location) string {
	service := b.ServiceName
	if service == "" {
		service = "unknown service"
	}
	client := b.ClientName
	if client == "" {
		client = "unknown client"
	}
	return fmt.Sprintf("%s  %-10s %s · %s · %dm @ %s  $%.2f  %s",
		b.Date.In(loc).Format("2006-01-02 15:04"),
		"["+string(b.Status)+"]",
		client, service, b.Duration, b.Location, b.TotalPrice, b.ID)
}

func statusList() string {
	names := make([]string, 0, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, "|")
}
