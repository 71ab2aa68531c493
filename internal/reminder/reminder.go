// Package reminder texts clients the day before a confirmed shoot.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shutterdesk/studio/internal/models"
	"github.com/shutterdesk/studio/internal/repository"
)

type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type BookingLister interface {
	List(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error)
}

type Job struct {
	bookings BookingLister
	sender   Sender
	loc      *time.Location
	log      *slog.Logger
	now      func() time.Time
	timeout  time.Duration
}

func NewJob(bookings BookingLister, sender Sender, loc *time.Location, log *slog.Logger) *Job {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &Job{
		bookings: bookings,
		sender:   sender,
		loc:      loc,
		log:      log.With(slog.String("component", "reminders")),
		now:      time.Now,
		timeout:  2 * time.Minute,
	}
}

// Result summarizes one run.
type Result struct {
	Due     int
	Sent    int
	NoPhone int
	Failed  int
}

// RunOnce reminds every client with a confirmed booking tomorrow, studio time.
// Booking status is never touched.
func (j *Job) RunOnce(ctx context.Context) (Result, error) {
	y, m, d := j.now().In(j.loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, j.loc)
	from := today.AddDate(0, 0, 1)
	to := today.AddDate(0, 0, 2).Add(-time.Microsecond)
	status := models.StatusConfirmed

	due, err := j.bookings.List(ctx, repository.BookingFilter{From: &from, To: &to, Status: &status})
	if err != nil {
		return Result{}, fmt.Errorf("list bookings due: %w", err)
	}

	res := Result{Due: len(due)}
	for i := range due {
		b := &due[i]
		if b.Client == nil || b.Client.Phone == "" {
			res.NoPhone++
			continue
		}
		if err := j.sender.Send(ctx, b.Client.Phone, j.Message(b)); err != nil {
			res.Failed++
			j.log.Warn("reminder failed", slog.String("booking_id", b.ID.String()), slog.Any("err", err))
			continue
		}
		res.Sent++
	}
	return res, nil
}

func (j *Job) Message(b *models.Booking) string {
	name, service := "there", "session"
	if b.Client != nil && b.Client.Name != "" {
		name = b.Client.Name
	}
	if b.Service != nil && b.Service.Name != "" {
		service = b.Service.Name
	}
	at := b.Date.In(j.loc)
	return fmt.Sprintf("Hi %s, this is a reminder of your %s on %s at %s (%s). Reply to this message if you need to reschedule.",
		name, service, at.Format("Mon Jan 2"), at.Format("3:04 PM"), b.Location)
}

// Schedule registers the job on a cron running in the studio location. The
// caller starts and stops the returned scheduler.
func (j *Job) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(j.loc))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		res, err := j.RunOnce(ctx)
		if err != nil {
			j.log.Error("reminder run failed", slog.Any("err", err))
			return
		}
		j.log.Info("reminder run finished",
			slog.Int("due", res.Due),
			slog.Int("sent", res.Sent),
			slog.Int("no_phone", res.NoPhone),
			slog.Int("failed", res.Failed),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("reminder schedule %q: %w", spec, err)
	}
	return c, nil
}
