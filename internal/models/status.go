package models

import (
	"fmt"
	"strings"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// AllStatuses is the closed set, in display order.
var AllStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
	return s, nil
}

// Color is the badge color used by every calendar rendering.
func (s BookingStatus) Color() string {
	switch s {
	case StatusPending:
		return "yellow"
	case StatusConfirmed:
		return "green"
	case StatusCompleted:
		return "blue"
	case StatusCancelled:
		return "red"
	}
	return "gray"
}

// StatusMachine describes which status changes are allowed. Every valid
// status may move to every other valid status, including itself; nothing
// transitions on its own.
type StatusMachine struct{}

func (StatusMachine) CanTransition(from, to BookingStatus) bool {
	return from.Valid() && to.Valid()
}

func (m StatusMachine) Transition(from, to BookingStatus) (BookingStatus, error) {
	if !m.CanTransition(from, to) {
		return from, fmt.Errorf("cannot move booking from %q to %q", from, to)
	}
	return to, nil
}

// StatusCounts aggregates bookings per status for dashboards.
type StatusCounts map[BookingStatus]int64

func (c StatusCounts) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}

// Percent returns the integer share of s, rounded half up. Zero when empty.
func (c StatusCounts) Percent(s BookingStatus) int {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return int((c[s]*100 + total/2) / total)
}
