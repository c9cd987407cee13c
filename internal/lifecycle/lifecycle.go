// Package lifecycle implements the appointment status state machine.
//
// Statuses move waiting -> ongoing -> completed, with canceled reachable
// from any non-terminal state via an explicit action. Automatic transitions
// are evaluated lazily at read time against the clinic wall clock; there is
// no background sweep, so a stored status is only as fresh as the last
// listing request.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/calmind-app/calmind-backend/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// ParseClock parses an HH:MM:SS or HH:MM wall-clock string.
func ParseClock(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}

// NormalizeClock returns s in HH:MM:SS form.
func NormalizeClock(s string) (string, error) {
	t, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return t.Format(TimeLayout), nil
}

// Window returns the start and end instants of the appointment in loc.
func Window(a *models.Appointment, loc *time.Location) (start, end time.Time, err error) {
	day, err := time.ParseInLocation(DateLayout, a.Date, loc)
	if err != nil {
		return start, end, fmt.Errorf("invalid appointment date %q: %w", a.Date, err)
	}
	st, err := ParseClock(a.StartTime)
	if err != nil {
		return start, end, fmt.Errorf("invalid start time %q: %w", a.StartTime, err)
	}
	et, err := ParseClock(a.EndTime)
	if err != nil {
		return start, end, fmt.Errorf("invalid end time %q: %w", a.EndTime, err)
	}
	start = day.Add(time.Duration(st.Hour())*time.Hour + time.Duration(st.Minute())*time.Minute + time.Duration(st.Second())*time.Second)
	end = day.Add(time.Duration(et.Hour())*time.Hour + time.Duration(et.Minute())*time.Minute + time.Duration(et.Second())*time.Second)
	return start, end, nil
}

// Next returns the status the appointment should hold at now, and whether
// that differs from the stored one. Terminal statuses never change, and a
// malformed date or time field leaves the status as is.
func Next(a *models.Appointment, now time.Time, loc *time.Location) (string, bool) {
	if models.TerminalStatus(a.Status) {
		return a.Status, false
	}

	start, end, err := Window(a, loc)
	if err != nil {
		return a.Status, false
	}

	switch {
	case now.After(end):
		return models.StatusCompleted, a.Status != models.StatusCompleted
	case a.Status == models.StatusWaiting && !now.Before(start):
		return models.StatusOngoing, true
	default:
		return a.Status, false
	}
}
