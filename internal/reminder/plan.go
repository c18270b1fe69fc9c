// Package reminder schedules appointment reminder emails. Two reminders
// exist per appointment: one ideally 24 hours before, one ideally 1 hour
// before. Jobs are in-process, fire-once, and non-persistent; they do not
// survive a restart and cannot be cancelled once registered.
package reminder

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// All appointment instants and "now" comparisons are interpreted in India
// Standard Time regardless of server locale.
const locationName = "Asia/Kolkata"

var istOnce = sync.OnceValue(func() *time.Location {
	loc, err := time.LoadLocation(locationName)
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
})

// Location returns the fixed reference time zone for reminder scheduling.
func Location() *time.Location {
	return istOnce()
}

// ErrInvalidTiming indicates the appointment date/time could not be parsed.
var ErrInvalidTiming = errors.New("reminder: invalid appointment timing")

// AppointmentTiming identifies one appointment for reminder purposes.
// Constructed fresh for every scheduling request and never mutated.
type AppointmentTiming struct {
	Date         string // YYYY-MM-DD
	Time         string // HH:MM[:SS], 24-hour
	Type         string
	PatientName  string
	PatientEmail string
}

// Instant combines Date and Time into a single absolute instant in IST.
func (t AppointmentTiming) Instant() (time.Time, error) {
	raw := t.Date + " " + t.Time
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if instant, err := time.ParseInLocation(layout, raw, Location()); err == nil {
			return instant, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTiming, raw)
}

// Plan is the derived reminder schedule for one appointment. It is computed
// once per scheduling call and never stored.
type Plan struct {
	MinutesUntil float64

	// 24-hour reminder: either a firing instant or skipped entirely.
	Fire24h time.Time
	Skip24h bool

	// 1-hour reminder: either a firing instant or an immediate synchronous
	// send.
	Fire1h      time.Time
	Immediate1h bool
}

// BuildPlan computes the reminder schedule for the appointment relative to
// now. The decision table:
//
//   - 24h away or more: 24h reminder fires at exactly appointment-24h.
//   - under 24h but over 1h away: the true 24h-before instant has passed, so
//     the 24h reminder is compressed to fire 5 minutes from now. The >60
//     check doubles as the guard against colliding with the 1h reminder.
//   - 1h away or less: 24h reminder skipped to avoid duplicate emails.
//   - over 1h away: 1h reminder fires at exactly appointment-1h.
//   - 1h away or less: 1h reminder is sent immediately and synchronously.
//
// MinutesUntil may be negative (appointment already passed); that follows
// the same branches as <=60, so an immediate "reminder" still goes out for a
// past appointment. Known quirk, kept deliberately.
func BuildPlan(timing AppointmentTiming, now time.Time) (Plan, error) {
	appointment, err := timing.Instant()
	if err != nil {
		return Plan{}, err
	}
	now = now.In(Location())

	plan := Plan{
		MinutesUntil: float64(appointment.Sub(now).Milliseconds()) / (1000 * 60),
	}

	if plan.MinutesUntil < 1440 {
		if plan.MinutesUntil > 60 {
			plan.Fire24h = now.Add(5 * time.Minute)
		} else {
			plan.Skip24h = true
		}
	} else {
		plan.Fire24h = appointment.Add(-24 * time.Hour)
	}

	if plan.MinutesUntil > 60 {
		plan.Fire1h = appointment.Add(-1 * time.Hour)
	} else {
		plan.Immediate1h = true
	}

	return plan, nil
}
