package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/souravdey/hospiagent-notify/internal/notify"
	"github.com/souravdey/hospiagent-notify/internal/notify/templates"
	"github.com/souravdey/hospiagent-notify/internal/observability/metrics"
	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

// Clock abstracts wall-clock time so the decision table is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().In(Location()) }

// SystemClock returns a Clock reading real time in IST.
func SystemClock() Clock { return systemClock{} }

// JobRegistry registers fire-once deferred jobs against wall-clock time.
// There is no cancellation: once registered, a job fires or the process
// exits first.
type JobRegistry interface {
	ScheduleOnce(key string, at time.Time, fn func()) error
}

// Mailer dispatches one rendered appointment email.
type Mailer interface {
	SendAppointmentEmail(ctx context.Context, appt notify.Appointment, templateName string) notify.DispatchResult
}

// Result reports the outcome of one scheduling call.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Scheduler registers reminder emails for newly created appointments.
// Scheduling is best-effort: failures are folded into the Result and never
// propagate, so a bad appointment cannot block appointment creation or
// scheduling for other appointments.
type Scheduler struct {
	mailer  Mailer
	jobs    JobRegistry
	clock   Clock
	metrics *metrics.ReminderMetrics
	logger  *logging.Logger
}

// NewScheduler creates a reminder scheduler. clock and m may be nil.
func NewScheduler(mailer Mailer, jobs JobRegistry, clock Clock, m *metrics.ReminderMetrics, logger *logging.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{mailer: mailer, jobs: jobs, clock: clock, metrics: m, logger: logger}
}

// ScheduleReminders decides when the 24-hour and 1-hour reminders for the
// appointment should fire and registers deferred jobs for them. When the
// 1-hour window has already passed the reminder is sent inline before
// returning. The caller does not block on deferred jobs.
func (s *Scheduler) ScheduleReminders(ctx context.Context, timing AppointmentTiming) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("reminder scheduling panicked", "patient", timing.PatientName, "panic", r)
			result = Result{Success: false, Error: fmt.Sprint(r)}
		}
	}()

	now := s.clock.Now()
	plan, err := BuildPlan(timing, now)
	if err != nil {
		s.logger.Error("error scheduling reminders", "error", err, "patient", timing.PatientName)
		return Result{Success: false, Error: err.Error()}
	}

	s.logger.Info("appointment timing computed",
		"patient", timing.PatientName,
		"minutes_until", plan.MinutesUntil,
	)

	appt := notify.Appointment{
		Date:         timing.Date,
		Time:         timing.Time,
		Type:         timing.Type,
		PatientName:  timing.PatientName,
		PatientEmail: timing.PatientEmail,
	}

	// 24-hour reminder first, then 1-hour; firing order is governed purely
	// by wall-clock delay, not registration order.
	if plan.Skip24h {
		s.logger.Info("skipping 24-hour reminder to avoid duplicate emails", "patient", timing.PatientName)
		s.metrics.ObserveSkipped("24hr")
	} else {
		if err := s.register(ctx, "24hr", plan.Fire24h, now, appt); err != nil {
			s.logger.Error("error scheduling reminders", "error", err, "patient", timing.PatientName)
			return Result{Success: false, Error: err.Error()}
		}
	}

	if plan.Immediate1h {
		s.logger.Info("sending immediate 1-hour reminder", "patient", timing.PatientName)
		res := s.mailer.SendAppointmentEmail(ctx, appt, templates.Reminder)
		s.metrics.ObserveEmail(res.Provider, res.OK)
		if !res.OK {
			// Delivery failure is logged but does not fail the scheduling
			// call, matching the fire-and-forget policy of deferred jobs.
			s.logger.Error("immediate 1-hour reminder failed", "patient", timing.PatientName, "provider", res.Provider, "error", res.Err)
		}
	} else {
		if err := s.register(ctx, "1hr", plan.Fire1h, now, appt); err != nil {
			s.logger.Error("error scheduling reminders", "error", err, "patient", timing.PatientName)
			return Result{Success: false, Error: err.Error()}
		}
	}

	return Result{Success: true, Message: "Reminders scheduled successfully"}
}

// register books one deferred reminder job. Keys embed the patient name and
// a fresh timestamp so repeated calls for the same patient never collide.
func (s *Scheduler) register(ctx context.Context, kind string, at time.Time, now time.Time, appt notify.Appointment) error {
	key := fmt.Sprintf("%s-%s-%d", kind, appt.PatientName, now.UnixMilli())
	err := s.jobs.ScheduleOnce(key, at, func() {
		s.logger.Info("sending reminder", "kind", kind, "patient", appt.PatientName)
		res := s.mailer.SendAppointmentEmail(context.WithoutCancel(ctx), appt, templates.Reminder)
		s.metrics.ObserveEmail(res.Provider, res.OK)
		if !res.OK {
			s.logger.Error("reminder delivery failed", "kind", kind, "patient", appt.PatientName, "provider", res.Provider, "error", res.Err)
		}
	})
	if err != nil {
		return fmt.Errorf("reminder: register %s job: %w", kind, err)
	}
	s.metrics.ObserveScheduled(kind, "deferred")
	s.logger.Info("scheduled reminder", "kind", kind, "patient", appt.PatientName, "at", at.Format(time.RFC3339))
	return nil
}
