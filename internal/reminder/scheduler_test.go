package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souravdey/hospiagent-notify/internal/notify"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordedJob struct {
	key string
	at  time.Time
	fn  func()
}

type recordingRegistry struct {
	jobs []recordedJob
	err  error
}

func (r *recordingRegistry) ScheduleOnce(key string, at time.Time, fn func()) error {
	if r.err != nil {
		return r.err
	}
	r.jobs = append(r.jobs, recordedJob{key: key, at: at, fn: fn})
	return nil
}

type recordedSend struct {
	appt     notify.Appointment
	template string
}

type fakeMailer struct {
	sends  []recordedSend
	result notify.DispatchResult
	panics bool
}

func (m *fakeMailer) SendAppointmentEmail(ctx context.Context, appt notify.Appointment, templateName string) notify.DispatchResult {
	if m.panics {
		panic("mailer exploded")
	}
	m.sends = append(m.sends, recordedSend{appt: appt, template: templateName})
	if m.result.Provider == "" {
		return notify.DispatchResult{OK: true, Provider: "fake"}
	}
	return m.result
}

func newTestScheduler(mailer *fakeMailer, registry *recordingRegistry) *Scheduler {
	return NewScheduler(mailer, registry, fixedClock{now: testNow}, nil, nil)
}

func TestScheduleRemindersFarTerm(t *testing.T) {
	mailer := &fakeMailer{}
	registry := &recordingRegistry{}
	s := newTestScheduler(mailer, registry)

	res := s.ScheduleReminders(context.Background(), timingAt(1500))
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Reminders scheduled successfully", res.Message)

	require.Len(t, registry.jobs, 2)
	appointment := testNow.Add(1500 * time.Minute)
	assert.Contains(t, registry.jobs[0].key, "24hr-Jane-")
	assert.True(t, registry.jobs[0].at.Equal(appointment.Add(-24*time.Hour)))
	assert.Contains(t, registry.jobs[1].key, "1hr-Jane-")
	assert.True(t, registry.jobs[1].at.Equal(appointment.Add(-1*time.Hour)))

	// Nothing sent until jobs fire.
	assert.Empty(t, mailer.sends)

	// Firing a job dispatches the reminder template.
	registry.jobs[0].fn()
	require.Len(t, mailer.sends, 1)
	assert.Equal(t, "reminder", mailer.sends[0].template)
	assert.Equal(t, "jane@example.com", mailer.sends[0].appt.PatientEmail)
}

func TestScheduleRemindersNearTerm(t *testing.T) {
	mailer := &fakeMailer{}
	registry := &recordingRegistry{}
	s := newTestScheduler(mailer, registry)

	res := s.ScheduleReminders(context.Background(), timingAt(700))
	require.True(t, res.Success, res.Error)

	require.Len(t, registry.jobs, 2)
	assert.True(t, registry.jobs[0].at.Equal(testNow.Add(5*time.Minute)), "24h send compressed to now+5m")
	assert.True(t, registry.jobs[1].at.Equal(testNow.Add(700*time.Minute).Add(-time.Hour)))
	assert.Empty(t, mailer.sends)
}

func TestScheduleRemindersInsideOneHour(t *testing.T) {
	mailer := &fakeMailer{}
	registry := &recordingRegistry{}
	s := newTestScheduler(mailer, registry)

	res := s.ScheduleReminders(context.Background(), timingAt(45))
	require.True(t, res.Success, res.Error)

	// No deferred jobs at all: 24h skipped, 1h sent inline before returning.
	assert.Empty(t, registry.jobs)
	require.Len(t, mailer.sends, 1)
	assert.Equal(t, "reminder", mailer.sends[0].template)
}

func TestScheduleRemindersPastAppointment(t *testing.T) {
	mailer := &fakeMailer{}
	registry := &recordingRegistry{}
	s := newTestScheduler(mailer, registry)

	res := s.ScheduleReminders(context.Background(), timingAt(-30))
	require.True(t, res.Success, res.Error)
	assert.Empty(t, registry.jobs)
	assert.Len(t, mailer.sends, 1)
}

func TestScheduleRemindersImmediateDeliveryFailureStillSucceeds(t *testing.T) {
	mailer := &fakeMailer{result: notify.DispatchResult{OK: false, Provider: "ses", Err: "throttled"}}
	registry := &recordingRegistry{}
	s := newTestScheduler(mailer, registry)

	res := s.ScheduleReminders(context.Background(), timingAt(45))
	assert.True(t, res.Success, "delivery failure is fire-and-forget, not a scheduling failure")
}

func TestScheduleRemindersInvalidTiming(t *testing.T) {
	mailer := &fakeMailer{}
	registry := &recordingRegistry{}
	s := newTestScheduler(mailer, registry)

	res := s.ScheduleReminders(context.Background(), AppointmentTiming{Date: "soon", Time: "later"})
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, registry.jobs)
	assert.Empty(t, mailer.sends)
}

func TestScheduleRemindersRegistrationFailure(t *testing.T) {
	mailer := &fakeMailer{}
	registry := &recordingRegistry{err: errors.New("registry full")}
	s := newTestScheduler(mailer, registry)

	res := s.ScheduleReminders(context.Background(), timingAt(1500))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "registry full")
}

func TestScheduleRemindersRecoversFromPanic(t *testing.T) {
	mailer := &fakeMailer{panics: true}
	registry := &recordingRegistry{}
	s := newTestScheduler(mailer, registry)

	res := s.ScheduleReminders(context.Background(), timingAt(45))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "mailer exploded")
}

func TestScheduleRemindersDistinctKeys(t *testing.T) {
	mailer := &fakeMailer{}
	registry := &recordingRegistry{}
	s := newTestScheduler(mailer, registry)

	res := s.ScheduleReminders(context.Background(), timingAt(1500))
	require.True(t, res.Success)
	require.Len(t, registry.jobs, 2)
	assert.NotEqual(t, registry.jobs[0].key, registry.jobs[1].key)
}
