package notify

import (
	"context"
	"fmt"

	"github.com/souravdey/hospiagent-notify/internal/notify/templates"
	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

// Appointment carries the details substituted into an appointment email.
type Appointment struct {
	Date         string // YYYY-MM-DD
	Time         string // HH:MM[:SS], 24-hour
	Type         string
	PatientName  string
	PatientEmail string
}

// DispatchResult is the normalized outcome of one email-send attempt,
// regardless of which backend transport produced it.
type DispatchResult struct {
	OK       bool
	Provider string
	Err      string
}

// AppointmentMailer renders an appointment template and dispatches it
// through the configured sender. It never retries; retry policy belongs to
// the caller.
type AppointmentMailer struct {
	sender EmailSender
	logger *logging.Logger
}

// NewAppointmentMailer creates a mailer over the given sender.
func NewAppointmentMailer(sender EmailSender, logger *logging.Logger) *AppointmentMailer {
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentMailer{sender: sender, logger: logger}
}

func (m *AppointmentMailer) providerLabel() string {
	if named, ok := m.sender.(Named); ok {
		return named.Name()
	}
	return "email"
}

// SendAppointmentEmail renders the named template for the appointment and
// sends it to the patient. The returned result is always populated; errors
// are folded into it rather than returned.
func (m *AppointmentMailer) SendAppointmentEmail(ctx context.Context, appt Appointment, templateName string) DispatchResult {
	provider := m.providerLabel()

	html, subject, err := m.render(appt, templateName)
	if err != nil {
		return DispatchResult{OK: false, Provider: provider, Err: err.Error()}
	}

	msg := EmailMessage{
		To:      appt.PatientEmail,
		ToName:  appt.PatientName,
		Subject: subject,
		HTML:    html,
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return DispatchResult{OK: false, Provider: provider, Err: err.Error()}
	}

	m.logger.Info("appointment email dispatched",
		"template", templateName,
		"to", appt.PatientEmail,
		"provider", provider,
	)
	return DispatchResult{OK: true, Provider: provider}
}

func (m *AppointmentMailer) render(appt Appointment, templateName string) (html, subject string, err error) {
	date, err := templates.FormatDate(appt.Date)
	if err != nil {
		return "", "", fmt.Errorf("notify: render appointment email: %w", err)
	}
	clock, err := templates.FormatTime(appt.Time)
	if err != nil {
		return "", "", fmt.Errorf("notify: render appointment email: %w", err)
	}
	html, err = templates.Render(templateName, templates.Fields{
		Patient: appt.PatientName,
		Date:    date,
		Time:    clock,
		Type:    appt.Type,
	})
	if err != nil {
		return "", "", fmt.Errorf("notify: render appointment email: %w", err)
	}
	subject, err = templates.Subject(templateName)
	if err != nil {
		return "", "", fmt.Errorf("notify: render appointment email: %w", err)
	}
	return html, subject, nil
}
