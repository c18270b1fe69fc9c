package notification

import (
	"context"
	"fmt"

	"github.com/souravdey/hospiagent-notify/internal/observability/metrics"
	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

// ChatSender delivers WhatsApp chat messages.
type ChatSender interface {
	SendMessage(ctx context.Context, phone, message string) error
}

// TextSender delivers SMS text messages.
type TextSender interface {
	SendSMS(ctx context.Context, phone, body string) error
}

// MailSender delivers plain notification emails.
type MailSender interface {
	SendEmail(ctx context.Context, to, subject, message string) error
}

// Input describes one notification request.
type Input struct {
	PatientID  string
	Kind       Kind
	CampaignID *string
	Data       map[string]any
}

// SendResult is returned to the caller after a fan-out attempt.
type SendResult struct {
	Success        bool      `json:"success"`
	NotificationID string    `json:"notification_id"`
	Channels       []Channel `json:"channels"`
	Failed         []Channel `json:"failed_channels,omitempty"`
}

// Service fans notifications out to the patient's preferred channels.
type Service struct {
	store    Store
	whatsapp ChatSender
	sms      TextSender
	email    MailSender
	metrics  *metrics.NotificationMetrics
	logger   *logging.Logger
}

// NewService creates a fan-out service. Channel senders may be nil when a
// channel is not configured; such channels count as failed when enabled.
func NewService(store Store, whatsapp ChatSender, sms TextSender, email MailSender, m *metrics.NotificationMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:    store,
		whatsapp: whatsapp,
		sms:      sms,
		email:    email,
		metrics:  m,
		logger:   logger,
	}
}

// Send resolves the patient, persists a notification record, renders the
// content for the patient's preferred channels, and attempts each enabled
// channel independently. One channel's failure does not abort the others;
// there are no retries.
func (s *Service) Send(ctx context.Context, input Input) (*SendResult, error) {
	patient, err := s.store.GetPatient(ctx, input.PatientID)
	if err != nil {
		return nil, fmt.Errorf("notification: get patient: %w", err)
	}

	rec := &Record{
		PatientID:  input.PatientID,
		CampaignID: input.CampaignID,
		Kind:       input.Kind,
		Data:       input.Data,
	}
	if err := s.store.CreateRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("notification: create record: %w", err)
	}

	content := BuildContent(input.Kind, patient.Name, input.Data)

	channels, err := s.store.GetPreferredChannels(ctx, input.PatientID)
	if err != nil {
		// Preference lookup failure defaults to every channel.
		s.logger.Error("failed to load channel preferences", "error", err, "patient_id", input.PatientID)
		channels = AllChannels()
	}

	outcome := s.fanOut(ctx, channels, patient, content)

	sent := make([]string, 0, len(outcome.SuccessfulChannels))
	for _, c := range outcome.SuccessfulChannels {
		sent = append(sent, string(c))
	}
	if err := s.store.MarkSent(ctx, rec.ID, sent); err != nil {
		// Status bookkeeping is best-effort; the message already went out.
		s.logger.Error("failed to update notification status", "error", err, "notification_id", rec.ID)
	}

	return &SendResult{
		Success:        true,
		NotificationID: rec.ID,
		Channels:       outcome.SuccessfulChannels,
		Failed:         outcome.FailedChannels,
	}, nil
}

func (s *Service) fanOut(ctx context.Context, channels []Channel, patient *Patient, content Content) Outcome {
	outcome := Outcome{
		SuccessfulChannels: []Channel{},
		FailedChannels:     []Channel{},
	}

	enabled := make(map[Channel]bool, len(channels))
	for _, c := range channels {
		enabled[c] = true
	}

	if enabled[ChannelWhatsApp] && patient.Contact != "" {
		s.attempt(&outcome, ChannelWhatsApp, func() error {
			if s.whatsapp == nil {
				return fmt.Errorf("notification: whatsapp channel not configured")
			}
			return s.whatsapp.SendMessage(ctx, patient.Contact, content.WhatsApp)
		})
	}

	if enabled[ChannelSMS] && patient.Contact != "" {
		s.attempt(&outcome, ChannelSMS, func() error {
			if s.sms == nil {
				return fmt.Errorf("notification: sms channel not configured")
			}
			return s.sms.SendSMS(ctx, patient.Contact, content.Message)
		})
	}

	if enabled[ChannelEmail] && patient.Email != "" {
		s.attempt(&outcome, ChannelEmail, func() error {
			if s.email == nil {
				return fmt.Errorf("notification: email channel not configured")
			}
			return s.email.SendEmail(ctx, patient.Email, content.Subject, content.Message)
		})
	}

	return outcome
}

func (s *Service) attempt(outcome *Outcome, channel Channel, send func() error) {
	if err := send(); err != nil {
		s.logger.Error("channel delivery failed", "channel", channel, "error", err)
		s.metrics.ObserveChannel(string(channel), false)
		outcome.FailedChannels = append(outcome.FailedChannels, channel)
		return
	}
	s.metrics.ObserveChannel(string(channel), true)
	outcome.SuccessfulChannels = append(outcome.SuccessfulChannels, channel)
}
