// Package notification fans a patient-facing message out across the
// patient's preferred delivery channels: WhatsApp, SMS, and email.
package notification

import (
	"errors"
	"time"
)

// Channel is one delivery channel.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
	ChannelEmail    Channel = "email"
)

// AllChannels is the default preference when a patient has no preference
// record.
func AllChannels() []Channel {
	return []Channel{ChannelWhatsApp, ChannelSMS, ChannelEmail}
}

// Kind selects the content template for a notification.
type Kind string

const (
	KindAppointmentUpdate   Kind = "appointment_update"
	KindFollowUpScheduled   Kind = "follow_up_scheduled"
	KindHealthCheckReminder Kind = "health_check_reminder"
	KindBillingReminder     Kind = "billing_reminder"
)

// Patient is the contact slice of a patient row.
type Patient struct {
	ID      string
	Name    string
	Contact string // phone number
	Email   string
}

// Record is one persisted notification row.
type Record struct {
	ID           string
	PatientID    string
	CampaignID   *string
	Kind         Kind
	Status       string
	Data         map[string]any
	SentChannels []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Outcome lists which channels accepted the message and which failed. One
// channel's failure never aborts the others.
type Outcome struct {
	SuccessfulChannels []Channel `json:"successful_channels"`
	FailedChannels     []Channel `json:"failed_channels"`
}

// ErrPatientNotFound indicates the patient row does not exist.
var ErrPatientNotFound = errors.New("notification: patient not found")
