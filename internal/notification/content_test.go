package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContentAppointmentUpdate(t *testing.T) {
	c := BuildContent(KindAppointmentUpdate, "Asha", map[string]any{
		"date":     "June 1, 2025",
		"old_time": "10:00 AM",
		"new_time": "11:30 AM",
	})
	assert.Equal(t, "Appointment Time Updated", c.Subject)
	assert.Equal(t,
		"Hello Asha, your appointment scheduled for June 1, 2025 has been rescheduled from 10:00 AM to 11:30 AM. Please let us know if this new time doesn't work for you.",
		c.Message)
	assert.Equal(t, c.Message, c.WhatsApp)
}

func TestBuildContentFollowUpScheduled(t *testing.T) {
	c := BuildContent(KindFollowUpScheduled, "Ravi", map[string]any{
		"date":   "June 5, 2025",
		"time":   "3:00 PM",
		"reason": "post-op review",
	})
	assert.Equal(t, "Follow-up Appointment Scheduled", c.Subject)
	assert.Equal(t,
		"Hello Ravi, we've scheduled a follow-up appointment for you on June 5, 2025 at 3:00 PM for post-op review. Please confirm this appointment.",
		c.Message)
}

func TestBuildContentHealthCheckReminder(t *testing.T) {
	c := BuildContent(KindHealthCheckReminder, "Meera", map[string]any{
		"check_type": "annual blood panel",
		"due_date":   "July 15, 2025",
	})
	assert.Equal(t, "Health Check Reminder", c.Subject)
	assert.Equal(t,
		"Hello Meera, this is a reminder that you're due for a annual blood panel by July 15, 2025. Please schedule an appointment at your convenience.",
		c.Message)
}

func TestBuildContentBillingReminderSubstitutesName(t *testing.T) {
	c := BuildContent(KindBillingReminder, "Asha", map[string]any{
		"message": "Dear [NAME], your invoice #42 is due on June 30.",
	})
	assert.Equal(t, "Billing Reminder", c.Subject)
	assert.Equal(t, "Dear Asha, your invoice #42 is due on June 30.", c.Message)
}

func TestBuildContentBillingReminderReplacesFirstOccurrenceOnly(t *testing.T) {
	c := BuildContent(KindBillingReminder, "Asha", map[string]any{
		"message": "[NAME], please pay. Regards, [NAME]",
	})
	assert.Equal(t, "Asha, please pay. Regards, [NAME]", c.Message)
}

func TestBuildContentUnknownKindFallsBack(t *testing.T) {
	c := BuildContent(Kind("surprise"), "Asha", nil)
	assert.Equal(t, "Notification from HospiAgent", c.Subject)
	assert.Equal(t, "Hello Asha, this is a notification from your healthcare provider.", c.Message)
}

func TestBuildContentMissingDataRendersEmptyFields(t *testing.T) {
	c := BuildContent(KindAppointmentUpdate, "Asha", nil)
	assert.Contains(t, c.Message, "Hello Asha")
	assert.Contains(t, c.Message, "rescheduled from  to ")
}
