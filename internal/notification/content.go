package notification

import (
	"fmt"
	"strings"
)

// Content is the rendered notification text for the different channels.
// WhatsApp gets its own copy of the message so the two can diverge later.
type Content struct {
	Subject  string
	Message  string
	WhatsApp string
}

func str(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	if v, ok := data[key]; ok {
		return fmt.Sprint(v)
	}
	return ""
}

// BuildContent renders channel content for the notification kind. Unknown
// kinds fall back to a generic message.
func BuildContent(kind Kind, patientName string, data map[string]any) Content {
	switch kind {
	case KindAppointmentUpdate:
		msg := fmt.Sprintf(
			"Hello %s, your appointment scheduled for %s has been rescheduled from %s to %s. Please let us know if this new time doesn't work for you.",
			patientName, str(data, "date"), str(data, "old_time"), str(data, "new_time"))
		return Content{Subject: "Appointment Time Updated", Message: msg, WhatsApp: msg}

	case KindFollowUpScheduled:
		msg := fmt.Sprintf(
			"Hello %s, we've scheduled a follow-up appointment for you on %s at %s for %s. Please confirm this appointment.",
			patientName, str(data, "date"), str(data, "time"), str(data, "reason"))
		return Content{Subject: "Follow-up Appointment Scheduled", Message: msg, WhatsApp: msg}

	case KindHealthCheckReminder:
		msg := fmt.Sprintf(
			"Hello %s, this is a reminder that you're due for a %s by %s. Please schedule an appointment at your convenience.",
			patientName, str(data, "check_type"), str(data, "due_date"))
		return Content{Subject: "Health Check Reminder", Message: msg, WhatsApp: msg}

	case KindBillingReminder:
		msg := strings.Replace(str(data, "message"), "[NAME]", patientName, 1)
		return Content{Subject: "Billing Reminder", Message: msg, WhatsApp: msg}

	default:
		msg := fmt.Sprintf("Hello %s, this is a notification from your healthcare provider.", patientName)
		return Content{Subject: "Notification from HospiAgent", Message: msg, WhatsApp: msg}
	}
}
