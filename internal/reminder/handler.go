package reminder

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

// Handler exposes reminder scheduling over HTTP.
type Handler struct {
	scheduler *Scheduler
	logger    *logging.Logger
}

// NewHandler creates a reminder HTTP handler.
func NewHandler(scheduler *Scheduler, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		scheduler: scheduler,
		logger:    logger,
	}
}

// ScheduleRequest is the request body for scheduling appointment reminders.
type ScheduleRequest struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	Type         string `json:"type"`
	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email"`
}

func (req *ScheduleRequest) validate() string {
	switch {
	case strings.TrimSpace(req.Date) == "":
		return "date required"
	case strings.TrimSpace(req.Time) == "":
		return "time required"
	case strings.TrimSpace(req.PatientName) == "":
		return "patient_name required"
	case strings.TrimSpace(req.PatientEmail) == "":
		return "patient_email required"
	}
	return ""
}

// Schedule registers the 24-hour and 1-hour reminders for an appointment.
// POST /api/v1/reminders
//
// Scheduling is best-effort, so the response is 200 with success:false when
// the decision table rejects the timing; only malformed requests are 400.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, `{"error": "`+msg+`"}`, http.StatusBadRequest)
		return
	}

	result := h.scheduler.ScheduleReminders(r.Context(), AppointmentTiming{
		Date:         req.Date,
		Time:         req.Time,
		Type:         req.Type,
		PatientName:  req.PatientName,
		PatientEmail: req.PatientEmail,
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to encode scheduling result", "patient", req.PatientName, "error", err)
	}
}
