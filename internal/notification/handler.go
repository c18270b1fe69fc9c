package notification

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

// Handler exposes notification fan-out over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a notification HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SendRequest is the request body for sending a notification.
type SendRequest struct {
	PatientID  string         `json:"patient_id"`
	Type       string         `json:"type"`
	CampaignID *string        `json:"campaign_id,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// Send fans one notification out to the patient's preferred channels.
// POST /api/v1/notifications
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.PatientID) == "" {
		http.Error(w, `{"error": "patient_id required"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Type) == "" {
		http.Error(w, `{"error": "type required"}`, http.StatusBadRequest)
		return
	}

	result, err := h.service.Send(r.Context(), Input{
		PatientID:  req.PatientID,
		Kind:       Kind(req.Type),
		CampaignID: req.CampaignID,
		Data:       req.Data,
	})
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			http.Error(w, `{"error": "patient not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Error("failed to send notification", "patient_id", req.PatientID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to encode notification result", "patient_id", req.PatientID, "error", err)
	}
}
