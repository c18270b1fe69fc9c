package insights

import (
	"encoding/json"
	"net/http"

	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

// Handler exposes insight generation over HTTP.
type Handler struct {
	generator *Generator
	logger    *logging.Logger
}

// NewHandler creates an insights HTTP handler.
func NewHandler(generator *Generator, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		generator: generator,
		logger:    logger,
	}
}

// GenerateRequest carries the aggregates to analyze, keyed by insight kind.
type GenerateRequest struct {
	Aggregates map[Kind]any `json:"aggregates"`
}

// GenerateResponse wraps the generated insights.
type GenerateResponse struct {
	Success  bool      `json:"success"`
	Insights []Insight `json:"insights"`
}

// Generate runs every requested insight kind over its aggregate.
// POST /api/v1/insights
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if len(req.Aggregates) == 0 {
		http.Error(w, `{"error": "aggregates required"}`, http.StatusBadRequest)
		return
	}

	insights := h.generator.GenerateAll(r.Context(), req.Aggregates)

	w.Header().Set("Content-Type", "application/json")
	resp := GenerateResponse{Success: true, Insights: insights}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode insights", "error", err)
	}
}
