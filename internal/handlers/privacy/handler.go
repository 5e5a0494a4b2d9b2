package privacy

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/services/anonymize"
)

// AnonymizeHandler handles anonymization API requests
type AnonymizeHandler struct {
	anonymizeService anonymize.IAnonymizeService
	logger           primary.Logger
}

// NewAnonymizeHandler creates a new anonymize handler
func NewAnonymizeHandler(anonymizeService anonymize.IAnonymizeService, logger primary.Logger) *AnonymizeHandler {
	return &AnonymizeHandler{
		anonymizeService: anonymizeService,
		logger:           logger,
	}
}

// RegisterRoutes registers the API routes for AnonymizeHandler
func (h *AnonymizeHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/anonymize", h.Anonymize).Methods("POST")
}

// AnonymizeRequest represents a request to anonymize a value
type AnonymizeRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// AnonymizeResponse represents an anonymized value
type AnonymizeResponse struct {
	Value string `json:"value"`
}

// Anonymize handles anonymization requests
func (h *AnonymizeHandler) Anonymize(w http.ResponseWriter, r *http.Request) {
	var req AnonymizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	var out string
	switch req.Kind {
	case "email":
		out = h.anonymizeService.Email(req.Value)
	case "ip":
		out = h.anonymizeService.IP(req.Value)
	case "phone":
		out = h.anonymizeService.Phone(req.Value)
	case "text", "":
		out = h.anonymizeService.Text(req.Value)
	default:
		http.Error(w, "Invalid kind", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AnonymizeResponse{Value: out})
}
