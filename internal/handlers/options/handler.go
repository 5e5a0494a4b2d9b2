package options

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/services/option"
	"github.com/arraypress/contentquery/internal/static/errs"
)

// OptionHandler handles option API requests
type OptionHandler struct {
	optionService option.IOptionService
	logger        primary.Logger
}

// NewOptionHandler creates a new option handler
func NewOptionHandler(optionService option.IOptionService, logger primary.Logger) *OptionHandler {
	return &OptionHandler{
		optionService: optionService,
		logger:        logger,
	}
}

// RegisterRoutes registers the API routes for OptionHandler. Writes require
// an authenticated caller.
func (h *OptionHandler) RegisterRoutes(router *mux.Router, protected *mux.Router) {
	router.HandleFunc("/api/options/{key}", h.GetOption).Methods("GET")
	protected.HandleFunc("/api/options/{key}", h.SetOption).Methods("PUT")
	protected.HandleFunc("/api/options/{key}", h.DeleteOption).Methods("DELETE")
}

// SetOptionRequest represents a request to set an option
type SetOptionRequest struct {
	Value    interface{} `json:"value"`
	Autoload bool        `json:"autoload"`
}

// OptionResponse represents an option value response
type OptionResponse struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// GetOption handles option retrieval requests
func (h *OptionHandler) GetOption(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var value interface{}
	err := h.optionService.Get(r.Context(), key, &value)
	if errors.Is(err, errs.OptionNotFound) {
		http.Error(w, "Option not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to get option", "key", key, "error", err)
		http.Error(w, "Failed to get option", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OptionResponse{Key: key, Value: value})
}

// SetOption handles option upsert requests
func (h *OptionHandler) SetOption(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req SetOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.optionService.Set(r.Context(), key, req.Value, req.Autoload); err != nil {
		h.logger.Error("Failed to set option", "key", key, "error", err)
		http.Error(w, "Failed to set option", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteOption handles option deletion requests
func (h *OptionHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	if err := h.optionService.Delete(r.Context(), key); err != nil {
		h.logger.Error("Failed to delete option", "key", key, "error", err)
		http.Error(w, "Failed to delete option", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
