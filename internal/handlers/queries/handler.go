package queries

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/services/query"
)

// QueryHandler handles content query API requests
type QueryHandler struct {
	queryService query.IQueryService
	logger       primary.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queryService query.IQueryService, logger primary.Logger) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
		logger:       logger,
	}
}

// RegisterRoutes registers the API routes for QueryHandler. Cache
// invalidation requires an authenticated caller.
func (h *QueryHandler) RegisterRoutes(router *mux.Router, protected *mux.Router) {
	router.HandleFunc("/api/query", h.RunQuery).Methods("POST")
	protected.HandleFunc("/api/query/cache", h.InvalidateCache).Methods("DELETE")
}

// RunQuery handles content query requests
func (h *QueryHandler) RunQuery(w http.ResponseWriter, r *http.Request) {
	var req query.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.queryService.Search(r.Context(), req)
	if err != nil {
		h.logger.Error("Failed to run query", "error", err)
		http.Error(w, "Failed to run query", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// InvalidateCache drops all cached query results
func (h *QueryHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	if err := h.queryService.InvalidateCache(r.Context()); err != nil {
		h.logger.Error("Failed to invalidate query cache", "error", err)
		http.Error(w, "Failed to invalidate cache", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
