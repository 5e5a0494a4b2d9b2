package assetsapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/services/assets"
	"github.com/arraypress/contentquery/internal/static/errs"
)

// AssetHandler handles asset registry API requests
type AssetHandler struct {
	assetService assets.IAssetService
	logger       primary.Logger
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService assets.IAssetService, logger primary.Logger) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
		logger:       logger,
	}
}

// RegisterRoutes registers the API routes for AssetHandler. Registry writes
// require an authenticated caller.
func (h *AssetHandler) RegisterRoutes(router *mux.Router, protected *mux.Router) {
	protected.HandleFunc("/api/assets", h.RegisterAsset).Methods("POST")
	protected.HandleFunc("/api/assets/{handle}/enqueue", h.EnqueueAsset).Methods("POST")
	router.HandleFunc("/api/assets/{handle}/resolve", h.ResolveAsset).Methods("GET")
}

// RegisterAssetRequest represents a request to register an asset
type RegisterAssetRequest struct {
	Kind    string   `json:"kind"`
	Handle  string   `json:"handle"`
	Source  string   `json:"source"`
	Deps    []string `json:"deps"`
	Version string   `json:"version"`
}

// RegisterAsset handles asset registration requests
func (h *AssetHandler) RegisterAsset(w http.ResponseWriter, r *http.Request) {
	var req RegisterAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	kind, ok := parseKind(req.Kind)
	if !ok {
		http.Error(w, "Invalid asset kind", http.StatusBadRequest)
		return
	}

	if err := h.assetService.Register(kind, req.Handle, req.Source, req.Deps, req.Version); err != nil {
		h.logger.Error("Failed to register asset", "handle", req.Handle, "error", err)
		http.Error(w, "Failed to register asset", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// EnqueueAsset handles asset enqueue requests
func (h *AssetHandler) EnqueueAsset(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]
	kind, ok := parseKind(r.URL.Query().Get("kind"))
	if !ok {
		http.Error(w, "Invalid asset kind", http.StatusBadRequest)
		return
	}

	if err := h.assetService.Enqueue(kind, handle); err != nil {
		if errors.Is(err, errs.AssetNotFound) {
			http.Error(w, "Asset not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to enqueue asset", "handle", handle, "error", err)
		http.Error(w, "Failed to enqueue asset", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResolveAsset handles dependency resolution requests
func (h *AssetHandler) ResolveAsset(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]
	kind, ok := parseKind(r.URL.Query().Get("kind"))
	if !ok {
		http.Error(w, "Invalid asset kind", http.StatusBadRequest)
		return
	}

	resolved, err := h.assetService.Resolve(kind, handle)
	if err != nil {
		if errors.Is(err, errs.AssetNotFound) {
			http.Error(w, "Asset not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, errs.AssetCycle) {
			http.Error(w, "Dependency cycle", http.StatusConflict)
			return
		}
		h.logger.Error("Failed to resolve asset", "handle", handle, "error", err)
		http.Error(w, "Failed to resolve asset", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]assets.Asset{"assets": resolved})
}

// parseKind defaults to script when the kind parameter is omitted
func parseKind(raw string) (assets.Kind, bool) {
	switch raw {
	case "", string(assets.KindScript):
		return assets.KindScript, true
	case string(assets.KindStyle):
		return assets.KindStyle, true
	}
	return "", false
}
