package roles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/services/role"
	"github.com/arraypress/contentquery/internal/domain"
	"github.com/arraypress/contentquery/internal/static/errs"
)

// RoleHandler handles role and capability API requests
type RoleHandler struct {
	roleService role.IRoleService
	logger      primary.Logger
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService role.IRoleService, logger primary.Logger) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		logger:      logger,
	}
}

// RegisterRoutes registers the API routes for RoleHandler. The whole
// surface requires an authenticated caller.
func (h *RoleHandler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/api/roles", h.ListRoles).Methods("GET")
	protected.HandleFunc("/api/roles/{name}", h.GetRole).Methods("GET")
	protected.HandleFunc("/api/roles/{name}", h.SaveRole).Methods("PUT")
	protected.HandleFunc("/api/users/{userId}/can/{capability}", h.UserCan).Methods("GET")
}

// SaveRoleRequest represents a request to upsert a role
type SaveRoleRequest struct {
	DisplayName  string   `json:"display_name"`
	Capabilities []string `json:"capabilities"`
}

// ListRoles handles role listing requests
func (h *RoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	list, err := h.roleService.ListRoles(r.Context())
	if err != nil {
		h.logger.Error("Failed to list roles", "error", err)
		http.Error(w, "Failed to list roles", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]*domain.Role{"roles": list})
}

// GetRole handles role retrieval requests
func (h *RoleHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	roleRow, err := h.roleService.GetRole(r.Context(), name)
	if errors.Is(err, errs.RoleNotFound) {
		http.Error(w, "Role not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to get role", "role", name, "error", err)
		http.Error(w, "Failed to get role", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(roleRow)
}

// SaveRole handles role upsert requests
func (h *RoleHandler) SaveRole(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req SaveRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	err := h.roleService.SaveRole(r.Context(), &domain.Role{
		Name:         name,
		DisplayName:  req.DisplayName,
		Capabilities: req.Capabilities,
	})
	if err != nil {
		h.logger.Error("Failed to save role", "role", name, "error", err)
		http.Error(w, "Failed to save role", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UserCan handles capability check requests
func (h *RoleHandler) UserCan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	userID, err := uuid.Parse(vars["userId"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	allowed, err := h.roleService.UserCan(r.Context(), userID, vars["capability"])
	if errors.Is(err, errs.UserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil && !errors.Is(err, errs.RoleNotFound) {
		h.logger.Error("Failed to check capability", "error", err)
		http.Error(w, "Failed to check capability", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"allowed": allowed})
}
