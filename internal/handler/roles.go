// internal/handler/roles.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/middleware"
	"github.com/lingvoclass/backoffice/internal/model"
	"github.com/lingvoclass/backoffice/internal/service"
)

type RoleHandler struct {
	permissions *service.PermissionService
}

func NewRoleHandler(permissions *service.PermissionService) *RoleHandler {
	return &RoleHandler{permissions: permissions}
}

type RoleRequest struct {
	Role model.Role `json:"role"`
}

func (h *RoleHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile id")
		return
	}

	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.permissions.AssignRole(r.Context(), profileID, req.Role); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownRole):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrProfileNotFound):
			respondWithError(w, http.StatusNotFound, "Profile not found")
		default:
			slog.ErrorContext(r.Context(), "Role assignment error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *RoleHandler) RevokeRole(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile id")
		return
	}

	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.permissions.RevokeRole(r.Context(), profileID, req.Role); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownRole):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Role revocation error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type PermissionsResponse struct {
	BaseResponse
	Roles       []model.Role                 `json:"roles"`
	Permissions map[model.PermissionKey]bool `json:"permissions"`
}

// Permissions returns the resolved permission map for one profile: role
// templates unioned, then per-user overrides applied.
func (h *RoleHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile id")
		return
	}

	roles, err := h.permissions.Roles(r.Context(), profileID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Role lookup error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	effective, err := h.permissions.EffectivePermissions(r.Context(), profileID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Permission resolution error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, PermissionsResponse{
		BaseResponse: BaseResponse{Ok: true},
		Roles:        roles,
		Permissions:  effective,
	})
}

type OverrideRequest struct {
	Key     model.PermissionKey `json:"key"`
	Granted bool                `json:"granted"`
}

func (h *RoleHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile id")
		return
	}

	var req OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.permissions.SetOverride(r.Context(), profileID, req.Key, req.Granted); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownPermission):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrProfileNotFound):
			respondWithError(w, http.StatusNotFound, "Profile not found")
		default:
			slog.ErrorContext(r.Context(), "Override error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *RoleHandler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile id")
		return
	}

	key := model.PermissionKey(r.URL.Query().Get("key"))

	if err := h.permissions.ClearOverride(r.Context(), profileID, key); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownPermission):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Override removal error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type SectionsResponse struct {
	BaseResponse
	Sections []service.AdminSection `json:"sections"`
}

// Sections returns the admin navigation sections visible to the caller.
func (h *RoleHandler) Sections(w http.ResponseWriter, r *http.Request) {
	labels, ok := middleware.RolesFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	roles := make([]model.Role, 0, len(labels))
	for _, l := range labels {
		roles = append(roles, model.Role(l))
	}

	respondWithJSON(w, http.StatusOK, SectionsResponse{
		BaseResponse: BaseResponse{Ok: true},
		Sections:     service.VisibleSections(roles),
	})
}
