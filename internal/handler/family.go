// internal/handler/family.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/middleware"
	"github.com/lingvoclass/backoffice/internal/repository"
	"github.com/lingvoclass/backoffice/internal/service"
)

// FamilyHandler exposes the family-graph repair operations. The bulk
// rewrites are irreversible, so every destructive route requires an
// explicit {"confirm": true} in the body; without it the handler answers
// with a preview of the affected scope and changes nothing.
type FamilyHandler struct {
	repair      *service.FamilyRepairService
	familyRepo  repository.FamilyRepositoryIface
	profileRepo repository.ProfileRepositoryIface
}

func NewFamilyHandler(
	repair *service.FamilyRepairService,
	familyRepo repository.FamilyRepositoryIface,
	profileRepo repository.ProfileRepositoryIface,
) *FamilyHandler {
	return &FamilyHandler{repair: repair, familyRepo: familyRepo, profileRepo: profileRepo}
}

func (h *FamilyHandler) actingOrganization(ctx context.Context) (uuid.UUID, error) {
	profileID, ok := middleware.ProfileIDFromContext(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	profile, err := h.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return uuid.Nil, err
	}
	return profile.OrganizationID, nil
}

type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// decodeConfirm reads the optional confirmation body. An empty body counts
// as not confirmed.
func decodeConfirm(r *http.Request) (bool, error) {
	var req ConfirmRequest
	if r.Body == nil || r.ContentLength == 0 {
		return false, nil
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return false, err
	}
	return req.Confirm, nil
}

type IssuesResponse struct {
	BaseResponse
	Issues []service.GroupIssue `json:"issues"`
}

func (h *FamilyHandler) DetectIssues(w http.ResponseWriter, r *http.Request) {
	orgID, err := h.actingOrganization(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	issues, err := h.repair.DetectIssues(r.Context(), orgID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Issue detection error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, IssuesResponse{
		BaseResponse: BaseResponse{Ok: true},
		Issues:       issues,
	})
}

type DeduplicateResponse struct {
	BaseResponse
	Removed int `json:"removed"`
}

func (h *FamilyHandler) DeduplicateGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group id")
		return
	}

	removed, err := h.repair.DeduplicateGroup(r.Context(), groupID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGroupNotFound):
			respondWithError(w, http.StatusNotFound, "Family group not found")
		default:
			slog.ErrorContext(r.Context(), "Deduplication error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, DeduplicateResponse{
		BaseResponse: BaseResponse{Ok: true},
		Removed:      removed,
	})
}

func (h *FamilyHandler) DeduplicateAll(w http.ResponseWriter, r *http.Request) {
	orgID, err := h.actingOrganization(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	removed, err := h.repair.DeduplicateAll(r.Context(), orgID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Deduplication error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, DeduplicateResponse{
		BaseResponse: BaseResponse{Ok: true},
		Removed:      removed,
	})
}

type SplitPreviewResponse struct {
	BaseResponse
	Confirmed bool   `json:"confirmed"`
	GroupName string `json:"group_name"`
	Students  int    `json:"students"`
	Edges     int    `json:"edges"`
}

type SplitResponse struct {
	BaseResponse
	Confirmed     bool `json:"confirmed"`
	CreatedGroups int  `json:"created_groups"`
}

func (h *FamilyHandler) SplitGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group id")
		return
	}

	confirmed, err := decodeConfirm(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !confirmed {
		group, err := h.familyRepo.FindGroupByID(r.Context(), groupID)
		if err != nil {
			if errors.Is(err, domain.ErrGroupNotFound) {
				respondWithError(w, http.StatusNotFound, "Family group not found")
				return
			}
			slog.ErrorContext(r.Context(), "Split preview error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		students, err := h.familyRepo.FindStudentsByGroup(r.Context(), groupID)
		if err != nil {
			slog.ErrorContext(r.Context(), "Split preview error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		members, err := h.familyRepo.FindMembersByGroup(r.Context(), groupID)
		if err != nil {
			slog.ErrorContext(r.Context(), "Split preview error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondWithJSON(w, http.StatusOK, SplitPreviewResponse{
			BaseResponse: BaseResponse{Ok: true},
			Confirmed:    false,
			GroupName:    group.Name,
			Students:     len(students),
			Edges:        len(members),
		})
		return
	}

	created, err := h.repair.SplitGroup(r.Context(), groupID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGroupNotFound):
			respondWithError(w, http.StatusNotFound, "Family group not found")
		case errors.Is(err, domain.ErrGroupTooSmall):
			respondWithError(w, http.StatusUnprocessableEntity, "Group has fewer than two students")
		default:
			slog.ErrorContext(r.Context(), "Split error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, SplitResponse{
		BaseResponse:  BaseResponse{Ok: true},
		Confirmed:     true,
		CreatedGroups: created,
	})
}

type ReorganizePreviewResponse struct {
	BaseResponse
	Confirmed bool `json:"confirmed"`
	Students  int  `json:"students"`
	Groups    int  `json:"groups"`
}

type ReorganizeResponse struct {
	BaseResponse
	Confirmed bool                      `json:"confirmed"`
	Report    *service.ReorganizeReport `json:"report"`
}

func (h *FamilyHandler) ReorganizeAll(w http.ResponseWriter, r *http.Request) {
	orgID, err := h.actingOrganization(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	confirmed, err := decodeConfirm(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !confirmed {
		students, err := h.familyRepo.FindStudentsByOrganization(r.Context(), orgID)
		if err != nil {
			slog.ErrorContext(r.Context(), "Reorganization preview error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		groups, err := h.familyRepo.FindGroupsByOrganization(r.Context(), orgID)
		if err != nil {
			slog.ErrorContext(r.Context(), "Reorganization preview error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondWithJSON(w, http.StatusOK, ReorganizePreviewResponse{
			BaseResponse: BaseResponse{Ok: true},
			Confirmed:    false,
			Students:     len(students),
			Groups:       len(groups),
		})
		return
	}

	report, err := h.repair.ReorganizeAll(r.Context(), orgID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Reorganization error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, ReorganizeResponse{
		BaseResponse: BaseResponse{Ok: true},
		Confirmed:    true,
		Report:       report,
	})
}

type RestoreResponse struct {
	BaseResponse
	Report *service.RestoreReport `json:"report"`
}

func (h *FamilyHandler) RestoreGuardianLinks(w http.ResponseWriter, r *http.Request) {
	orgID, err := h.actingOrganization(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	report, err := h.repair.RestoreGuardianLinks(r.Context(), orgID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Guardian restoration error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, RestoreResponse{
		BaseResponse: BaseResponse{Ok: true},
		Report:       report,
	})
}
