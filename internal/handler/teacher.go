// internal/handler/teacher.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/middleware"
	"github.com/lingvoclass/backoffice/internal/model"
	"github.com/lingvoclass/backoffice/internal/repository"
	"github.com/lingvoclass/backoffice/internal/service"
)

// TeacherHandler exposes the staff catalog and its reconciliation
// operations. Every mutating route sits behind RequirePermission in the
// router; the handler itself only maps typed service errors to HTTP codes.
type TeacherHandler struct {
	reconciliation *service.ReconciliationService
	profileRepo    repository.ProfileRepositoryIface
}

func NewTeacherHandler(reconciliation *service.ReconciliationService, profileRepo repository.ProfileRepositoryIface) *TeacherHandler {
	return &TeacherHandler{reconciliation: reconciliation, profileRepo: profileRepo}
}

// actingOrganization resolves the caller's organization scope. Cross-
// organization access is never attempted; every query below is scoped to
// this id.
func (h *TeacherHandler) actingOrganization(ctx context.Context) (uuid.UUID, uuid.UUID, error) {
	profileID, ok := middleware.ProfileIDFromContext(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, domain.ErrUnauthorized
	}
	profile, err := h.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return profile.ID, profile.OrganizationID, nil
}

type CreateTeacherResponse struct {
	BaseResponse
	Teacher *model.Teacher      `json:"teacher"`
	Linked  bool                `json:"linked"`
	Reason  service.MatchReason `json:"reason,omitempty"`
}

func (h *TeacherHandler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	actingID, orgID, err := h.actingOrganization(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input service.CreateTeacherInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	input.OrganizationID = orgID
	input.CreatedByID = actingID

	output, err := h.reconciliation.CreateTeacherWithAutoLink(r.Context(), input)
	if err != nil {
		slog.ErrorContext(r.Context(), "Teacher creation error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, CreateTeacherResponse{
		BaseResponse: BaseResponse{Ok: true},
		Teacher:      output.Teacher,
		Linked:       output.Linked,
		Reason:       output.Reason,
	})
}

type ListTeachersResponse struct {
	BaseResponse
	Teachers []*model.Teacher `json:"teachers"`
	Total    int64            `json:"total"`
}

func (h *TeacherHandler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	_, orgID, err := h.actingOrganization(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	teachers, total, err := h.reconciliation.ListTeachers(r.Context(), orgID, offset, limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "Teacher listing error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, ListTeachersResponse{
		BaseResponse: BaseResponse{Ok: true},
		Teachers:     teachers,
		Total:        total,
	})
}

type MatchResponse struct {
	BaseResponse
	Match  *model.Profile      `json:"match"`
	Reason service.MatchReason `json:"reason,omitempty"`
}

// SuggestMatch returns the reconciliation suggestion for one teacher
// without applying it.
func (h *TeacherHandler) SuggestMatch(w http.ResponseWriter, r *http.Request) {
	teacherID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid teacher id")
		return
	}

	match, err := h.reconciliation.SuggestMatch(r.Context(), teacherID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTeacherNotFound):
			respondWithError(w, http.StatusNotFound, "Teacher not found")
		default:
			slog.ErrorContext(r.Context(), "Match suggestion error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	resp := MatchResponse{BaseResponse: BaseResponse{Ok: true}}
	if match != nil {
		resp.Match = match.Profile
		resp.Reason = match.Reason
	}
	respondWithJSON(w, http.StatusOK, resp)
}

type ApplyLinkRequest struct {
	ProfileID uuid.UUID `json:"profile_id"`
}

func (h *TeacherHandler) ApplyLink(w http.ResponseWriter, r *http.Request) {
	teacherID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid teacher id")
		return
	}

	var req ApplyLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.reconciliation.ApplyLink(r.Context(), teacherID, req.ProfileID); err != nil {
		switch {
		case errors.Is(err, domain.ErrTeacherNotFound):
			respondWithError(w, http.StatusNotFound, "Teacher not found")
		case errors.Is(err, domain.ErrProfileNotFound):
			respondWithError(w, http.StatusNotFound, "Profile not found")
		case errors.Is(err, domain.ErrProfileAlreadyClaimed):
			respondWithError(w, http.StatusConflict, "Profile already linked to another teacher")
		default:
			slog.ErrorContext(r.Context(), "Link error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type BulkLinkResponse struct {
	BaseResponse
	Report *service.BulkLinkReport `json:"report"`
}

func (h *TeacherHandler) BulkLink(w http.ResponseWriter, r *http.Request) {
	_, orgID, err := h.actingOrganization(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	report, err := h.reconciliation.BulkLinkTeachers(r.Context(), orgID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Bulk link error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, BulkLinkResponse{
		BaseResponse: BaseResponse{Ok: true},
		Report:       report,
	})
}

func (h *TeacherHandler) DeactivateTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid teacher id")
		return
	}

	if err := h.reconciliation.DeactivateTeacher(r.Context(), teacherID); err != nil {
		switch {
		case errors.Is(err, domain.ErrTeacherNotFound):
			respondWithError(w, http.StatusNotFound, "Teacher not found")
		default:
			slog.ErrorContext(r.Context(), "Teacher deactivation error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type ListInvitationsResponse struct {
	BaseResponse
	Invitations []*model.TeacherInvitation `json:"invitations"`
}

func (h *TeacherHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	_, orgID, err := h.actingOrganization(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	invitations, err := h.reconciliation.PendingInvitations(r.Context(), orgID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Invitation listing error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, ListInvitationsResponse{
		BaseResponse: BaseResponse{Ok: true},
		Invitations:  invitations,
	})
}

func (h *TeacherHandler) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invitation id")
		return
	}

	if err := h.reconciliation.RevokeInvitation(r.Context(), invitationID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvitationNotFound):
			respondWithError(w, http.StatusNotFound, "Invitation not found")
		case errors.Is(err, domain.ErrInvitationUsed):
			respondWithError(w, http.StatusConflict, "Invitation already used")
		default:
			slog.ErrorContext(r.Context(), "Invitation revocation error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type CompleteInvitationResponse struct {
	BaseResponse
	ProfileID uuid.UUID `json:"profile_id"`
}

// CompleteInvitation is the public endpoint an invited teacher lands on.
func (h *TeacherHandler) CompleteInvitation(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var input service.CompleteInvitationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	profileID, err := h.reconciliation.CompleteInvitation(r.Context(), token, input)
	if err != nil {
		slog.ErrorContext(r.Context(), "Invitation completion error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrInvalidToken):
			respondWithError(w, http.StatusNotFound, "Invalid invitation token")
		case errors.Is(err, domain.ErrInvitationUsed):
			respondWithError(w, http.StatusConflict, "Invitation already used")
		case errors.Is(err, domain.ErrTeacherNotFound):
			respondWithError(w, http.StatusNotFound, "Teacher not found")
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, CompleteInvitationResponse{
		BaseResponse: BaseResponse{Ok: true},
		ProfileID:    profileID,
	})
}
