// internal/handler/library.go
package handler

import (
	"context"
	"log/slog"
	"net/http"

	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/middleware"
	"github.com/lingvoclass/backoffice/internal/repository"
	"github.com/lingvoclass/backoffice/internal/service"
)

type LibraryHandler struct {
	library     *service.LibraryService
	profileRepo repository.ProfileRepositoryIface
}

func NewLibraryHandler(library *service.LibraryService, profileRepo repository.ProfileRepositoryIface) *LibraryHandler {
	return &LibraryHandler{library: library, profileRepo: profileRepo}
}

func (h *LibraryHandler) actingOrganization(ctx context.Context) (uuid.UUID, error) {
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

type FolderTreeResponse struct {
	BaseResponse
	Tree *service.FolderTree `json:"tree"`
}

// FolderTree returns the organization's textbook library grouped into
// program/category/subcategory folders.
func (h *LibraryHandler) FolderTree(w http.ResponseWriter, r *http.Request) {
	orgID, err := h.actingOrganization(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	tree, err := h.library.FolderTree(r.Context(), orgID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Library tree error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, FolderTreeResponse{
		BaseResponse: BaseResponse{Ok: true},
		Tree:         tree,
	})
}
