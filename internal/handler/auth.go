// internal/handler/auth.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/service"
)

type AuthHandler struct {
	authnService *service.AuthnService
}

func NewAuthHandler(authnService *service.AuthnService) *AuthHandler {
	return &AuthHandler{authnService: authnService}
}

type LoginResponse struct {
	BaseResponse
	Token   string      `json:"token,omitempty"`
	Profile interface{} `json:"profile,omitempty"`
	Roles   interface{} `json:"roles,omitempty"`
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.authnService.Login(r.Context(), input)
	if err != nil {
		slog.ErrorContext(r.Context(), "Admin login error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		BaseResponse: BaseResponse{Ok: true},
		Token:        output.Token,
		Profile:      output.Profile,
		Roles:        output.Roles,
	})
}
