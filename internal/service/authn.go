// internal/service/authn.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lingvoclass/backoffice/internal/auth"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/model"
	"github.com/lingvoclass/backoffice/internal/repository"
)

// AuthnService issues admin session tokens. Authorization decisions never
// trust the token's role list; that is PermissionService's job.
type AuthnService struct {
	profileRepo    repository.ProfileRepositoryIface
	roleRepo       repository.RoleRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
}

func NewAuthnService(
	profileRepo repository.ProfileRepositoryIface,
	roleRepo repository.RoleRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
) *AuthnService {
	return &AuthnService{
		profileRepo:    profileRepo,
		roleRepo:       roleRepo,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Profile *model.Profile `json:"profile"`
	Roles   []model.Role   `json:"roles"`
	Token   string         `json:"token"`
}

// Login verifies credentials and returns a signed session token.
func (s *AuthnService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	profile, err := s.profileRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !profile.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	verified, err := s.passwordHasher.Verify(input.Password, profile.PasswordHash)
	if err != nil || !verified {
		return nil, domain.ErrInvalidCredentials
	}

	roles, err := s.roleRepo.FindRolesByProfile(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("loading roles: %w", err)
	}

	labels := make([]string, 0, len(roles))
	for _, r := range roles {
		labels = append(labels, string(r))
	}

	token, err := s.tokenManager.Generate(profile.ID.String(), profile.Email, labels)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &LoginOutput{Profile: profile, Roles: roles, Token: token}, nil
}
