// internal/service/reconciliation.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/auth"
	"github.com/lingvoclass/backoffice/internal/config"
	"github.com/lingvoclass/backoffice/internal/contact"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/email"
	"github.com/lingvoclass/backoffice/internal/email/mailer"
	"github.com/lingvoclass/backoffice/internal/metrics"
	"github.com/lingvoclass/backoffice/internal/model"
	"github.com/lingvoclass/backoffice/internal/repository"
)

// MatchReason tags which contact field produced a reconciliation match.
type MatchReason string

const (
	MatchByEmail MatchReason = "email"
	MatchByPhone MatchReason = "phone"
)

// Match is a reconciliation suggestion: an existing profile believed to be
// the same person as an unlinked teacher record.
type Match struct {
	Profile *model.Profile
	Reason  MatchReason
}

// FindMatch searches candidate profiles for one matching the teacher's
// contact fields. Email equality (case-insensitive) wins over phone
// equality (canonical-form); there is no fuzzy name matching. Pure function
// of its inputs.
func FindMatch(teacher *model.Teacher, candidates []*model.Profile) *Match {
	if teacher.Email != "" {
		for _, p := range candidates {
			if contact.SameEmail(teacher.Email, p.Email) {
				return &Match{Profile: p, Reason: MatchByEmail}
			}
		}
	}

	if teacher.Phone != "" {
		for _, p := range candidates {
			if contact.SamePhone(teacher.Phone, p.Phone) {
				return &Match{Profile: p, Reason: MatchByPhone}
			}
		}
	}

	return nil
}

// ReconciliationService links teacher records to authenticatable profiles,
// directly when a contact match exists and through single-use invitations
// when it does not.
type ReconciliationService struct {
	teacherRepo    repository.TeacherRepositoryIface
	profileRepo    repository.ProfileRepositoryIface
	invitationRepo repository.InvitationRepositoryIface
	roleRepo       repository.RoleRepositoryIface
	passwordHasher *auth.PasswordHasher
	emailService   *email.Service
	config         *config.Config
	validate       *validator.Validate
}

func NewReconciliationService(
	teacherRepo repository.TeacherRepositoryIface,
	profileRepo repository.ProfileRepositoryIface,
	invitationRepo repository.InvitationRepositoryIface,
	roleRepo repository.RoleRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	emailService *email.Service,
	config *config.Config,
) *ReconciliationService {
	return &ReconciliationService{
		teacherRepo:    teacherRepo,
		profileRepo:    profileRepo,
		invitationRepo: invitationRepo,
		roleRepo:       roleRepo,
		passwordHasher: passwordHasher,
		emailService:   emailService,
		config:         config,
		validate:       validator.New(),
	}
}

// SuggestMatch runs FindMatch for one stored teacher against the
// organization's active profiles without applying anything.
func (s *ReconciliationService) SuggestMatch(ctx context.Context, teacherID uuid.UUID) (*Match, error) {
	teacher, err := s.teacherRepo.FindByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.profileRepo.FindActiveByOrganization(ctx, teacher.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("loading candidate profiles: %w", err)
	}

	return FindMatch(teacher, candidates), nil
}

// ApplyLink sets the teacher's profile reference. Re-applying the same link
// is a no-op; linking to a profile already claimed by another teacher fails.
func (s *ReconciliationService) ApplyLink(ctx context.Context, teacherID, profileID uuid.UUID) error {
	teacher, err := s.teacherRepo.FindByID(ctx, teacherID)
	if err != nil {
		return err
	}

	if teacher.ProfileID != nil {
		if *teacher.ProfileID == profileID {
			return nil
		}
		return domain.ErrProfileAlreadyClaimed
	}

	if _, err := s.profileRepo.FindByID(ctx, profileID); err != nil {
		return err
	}

	if claimed, err := s.profileClaimed(ctx, profileID, teacherID); err != nil {
		return err
	} else if claimed {
		return domain.ErrProfileAlreadyClaimed
	}

	teacher.ProfileID = &profileID
	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return fmt.Errorf("linking teacher: %w", err)
	}
	metrics.TeachersLinked.Inc()
	return nil
}

// profileClaimed reports whether a teacher other than exceptTeacherID already
// references the profile. One profile backs at most one teacher record.
func (s *ReconciliationService) profileClaimed(ctx context.Context, profileID, exceptTeacherID uuid.UUID) (bool, error) {
	other, err := s.teacherRepo.FindByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrTeacherNotFound) {
			return false, nil
		}
		return false, err
	}
	return other.ID != exceptTeacherID, nil
}

type CreateTeacherInput struct {
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	FirstName      string    `json:"first_name" validate:"required"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email" validate:"omitempty,email"`
	Phone          string    `json:"phone"`
	Branch         string    `json:"branch"`
	Subjects       []string  `json:"subjects"`
	Categories     []string  `json:"categories"`
	CreatedByID    uuid.UUID `json:"-"`
}

type CreateTeacherOutput struct {
	Teacher *model.Teacher `json:"teacher"`
	Linked  bool           `json:"linked"`
	Reason  MatchReason    `json:"reason,omitempty"`
}

// CreateTeacherWithAutoLink creates a teacher record, linking it on the spot
// when an existing profile matches the supplied contact fields. Without a
// match the teacher is created unlinked and a single-use invitation is
// issued and mailed.
func (s *ReconciliationService) CreateTeacherWithAutoLink(ctx context.Context, input CreateTeacherInput) (*CreateTeacherOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if input.Email == "" && input.Phone == "" {
		return nil, fmt.Errorf("%w: either email or phone is required", domain.ErrInvalidInput)
	}

	teacher := &model.Teacher{
		OrganizationID: input.OrganizationID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Branch:         input.Branch,
		Subjects:       model.StringList(input.Subjects),
		Categories:     model.StringList(input.Categories),
		IsActive:       true,
	}

	candidates, err := s.profileRepo.FindActiveByOrganization(ctx, input.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("loading candidate profiles: %w", err)
	}

	match := FindMatch(teacher, candidates)
	if match != nil {
		claimed, err := s.profileClaimed(ctx, match.Profile.ID, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if claimed {
			// The matched profile already backs another teacher record, so
			// the match is unusable; fall back to the invitation path.
			slog.InfoContext(ctx, "matched profile already claimed, issuing invitation instead",
				"profileID", match.Profile.ID)
			match = nil
		}
	}
	if match != nil {
		teacher.ProfileID = &match.Profile.ID
	}

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, fmt.Errorf("creating teacher: %w", err)
	}

	if match != nil {
		// Upsert, so a pre-existing assignment is not duplicated.
		if err := s.roleRepo.UpsertUserRole(ctx, match.Profile.ID, model.RoleTeacher); err != nil {
			return nil, fmt.Errorf("assigning teacher role: %w", err)
		}
		metrics.TeachersLinked.Inc()
		return &CreateTeacherOutput{Teacher: teacher, Linked: true, Reason: match.Reason}, nil
	}

	invitation := &model.TeacherInvitation{
		TeacherID:   teacher.ID,
		InviteToken: generateInviteToken(),
		Email:       input.Email,
		Phone:       input.Phone,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		CreatedByID: input.CreatedByID,
		ExpiresAt:   nowUTC().Add(s.inviteTTL()),
	}

	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, fmt.Errorf("creating invitation: %w", err)
	}

	s.sendInvitationEmail(ctx, invitation)

	return &CreateTeacherOutput{Teacher: teacher, Linked: false}, nil
}

// inviteTTL is the invitation validity window.
func (s *ReconciliationService) inviteTTL() time.Duration {
	if s.config != nil && s.config.Invite.TTL > 0 {
		return s.config.Invite.TTL
	}
	return time.Hour * 24 * 7
}

// sendInvitationEmail notifies the invited teacher. Delivery is best-effort:
// the invitation row is the source of truth, and the admin UI can re-send.
func (s *ReconciliationService) sendInvitationEmail(ctx context.Context, invitation *model.TeacherInvitation) {
	if s.emailService == nil || invitation.Email == "" {
		return
	}

	link := fmt.Sprintf("%s/invitations/%s", s.config.BaseURL, invitation.InviteToken)
	if err := mailer.SendTeacherInvitationEmail(s.emailService, invitation.Email, invitation.FirstName, link); err != nil {
		slog.WarnContext(ctx, "failed to send invitation email",
			"error", err, "invitationID", invitation.ID)
	}
}

type CompleteInvitationInput struct {
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone"`
}

// CompleteInvitation consumes a pending invitation: it creates a profile
// from the stored contact fields plus the completer's chosen credentials,
// links the originating teacher, grants the teacher role, and voids the
// token, all inside one transaction. A replayed token fails with
// ErrInvitationUsed; an expired one with ErrInvalidToken.
func (s *ReconciliationService) CompleteInvitation(ctx context.Context, token string, input CompleteInvitationInput) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, domain.ErrInvalidToken
	}
	if err := s.validate.Struct(input); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	invitation, err := s.invitationRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrInvitationNotFound) {
			return uuid.Nil, domain.ErrInvalidToken
		}
		return uuid.Nil, err
	}

	if invitation.Used() {
		return uuid.Nil, domain.ErrInvitationUsed
	}
	if invitation.Expired(nowUTC()) {
		return uuid.Nil, domain.ErrInvalidToken
	}

	teacher, err := s.teacherRepo.FindByID(ctx, invitation.TeacherID)
	if err != nil {
		return uuid.Nil, err
	}

	tx, err := s.teacherRepo.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	// All four writes go through the tx so a failure part-way leaves no
	// orphan profile behind its unique email index.
	profiles := s.profileRepo.WithTx(tx)
	teachers := s.teacherRepo.WithTx(tx)
	roles := s.roleRepo.WithTx(tx)
	invitations := s.invitationRepo.WithTx(tx)

	hashedPassword, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hashing password: %w", err)
	}

	profileEmail := invitation.Email
	if profileEmail == "" {
		profileEmail = input.Email
	}
	profilePhone := invitation.Phone
	if profilePhone == "" {
		profilePhone = input.Phone
	}

	profile := &model.Profile{
		OrganizationID: teacher.OrganizationID,
		FirstName:      invitation.FirstName,
		LastName:       invitation.LastName,
		Email:          profileEmail,
		Phone:          profilePhone,
		Branch:         teacher.Branch,
		PasswordHash:   hashedPassword,
		IsActive:       true,
	}

	if err := profiles.Create(ctx, profile); err != nil {
		return uuid.Nil, fmt.Errorf("creating profile: %w", err)
	}

	teacher.ProfileID = &profile.ID
	if err := teachers.Update(ctx, teacher); err != nil {
		return uuid.Nil, fmt.Errorf("linking teacher: %w", err)
	}

	if err := roles.UpsertUserRole(ctx, profile.ID, model.RoleTeacher); err != nil {
		return uuid.Nil, fmt.Errorf("assigning teacher role: %w", err)
	}

	now := nowUTC()
	invitation.UsedAt = &now
	if err := invitations.Update(ctx, invitation); err != nil {
		return uuid.Nil, fmt.Errorf("consuming invitation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("committing transaction: %w", err)
	}

	metrics.TeachersLinked.Inc()
	return profile.ID, nil
}

// RevokeInvitation voids a still-pending invitation.
func (s *ReconciliationService) RevokeInvitation(ctx context.Context, invitationID uuid.UUID) error {
	invitation, err := s.invitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if invitation.Used() {
		return domain.ErrInvitationUsed
	}
	return s.invitationRepo.Delete(ctx, invitation.ID)
}

// BulkLinkItem is one entry of a bulk reconciliation report.
type BulkLinkItem struct {
	TeacherID uuid.UUID   `json:"teacher_id"`
	Linked    bool        `json:"linked"`
	Reason    MatchReason `json:"reason,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// BulkLinkReport summarizes a best-effort bulk link run. Per-item failures
// do not abort the remaining teachers.
type BulkLinkReport struct {
	Total  int            `json:"total"`
	Linked int            `json:"linked"`
	Failed int            `json:"failed"`
	Items  []BulkLinkItem `json:"items"`
}

// BulkLinkTeachers runs FindMatch over every unlinked teacher in the
// organization and applies the links it finds.
func (s *ReconciliationService) BulkLinkTeachers(ctx context.Context, orgID uuid.UUID) (*BulkLinkReport, error) {
	teachers, err := s.teacherRepo.FindUnlinkedByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.profileRepo.FindActiveByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("loading candidate profiles: %w", err)
	}

	report := &BulkLinkReport{Total: len(teachers)}
	for _, teacher := range teachers {
		item := BulkLinkItem{TeacherID: teacher.ID}

		match := FindMatch(teacher, candidates)
		if match == nil {
			report.Items = append(report.Items, item)
			continue
		}

		// A profile that already backs another teacher record is not
		// linkable; the duplicate needs an admin decision, so it is
		// reported as a failure rather than skipped quietly.
		claimed, err := s.profileClaimed(ctx, match.Profile.ID, teacher.ID)
		if err != nil {
			item.Error = err.Error()
			report.Failed++
			report.Items = append(report.Items, item)
			continue
		}
		if claimed {
			item.Error = domain.ErrProfileAlreadyClaimed.Error()
			report.Failed++
			report.Items = append(report.Items, item)
			continue
		}

		teacher.ProfileID = &match.Profile.ID
		if err := s.teacherRepo.Update(ctx, teacher); err != nil {
			item.Error = err.Error()
			report.Failed++
			report.Items = append(report.Items, item)
			continue
		}

		if err := s.roleRepo.UpsertUserRole(ctx, match.Profile.ID, model.RoleTeacher); err != nil {
			item.Error = err.Error()
			report.Failed++
			report.Items = append(report.Items, item)
			continue
		}

		item.Linked = true
		item.Reason = match.Reason
		report.Linked++
		metrics.TeachersLinked.Inc()
		report.Items = append(report.Items, item)
	}

	return report, nil
}

// ListTeachers returns one page of the organization's teacher catalog.
func (s *ReconciliationService) ListTeachers(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*model.Teacher, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.teacherRepo.FindAllPaginated(ctx, orgID, offset, limit)
}

// DeactivateTeacher soft-deletes a teacher record. Deactivating an already
// inactive teacher is a no-op.
func (s *ReconciliationService) DeactivateTeacher(ctx context.Context, teacherID uuid.UUID) error {
	teacher, err := s.teacherRepo.FindByID(ctx, teacherID)
	if err != nil {
		return err
	}
	if !teacher.IsActive {
		return nil
	}
	teacher.IsActive = false
	return s.teacherRepo.Update(ctx, teacher)
}

// PendingInvitations lists the organization's unconsumed invitations.
func (s *ReconciliationService) PendingInvitations(ctx context.Context, orgID uuid.UUID) ([]*model.TeacherInvitation, error) {
	return s.invitationRepo.FindPendingByOrganization(ctx, orgID)
}

// generateInviteToken creates an opaque single-use token.
func generateInviteToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic(err) // This should never happen
	}
	return hex.EncodeToString(bytes)
}
