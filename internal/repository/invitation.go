// internal/repository/invitation.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/model"
	"gorm.io/gorm"
)

type InvitationRepositoryIface interface {
	WithTx(tx Transaction) InvitationRepositoryIface

	Create(ctx context.Context, invitation *model.TeacherInvitation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TeacherInvitation, error)
	FindByToken(ctx context.Context, token string) (*model.TeacherInvitation, error)
	FindPendingByTeacher(ctx context.Context, teacherID uuid.UUID) (*model.TeacherInvitation, error)
	FindPendingByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.TeacherInvitation, error)
	Update(ctx context.Context, invitation *model.TeacherInvitation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// WithTx returns a copy of the repository whose writes run inside tx.
func (r *InvitationRepository) WithTx(tx Transaction) InvitationRepositoryIface {
	if g, ok := tx.(*gormTransaction); ok {
		return &InvitationRepository{db: g.tx}
	}
	return r
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *model.TeacherInvitation) error {
	result := r.db.WithContext(ctx).Create(invitation)
	if result.Error != nil {
		return fmt.Errorf("failed to create invitation: %w", result.Error)
	}
	return nil
}

func (r *InvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TeacherInvitation, error) {
	var invitation model.TeacherInvitation
	result := r.db.WithContext(ctx).First(&invitation, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", result.Error)
	}
	return &invitation, nil
}

func (r *InvitationRepository) FindByToken(ctx context.Context, token string) (*model.TeacherInvitation, error) {
	var invitation model.TeacherInvitation
	result := r.db.WithContext(ctx).Where("invite_token = ?", token).First(&invitation)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", result.Error)
	}
	return &invitation, nil
}

func (r *InvitationRepository) FindPendingByTeacher(ctx context.Context, teacherID uuid.UUID) (*model.TeacherInvitation, error) {
	var invitation model.TeacherInvitation
	result := r.db.WithContext(ctx).
		Where("teacher_id = ? AND used_at IS NULL", teacherID).
		First(&invitation)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", result.Error)
	}
	return &invitation, nil
}

func (r *InvitationRepository) FindPendingByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.TeacherInvitation, error) {
	var invitations []*model.TeacherInvitation
	result := r.db.WithContext(ctx).
		Joins("JOIN teachers ON teachers.id = teacher_invitations.teacher_id").
		Where("teachers.organization_id = ? AND teacher_invitations.used_at IS NULL", orgID).
		Order("teacher_invitations.created_at").
		Find(&invitations)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find pending invitations: %w", result.Error)
	}
	return invitations, nil
}

func (r *InvitationRepository) Update(ctx context.Context, invitation *model.TeacherInvitation) error {
	result := r.db.WithContext(ctx).Save(invitation)
	if result.Error != nil {
		return fmt.Errorf("failed to update invitation: %w", result.Error)
	}
	return nil
}

func (r *InvitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TeacherInvitation{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete invitation: %w", result.Error)
	}
	return nil
}
