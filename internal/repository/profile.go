// internal/repository/profile.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/model"
	"gorm.io/gorm"
)

type ProfileRepositoryIface interface {
	WithTx(tx Transaction) ProfileRepositoryIface

	Create(ctx context.Context, profile *model.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	FindActiveByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
	FindAllPaginated(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*model.Profile, int64, error)
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// WithTx returns a copy of the repository whose writes run inside tx.
func (r *ProfileRepository) WithTx(tx Transaction) ProfileRepositoryIface {
	if g, ok := tx.(*gormTransaction); ok {
		return &ProfileRepository{db: g.tx}
	}
	return r
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	result := r.db.WithContext(ctx).Create(profile)
	if result.Error != nil {
		return fmt.Errorf("failed to create profile: %w", result.Error)
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	result := r.db.WithContext(ctx).First(&profile, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", result.Error)
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&profile)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", result.Error)
	}
	return &profile, nil
}

func (r *ProfileRepository) FindActiveByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Profile, error) {
	var profiles []*model.Profile
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = true", orgID).
		Find(&profiles)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", result.Error)
	}
	return profiles, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	result := r.db.WithContext(ctx).Save(profile)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	return nil
}

// FindAllPaginated returns a paginated list of the organization's profiles
func (r *ProfileRepository) FindAllPaginated(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*model.Profile, int64, error) {
	var profiles []*model.Profile
	var count int64

	if err := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	result := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at").
		Offset(offset).Limit(limit).
		Find(&profiles)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to find paginated profiles: %w", result.Error)
	}

	return profiles, count, nil
}
