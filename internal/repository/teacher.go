// internal/repository/teacher.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/model"
	"gorm.io/gorm"
)

type TeacherRepositoryIface interface {
	Begin(ctx context.Context) (Transaction, error) // For mocking support in tests
	WithTx(tx Transaction) TeacherRepositoryIface

	Create(ctx context.Context, teacher *model.Teacher) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error)
	FindByProfileID(ctx context.Context, profileID uuid.UUID) (*model.Teacher, error)
	FindUnlinkedByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Teacher, error)
	Update(ctx context.Context, teacher *model.Teacher) error
	FindAllPaginated(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*model.Teacher, int64, error)
}

type TeacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Begin starts a new database transaction and returns a Transaction instance.
func (r *TeacherRepository) Begin(ctx context.Context) (Transaction, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormTransaction{tx: tx}, nil
}

// WithTx returns a copy of the repository whose writes run inside tx.
func (r *TeacherRepository) WithTx(tx Transaction) TeacherRepositoryIface {
	if g, ok := tx.(*gormTransaction); ok {
		return &TeacherRepository{db: g.tx}
	}
	return r
}

func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	result := r.db.WithContext(ctx).Create(teacher)
	if result.Error != nil {
		return fmt.Errorf("failed to create teacher: %w", result.Error)
	}
	return nil
}

func (r *TeacherRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error) {
	var teacher model.Teacher
	result := r.db.WithContext(ctx).First(&teacher, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to find teacher: %w", result.Error)
	}
	return &teacher, nil
}

func (r *TeacherRepository) FindByProfileID(ctx context.Context, profileID uuid.UUID) (*model.Teacher, error) {
	var teacher model.Teacher
	result := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&teacher)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to find teacher: %w", result.Error)
	}
	return &teacher, nil
}

func (r *TeacherRepository) FindUnlinkedByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Teacher, error) {
	var teachers []*model.Teacher
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND profile_id IS NULL AND is_active = true", orgID).
		Order("created_at").
		Find(&teachers)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find unlinked teachers: %w", result.Error)
	}
	return teachers, nil
}

func (r *TeacherRepository) Update(ctx context.Context, teacher *model.Teacher) error {
	result := r.db.WithContext(ctx).Save(teacher)
	if result.Error != nil {
		return fmt.Errorf("failed to update teacher: %w", result.Error)
	}
	return nil
}

// FindAllPaginated returns a paginated list of the organization's teachers
func (r *TeacherRepository) FindAllPaginated(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*model.Teacher, int64, error) {
	var teachers []*model.Teacher
	var count int64

	if err := r.db.WithContext(ctx).Model(&model.Teacher{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count teachers: %w", err)
	}

	result := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at").
		Offset(offset).Limit(limit).
		Find(&teachers)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to find paginated teachers: %w", result.Error)
	}

	return teachers, count, nil
}
