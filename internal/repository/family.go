// internal/repository/family.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/model"
	"gorm.io/gorm"
)

type FamilyRepositoryIface interface {
	FindGroupByID(ctx context.Context, id uuid.UUID) (*model.FamilyGroup, error)
	FindGroupsByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.FamilyGroup, error)
	CreateGroup(ctx context.Context, group *model.FamilyGroup) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	DeleteGroupsByOrganization(ctx context.Context, orgID uuid.UUID) error

	FindStudentsByGroup(ctx context.Context, groupID uuid.UUID) ([]*model.Student, error)
	FindStudentsByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Student, error)
	UpdateStudent(ctx context.Context, student *model.Student) error

	FindMembersByGroup(ctx context.Context, groupID uuid.UUID) ([]*model.FamilyMember, error)
	FindMembersByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.FamilyMember, error)
	CreateMember(ctx context.Context, member *model.FamilyMember) error
	DeleteMember(ctx context.Context, id uuid.UUID) error
	DeleteMembersByGroup(ctx context.Context, groupID uuid.UUID) error
	DeleteMembersByOrganization(ctx context.Context, orgID uuid.UUID) error

	SearchClientsByName(ctx context.Context, orgID uuid.UUID, name string) ([]*model.Client, error)
}

type FamilyRepository struct {
	db *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

func (r *FamilyRepository) FindGroupByID(ctx context.Context, id uuid.UUID) (*model.FamilyGroup, error) {
	var group model.FamilyGroup
	result := r.db.WithContext(ctx).First(&group, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find family group: %w", result.Error)
	}
	return &group, nil
}

func (r *FamilyRepository) FindGroupsByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.FamilyGroup, error) {
	var groups []*model.FamilyGroup
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at").
		Find(&groups)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find family groups: %w", result.Error)
	}
	return groups, nil
}

func (r *FamilyRepository) CreateGroup(ctx context.Context, group *model.FamilyGroup) error {
	result := r.db.WithContext(ctx).Create(group)
	if result.Error != nil {
		return fmt.Errorf("failed to create family group: %w", result.Error)
	}
	return nil
}

func (r *FamilyRepository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.FamilyGroup{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete family group: %w", result.Error)
	}
	return nil
}

func (r *FamilyRepository) DeleteGroupsByOrganization(ctx context.Context, orgID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Delete(&model.FamilyGroup{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete family groups: %w", result.Error)
	}
	return nil
}

func (r *FamilyRepository) FindStudentsByGroup(ctx context.Context, groupID uuid.UUID) ([]*model.Student, error) {
	var students []*model.Student
	result := r.db.WithContext(ctx).
		Where("family_group_id = ?", groupID).
		Order("created_at").
		Find(&students)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find students: %w", result.Error)
	}
	return students, nil
}

func (r *FamilyRepository) FindStudentsByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Student, error) {
	var students []*model.Student
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at").
		Find(&students)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find students: %w", result.Error)
	}
	return students, nil
}

func (r *FamilyRepository) UpdateStudent(ctx context.Context, student *model.Student) error {
	result := r.db.WithContext(ctx).Save(student)
	if result.Error != nil {
		return fmt.Errorf("failed to update student: %w", result.Error)
	}
	return nil
}

// FindMembersByGroup returns the group's guardian edges in insertion order,
// which is what "first encountered survives" in deduplication refers to.
func (r *FamilyRepository) FindMembersByGroup(ctx context.Context, groupID uuid.UUID) ([]*model.FamilyMember, error) {
	var members []*model.FamilyMember
	result := r.db.WithContext(ctx).
		Where("family_group_id = ?", groupID).
		Order("created_at, id").
		Find(&members)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find family members: %w", result.Error)
	}
	return members, nil
}

func (r *FamilyRepository) FindMembersByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.FamilyMember, error) {
	var members []*model.FamilyMember
	result := r.db.WithContext(ctx).
		Joins("JOIN family_groups ON family_groups.id = family_members.family_group_id").
		Where("family_groups.organization_id = ?", orgID).
		Order("family_members.created_at, family_members.id").
		Find(&members)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find family members: %w", result.Error)
	}
	return members, nil
}

func (r *FamilyRepository) CreateMember(ctx context.Context, member *model.FamilyMember) error {
	result := r.db.WithContext(ctx).Create(member)
	if result.Error != nil {
		return fmt.Errorf("failed to create family member: %w", result.Error)
	}
	return nil
}

func (r *FamilyRepository) DeleteMember(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.FamilyMember{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete family member: %w", result.Error)
	}
	return nil
}

func (r *FamilyRepository) DeleteMembersByGroup(ctx context.Context, groupID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("family_group_id = ?", groupID).
		Delete(&model.FamilyMember{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete family members: %w", result.Error)
	}
	return nil
}

func (r *FamilyRepository) DeleteMembersByOrganization(ctx context.Context, orgID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("family_group_id IN (?)",
			r.db.Model(&model.FamilyGroup{}).Select("id").Where("organization_id = ?", orgID)).
		Delete(&model.FamilyMember{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete family members: %w", result.Error)
	}
	return nil
}

// SearchClientsByName performs a case-insensitive substring search, ordered
// by name then id so repeated searches pick the same "first" candidate.
func (r *FamilyRepository) SearchClientsByName(ctx context.Context, orgID uuid.UUID, name string) ([]*model.Client, error) {
	var clients []*model.Client
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND name ILIKE ?", orgID, "%"+name+"%").
		Order("name, id").
		Find(&clients)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to search clients: %w", result.Error)
	}
	return clients, nil
}
