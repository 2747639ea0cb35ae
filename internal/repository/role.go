// internal/repository/role.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepositoryIface interface {
	WithTx(tx Transaction) RoleRepositoryIface

	UpsertUserRole(ctx context.Context, profileID uuid.UUID, role model.Role) error
	DeleteUserRole(ctx context.Context, profileID uuid.UUID, role model.Role) error
	FindRolesByProfile(ctx context.Context, profileID uuid.UUID) ([]model.Role, error)
	FindPermissionsByRoles(ctx context.Context, roles []model.Role) ([]model.RolePermission, error)
	FindOverridesByProfile(ctx context.Context, profileID uuid.UUID) ([]model.UserPermission, error)
	UpsertOverride(ctx context.Context, override *model.UserPermission) error
	DeleteOverride(ctx context.Context, profileID uuid.UUID, key model.PermissionKey) error
}

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// WithTx returns a copy of the repository whose writes run inside tx.
func (r *RoleRepository) WithTx(tx Transaction) RoleRepositoryIface {
	if g, ok := tx.(*gormTransaction); ok {
		return &RoleRepository{db: g.tx}
	}
	return r
}

// UpsertUserRole inserts the (profile, role) assignment; a duplicate pair is
// a silent no-op via the uniqueness constraint.
func (r *RoleRepository) UpsertUserRole(ctx context.Context, profileID uuid.UUID, role model.Role) error {
	assignment := model.UserRole{ProfileID: profileID, Role: role}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "role"}},
			DoNothing: true,
		}).
		Create(&assignment)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert user role: %w", result.Error)
	}
	return nil
}

// DeleteUserRole removes the assignment if present; absence is not an error.
func (r *RoleRepository) DeleteUserRole(ctx context.Context, profileID uuid.UUID, role model.Role) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND role = ?", profileID, role).
		Delete(&model.UserRole{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user role: %w", result.Error)
	}
	return nil
}

func (r *RoleRepository) FindRolesByProfile(ctx context.Context, profileID uuid.UUID) ([]model.Role, error) {
	var assignments []model.UserRole
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at").
		Find(&assignments)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find user roles: %w", result.Error)
	}

	roles := make([]model.Role, 0, len(assignments))
	for _, a := range assignments {
		roles = append(roles, a.Role)
	}
	return roles, nil
}

func (r *RoleRepository) FindPermissionsByRoles(ctx context.Context, roles []model.Role) ([]model.RolePermission, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	var permissions []model.RolePermission
	result := r.db.WithContext(ctx).
		Where("role IN ?", roles).
		Find(&permissions)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find role permissions: %w", result.Error)
	}
	return permissions, nil
}

func (r *RoleRepository) FindOverridesByProfile(ctx context.Context, profileID uuid.UUID) ([]model.UserPermission, error) {
	var overrides []model.UserPermission
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Find(&overrides)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find permission overrides: %w", result.Error)
	}
	return overrides, nil
}

func (r *RoleRepository) UpsertOverride(ctx context.Context, override *model.UserPermission) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "permission_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_granted", "updated_at"}),
		}).
		Create(override)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert permission override: %w", result.Error)
	}
	return nil
}

func (r *RoleRepository) DeleteOverride(ctx context.Context, profileID uuid.UUID, key model.PermissionKey) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND permission_key = ?", profileID, key).
		Delete(&model.UserPermission{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete permission override: %w", result.Error)
	}
	return nil
}
