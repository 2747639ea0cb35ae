// internal/service/permission.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/model"
	"github.com/lingvoclass/backoffice/internal/repository"
)

// AdminSection identifies one gated area of the back-office UI.
type AdminSection string

const (
	SectionStaff     AdminSection = "staff"
	SectionRoles     AdminSection = "roles"
	SectionFamilies  AdminSection = "families"
	SectionLibrary   AdminSection = "library"
	SectionPricing   AdminSection = "pricing"
	SectionMessaging AdminSection = "messaging"
	SectionTelephony AdminSection = "telephony"
)

// sectionRoles is the static table mapping each admin section to the roles
// allowed to view it. Admin passes everywhere regardless of this table.
var sectionRoles = map[AdminSection][]model.Role{
	SectionStaff:     {model.RoleBranchManager},
	SectionRoles:     {},
	SectionFamilies:  {model.RoleBranchManager, model.RoleSupport},
	SectionLibrary:   {model.RoleBranchManager, model.RoleTeacher},
	SectionPricing:   {model.RoleBranchManager, model.RoleSales},
	SectionMessaging: {model.RoleBranchManager, model.RoleSales, model.RoleSupport},
	SectionTelephony: {model.RoleBranchManager, model.RoleSales},
}

// validPermissionKeys is the closed permission-key space. Unknown keys are
// rejected at the boundary instead of being treated as free-form strings.
var validPermissionKeys = buildPermissionKeySpace()

func buildPermissionKeySpace() map[model.PermissionKey]struct{} {
	resources := []model.Resource{
		model.ResourceProfiles,
		model.ResourceTeachers,
		model.ResourceStudents,
		model.ResourceRoles,
		model.ResourceFamilies,
		model.ResourceLibrary,
		model.ResourcePricing,
	}
	verbs := []model.Verb{model.VerbCreate, model.VerbRead, model.VerbUpdate, model.VerbDelete}

	keys := make(map[model.PermissionKey]struct{}, len(resources)*len(verbs)+1)
	for _, res := range resources {
		for _, verb := range verbs {
			keys[model.NewPermissionKey(verb, res)] = struct{}{}
		}
	}
	keys[model.WildcardPermission] = struct{}{}
	return keys
}

// ValidPermissionKey reports whether key belongs to the closed enumeration.
func ValidPermissionKey(key model.PermissionKey) bool {
	_, ok := validPermissionKeys[key]
	return ok
}

// PermissionService computes what a profile may do from its assigned roles
// and per-user overrides. Resolution is evaluated fresh on every call; at
// administrative call volumes that is simpler than cache invalidation.
type PermissionService struct {
	roleRepo    repository.RoleRepositoryIface
	profileRepo repository.ProfileRepositoryIface
}

func NewPermissionService(roleRepo repository.RoleRepositoryIface, profileRepo repository.ProfileRepositoryIface) *PermissionService {
	return &PermissionService{roleRepo: roleRepo, profileRepo: profileRepo}
}

// AssignRole grants a role to a profile. Assigning an already-held role is
// a no-op, not an error.
func (s *PermissionService) AssignRole(ctx context.Context, profileID uuid.UUID, role model.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}
	if _, err := s.profileRepo.FindByID(ctx, profileID); err != nil {
		return err
	}
	return s.roleRepo.UpsertUserRole(ctx, profileID, role)
}

// RevokeRole removes a role from a profile. Revoking a role the profile
// does not hold is a no-op.
func (s *PermissionService) RevokeRole(ctx context.Context, profileID uuid.UUID, role model.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}
	return s.roleRepo.DeleteUserRole(ctx, profileID, role)
}

// Roles returns the profile's assigned role labels.
func (s *PermissionService) Roles(ctx context.Context, profileID uuid.UUID) ([]model.Role, error) {
	return s.roleRepo.FindRolesByProfile(ctx, profileID)
}

// EffectivePermissions is the union of the capability templates of every
// role the profile holds, with per-user overrides applied on top. An
// override always wins, whether it grants or revokes.
func (s *PermissionService) EffectivePermissions(ctx context.Context, profileID uuid.UUID) (map[model.PermissionKey]bool, error) {
	roles, err := s.roleRepo.FindRolesByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	effective := make(map[model.PermissionKey]bool)

	templates, err := s.roleRepo.FindPermissionsByRoles(ctx, roles)
	if err != nil {
		return nil, err
	}
	for _, tpl := range templates {
		for _, key := range tpl.Keys() {
			effective[key] = true
		}
	}

	overrides, err := s.roleRepo.FindOverridesByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		if o.IsGranted {
			effective[o.PermissionKey] = true
		} else {
			delete(effective, o.PermissionKey)
		}
	}

	return effective, nil
}

// HasPermission resolves one (verb, resource) check. A profile holding the
// admin role, or the manage:all wildcard, passes every check.
func (s *PermissionService) HasPermission(ctx context.Context, profileID uuid.UUID, verb model.Verb, resource model.Resource) (bool, error) {
	key := model.NewPermissionKey(verb, resource)
	if !ValidPermissionKey(key) {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownPermission, key)
	}

	roles, err := s.roleRepo.FindRolesByProfile(ctx, profileID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == model.RoleAdmin {
			return true, nil
		}
	}

	effective, err := s.EffectivePermissions(ctx, profileID)
	if err != nil {
		return false, err
	}

	if effective[model.WildcardPermission] {
		return true, nil
	}
	return effective[key], nil
}

// SetOverride grants or revokes one fine-grained permission for one profile
// regardless of its roles.
func (s *PermissionService) SetOverride(ctx context.Context, profileID uuid.UUID, key model.PermissionKey, granted bool) error {
	if !ValidPermissionKey(key) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPermission, key)
	}
	if _, err := s.profileRepo.FindByID(ctx, profileID); err != nil {
		return err
	}
	return s.roleRepo.UpsertOverride(ctx, &model.UserPermission{
		ProfileID:     profileID,
		PermissionKey: key,
		IsGranted:     granted,
	})
}

// ClearOverride removes a per-user override, reverting the key to its
// role-derived value.
func (s *PermissionService) ClearOverride(ctx context.Context, profileID uuid.UUID, key model.PermissionKey) error {
	if !ValidPermissionKey(key) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPermission, key)
	}
	return s.roleRepo.DeleteOverride(ctx, profileID, key)
}

// CanAccessAdminSection gates one UI section on the caller's role set.
// Unknown sections are closed.
func CanAccessAdminSection(roles []model.Role, section AdminSection) bool {
	allowed, ok := sectionRoles[section]
	if !ok {
		return false
	}

	for _, r := range roles {
		if r == model.RoleAdmin {
			return true
		}
		for _, a := range allowed {
			if r == a {
				return true
			}
		}
	}
	return false
}

// VisibleSections lists the admin sections the role set may open.
func VisibleSections(roles []model.Role) []AdminSection {
	all := []AdminSection{
		SectionStaff,
		SectionRoles,
		SectionFamilies,
		SectionLibrary,
		SectionPricing,
		SectionMessaging,
		SectionTelephony,
	}

	var visible []AdminSection
	for _, sec := range all {
		if CanAccessAdminSection(roles, sec) {
			visible = append(visible, sec)
		}
	}
	return visible
}
