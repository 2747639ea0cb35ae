// internal/model/role.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin         Role = "admin"
	RoleBranchManager Role = "branch_manager"
	RoleTeacher       Role = "teacher"
	RoleStudent       Role = "student"
	RoleSales         Role = "sales"
	RoleSupport       Role = "support"
)

// KnownRoles is the closed set of assignable role labels.
var KnownRoles = []Role{
	RoleAdmin,
	RoleBranchManager,
	RoleTeacher,
	RoleStudent,
	RoleSales,
	RoleSupport,
}

// Valid reports whether r belongs to the closed role enumeration.
func (r Role) Valid() bool {
	for _, known := range KnownRoles {
		if r == known {
			return true
		}
	}
	return false
}

type Verb string

const (
	VerbCreate Verb = "create"
	VerbRead   Verb = "read"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
	VerbManage Verb = "manage"
)

type Resource string

const (
	ResourceAll      Resource = "all"
	ResourceProfiles Resource = "profiles"
	ResourceTeachers Resource = "teachers"
	ResourceStudents Resource = "students"
	ResourceRoles    Resource = "roles"
	ResourceFamilies Resource = "families"
	ResourceLibrary  Resource = "library"
	ResourcePricing  Resource = "pricing"
)

// PermissionKey is the canonical "verb:resource" form used for per-user
// overrides and effective-permission sets.
type PermissionKey string

func NewPermissionKey(verb Verb, resource Resource) PermissionKey {
	return PermissionKey(string(verb) + ":" + string(resource))
}

// WildcardPermission grants everything; holders bypass individual checks.
var WildcardPermission = NewPermissionKey(VerbManage, ResourceAll)

// UserRole assigns one role label to a profile. The (profile_id, role)
// pair is unique; re-assigning is an upsert no-op.
type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_profile_role" json:"profile_id"`
	Role      Role      `gorm:"type:text;not null;uniqueIndex:idx_user_roles_profile_role" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	Profile Profile `gorm:"foreignKey:ProfileID" json:"-"`
}

func (UserRole) TableName() string { return "user_roles" }

// RolePermission is a static capability-template row: what one role may do
// with one resource, independent of any individual profile.
type RolePermission struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Role      Role      `gorm:"type:text;not null;uniqueIndex:idx_role_permissions_role_resource" json:"role"`
	Resource  Resource  `gorm:"type:text;not null;uniqueIndex:idx_role_permissions_role_resource" json:"resource"`
	CanCreate bool      `gorm:"not null;default:false" json:"can_create"`
	CanRead   bool      `gorm:"not null;default:false" json:"can_read"`
	CanUpdate bool      `gorm:"not null;default:false" json:"can_update"`
	CanDelete bool      `gorm:"not null;default:false" json:"can_delete"`
}

func (RolePermission) TableName() string { return "role_permissions" }

// Keys expands the CRUD booleans into canonical permission keys.
func (rp RolePermission) Keys() []PermissionKey {
	var keys []PermissionKey
	if rp.CanCreate {
		keys = append(keys, NewPermissionKey(VerbCreate, rp.Resource))
	}
	if rp.CanRead {
		keys = append(keys, NewPermissionKey(VerbRead, rp.Resource))
	}
	if rp.CanUpdate {
		keys = append(keys, NewPermissionKey(VerbUpdate, rp.Resource))
	}
	if rp.CanDelete {
		keys = append(keys, NewPermissionKey(VerbDelete, rp.Resource))
	}
	return keys
}

// UserPermission grants or revokes one fine-grained permission for one
// profile regardless of its roles. An override always wins over the
// role-derived value.
type UserPermission struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileID     uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_user_permissions_profile_key" json:"profile_id"`
	PermissionKey PermissionKey `gorm:"type:text;not null;uniqueIndex:idx_user_permissions_profile_key" json:"permission_key"`
	IsGranted     bool          `gorm:"not null" json:"is_granted"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Profile Profile `gorm:"foreignKey:ProfileID" json:"-"`
}

func (UserPermission) TableName() string { return "user_permissions" }
