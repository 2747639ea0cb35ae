// internal/model/family.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// FamilyGroup is a named join target for students and guardian edges.
type FamilyGroup struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (FamilyGroup) TableName() string { return "family_groups" }

// Student references at most one family group.
type Student struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	FamilyGroupID  *uuid.UUID `gorm:"type:uuid;index" json:"family_group_id"`
	FirstName      string     `gorm:"type:text;not null" json:"first_name"`
	LastName       string     `gorm:"type:text" json:"last_name"`
	Branch         string     `gorm:"type:text" json:"branch"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	FamilyGroup *FamilyGroup `gorm:"foreignKey:FamilyGroupID" json:"-"`
}

func (Student) TableName() string { return "students" }

// Client is a guardian contact that can be linked to family groups.
type Client struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	Email          string    `gorm:"type:citext" json:"email"`
	Phone          string    `gorm:"type:text" json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

const (
	RelationshipMain = "main"
)

// FamilyMember is a guardian-to-group edge. At most one edge may exist per
// (family_group_id, client_id) pair; duplicates are a defect the repair
// service detects and removes.
type FamilyMember struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FamilyGroupID    uuid.UUID `gorm:"type:uuid;not null;index" json:"family_group_id"`
	ClientID         uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	RelationshipType string    `gorm:"type:text;not null;default:'main'" json:"relationship_type"`
	IsPrimaryContact bool      `gorm:"not null;default:false" json:"is_primary_contact"`
	CreatedAt        time.Time `json:"created_at"`

	FamilyGroup FamilyGroup `gorm:"foreignKey:FamilyGroupID" json:"-"`
	Client      Client      `gorm:"foreignKey:ClientID" json:"-"`
}

func (FamilyMember) TableName() string { return "family_members" }
