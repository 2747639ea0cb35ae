// internal/model/profile.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a registered, authenticatable user account.
type Profile struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	FirstName      string    `gorm:"type:text;not null" json:"first_name"`
	LastName       string    `gorm:"type:text" json:"last_name"`
	Email          string    `gorm:"type:citext;uniqueIndex" json:"email"`
	Phone          string    `gorm:"type:text" json:"phone"`
	Branch         string    `gorm:"type:text" json:"branch"`
	PasswordHash   string    `gorm:"type:text" json:"-"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// FullName is used in admin listings and email salutations.
func (p *Profile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
