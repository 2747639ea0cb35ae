// internal/model/invitation.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// TeacherInvitation is a pending onboarding token for an unlinked teacher.
// Consumed exactly once; completion materializes a Profile and links the
// originating Teacher to it.
type TeacherInvitation struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"teacher_id"`
	InviteToken string     `gorm:"type:text;not null;uniqueIndex" json:"-"`
	Email       string     `gorm:"type:citext" json:"email"`
	Phone       string     `gorm:"type:text" json:"phone"`
	FirstName   string     `gorm:"type:text;not null" json:"first_name"`
	LastName    string     `gorm:"type:text" json:"last_name"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt      *time.Time `json:"used_at"`
	CreatedAt   time.Time  `json:"created_at"`

	Teacher Teacher `gorm:"foreignKey:TeacherID" json:"-"`
}

func (TeacherInvitation) TableName() string { return "teacher_invitations" }

// Used reports whether the token has already been consumed.
func (i *TeacherInvitation) Used() bool { return i.UsedAt != nil }

// Expired reports whether the token's validity window has passed.
func (i *TeacherInvitation) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}
