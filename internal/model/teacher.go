// internal/model/teacher.go
package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Teacher is a teaching-staff record. A Teacher with a nil ProfileID is
// "unlinked": the person exists in the catalog but cannot authenticate
// until reconciliation or invitation completion links a Profile.
type Teacher struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	ProfileID      *uuid.UUID `gorm:"type:uuid;index" json:"profile_id"`
	FirstName      string     `gorm:"type:text;not null" json:"first_name"`
	LastName       string     `gorm:"type:text" json:"last_name"`
	Email          string     `gorm:"type:citext" json:"email"`
	Phone          string     `gorm:"type:text" json:"phone"`
	Branch         string     `gorm:"type:text" json:"branch"`
	Subjects       StringList `gorm:"type:text[];not null;default:'{}'" json:"subjects"`
	Categories     StringList `gorm:"type:text[];not null;default:'{}'" json:"categories"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:ProfileID" json:"-"`
}

func (Teacher) TableName() string { return "teachers" }

// Linked reports whether the teacher record is attached to a profile.
func (t *Teacher) Linked() bool { return t.ProfileID != nil }

// StringList is a custom type that implements the sql.Scanner and driver.Valuer interfaces
type StringList []string

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = []string{}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type %T", value, l)
	}

	trimmed := strings.Trim(str, "{}")
	if trimmed == "" {
		*l = []string{}
		return nil
	}
	*l = strings.Split(trimmed, ",")
	return nil
}

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "{}", nil
	}
	return "{" + strings.Join(l, ",") + "}", nil
}
