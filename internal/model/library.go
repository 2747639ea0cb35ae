// internal/model/library.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LibraryFile is one uploaded textbook asset. The storage backend itself is
// external; this table only carries metadata and the grouping keys the
// library tree is built from.
type LibraryFile struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Program        string    `gorm:"type:text;not null" json:"program"`
	Category       string    `gorm:"type:text" json:"category"`
	Subcategory    string    `gorm:"type:text" json:"subcategory"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	StorageKey     string    `gorm:"type:text;not null" json:"storage_key"`
	SizeBytes      int64     `json:"size_bytes"`
	UploadedByID   uuid.UUID `gorm:"type:uuid" json:"uploaded_by"`
	CreatedAt      time.Time `json:"created_at"`
}

func (LibraryFile) TableName() string { return "library_files" }
