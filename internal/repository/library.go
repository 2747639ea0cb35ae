// internal/repository/library.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/model"
	"gorm.io/gorm"
)

type LibraryRepositoryIface interface {
	FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.LibraryFile, error)
}

type LibraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

func (r *LibraryRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.LibraryFile, error) {
	var files []*model.LibraryFile
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("program, category, subcategory, name").
		Find(&files)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find library files: %w", result.Error)
	}
	return files, nil
}
