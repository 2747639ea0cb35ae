// internal/service/library.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/model"
	"github.com/lingvoclass/backoffice/internal/repository"
)

// FolderTree is the nested view of the textbook library:
// program → category → subcategory → files.
type FolderTree struct {
	Programs []*ProgramNode `json:"programs"`
}

type ProgramNode struct {
	Name       string          `json:"name"`
	Categories []*CategoryNode `json:"categories"`
}

type CategoryNode struct {
	Name          string             `json:"name"`
	Subcategories []*SubcategoryNode `json:"subcategories"`
}

type SubcategoryNode struct {
	Name  string               `json:"name"`
	Files []*model.LibraryFile `json:"files"`
}

// BuildFolderTree groups a flat file list by (program, category,
// subcategory). Node order follows first appearance in the input, so a
// sorted input yields a sorted tree. Empty grouping keys are legal and form
// their own nodes; presentation of unnamed levels is the caller's concern.
func BuildFolderTree(files []*model.LibraryFile) *FolderTree {
	tree := &FolderTree{}
	programs := make(map[string]*ProgramNode)
	categories := make(map[[2]string]*CategoryNode)
	subcategories := make(map[[3]string]*SubcategoryNode)

	for _, f := range files {
		prog, ok := programs[f.Program]
		if !ok {
			prog = &ProgramNode{Name: f.Program}
			programs[f.Program] = prog
			tree.Programs = append(tree.Programs, prog)
		}

		catKey := [2]string{f.Program, f.Category}
		cat, ok := categories[catKey]
		if !ok {
			cat = &CategoryNode{Name: f.Category}
			categories[catKey] = cat
			prog.Categories = append(prog.Categories, cat)
		}

		subKey := [3]string{f.Program, f.Category, f.Subcategory}
		sub, ok := subcategories[subKey]
		if !ok {
			sub = &SubcategoryNode{Name: f.Subcategory}
			subcategories[subKey] = sub
			cat.Subcategories = append(cat.Subcategories, sub)
		}

		sub.Files = append(sub.Files, f)
	}

	return tree
}

// LibraryService exposes the textbook library tree for the admin UI.
type LibraryService struct {
	libraryRepo repository.LibraryRepositoryIface
}

func NewLibraryService(libraryRepo repository.LibraryRepositoryIface) *LibraryService {
	return &LibraryService{libraryRepo: libraryRepo}
}

// FolderTree loads the organization's files and groups them.
func (s *LibraryService) FolderTree(ctx context.Context, orgID uuid.UUID) (*FolderTree, error) {
	files, err := s.libraryRepo.FindByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return BuildFolderTree(files), nil
}
