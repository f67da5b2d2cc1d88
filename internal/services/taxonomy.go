package services

import (
	"context"
	"errors"
	"strings"

	"github.com/archivo-digital/apiserver/internal/store"
	"github.com/archivo-digital/apiserver/types"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]types.Category, error)
	Get(ctx context.Context, id int) (types.Category, error)
	Create(ctx context.Context, category types.Category) (types.Category, error)
}

// SubcategoryRepository defines persistence operations for subcategories.
type SubcategoryRepository interface {
	ListByCategory(ctx context.Context, categoryID int) ([]types.Subcategory, error)
	Get(ctx context.Context, id int) (types.Subcategory, error)
	Create(ctx context.Context, subcategory types.Subcategory) (types.Subcategory, error)
}

// FolderRepository defines persistence operations for folders.
type FolderRepository interface {
	ListBySubcategory(ctx context.Context, subcategoryID int) ([]types.Folder, error)
	Get(ctx context.Context, id int) (types.Folder, error)
	Create(ctx context.Context, folder types.Folder) (types.Folder, error)
}

// TaxonomyService browses and extends the category → subcategory → folder tree.
// Levels are append-only.
type TaxonomyService struct {
	categories    CategoryRepository
	subcategories SubcategoryRepository
	folders       FolderRepository
	files         FileRepository
}

func NewTaxonomyService(
	categories CategoryRepository,
	subcategories SubcategoryRepository,
	folders FolderRepository,
	files FileRepository,
) *TaxonomyService {
	return &TaxonomyService{
		categories:    categories,
		subcategories: subcategories,
		folders:       folders,
		files:         files,
	}
}

func (s *TaxonomyService) ListCategories(ctx context.Context) ([]types.Category, error) {
	return s.categories.List(ctx)
}

func (s *TaxonomyService) ListSubcategories(ctx context.Context, categoryID int) ([]types.Subcategory, error) {
	return s.subcategories.ListByCategory(ctx, categoryID)
}

func (s *TaxonomyService) ListFolders(ctx context.Context, subcategoryID int) ([]types.Folder, error) {
	return s.folders.ListBySubcategory(ctx, subcategoryID)
}

// ListFiles returns the files filed directly under folderID.
func (s *TaxonomyService) ListFiles(ctx context.Context, folderID int) ([]types.File, error) {
	return s.files.ListByFolder(ctx, folderID)
}

// CreateCategory adds a taxonomy root. It is only reachable from the CLI.
func (s *TaxonomyService) CreateCategory(ctx context.Context, name string) (types.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Category{}, clientError(ErrValidation, "name is required")
	}
	return s.categories.Create(ctx, types.Category{Name: name})
}

func (s *TaxonomyService) CreateSubcategory(ctx context.Context, name string, categoryID int) (types.Subcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" || categoryID < 1 {
		return types.Subcategory{}, clientError(ErrValidation, "name and category_id are required")
	}

	if _, err := s.categories.Get(ctx, categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Subcategory{}, clientError(ErrValidation, "category %d does not exist", categoryID)
		}
		return types.Subcategory{}, err
	}

	created, err := s.subcategories.Create(ctx, types.Subcategory{Name: name, CategoryID: categoryID})
	if errors.Is(err, store.ErrReferenceNotFound) {
		return types.Subcategory{}, clientError(ErrValidation, "category %d does not exist", categoryID)
	}
	return created, err
}

func (s *TaxonomyService) CreateFolder(ctx context.Context, name string, subcategoryID int) (types.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" || subcategoryID < 1 {
		return types.Folder{}, clientError(ErrValidation, "name and subcategory_id are required")
	}

	if _, err := s.subcategories.Get(ctx, subcategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Folder{}, clientError(ErrValidation, "subcategory %d does not exist", subcategoryID)
		}
		return types.Folder{}, err
	}

	created, err := s.folders.Create(ctx, types.Folder{Name: name, SubcategoryID: subcategoryID})
	if errors.Is(err, store.ErrReferenceNotFound) {
		return types.Folder{}, clientError(ErrValidation, "subcategory %d does not exist", subcategoryID)
	}
	return created, err
}
