package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/archivo-digital/apiserver/internal/services/servicetest"
	"github.com/archivo-digital/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaxonomy(catalog *servicetest.Catalog) *services.TaxonomyService {
	return services.NewTaxonomyService(catalog.Categories(), catalog.Subcategories(), catalog.Folders(), catalog.Files())
}

func TestCreateSubcategoryIsListedUnderItsCategory(t *testing.T) {
	ctx := context.Background()
	catalog := servicetest.NewCatalog()
	svc := newTaxonomy(catalog)

	category, err := svc.CreateCategory(ctx, "Actas")
	require.NoError(t, err)

	created, err := svc.CreateSubcategory(ctx, "2024", category.ID)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	subcategories, err := svc.ListSubcategories(ctx, category.ID)
	require.NoError(t, err)
	assert.Contains(t, subcategories, types.Subcategory{ID: created.ID, Name: "2024", CategoryID: category.ID})
}

func TestCreateSubcategoryValidation(t *testing.T) {
	ctx := context.Background()
	catalog := servicetest.NewCatalog()
	catalog.SeedTree("Actas", "2024", "Enero")
	svc := newTaxonomy(catalog)

	tests := []struct {
		name       string
		subName    string
		categoryID int
		message    string
	}{
		{name: "missing name", subName: "  ", categoryID: 1, message: "name and category_id are required"},
		{name: "missing category", subName: "2025", categoryID: 0, message: "name and category_id are required"},
		{name: "unknown category", subName: "2025", categoryID: 42, message: "category 42 does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSubcategory(ctx, tt.subName, tt.categoryID)
			require.ErrorIs(t, err, services.ErrValidation)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestListSubcategoriesEmptyIsNotAnError(t *testing.T) {
	catalog := servicetest.NewCatalog()
	svc := newTaxonomy(catalog)

	subcategories, err := svc.ListSubcategories(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, subcategories)
}

func TestCreateFolder(t *testing.T) {
	ctx := context.Background()
	catalog := servicetest.NewCatalog()
	_, subcategoryID, _ := catalog.SeedTree("Actas", "2024", "Enero")
	svc := newTaxonomy(catalog)

	folder, err := svc.CreateFolder(ctx, "Febrero", subcategoryID)
	require.NoError(t, err)

	folders, err := svc.ListFolders(ctx, subcategoryID)
	require.NoError(t, err)
	assert.Len(t, folders, 2)
	assert.Equal(t, folder, folders[1])

	_, err = svc.CreateFolder(ctx, "", subcategoryID)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = svc.CreateFolder(ctx, "Marzo", 99)
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestTaxonomyPropagatesStorageErrors(t *testing.T) {
	catalog := servicetest.NewCatalog()
	catalog.Err = errors.New("connection refused")
	svc := newTaxonomy(catalog)

	_, err := svc.ListCategories(context.Background())
	assert.EqualError(t, err, "connection refused")

	_, err = svc.CreateSubcategory(context.Background(), "x", 1)
	assert.EqualError(t, err, "connection refused")
	assert.NotErrorIs(t, err, services.ErrValidation)
}

func TestListFilesReturnsOnlyTheFoldersFiles(t *testing.T) {
	ctx := context.Background()
	catalog := servicetest.NewCatalog()
	_, _, first := catalog.SeedTree("Actas", "2024", "Enero")
	_, _, second := catalog.SeedTree("Planos", "Norte", "Lote 1")
	files := catalog.Files()
	_, err := files.Create(ctx, types.File{Name: "a.pdf", Src: "files/a.pdf", FolderID: first})
	require.NoError(t, err)
	_, err = files.Create(ctx, types.File{Name: "b.pdf", Src: "files/b.pdf", FolderID: second})
	require.NoError(t, err)

	listed, err := newTaxonomy(catalog).ListFiles(ctx, first)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "a.pdf", listed[0].Name)
}
