package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/archivo-digital/apiserver/internal/services/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFindsUploadedFile(t *testing.T) {
	ctx := context.Background()
	catalog := servicetest.NewCatalog()
	_, _, folderID := catalog.SeedTree("Actas", "2024", "Enero")
	files := services.NewFileService(catalog.Files(), servicetest.NewContent(), nil, discardLogger)
	_, err := files.RegisterUpload(ctx, folderID, []services.Upload{textUpload("report.pdf", "x")})
	require.NoError(t, err)

	svc := services.NewSearchService(catalog.Files())

	found, err := svc.Search(ctx, "report.pdf", nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "report.pdf", found[0].Name)

	found, err = svc.Search(ctx, "REPORT", nil)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = svc.Search(ctx, "does-not-exist", nil)
	require.ErrorIs(t, err, services.ErrNotFound)
	assert.Equal(t, "no files found", err.Error())
}

func TestSearchEmptyTermMatchesAllAndCategoryNarrows(t *testing.T) {
	ctx := context.Background()
	catalog := servicetest.NewCatalog()
	firstCategory, _, firstFolder := catalog.SeedTree("Actas", "2024", "Enero")
	secondCategory, _, secondFolder := catalog.SeedTree("Planos", "Norte", "Lote 1")
	files := services.NewFileService(catalog.Files(), servicetest.NewContent(), nil, discardLogger)
	_, err := files.RegisterUpload(ctx, firstFolder, []services.Upload{textUpload("acta.pdf", "x")})
	require.NoError(t, err)
	_, err = files.RegisterUpload(ctx, secondFolder, []services.Upload{textUpload("plano.dwg", "y")})
	require.NoError(t, err)

	svc := services.NewSearchService(catalog.Files())

	all, err := svc.Search(ctx, "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	narrowed, err := svc.Search(ctx, "", &secondCategory)
	require.NoError(t, err)
	require.Len(t, narrowed, 1)
	assert.Equal(t, "plano.dwg", narrowed[0].Name)

	_, err = svc.Search(ctx, "plano", &firstCategory)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestSearchStorageError(t *testing.T) {
	catalog := servicetest.NewCatalog()
	catalog.Err = errors.New("timeout")

	_, err := services.NewSearchService(catalog.Files()).Search(context.Background(), "x", nil)
	assert.EqualError(t, err, "timeout")
}
