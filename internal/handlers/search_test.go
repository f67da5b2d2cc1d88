package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/archivo-digital/apiserver/internal/handlers"
	"github.com/archivo-digital/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSearchFiles(t *testing.T, api *testAPI) {
	t.Helper()
	_, _, actas := api.catalog.SeedTree("Actas", "Consejo", "2024")
	_, _, contratos := api.catalog.SeedTree("Contratos", "Obras", "2023")

	files := api.catalog.Files()
	for _, file := range []types.File{
		{Name: "Informe_Anual.pdf", Src: "files/Informe_Anual.pdf", FolderID: actas},
		{Name: "acta-marzo.pdf", Src: "files/acta-marzo.pdf", FolderID: actas},
		{Name: "informe-obra.pdf", Src: "files/informe-obra.pdf", FolderID: contratos},
	} {
		_, err := files.Create(context.Background(), file)
		require.NoError(t, err)
	}
}

func TestFindMatchesCaseInsensitively(t *testing.T) {
	api := newTestAPI(t)
	seedSearchFiles(t, api)

	rec := api.get("/find?search=INFORME")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[handlers.SearchResponse](t, rec)
	require.Len(t, resp.Files, 2)
	assert.Equal(t, "Informe_Anual.pdf", resp.Files[0].Name)
	assert.Equal(t, "informe-obra.pdf", resp.Files[1].Name)
}

func TestFindFiltersByCategory(t *testing.T) {
	api := newTestAPI(t)
	seedSearchFiles(t, api)

	rec := api.get("/find?search=informe&category=2")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[handlers.SearchResponse](t, rec)
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "informe-obra.pdf", resp.Files[0].Name)

	rec = api.get("/find?category=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[handlers.SearchResponse](t, rec).Files, 2)
}

func TestFindNoMatchUsesMessageShape(t *testing.T) {
	api := newTestAPI(t)
	seedSearchFiles(t, api)

	for _, path := range []string{"/find?search=presupuesto", "/find?search=informe&category=abc"} {
		rec := api.get(path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"message":"no files found"}`, rec.Body.String(), path)
	}
}

func TestFindStoreFailure(t *testing.T) {
	api := newTestAPI(t)
	api.catalog.Err = errors.New("pq: canceling statement")

	rec := api.get("/find?search=x")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error while searching files"}`, rec.Body.String())
}
