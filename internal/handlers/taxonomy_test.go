package handlers_test

import (
	"net/http"
	"testing"

	"github.com/archivo-digital/apiserver/internal/handlers"
	"github.com/archivo-digital/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTaxonomy(t *testing.T) {
	api := newTestAPI(t)
	categoryID, subcategoryID, _ := api.catalog.SeedTree("Actas", "Consejo", "2024")
	api.catalog.SeedTree("Contratos", "Obras", "2023")

	rec := api.get("/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decodeBody[[]types.Category](t, rec)
	require.Len(t, categories, 2)
	assert.Equal(t, "Actas", categories[0].Name)

	rec = api.get("/subcategories/1")
	require.Equal(t, http.StatusOK, rec.Code)
	subcategories := decodeBody[[]types.Subcategory](t, rec)
	require.Len(t, subcategories, 1)
	assert.Equal(t, types.Subcategory{ID: subcategoryID, Name: "Consejo", CategoryID: categoryID}, subcategories[0])

	rec = api.get("/folders/2")
	require.Equal(t, http.StatusOK, rec.Code)
	folders := decodeBody[[]types.Folder](t, rec)
	require.Len(t, folders, 1)
	assert.Equal(t, "2023", folders[0].Name)
}

func TestListTaxonomyEmptyIsAnArray(t *testing.T) {
	api := newTestAPI(t)

	rec := api.get("/subcategories/42")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListTaxonomyRejectsInvalidIDs(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/subcategories/abc", "/subcategories/0", "/folders/-3"} {
		rec := api.get(path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestCreateSubcategory(t *testing.T) {
	api := newTestAPI(t)
	api.catalog.SeedTree("Actas", "Consejo", "2024")

	rec := api.postJSON("/subcategories", `{"name":"Comisiones","category_id":"1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeBody[handlers.CreatedResponse](t, rec)
	assert.Equal(t, 2, created.ID)
	assert.NotEmpty(t, created.Message)

	rec = api.get("/subcategories/1")
	assert.Len(t, decodeBody[[]types.Subcategory](t, rec), 2)
}

func TestCreateSubcategoryValidation(t *testing.T) {
	api := newTestAPI(t)
	api.catalog.SeedTree("Actas", "Consejo", "2024")

	cases := map[string]struct {
		body    string
		message string
	}{
		"missing name":     {`{"category_id":1}`, "name and category_id are required"},
		"missing parent":   {`{"name":"Comisiones"}`, "name and category_id are required"},
		"unknown parent":   {`{"name":"Comisiones","category_id":9}`, "category 9 does not exist"},
		"non-numeric id":   {`{"name":"Comisiones","category_id":"nine"}`, "invalid request"},
		"malformed object": {`{"name":`, "invalid request"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := api.postJSON("/subcategories", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, decodeBody[handlers.ErrorResponse](t, rec).Error)
		})
	}
}

func TestCreateFolder(t *testing.T) {
	api := newTestAPI(t)
	_, subcategoryID, _ := api.catalog.SeedTree("Actas", "Consejo", "2024")

	rec := api.postJSON("/folders", `{"name":"2025","subcategory_id":1}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeBody[handlers.CreatedResponse](t, rec).ID)

	rec = api.get("/folders/1")
	folders := decodeBody[[]types.Folder](t, rec)
	require.Len(t, folders, 2)
	assert.Equal(t, subcategoryID, folders[1].SubcategoryID)

	rec = api.postJSON("/folders", `{"name":"2026","subcategory_id":7}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "subcategory 7 does not exist", decodeBody[handlers.ErrorResponse](t, rec).Error)
}
