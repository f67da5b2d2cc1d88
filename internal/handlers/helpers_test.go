package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/archivo-digital/apiserver/internal/handlers"
	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/archivo-digital/apiserver/internal/services/servicetest"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router  http.Handler
	catalog *servicetest.Catalog
	content *servicetest.Content
	events  *servicetest.Events
}

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(ctx context.Context) error {
	return p.err
}

func newTestAPI(t *testing.T) *testAPI {
	return newTestAPIWithDB(t, stubPinger{})
}

func newTestAPIWithDB(t *testing.T, db handlers.Pinger) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := servicetest.NewCatalog()
	content := servicetest.NewContent()
	events := &servicetest.Events{}

	files := catalog.Files()
	taxonomy := services.NewTaxonomyService(catalog.Categories(), catalog.Subcategories(), catalog.Folders(), files)

	router := handlers.NewRouter(handlers.Services{
		Taxonomy: taxonomy,
		Files:    services.NewFileService(files, content, events, logger),
		Users:    services.NewUserService(catalog.Users()),
		Search:   services.NewSearchService(files),
		Metrics:  services.NewMetricService(catalog.Users(), files, catalog.Metrics(), events, logger),
		DB:       db,
	}, handlers.UploadLimits{MaxFiles: 10, MaxMemory: 1 << 20}, logger)

	return &testAPI{router: router, catalog: catalog, content: content, events: events}
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testAPI) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

type formFile struct {
	field string
	name  string
	body  string
}

func multipartRequest(t *testing.T, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.field, file.name)
		require.NoError(t, err)
		_, err = io.WriteString(part, file.body)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
