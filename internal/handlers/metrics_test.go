package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/archivo-digital/apiserver/internal/handlers"
	"github.com/archivo-digital/apiserver/internal/mq"
	"github.com/archivo-digital/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMetricFixtures(t *testing.T, api *testAPI) {
	t.Helper()
	require.Equal(t, http.StatusOK, api.postJSON("/signup", `{"email":"ana@archivo.org","password":"secreto1"}`).Code)
	_, _, folderID := api.catalog.SeedTree("Actas", "Consejo", "2024")
	_, err := api.catalog.Files().Create(context.Background(), types.File{
		Name:     "acta.pdf",
		Src:      "files/acta.pdf",
		FolderID: folderID,
	})
	require.NoError(t, err)
}

func TestRecordAndListMetrics(t *testing.T) {
	api := newTestAPI(t)
	seedMetricFixtures(t, api)

	rec := api.postJSON("/metrics", `{"email":"ana@archivo.org","file_id":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, decodeBody[handlers.RecordMetricResponse](t, rec).MetricID)

	rec = api.postJSON("/metrics", `{"email":"ana@archivo.org","file_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeBody[handlers.RecordMetricResponse](t, rec).MetricID)

	rec = api.get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody[handlers.MetricsResponse](t, rec).Metrics
	require.Len(t, entries, 2)
	assert.Equal(t, "ana@archivo.org", entries[0].Email)
	assert.Equal(t, "acta.pdf", entries[0].Name)
	assert.Equal(t, "files/acta.pdf", entries[0].Src)
	assert.False(t, entries[0].CreatedAt.IsZero())

	assert.Equal(t, []string{mq.ChannelMetricRecorded, mq.ChannelMetricRecorded}, api.events.Published())
}

func TestListMetricsEmpty(t *testing.T) {
	rec := newTestAPI(t).get("/metrics")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no metrics found", decodeBody[handlers.ErrorResponse](t, rec).Error)
}

func TestRecordMetricUnknownReferences(t *testing.T) {
	api := newTestAPI(t)
	seedMetricFixtures(t, api)

	rec := api.postJSON("/metrics", `{"email":"nadie@archivo.org","file_id":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found", decodeBody[handlers.ErrorResponse](t, rec).Error)

	rec = api.postJSON("/metrics", `{"email":"ana@archivo.org","file_id":40}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "file not found", decodeBody[handlers.ErrorResponse](t, rec).Error)

	rec = api.postJSON("/metrics", `{"email":"ana@archivo.org","file_id":"cuarenta"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, api.events.Published())
}
