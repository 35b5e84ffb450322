package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReportFormats(t *testing.T) {
	store := testStore()
	rep, err := computeReport(context.Background(), store)
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeReport(rep, "json", dir))

		data, err := os.ReadFile(filepath.Join(dir, "report.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"run_id"`)
	})

	t.Run("yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeReport(rep, "yaml", dir))

		_, err := os.Stat(filepath.Join(dir, "report.yaml"))
		assert.NoError(t, err)
	})

	t.Run("csv", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeReport(rep, "csv", dir))

		for _, name := range []string{"accounts.csv", "products.csv"} {
			_, err := os.Stat(filepath.Join(dir, name))
			assert.NoError(t, err, name)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, writeReport(rep, "xml", t.TempDir()))
	})
}

func TestJSONHandler(t *testing.T) {
	handler := jsonHandler(map[string]int{"total_orders": 3})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"total_orders":3}`, rec.Body.String())
}
