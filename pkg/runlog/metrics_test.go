package runlog

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObservePurge(t *testing.T) {
	m := NewMetrics()

	m.ObservePurge([]Result{
		{Path: "a.log", Deleted: true},
		{Path: "b.log", Deleted: true},
		{Path: "c.log", Reason: errors.New("permission denied")},
	})
	m.ObservePurge(nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.PurgePassesTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.FilesDeletedTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FilesSkippedTotal))
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ObservePurge([]Result{{Path: "a.log", Deleted: true}})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "runlog_purge_passes_total 1")
	assert.Contains(t, rec.Body.String(), "runlog_files_deleted_total 1")
}
