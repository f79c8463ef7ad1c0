package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveRun("done", 2*time.Second)
	m.ObserveRun("done", time.Second)
	m.ObserveRun("failed", time.Second)
	m.ObserveExtraction("A", OutcomeOK)
	m.ObserveExtraction("B", OutcomeRateLimited)
	m.CompletionRetry(1, errors.New("429"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.runs.WithLabelValues("done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.extractions.WithLabelValues("B", OutcomeRateLimited)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.completionRetries))
	assert.Equal(t, 1, testutil.CollectAndCount(m.runDuration))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun("done", time.Second)
		m.ObserveExtraction("A", OutcomeOK)
		m.CompletionRetry(1, nil)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRun("done", time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `faculty_pipeline_runs_total{status="done"} 1`)
	assert.Contains(t, rec.Body.String(), "faculty_pipeline_duration_seconds_bucket")
}
