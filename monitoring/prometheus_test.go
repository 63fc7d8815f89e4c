package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func reset() {
	metricsMu.Lock()
	importMetrics = nil
	metricsMu.Unlock()
}

func TestSettersAreNoopsBeforeInit(t *testing.T) {
	reset()
	assert.NotPanics(t, func() {
		SetImportProgress(1, 2, 3)
		RecordImportDuration(time.Second)
		SetImportPeakMemory(10)
		IncreaseStoreOpenFailures()
	})
}

func TestSettersUpdateGauges(t *testing.T) {
	reset()
	InitMetricsWith(prometheus.NewRegistry())
	defer reset()

	SetImportProgress(30, 4, 6)
	RecordImportDuration(1500 * time.Millisecond)
	SetImportPeakMemory(2048)
	IncreaseStoreOpenFailures()
	IncreaseStoreOpenFailures()

	assert.Equal(t, 30.0, testutil.ToFloat64(importMetrics.blockNumber))
	assert.Equal(t, 4.0, testutil.ToFloat64(importMetrics.transactions))
	assert.Equal(t, 6.0, testutil.ToFloat64(importMetrics.operations))
	assert.Equal(t, 1.5, testutil.ToFloat64(importMetrics.importDuration))
	assert.Equal(t, 2048.0, testutil.ToFloat64(importMetrics.importPeakMemory))
	assert.Equal(t, 2.0, testutil.ToFloat64(importMetrics.storeOpenFailures))
}

func TestRegisterMetricsMountsHandler(t *testing.T) {
	mux := http.NewServeMux()
	RegisterMetrics(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
