package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mezonai/ledgerkv/logx"
)

type importPromMetrics struct {
	nodeUpUnixSeconds prometheus.Gauge
	blockNumber       prometheus.Gauge
	transactions      prometheus.Gauge
	operations        prometheus.Gauge
	importDuration    prometheus.Gauge
	importPeakMemory  prometheus.Gauge
	storeOpenFailures prometheus.Counter
	panicCount        prometheus.Counter
}

func newImportPromMetrics(reg prometheus.Registerer) *importPromMetrics {
	factory := promauto.With(reg)
	return &importPromMetrics{
		nodeUpUnixSeconds: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledgerkv_up_timestamp_unix_seconds",
				Help: "Unix timestamp of the process start",
			},
		),
		blockNumber: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledgerkv_import_block_number",
				Help: "Block number reached by the replay import",
			},
		),
		transactions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledgerkv_import_transactions_total",
				Help: "Transactions observed by the replay import so far",
			},
		),
		operations: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledgerkv_import_operations_total",
				Help: "Operations observed by the replay import so far",
			},
		),
		importDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledgerkv_import_duration_seconds",
				Help: "Wall-clock duration of the last completed replay import",
			},
		),
		importPeakMemory: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledgerkv_import_peak_memory_kilobytes",
				Help: "Peak resident memory reported at the end of the last replay import",
			},
		),
		storeOpenFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ledgerkv_store_open_failures_total",
				Help: "The total number of failed store opens",
			},
		),
		panicCount: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ledgerkv_panic_count",
				Help: "The total number of recovered panics",
			},
		),
	}
}

var (
	metricsMu     sync.RWMutex
	importMetrics *importPromMetrics
	defaultOnce   sync.Once
)

// InitMetrics registers the metrics on the default registry. Setters are no-ops until it is called.
func InitMetrics() {
	defaultOnce.Do(func() {
		InitMetricsWith(prometheus.DefaultRegisterer)
	})
}

// InitMetricsWith registers the metrics on reg
func InitMetricsWith(reg prometheus.Registerer) {
	m := newImportPromMetrics(reg)
	m.nodeUpUnixSeconds.SetToCurrentTime()

	metricsMu.Lock()
	importMetrics = m
	metricsMu.Unlock()
}

func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("METRICS", "Registering prometheus metrics")
	mux.Handle("/metrics", promhttp.Handler())
}

func with(fn func(m *importPromMetrics)) {
	metricsMu.RLock()
	m := importMetrics
	metricsMu.RUnlock()
	if m != nil {
		fn(m)
	}
}

func SetImportProgress(blockNumber, transactions, operations uint64) {
	with(func(m *importPromMetrics) {
		m.blockNumber.Set(float64(blockNumber))
		m.transactions.Set(float64(transactions))
		m.operations.Set(float64(operations))
	})
}

func RecordImportDuration(duration time.Duration) {
	with(func(m *importPromMetrics) {
		m.importDuration.Set(duration.Seconds())
	})
}

func SetImportPeakMemory(kb uint64) {
	with(func(m *importPromMetrics) {
		m.importPeakMemory.Set(float64(kb))
	})
}

func IncreaseStoreOpenFailures() {
	with(func(m *importPromMetrics) {
		m.storeOpenFailures.Inc()
	})
}

func IncreasePanicCount() {
	with(func(m *importPromMetrics) {
		m.panicCount.Inc()
	})
}
