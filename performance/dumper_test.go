package performance

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/ledgerkv/jsonx"
	"github.com/mezonai/ledgerkv/logx"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type fixedSampler struct {
	current, peak uint64
	err           error
}

func (s fixedSampler) Sample() (uint64, uint64, error) {
	return s.current, s.peak, s.err
}

func steppingClock(step time.Duration) CPUClock {
	var now time.Duration
	return func() (time.Duration, error) {
		now += step
		return now, nil
	}
}

func TestMeasureReportsSpan(t *testing.T) {
	d := NewDumper(
		WithMemorySampler(fixedSampler{current: 100, peak: 250}),
		WithCPUClock(steppingClock(30*time.Millisecond)),
	)

	ran := false
	r := d.Measure(42, func() {
		ran = true
		time.Sleep(5 * time.Millisecond)
	})

	assert.True(t, ran)
	assert.Equal(t, uint64(42), r.BlockNumber)
	assert.GreaterOrEqual(t, r.RealMs, int64(5))
	assert.Equal(t, int64(30), r.CPUMs)
	assert.Equal(t, uint64(100), r.CurrentMemKb)
	assert.Equal(t, uint64(250), r.PeakMemKb)
	assert.False(t, r.Degraded)
	assert.NotEmpty(t, r.RunID)
}

func TestMemorySamplingFailureDegradesToZero(t *testing.T) {
	d := NewDumper(
		WithMemorySampler(fixedSampler{current: 1, peak: 2, err: errors.New("no /proc")}),
		WithCPUClock(steppingClock(time.Millisecond)),
	)

	r := d.Begin().End(7)
	assert.True(t, r.Degraded)
	assert.Zero(t, r.CurrentMemKb)
	assert.Zero(t, r.PeakMemKb)
	assert.Equal(t, uint64(7), r.BlockNumber)
}

func TestCPUClockFailureDegrades(t *testing.T) {
	d := NewDumper(
		WithMemorySampler(fixedSampler{current: 1, peak: 2}),
		WithCPUClock(func() (time.Duration, error) { return 0, errors.New("unsupported") }),
	)

	r := d.Measure(1, func() {})
	assert.True(t, r.Degraded)
	assert.Zero(t, r.CPUMs)
	assert.Equal(t, uint64(1), r.CurrentMemKb)
}

func TestReportWrittenToOutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rocksdb_data_import.json")
	d := NewDumper(WithMemorySampler(fixedSampler{current: 1, peak: 1}))
	d.Initialize(path)

	r := d.Measure(9, func() {})

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, jsonx.Unmarshal(raw, &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	assert.Equal(t, uint64(9), decoded.BlockNumber)
}

func TestUnwritableOutputIsNotFatal(t *testing.T) {
	d := NewDumper(WithMemorySampler(fixedSampler{}))
	d.Initialize(filepath.Join(t.TempDir(), "missing", "dir", "report.json"))
	assert.NotPanics(t, func() { d.Measure(1, func() {}) })
}

func TestProcessSamplerOnHost(t *testing.T) {
	current, peak, err := processMemorySampler{}.Sample()
	if err != nil {
		t.Skipf("memory sampling unavailable: %v", err)
	}
	assert.NotZero(t, current)
	assert.GreaterOrEqual(t, peak, current)
}
