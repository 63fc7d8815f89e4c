package performance

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mezonai/ledgerkv/errors"
	"github.com/mezonai/ledgerkv/jsonx"
	"github.com/mezonai/ledgerkv/logx"
)

// Report is the measured elapsed time and memory summary for one span of work
type Report struct {
	RunID        string    `json:"run_id"`
	BlockNumber  uint64    `json:"block_number"`
	RealMs       int64     `json:"real_ms"`
	CPUMs        int64     `json:"cpu_ms"`
	CurrentMemKb uint64    `json:"current_mem_kb"`
	PeakMemKb    uint64    `json:"peak_mem_kb"`
	Degraded     bool      `json:"degraded,omitempty"`
	MeasuredAt   time.Time `json:"measured_at"`
}

// MemorySampler reports current and high-water resident memory in kilobytes
type MemorySampler interface {
	Sample() (currentKb, peakKb uint64, err error)
}

// CPUClock reports the CPU time consumed by the process so far
type CPUClock func() (time.Duration, error)

type Option func(d *Dumper)

func WithMemorySampler(s MemorySampler) Option {
	return func(d *Dumper) { d.memory = s }
}

func WithCPUClock(c CPUClock) Option {
	return func(d *Dumper) { d.cpu = c }
}

// Dumper measures spans of work and optionally writes each report as JSON
type Dumper struct {
	mu         sync.Mutex
	outputPath string
	memory     MemorySampler
	cpu        CPUClock
}

func NewDumper(opts ...Option) *Dumper {
	d := &Dumper{
		memory: processMemorySampler{},
		cpu:    processCPUTime,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Initialize sets the file every report is written to. An empty path disables the file.
func (d *Dumper) Initialize(outputPath string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outputPath = outputPath
}

// Span is an in-flight measurement started by Begin
type Span struct {
	dumper   *Dumper
	runID    string
	start    time.Time
	cpuStart time.Duration
	cpuErr   error
}

// Begin samples the clocks at the start of a span
func (d *Dumper) Begin() *Span {
	cpuStart, err := d.cpu()
	return &Span{
		dumper:   d,
		runID:    uuid.NewString(),
		start:    time.Now(),
		cpuStart: cpuStart,
		cpuErr:   err,
	}
}

// End closes the span and produces its report tagged with tag
func (s *Span) End(tag uint64) Report {
	d := s.dumper
	now := time.Now()
	r := Report{
		RunID:       s.runID,
		BlockNumber: tag,
		RealMs:      now.Sub(s.start).Milliseconds(),
		MeasuredAt:  now.UTC(),
	}

	cpuEnd, err := d.cpu()
	if err == nil && s.cpuErr == nil {
		r.CPUMs = (cpuEnd - s.cpuStart).Milliseconds()
	} else {
		r.Degraded = true
		logx.Warn("BENCH", "cpu time unavailable: ", firstErr(s.cpuErr, err))
	}

	current, peak, err := d.memory.Sample()
	if err != nil {
		degraded := errors.NewInstrumentationDegraded(err)
		logx.Warn("BENCH", degraded.Error())
		r.Degraded = true
	} else {
		r.CurrentMemKb = current
		r.PeakMemKb = peak
	}

	d.dump(r)
	return r
}

// Measure runs span and reports on it
func (d *Dumper) Measure(tag uint64, span func()) Report {
	s := d.Begin()
	span()
	return s.End(tag)
}

func (d *Dumper) dump(r Report) {
	d.mu.Lock()
	path := d.outputPath
	d.mu.Unlock()
	if path == "" {
		return
	}

	raw, err := jsonx.MarshalIndent(r, "", "  ")
	if err != nil {
		logx.Warn("BENCH", "failed to encode report: ", err)
		return
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		logx.Warn("BENCH", fmt.Sprintf("failed to write report to %s: %v", path, err))
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
