package performance

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// processMemorySampler reads RSS through gopsutil and the high-water mark through rusage
type processMemorySampler struct{}

func (processMemorySampler) Sample() (uint64, uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, 0, err
	}
	info, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	current := info.RSS / 1024

	peak, err := peakRSSKb()
	if err != nil {
		return 0, 0, err
	}
	if peak < current {
		peak = current
	}
	return current, peak, nil
}
