//go:build !unix

package performance

import (
	"fmt"
	"runtime"
	"time"
)

func processCPUTime() (time.Duration, error) {
	return 0, fmt.Errorf("cpu time sampling not supported on %s", runtime.GOOS)
}

func peakRSSKb() (uint64, error) {
	return 0, fmt.Errorf("peak memory sampling not supported on %s", runtime.GOOS)
}
