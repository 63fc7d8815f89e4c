//go:build unix

package performance

import (
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

func rusage() (*unix.Rusage, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return nil, err
	}
	return &ru, nil
}

func processCPUTime() (time.Duration, error) {
	ru, err := rusage()
	if err != nil {
		return 0, err
	}
	user := time.Duration(ru.Utime.Nano())
	sys := time.Duration(ru.Stime.Nano())
	return user + sys, nil
}

func peakRSSKb() (uint64, error) {
	ru, err := rusage()
	if err != nil {
		return 0, err
	}
	// ru_maxrss is in bytes on darwin and kilobytes elsewhere
	if runtime.GOOS == "darwin" {
		return uint64(ru.Maxrss) / 1024, nil
	}
	return uint64(ru.Maxrss), nil
}
