package exception

import (
	"runtime/debug"

	"github.com/mezonai/ledgerkv/logx"
	"github.com/mezonai/ledgerkv/monitoring"
)

// SafeGo runs fn in a goroutine and logs instead of crashing if it panics
func SafeGo(name string, fn func()) {
	go func() {
		defer Recover(name)
		fn()
	}()
}

// Recover must be deferred; it logs a recovered panic with its stack
func Recover(name string) {
	if r := recover(); r != nil {
		monitoring.IncreasePanicCount()
		logx.Error("PANIC", "Panic in: ", name, " ", r, "\n", string(debug.Stack()))
	}
}
