package main

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/ledgerkv/cmd"
	"github.com/mezonai/ledgerkv/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("LEDGERKV CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
