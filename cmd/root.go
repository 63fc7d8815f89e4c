package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mezonai/ledgerkv/logx"
)

var rootCmd = &cobra.Command{
	Use:   "ledgerkv",
	Short: "Ledger-derived key-value store",
	Long:  "Command line interface for opening the ledgerkv store and replaying ledger history into it.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
