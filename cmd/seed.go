package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mezonai/ledgerkv/db"
	"github.com/mezonai/ledgerkv/ledger"
	"github.com/mezonai/ledgerkv/logx"
	"github.com/mezonai/ledgerkv/store"
)

const seedBatchBlocks = 1000

var (
	seedLedgerDir string
	seedBackend   string
	seedBlocks    int
	seedTxs       int
	seedOps       int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write a synthetic ledger history for local import runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return seedLedger(seedBackend, seedLedgerDir, seedBlocks, seedTxs, seedOps)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedLedgerDir, "ledger", "ledger", "Ledger database directory")
	seedCmd.Flags().StringVar(&seedBackend, "backend", string(store.LevelDBStoreType), "Ledger backend (leveldb, rocksdb, bbolt)")
	seedCmd.Flags().IntVar(&seedBlocks, "blocks", 1000, "Number of blocks")
	seedCmd.Flags().IntVar(&seedTxs, "txs", 4, "Transactions per block")
	seedCmd.Flags().IntVar(&seedOps, "ops", 2, "Operations per transaction")
}

func seedLedger(backend, dir string, blocks, txs, ops int) error {
	if blocks <= 0 || txs < 0 || ops < 0 {
		return fmt.Errorf("invalid history shape: blocks=%d txs=%d ops=%d", blocks, txs, ops)
	}

	provider, err := store.CreateProvider(&store.StoreConfig{
		Type:      store.StoreType(backend),
		Directory: dir,
	}, db.DefaultOptions())
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer provider.Close()

	history := ledger.GenerateHistory(blocks, txs, ops, "seed")
	for start := 0; start < len(history); start += seedBatchBlocks {
		end := start + seedBatchBlocks
		if end > len(history) {
			end = len(history)
		}
		if err := ledger.WriteBlocks(provider, history[start:end]); err != nil {
			return fmt.Errorf("write blocks %d-%d: %w", start+1, end, err)
		}
	}

	logx.Info("CMD", fmt.Sprintf("Seeded %d blocks (%d txs of %d ops each) into %s", blocks, txs, ops, dir))
	return nil
}
