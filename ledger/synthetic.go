package ledger

import (
	"fmt"

	"github.com/mezonai/ledgerkv/block"
	"github.com/mezonai/ledgerkv/transaction"
)

// GenerateHistory builds a chained history of n blocks starting at block number 1,
// each carrying txsPerBlock transactions of opsPerTx transfer operations
func GenerateHistory(n, txsPerBlock, opsPerTx int, producer string) []*block.Block {
	blocks := make([]*block.Block, 0, n)
	var prev block.ID
	var nonce uint64
	for i := 1; i <= n; i++ {
		txs := make([]*transaction.Transaction, 0, txsPerBlock)
		for j := 0; j < txsPerBlock; j++ {
			nonce++
			tx := &transaction.Transaction{Nonce: nonce, Timestamp: uint64(i)}
			for k := 0; k < opsPerTx; k++ {
				sender := fmt.Sprintf("acct-%d", (j+k)%16)
				recipient := fmt.Sprintf("acct-%d", (j+k+1)%16)
				tx.Operations = append(tx.Operations, transaction.NewTransfer(sender, recipient, uint64(k+1)))
			}
			txs = append(txs, tx)
		}
		b := block.AssembleBlock(uint64(i), prev, producer, txs)
		prev = b.ID
		blocks = append(blocks, b)
	}
	return blocks
}
