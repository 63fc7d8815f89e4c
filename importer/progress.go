package importer

import (
	"github.com/mezonai/ledgerkv/block"
	"github.com/mezonai/ledgerkv/transaction"
)

// Progress accumulates boundary-detection state for one import pass.
// Counters never decrease and are discarded when the pass ends.
type Progress struct {
	LastPredecessor block.ID
	CurrentBlock    uint64
	LastTx          *transaction.Transaction
	Transactions    uint64
	Operations      uint64
}

// Observe applies one streamed operation.
//
// A new block is recognised by a change of the predecessor id, not by the block
// number, so gaps in numbering are tolerated. A new transaction is recognised
// by pointer identity so contents are never compared.
func (p *Progress) Observe(b *block.Block, tx *transaction.Transaction, _ *transaction.Operation) {
	if p.LastPredecessor != b.Previous {
		p.CurrentBlock = b.Number
		p.LastPredecessor = b.Previous
	}

	if p.LastTx != tx {
		p.Transactions++
		p.LastTx = tx
	}

	p.Operations++
}
