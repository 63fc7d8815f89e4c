package ledger

import (
	"github.com/mezonai/ledgerkv/block"
	"github.com/mezonai/ledgerkv/transaction"
)

// OperationFunc receives one operation together with its transaction and block.
// Returning false stops the iteration.
type OperationFunc func(b *block.Block, tx *transaction.Transaction, op *transaction.Operation) bool

// Source streams the entire recorded history in storage order.
//
// Implementations must pass the same *transaction.Transaction for every operation
// of one transaction and never pass one pointer for two different transactions,
// even when their contents are equal. Consumers use the pointer as identity.
type Source interface {
	ForEachOperation(fn OperationFunc) error
}

// forEachInBlock walks the operations of a single block; false means the consumer asked to stop
func forEachInBlock(b *block.Block, fn OperationFunc) bool {
	for _, tx := range b.Transactions {
		for i := range tx.Operations {
			if !fn(b, tx, &tx.Operations[i]) {
				return false
			}
		}
	}
	return true
}
