package ledger

import (
	"sync"

	"github.com/mezonai/ledgerkv/block"
)

// MemoryLedger keeps an ordered history of blocks in memory
type MemoryLedger struct {
	mu     sync.RWMutex
	blocks []*block.Block
}

func NewMemoryLedger(blocks ...*block.Block) *MemoryLedger {
	return &MemoryLedger{blocks: blocks}
}

// Append adds blocks at the head of the history
func (l *MemoryLedger) Append(blocks ...*block.Block) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.blocks = append(l.blocks, blocks...)
}

func (l *MemoryLedger) Blocks() []*block.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*block.Block, len(l.blocks))
	copy(out, l.blocks)
	return out
}

// ForEachOperation implements Source
func (l *MemoryLedger) ForEachOperation(fn OperationFunc) error {
	for _, b := range l.Blocks() {
		if !forEachInBlock(b, fn) {
			return nil
		}
	}
	return nil
}
