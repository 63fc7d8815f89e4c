package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/mezonai/ledgerkv/block"
	"github.com/mezonai/ledgerkv/db"
	"github.com/mezonai/ledgerkv/jsonx"
	"github.com/mezonai/ledgerkv/logx"
	"github.com/mezonai/ledgerkv/store"
)

// ProviderLedger reads the history from a ledger database laid out as
// PrefixBlock + <8-byte big-endian block number> => json(block.Block)
type ProviderLedger struct {
	provider db.IterableProvider
}

func NewProviderLedger(provider db.IterableProvider) *ProviderLedger {
	return &ProviderLedger{provider: provider}
}

// blockNumberToKey converts a block number to a block storage key
func blockNumberToKey(number uint64) []byte {
	key := make([]byte, len(store.PrefixBlock)+8)
	copy(key, store.PrefixBlock)
	binary.BigEndian.PutUint64(key[len(store.PrefixBlock):], number)
	return key
}

func latestKey() []byte {
	return []byte(store.PrefixBlockMeta + store.BlockMetaKeyLatest)
}

// ForEachOperation implements Source. Each block is decoded once, so every
// operation of a transaction shares the transaction pointer.
func (l *ProviderLedger) ForEachOperation(fn OperationFunc) error {
	var decodeErr error
	err := l.provider.IteratePrefix([]byte(store.PrefixBlock), func(key, value []byte) bool {
		var b block.Block
		if err := jsonx.Unmarshal(value, &b); err != nil {
			decodeErr = fmt.Errorf("failed to decode block at key %x: %w", key, err)
			return false
		}
		return forEachInBlock(&b, fn)
	})
	if decodeErr != nil {
		return decodeErr
	}
	if err != nil {
		return fmt.Errorf("failed to iterate ledger blocks: %w", err)
	}
	return nil
}

// LatestBlockNumber returns the number of the last written block, false if the ledger is empty
func (l *ProviderLedger) LatestBlockNumber() (uint64, bool, error) {
	return readLatest(l.provider)
}

func readLatest(provider db.DatabaseProvider) (uint64, bool, error) {
	value, err := provider.Get(latestKey())
	if err != nil {
		return 0, false, fmt.Errorf("failed to get latest block: %w", err)
	}
	if value == nil {
		return 0, false, nil
	}
	if len(value) != 8 {
		return 0, false, fmt.Errorf("invalid latest block value length: %d", len(value))
	}
	return binary.BigEndian.Uint64(value), true, nil
}

// WriteBlocks persists blocks and advances the latest block marker in one batch
func WriteBlocks(provider db.DatabaseProvider, blocks []*block.Block) error {
	if len(blocks) == 0 {
		return nil
	}
	latest, _, err := readLatest(provider)
	if err != nil {
		return err
	}
	err = db.NewDBTxManager(provider).WithBatch(func(batch db.DatabaseBatch) error {
		for _, b := range blocks {
			raw, err := jsonx.Marshal(b)
			if err != nil {
				return fmt.Errorf("failed to encode block %d: %w", b.Number, err)
			}
			batch.Put(blockNumberToKey(b.Number), raw)
			if b.Number > latest {
				latest = b.Number
			}
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, latest)
		batch.Put(latestKey(), buf)
		return nil
	})
	if err != nil {
		return err
	}
	logx.Debug("LEDGER", fmt.Sprintf("wrote %d blocks", len(blocks)))
	return nil
}
