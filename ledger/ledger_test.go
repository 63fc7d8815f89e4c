package ledger

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/ledgerkv/block"
	"github.com/mezonai/ledgerkv/db"
	"github.com/mezonai/ledgerkv/logx"
	"github.com/mezonai/ledgerkv/store"
	"github.com/mezonai/ledgerkv/transaction"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type visit struct {
	block uint64
	tx    *transaction.Transaction
}

func collect(t *testing.T, src Source) []visit {
	t.Helper()
	var out []visit
	require.NoError(t, src.ForEachOperation(func(b *block.Block, tx *transaction.Transaction, op *transaction.Operation) bool {
		out = append(out, visit{block: b.Number, tx: tx})
		return true
	}))
	return out
}

func TestGenerateHistoryChainsBlocks(t *testing.T) {
	blocks := GenerateHistory(3, 2, 2, "p")
	require.Len(t, blocks, 3)
	assert.True(t, blocks[0].Previous.IsZero())
	assert.Equal(t, blocks[0].ID, blocks[1].Previous)
	assert.Equal(t, blocks[1].ID, blocks[2].Previous)
	assert.Equal(t, 4, blocks[2].OperationCount())
}

func TestMemoryLedgerVisitsInOrderWithStableIdentity(t *testing.T) {
	l := NewMemoryLedger(GenerateHistory(2, 2, 3, "p")...)
	visits := collect(t, l)

	require.Len(t, visits, 12)
	assert.Equal(t, uint64(1), visits[0].block)
	assert.Equal(t, uint64(2), visits[11].block)
	assert.Same(t, visits[0].tx, visits[2].tx)
	assert.NotSame(t, visits[2].tx, visits[3].tx)
}

func TestMemoryLedgerStopsWhenAsked(t *testing.T) {
	l := NewMemoryLedger(GenerateHistory(5, 1, 1, "p")...)
	calls := 0
	require.NoError(t, l.ForEachOperation(func(*block.Block, *transaction.Transaction, *transaction.Operation) bool {
		calls++
		return calls < 2
	}))
	assert.Equal(t, 2, calls)
}

func TestMemoryLedgerEmpty(t *testing.T) {
	assert.Empty(t, collect(t, NewMemoryLedger()))
}

func openLevelDB(t *testing.T) db.IterableProvider {
	t.Helper()
	p, err := db.NewLevelDBProvider(filepath.Join(t.TempDir(), "ledger"), db.DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestProviderLedgerRoundTrip(t *testing.T) {
	p := openLevelDB(t)
	blocks := GenerateHistory(4, 2, 2, "p")
	// written out of order; iteration follows key order
	require.NoError(t, WriteBlocks(p, blocks[2:]))
	require.NoError(t, WriteBlocks(p, blocks[:2]))

	l := NewProviderLedger(p)
	latest, ok, err := l.LatestBlockNumber()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(4), latest)

	visits := collect(t, l)
	require.Len(t, visits, 16)
	for i := 1; i < len(visits); i++ {
		assert.GreaterOrEqual(t, visits[i].block, visits[i-1].block)
	}
	assert.Same(t, visits[0].tx, visits[1].tx)
	assert.NotSame(t, visits[1].tx, visits[2].tx)
}

func TestProviderLedgerEmpty(t *testing.T) {
	l := NewProviderLedger(openLevelDB(t))
	_, ok, err := l.LatestBlockNumber()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, collect(t, l))
}

func TestProviderLedgerCorruptBlock(t *testing.T) {
	p := openLevelDB(t)
	require.NoError(t, WriteBlocks(p, GenerateHistory(1, 1, 1, "p")))
	require.NoError(t, p.Put(blockNumberToKey(2), []byte("{not json")))

	calls := 0
	err := NewProviderLedger(p).ForEachOperation(func(*block.Block, *transaction.Transaction, *transaction.Operation) bool {
		calls++
		return true
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestProviderLedgerInvalidLatest(t *testing.T) {
	p := openLevelDB(t)
	require.NoError(t, p.Put([]byte(store.PrefixBlockMeta+store.BlockMetaKeyLatest), []byte{1}))
	_, _, err := NewProviderLedger(p).LatestBlockNumber()
	assert.Error(t, err)
}
