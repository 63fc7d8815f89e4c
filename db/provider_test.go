package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type openFunc func(dir string, options Options) (IterableProvider, error)

func fileBackends() map[string]openFunc {
	return map[string]openFunc{
		"leveldb": func(dir string, o Options) (IterableProvider, error) {
			p, err := NewLevelDBProvider(dir, o)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		"bbolt": func(dir string, o Options) (IterableProvider, error) {
			p, err := NewBoltProvider(dir, o)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
	}
}

func TestProviderBasicOperations(t *testing.T) {
	for name, open := range fileBackends() {
		t.Run(name, func(t *testing.T) {
			p, err := open(filepath.Join(t.TempDir(), "store"), DefaultOptions())
			require.NoError(t, err)
			defer p.Close()

			v, err := p.Get([]byte("missing"))
			require.NoError(t, err)
			assert.Nil(t, v)

			require.NoError(t, p.Put([]byte("k1"), []byte("v1")))
			v, err = p.Get([]byte("k1"))
			require.NoError(t, err)
			assert.Equal(t, []byte("v1"), v)

			ok, err := p.Has([]byte("k1"))
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, p.Delete([]byte("k1")))
			ok, err = p.Has([]byte("k1"))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestProviderBatchAndIteratePrefix(t *testing.T) {
	for name, open := range fileBackends() {
		t.Run(name, func(t *testing.T) {
			p, err := open(filepath.Join(t.TempDir(), "store"), DefaultOptions())
			require.NoError(t, err)
			defer p.Close()

			err = NewDBTxManager(p).WithBatch(func(b DatabaseBatch) error {
				b.Put([]byte("blk:2"), []byte("two"))
				b.Put([]byte("blk:1"), []byte("one"))
				b.Put([]byte("meta:x"), []byte("x"))
				return nil
			})
			require.NoError(t, err)

			var keys []string
			require.NoError(t, p.IteratePrefix([]byte("blk:"), func(k, v []byte) bool {
				keys = append(keys, string(k))
				return true
			}))
			assert.Equal(t, []string{"blk:1", "blk:2"}, keys)

			got, err := p.GetBatch([][]byte{[]byte("blk:1"), []byte("nope")})
			require.NoError(t, err)
			assert.Equal(t, map[string][]byte{"blk:1": []byte("one")}, got)

			var first []string
			require.NoError(t, p.IteratePrefix([]byte("blk:"), func(k, v []byte) bool {
				first = append(first, string(k))
				return false
			}))
			assert.Len(t, first, 1)
		})
	}
}

func TestWithBatchDiscardsOnError(t *testing.T) {
	p, err := NewLevelDBProvider(t.TempDir(), DefaultOptions())
	require.NoError(t, err)
	defer p.Close()

	err = NewDBTxManager(p).WithBatch(func(b DatabaseBatch) error {
		b.Put([]byte("k"), []byte("v"))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	ok, err := p.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProviderReopenKeepsContents(t *testing.T) {
	for name, open := range fileBackends() {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "store")
			p, err := open(dir, DefaultOptions())
			require.NoError(t, err)
			require.NoError(t, p.Put([]byte("k"), []byte("v")))
			require.NoError(t, p.Close())
			require.NoError(t, p.Close(), "second close is a no-op")

			p, err = open(dir, DefaultOptions())
			require.NoError(t, err)
			defer p.Close()
			v, err := p.Get([]byte("k"))
			require.NoError(t, err)
			assert.Equal(t, []byte("v"), v)
		})
	}
}

func TestProviderWithoutCreateIfMissing(t *testing.T) {
	for name, open := range fileBackends() {
		t.Run(name, func(t *testing.T) {
			_, err := open(filepath.Join(t.TempDir(), "absent"), Options{CreateIfMissing: false})
			assert.Error(t, err)
		})
	}
}

func TestProviderOpenUnderRegularFileFails(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	for name, open := range fileBackends() {
		t.Run(name, func(t *testing.T) {
			_, err := open(filepath.Join(file, "store"), DefaultOptions())
			assert.Error(t, err)
		})
	}
}

func TestRedisProviderUnreachable(t *testing.T) {
	_, err := NewRedisProvider("127.0.0.1:1")
	assert.Error(t, err)
}

func TestConvertKeyToHumanReadable(t *testing.T) {
	key := append([]byte("blk:"), 0, 0, 0, 0, 0, 0, 0, 42)
	assert.Equal(t, "blk:42", convertKeyToHumanReadable(key))
	assert.Equal(t, "meta:x", convertKeyToHumanReadable([]byte("meta:x")))
}

func TestRocksDBStubWithoutTag(t *testing.T) {
	if IsRocksDBSupported() {
		t.Skip("rocksdb compiled in")
	}
	_, err := NewRocksDBProvider(t.TempDir(), DefaultOptions())
	assert.Error(t, err)
}
