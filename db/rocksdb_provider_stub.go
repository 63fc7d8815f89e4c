//go:build !rocksdb
// +build !rocksdb

package db

import "fmt"

// RocksDBProvider is unavailable without the rocksdb build tag
type RocksDBProvider struct {
	IterableProvider
}

// NewRocksDBProvider returns an error when rocksdb is not compiled in
func NewRocksDBProvider(directory string, options Options) (*RocksDBProvider, error) {
	return nil, fmt.Errorf("RocksDB support not compiled in. Build with -tags rocksdb to enable RocksDB support")
}

// IsRocksDBSupported returns false when RocksDB is not compiled in
func IsRocksDBSupported() bool {
	return false
}
