package db

import "runtime"

// DatabaseProvider abstracts the low-level database operations
// so the store lifecycle manager can own any embedded backend
// without knowing the specific implementation details
type DatabaseProvider interface {
	// Get retrieves a value by key, nil if absent
	Get(key []byte) ([]byte, error)

	// GetBatch retrieves multiple values by keys in a single operation
	GetBatch(keys [][]byte) (map[string][]byte, error)

	// Put stores a key-value pair
	Put(key, value []byte) error

	// Delete removes a key-value pair
	Delete(key []byte) error

	// Has checks if a key exists
	Has(key []byte) (bool, error)

	// Close flushes pending state and closes the database connection.
	// Calling Close more than once is a no-op.
	Close() error

	// Batch returns a new batch for atomic operations
	Batch() DatabaseBatch
}

// IterableProvider extends DatabaseProvider with iteration capabilities
type IterableProvider interface {
	DatabaseProvider

	// IteratePrefix iterates over all key-value pairs with the given prefix in key order
	// The callback function should return false to stop iteration
	IteratePrefix(prefix []byte, callback func(key, value []byte) bool) error
}

// DatabaseBatch provides atomic batch operations
type DatabaseBatch interface {
	// Put adds a key-value pair to the batch
	Put(key, value []byte)

	// Delete adds a deletion to the batch
	Delete(key []byte)

	// Write commits all operations in the batch
	Write() error

	// Reset clears the batch
	Reset()

	// Close releases batch resources
	Close() error
}

// Options tunes an embedded engine for a single instance
type Options struct {
	// CreateIfMissing creates the store on first use instead of failing
	CreateIfMissing bool

	// Parallelism is the number of background threads for flush and compaction
	Parallelism int

	// MemtableBudget is the memory budget in bytes for level-style compaction
	MemtableBudget uint64
}

const defaultMemtableBudget = 512 << 20

// DefaultOptions returns create-if-missing options sized to the host
func DefaultOptions() Options {
	return Options{
		CreateIfMissing: true,
		Parallelism:     runtime.NumCPU(),
		MemtableBudget:  defaultMemtableBudget,
	}
}

func (o Options) withDefaults() Options {
	if o.Parallelism <= 0 {
		o.Parallelism = runtime.NumCPU()
	}
	if o.MemtableBudget == 0 {
		o.MemtableBudget = defaultMemtableBudget
	}
	return o
}
