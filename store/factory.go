package store

import (
	"fmt"

	"github.com/mezonai/ledgerkv/db"
)

// StoreType represents the type of store implementation
type StoreType string

const (
	// RocksDBStoreType uses the RocksDB implementation
	RocksDBStoreType StoreType = "rocksdb"

	// LevelDBStoreType uses the LevelDB implementation
	LevelDBStoreType StoreType = "leveldb"

	// BoltStoreType uses the bbolt implementation
	BoltStoreType StoreType = "bbolt"

	// RedisStoreType uses the Redis implementation
	RedisStoreType StoreType = "redis"
)

// StoreConfig holds configuration for creating a provider
type StoreConfig struct {
	// Type specifies which store implementation to use
	Type StoreType `json:"type" yaml:"type"`

	// Directory is the database directory path (for file-based databases)
	Directory string `json:"directory" yaml:"directory"`

	// RedisAddr is the server address for the redis backend
	RedisAddr string `json:"redis_addr" yaml:"redis_addr"`
}

// Validate validates the store configuration
func (sc *StoreConfig) Validate() error {
	if sc.Type == "" {
		return fmt.Errorf("store type cannot be empty")
	}

	switch sc.Type {
	case LevelDBStoreType, RocksDBStoreType, BoltStoreType:
		if sc.Directory == "" {
			return fmt.Errorf("directory cannot be empty")
		}
		return nil
	case RedisStoreType:
		if sc.RedisAddr == "" {
			return fmt.Errorf("redis address cannot be empty")
		}
		return nil
	default:
		return fmt.Errorf("unsupported store type: %s", sc.Type)
	}
}

// StoreFactory take responsibility to create providers
type StoreFactory struct{}

// NewStoreFactory creates a new store factory
func NewStoreFactory() *StoreFactory {
	return &StoreFactory{}
}

// CreateProvider creates a database provider based on the configuration
func (sf *StoreFactory) CreateProvider(config *StoreConfig, options db.Options) (db.IterableProvider, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch config.Type {
	case RocksDBStoreType:
		p, err := db.NewRocksDBProvider(config.Directory, options)
		if err != nil {
			return nil, err
		}
		return p, nil

	case LevelDBStoreType:
		p, err := db.NewLevelDBProvider(config.Directory, options)
		if err != nil {
			return nil, err
		}
		return p, nil

	case BoltStoreType:
		p, err := db.NewBoltProvider(config.Directory, options)
		if err != nil {
			return nil, err
		}
		return p, nil

	case RedisStoreType:
		p, err := db.NewRedisProvider(config.RedisAddr)
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// Global factory instance
var globalFactory = NewStoreFactory()

// CreateProvider creates a provider using the global factory
func CreateProvider(config *StoreConfig, options db.Options) (db.IterableProvider, error) {
	return globalFactory.CreateProvider(config, options)
}
