package config

const (
	// DefaultStoragePath is kept as a literal for compatibility with existing deployments
	DefaultStoragePath     = "rocksdb_storage"
	DefaultStorageBackend  = "rocksdb"
	DefaultLedgerBackend   = "leveldb"
	DefaultBenchmarkOutput = "rocksdb_data_import.json"
	DefaultDataDir         = "."

	DefaultMemtableBudgetMB = 512
)
