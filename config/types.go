package config

// StorageConfig holds the options of the key-value store mirrored from the ledger
type StorageConfig struct {
	Path      string `yaml:"path"`
	Backend   string `yaml:"backend"`
	RedisAddr string `yaml:"redis_addr"`
}

// LedgerConfig points at the primary ledger database the history is replayed from
type LedgerConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type BenchmarkConfig struct {
	Output string `yaml:"output"`
}

type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

type ImportConfig struct {
	ProgressInterval uint64 `yaml:"progress_interval"`
}

// NodeConfig holds the configuration from ledgerkv.yml
type NodeConfig struct {
	DataDir   string          `yaml:"data_dir"`
	Storage   StorageConfig   `yaml:"storage"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Import    ImportConfig    `yaml:"import"`
}

// ConfigFile is the top-level structure for ledgerkv.yml
type ConfigFile struct {
	Config NodeConfig `yaml:"config"`
}
