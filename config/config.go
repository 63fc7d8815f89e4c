package config

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Default returns a node configuration with every option at its default value
func Default() *NodeConfig {
	cfg := &NodeConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset option with its default value
func (c *NodeConfig) ApplyDefaults() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStoragePath
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = DefaultStorageBackend
	}
	if c.Ledger.Backend == "" {
		c.Ledger.Backend = DefaultLedgerBackend
	}
	if c.Benchmark.Output == "" {
		c.Benchmark.Output = DefaultBenchmarkOutput
	}
}

// Validate checks the options that cannot be defaulted
func (c *NodeConfig) Validate() error {
	switch c.Storage.Backend {
	case "rocksdb", "leveldb", "bbolt", "redis":
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}
	if c.Storage.Backend == "redis" && c.Storage.RedisAddr == "" {
		return fmt.Errorf("storage.redis_addr is required for the redis backend")
	}
	switch c.Ledger.Backend {
	case "leveldb", "rocksdb", "bbolt":
	default:
		return fmt.Errorf("unsupported ledger backend: %s", c.Ledger.Backend)
	}
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path cannot be empty")
	}
	return nil
}

// LoadNodeConfig reads and parses the ledgerkv.yml file
func LoadNodeConfig(path string) (*NodeConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[config] Failed to open file: %v", err)
		return nil, err
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		log.Printf("[config] Failed to decode YAML: %v", err)
		return nil, err
	}
	cfg := &cfgFile.Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	log.Printf("[config] Successfully loaded config: DataDir=%s, Storage=%+v, Ledger=%+v", cfg.DataDir, cfg.Storage, cfg.Ledger)
	return cfg, nil
}

type EngineConfig struct {
	Parallelism      int    `ini:"parallelism"`
	MemtableBudgetMB uint64 `ini:"memtable_budget_mb"`
}

// DefaultEngineConfig sizes the engine for a single embedded instance
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Parallelism:      runtime.NumCPU(),
		MemtableBudgetMB: DefaultMemtableBudgetMB,
	}
}

// LoadEngineConfig reads storage engine tuning from an .ini file
func LoadEngineConfig(path string) (*EngineConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	engineSection := cfg.Section("engine")
	engineCfg := DefaultEngineConfig()
	err = engineSection.MapTo(engineCfg)
	if err != nil {
		return nil, err
	}
	if engineCfg.Parallelism <= 0 {
		engineCfg.Parallelism = runtime.NumCPU()
	}
	if engineCfg.MemtableBudgetMB == 0 {
		engineCfg.MemtableBudgetMB = DefaultMemtableBudgetMB
	}
	return engineCfg, nil
}
