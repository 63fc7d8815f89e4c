package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadNodeConfigAppliesDefaults(t *testing.T) {
	path := writeFile(t, "ledgerkv.yml", `
config:
  data_dir: /var/node
  ledger:
    path: /var/node/ledger
`)
	cfg, err := LoadNodeConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/node", cfg.DataDir)
	assert.Equal(t, DefaultStoragePath, cfg.Storage.Path)
	assert.Equal(t, "rocksdb_storage", cfg.Storage.Path)
	assert.Equal(t, DefaultStorageBackend, cfg.Storage.Backend)
	assert.Equal(t, DefaultLedgerBackend, cfg.Ledger.Backend)
	assert.Equal(t, DefaultBenchmarkOutput, cfg.Benchmark.Output)
}

func TestLoadNodeConfigExplicitValues(t *testing.T) {
	path := writeFile(t, "ledgerkv.yml", `
config:
  data_dir: /var/node
  storage:
    path: /srv/idx
    backend: leveldb
  ledger:
    backend: bbolt
    path: chain.db
  benchmark:
    output: out.json
  metrics:
    listen_addr: ":9100"
  import:
    progress_interval: 1000
`)
	cfg, err := LoadNodeConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/idx", cfg.Storage.Path)
	assert.Equal(t, "leveldb", cfg.Storage.Backend)
	assert.Equal(t, "bbolt", cfg.Ledger.Backend)
	assert.Equal(t, "out.json", cfg.Benchmark.Output)
	assert.Equal(t, ":9100", cfg.Metrics.ListenAddr)
	assert.Equal(t, uint64(1000), cfg.Import.ProgressInterval)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate(), "ledger path is required")

	cfg.Ledger.Path = "ledger"
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Backend = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg.Storage.Backend = "redis"
	assert.Error(t, cfg.Validate())
	cfg.Storage.RedisAddr = "localhost:6379"
	assert.NoError(t, cfg.Validate())

	cfg.Ledger.Backend = "redis"
	assert.Error(t, cfg.Validate())
}

func TestLoadNodeConfigMissingFile(t *testing.T) {
	_, err := LoadNodeConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadEngineConfig(t *testing.T) {
	path := writeFile(t, "engine.ini", "[engine]\nparallelism = 4\nmemtable_budget_mb = 64\n")
	cfg, err := LoadEngineConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, uint64(64), cfg.MemtableBudgetMB)
}

func TestLoadEngineConfigFallsBackOnZero(t *testing.T) {
	path := writeFile(t, "engine.ini", "[engine]\nparallelism = 0\n")
	cfg, err := LoadEngineConfig(path)
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), cfg.Parallelism)
	assert.Equal(t, uint64(DefaultMemtableBudgetMB), cfg.MemtableBudgetMB)
}
