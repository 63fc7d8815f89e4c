package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/mezonai/ledgerkv/db"
	"github.com/mezonai/ledgerkv/errors"
	"github.com/mezonai/ledgerkv/logx"
	"github.com/mezonai/ledgerkv/monitoring"
)

// ResolvePath returns p unchanged when it is absolute, otherwise p joined onto dataDir
func ResolvePath(dataDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dataDir, p)
}

// Handle is the live, exclusively-owned connection to the key-value store.
// Close flushes and releases the engine and may be called from every exit path.
type Handle struct {
	once      sync.Once
	path      string
	storeType StoreType
	provider  db.IterableProvider
	closeErr  error
}

// Provider returns the underlying engine
func (h *Handle) Provider() db.IterableProvider {
	return h.provider
}

// Path returns the resolved location the store was opened at
func (h *Handle) Path() string {
	return h.path
}

func (h *Handle) Type() StoreType {
	return h.storeType
}

// Close releases the engine; subsequent calls return the first result
func (h *Handle) Close() error {
	h.once.Do(func() {
		h.closeErr = h.provider.Close()
		if h.closeErr != nil {
			logx.Error("STORE", fmt.Sprintf("failed to close %s store at '%s': %v", h.storeType, h.path, h.closeErr))
			return
		}
		logx.Info("STORE", fmt.Sprintf("%s store at '%s' closed", h.storeType, h.path))
	})
	return h.closeErr
}

// ManagerConfig selects the engine owned by a Manager
type ManagerConfig struct {
	Type      StoreType
	RedisAddr string
	Options   db.Options
}

// Manager creates or opens the store once and owns the resulting handle
// for the rest of the process lifetime
type Manager struct {
	mu        sync.Mutex
	cfg       ManagerConfig
	factory   *StoreFactory
	attempted bool
	handle    *Handle
}

func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Type == "" {
		cfg.Type = RocksDBStoreType
	}
	return &Manager{
		cfg:     cfg,
		factory: NewStoreFactory(),
	}
}

// Open creates the store at path if absent and opens it. A failure is logged and
// returned as a StoreOpenFailure; the manager then holds no handle. Open is meant
// to be called once; later calls fail without touching the engine.
func (m *Manager) Open(path string) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.attempted {
		return nil, fmt.Errorf("%s: %s", errors.ErrMsgStoreAlreadyOpenAttempted, path)
	}
	m.attempted = true

	options := m.cfg.Options
	options.CreateIfMissing = true

	provider, err := m.factory.CreateProvider(&StoreConfig{
		Type:      m.cfg.Type,
		Directory: path,
		RedisAddr: m.cfg.RedisAddr,
	}, options)
	if err != nil {
		logx.Error("STORE", fmt.Sprintf("%s cannot open database at location: '%s'. Returned error: %v", m.cfg.Type, path, err))
		monitoring.IncreaseStoreOpenFailures()
		return nil, errors.NewStoreOpenFailure(path, err)
	}

	m.handle = &Handle{
		path:      path,
		storeType: m.cfg.Type,
		provider:  provider,
	}
	logx.Info("STORE", fmt.Sprintf("%s opened successfully at '%s'", m.cfg.Type, path))
	return m.handle, nil
}

// Handle returns the owned handle, nil if open failed or was never attempted
func (m *Manager) Handle() *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handle
}

func (m *Manager) HasHandle() bool {
	return m.Handle() != nil
}

// Close releases the owned handle, if any
func (m *Manager) Close() error {
	h := m.Handle()
	if h == nil {
		return nil
	}
	return h.Close()
}
