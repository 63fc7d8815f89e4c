package plugin

import (
	"fmt"
	"sync"

	"github.com/mezonai/ledgerkv/config"
	"github.com/mezonai/ledgerkv/importer"
	"github.com/mezonai/ledgerkv/ledger"
	"github.com/mezonai/ledgerkv/logx"
	"github.com/mezonai/ledgerkv/performance"
	"github.com/mezonai/ledgerkv/store"
)

// Host is the process framework the plugin runs inside
type Host interface {
	DataDir() string
}

// StaticHost is a Host with a fixed data directory
type StaticHost string

func (h StaticHost) DataDir() string {
	return string(h)
}

type Plugin struct {
	mu       sync.Mutex
	host     Host
	source   ledger.Source
	manager  *store.Manager
	dumper   *performance.Dumper
	options  []importer.Option
	path     string
	summary  *importer.Summary
	started  bool
	shutdown bool
}

// New wires the plugin to its host, the ledger it replays and the store manager it drives
func New(host Host, source ledger.Source, manager *store.Manager, dumper *performance.Dumper, opts ...importer.Option) *Plugin {
	if dumper == nil {
		dumper = performance.NewDumper()
	}
	return &Plugin{
		host:    host,
		source:  source,
		manager: manager,
		dumper:  dumper,
		options: opts,
		path:    config.DefaultStoragePath,
	}
}

// Initialize records the storage path option, keeping the default when it is unset
func (p *Plugin) Initialize(cfg config.StorageConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cfg.Path != "" {
		p.path = cfg.Path
	}
}

// StoragePath returns the resolved location of the store
func (p *Plugin) StoragePath() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return store.ResolvePath(p.host.DataDir(), p.path)
}

// Startup opens the store and, when that succeeds, replays the ledger history.
// A store that cannot be opened is logged and skipped; a failing ledger stream is returned.
func (p *Plugin) Startup() error {
	logx.Info("PLUGIN", "Starting up ledgerkv plugin...")

	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return fmt.Errorf("plugin already started")
	}
	p.started = true
	p.mu.Unlock()

	path := p.StoragePath()
	if _, err := p.manager.Open(path); err != nil {
		logx.Warn("PLUGIN", "store unavailable, skipping data import")
		return nil
	}

	summary, err := importer.New(p.source, p.dumper, p.options...).Run()
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.summary = &summary
	p.mu.Unlock()
	return nil
}

// Summary returns the result of the startup import, nil if it did not run or failed
func (p *Plugin) Summary() *importer.Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summary
}

// Shutdown releases the store handle. It is safe to call on every exit path.
func (p *Plugin) Shutdown() {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return
	}
	p.shutdown = true
	p.mu.Unlock()

	logx.Info("PLUGIN", "Shutting down ledgerkv plugin...")
	if err := p.manager.Close(); err != nil {
		logx.Error("PLUGIN", "failed to release store: ", err)
	}
}
