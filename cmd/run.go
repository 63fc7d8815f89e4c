package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mezonai/ledgerkv/config"
	"github.com/mezonai/ledgerkv/db"
	"github.com/mezonai/ledgerkv/exception"
	"github.com/mezonai/ledgerkv/importer"
	"github.com/mezonai/ledgerkv/ledger"
	"github.com/mezonai/ledgerkv/logx"
	"github.com/mezonai/ledgerkv/monitoring"
	"github.com/mezonai/ledgerkv/performance"
	"github.com/mezonai/ledgerkv/plugin"
	"github.com/mezonai/ledgerkv/store"
)

const (
	defaultConfigPath = "config/ledgerkv.yml"
	shutdownTimeout   = 5 * time.Second
)

var (
	configPath      string
	engineConfig    string
	exitAfterImport bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the store and replay the ledger history into it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNode(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to ledgerkv.yml")
	runCmd.Flags().StringVar(&engineConfig, "engine", "", "Optional .ini file with an [engine] section")
	runCmd.Flags().BoolVar(&exitAfterImport, "exit-after-import", false, "Shut down once the startup import completes")
}

func runNode(ctx context.Context) error {
	cfg, err := config.LoadNodeConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	options, err := loadEngineOptions(engineConfig)
	if err != nil {
		return fmt.Errorf("load engine config: %w", err)
	}

	ledgerProvider, err := openLedger(cfg)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer ledgerProvider.Close()

	monitoring.InitMetrics()
	srv := startMetricsServer(cfg.Metrics.ListenAddr)
	defer stopMetricsServer(srv)

	dumper := performance.NewDumper()
	dumper.Initialize(store.ResolvePath(cfg.DataDir, cfg.Benchmark.Output))

	manager := store.NewManager(store.ManagerConfig{
		Type:      store.StoreType(cfg.Storage.Backend),
		RedisAddr: cfg.Storage.RedisAddr,
		Options:   options,
	})
	p := plugin.New(plugin.StaticHost(cfg.DataDir), ledger.NewProviderLedger(ledgerProvider), manager, dumper,
		importer.WithProgressInterval(cfg.Import.ProgressInterval))
	p.Initialize(cfg.Storage)
	defer p.Shutdown()

	if err := p.Startup(); err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	if exitAfterImport {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

func loadEngineOptions(path string) (db.Options, error) {
	engine := config.DefaultEngineConfig()
	if path != "" {
		var err error
		if engine, err = config.LoadEngineConfig(path); err != nil {
			return db.Options{}, err
		}
	}
	return db.Options{
		CreateIfMissing: true,
		Parallelism:     engine.Parallelism,
		MemtableBudget:  engine.MemtableBudgetMB << 20,
	}, nil
}

// openLedger opens the primary ledger database; it must already exist
func openLedger(cfg *config.NodeConfig) (db.IterableProvider, error) {
	return store.CreateProvider(&store.StoreConfig{
		Type:      store.StoreType(cfg.Ledger.Backend),
		Directory: store.ResolvePath(cfg.DataDir, cfg.Ledger.Path),
	}, db.Options{CreateIfMissing: false})
}

func startMetricsServer(addr string) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	monitoring.RegisterMetrics(mux)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	exception.SafeGo("metrics-server", func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Error("METRICS", "metrics server stopped: ", err)
		}
	})
	logx.Info("METRICS", "Serving metrics on ", addr)
	return srv
}

func stopMetricsServer(srv *http.Server) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logx.Warn("METRICS", "metrics server shutdown: ", err)
	}
}
