// Package cli wires the interactive browse shell and the management
// commands around it.
package cli

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/skiff-browser/skiff/internal/build"
	"github.com/skiff-browser/skiff/internal/cli/styles"
	"github.com/skiff-browser/skiff/internal/config"
	"github.com/skiff-browser/skiff/internal/logging"
	"github.com/skiff-browser/skiff/internal/state"
	"github.com/skiff-browser/skiff/internal/storage"
)

// AppOptions carries root-level flag overrides into the dependency
// wiring.
type AppOptions struct {
	ConfigFile string
	LogLevel   string
}

// App holds the dependencies shared by the management commands.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	Store *storage.Store
	State *state.Store

	ctx        context.Context
	logCleanup func()
}

// NewApp builds the dependency set for one management command: config,
// theme, a quiet logger and both stores.
func NewApp(opts AppOptions) (*App, error) {
	cfg, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	theme := styles.NewTheme()

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("SKIFF_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	if opts.LogLevel != "" {
		logLevel = opts.LogLevel
	}

	// Management commands keep the terminal to themselves. A configured
	// log dir still captures what they do.
	logger, logCleanup, _ := logging.NewWithFile(
		logging.Config{
			Level:      logging.ParseLevel(logLevel),
			Format:     cfg.Logging.Format,
			TimeFormat: "15:04:05",
			Dir:        cfg.Logging.Dir,
		},
		logging.FileConfig{Enabled: cfg.Logging.Dir != "", WriteToStderr: false},
	)
	ctx := logging.WithContext(context.Background(), logger)

	store, st, err := openStores(ctx, cfg)
	if err != nil {
		logCleanup()
		return nil, err
	}

	return &App{
		Config:     cfg,
		Theme:      theme,
		Store:      store,
		State:      st,
		ctx:        ctx,
		logCleanup: logCleanup,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	var err error
	if a.State != nil {
		err = a.State.Close()
	}
	if a.Store != nil {
		if cerr := a.Store.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from the standard locations, or from
// an explicit file when one was given. Without an explicit file any
// load problem falls back to the defaults; an explicit file that does
// not load is an error.
func loadConfig(file string) (*config.Config, error) {
	_, cfg, err := loadManagedConfig(file)
	return cfg, err
}

// loadManagedConfig is loadConfig keeping the manager around, for
// callers that watch for changes or report the config path. The
// manager is nil when the defaults were used.
func loadManagedConfig(file string) (*config.Manager, *config.Config, error) {
	mgr, err := config.NewManager()
	if err != nil {
		if file != "" {
			return nil, nil, err
		}
		return nil, config.DefaultConfig(), nil
	}

	if file != "" {
		mgr.SetConfigFile(file)
		if err := mgr.Load(); err != nil {
			return nil, nil, err
		}
		return mgr, mgr.Get(), nil
	}

	if err := mgr.Load(); err != nil {
		return nil, config.DefaultConfig(), nil
	}
	return mgr, mgr.Get(), nil
}

// openStores opens the browsing-data and shell-state databases side by
// side; they are independent files.
func openStores(ctx context.Context, cfg *config.Config) (*storage.Store, *state.Store, error) {
	dbPath, statePath, err := databasePaths(cfg)
	if err != nil {
		return nil, nil, err
	}

	var (
		store *storage.Store
		st    *state.Store
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		store, err = storage.Open(gctx, dbPath)
		return err
	})
	g.Go(func() error {
		var err error
		st, err = state.Open(gctx, statePath)
		return err
	})
	if err := g.Wait(); err != nil {
		_ = store.Close()
		if st != nil {
			_ = st.Close()
		}
		return nil, nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("db", dbPath).
		Str("state", statePath).
		Msg("Stores opened")
	return store, st, nil
}

// databasePaths resolves the store locations, falling back to the XDG
// defaults for paths the config leaves empty.
func databasePaths(cfg *config.Config) (dbPath, statePath string, err error) {
	dbPath = cfg.Database.Path
	if dbPath == "" {
		if dbPath, err = config.GetDatabaseFile(); err != nil {
			return "", "", err
		}
	}
	statePath = cfg.Database.StatePath
	if statePath == "" {
		if statePath, err = config.GetStateFile(); err != nil {
			return "", "", err
		}
	}
	return dbPath, statePath, nil
}
