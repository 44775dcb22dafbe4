// Package cli provides the shared application context for CLI commands.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/bnema/shade/internal/build"
	"github.com/bnema/shade/internal/cli/styles"
	"github.com/bnema/shade/internal/config"
	"github.com/bnema/shade/internal/infrastructure/colorscheme"
	"github.com/bnema/shade/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/shade/internal/logging"
	"github.com/bnema/shade/pkg/colormode"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	Engine   *colormode.Engine
	Resolver *colorscheme.Resolver
	Monitor  *colorscheme.Monitor
	Store    colormode.Store

	// ConfigManager is nil when loading fell back to defaults.
	ConfigManager *config.Manager

	db  *sql.DB
	ctx context.Context
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	// Load config
	mgr, cfg := loadConfig()

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("SHADE_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(logLevel),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	ctx := logging.WithContext(context.Background(), logger)

	// OS preference detection, shared by every command.
	resolver := colorscheme.NewDefaultResolver()
	monitor := colorscheme.NewMonitor(resolver)

	// Persistence. Cookie storage belongs to browsers; with it selected
	// the CLI runs store-less and resolution falls through to the
	// system preference and the configured initial mode.
	var store colormode.Store
	var db *sql.DB
	if cfg.Storage.Kind == config.StorageKindSQLite {
		dbFile := cfg.Database.Path
		if dbFile == "" {
			var err error
			dbFile, err = config.GetDatabaseFile()
			if err != nil {
				return nil, fmt.Errorf("resolve database path: %w", err)
			}
		}

		var err error
		db, err = sqlite.NewConnection(ctx, dbFile)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		store = sqlite.NewModeStore(db)
	} else {
		logger.Debug().Msg("cookie storage selected, running without a local store")
	}

	engine := colormode.NewEngine(cfg.ColorMode.ModeConfig(), store, resolver)
	engine.Initialize(ctx, "")

	// Style terminal output to match the resolved mode.
	theme := styles.NewTheme(engine.Current())

	return &App{
		Config:        cfg,
		Theme:         theme,
		Engine:        engine,
		Resolver:      resolver,
		Monitor:       monitor,
		Store:         store,
		ConfigManager: mgr,
		db:            db,
		ctx:           ctx,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.Monitor != nil {
		a.Monitor.Stop()
	}
	if a.Engine != nil {
		a.Engine.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Report gathers the full resolution state for display.
func (a *App) Report(ctx context.Context) styles.ModeReport {
	report := styles.ModeReport{
		Effective: a.Engine.Current(),
		Resolved:  a.Engine.Resolved(),
		Source:    a.Engine.Source(),
		UseSystem: a.Config.ColorMode.UseSystem,
	}
	if a.Store != nil {
		report.Stored, report.StoredKnown = a.Store.Get(ctx)
	}
	report.System, report.SystemKnown = a.Resolver.Current(ctx)
	return report
}

// loadConfig loads configuration from standard locations.
func loadConfig() (*config.Manager, *config.Config) {
	mgr, err := config.NewManager()
	if err != nil {
		// Return default config if manager fails
		return nil, config.DefaultConfig()
	}

	if err := mgr.Load(); err != nil {
		// Return default config if loading fails
		return nil, config.DefaultConfig()
	}

	return mgr, mgr.Get()
}
