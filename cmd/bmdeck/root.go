package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nikbrunner/bmdeck/internal/favicon"
	"github.com/nikbrunner/bmdeck/internal/layout"
	"github.com/nikbrunner/bmdeck/internal/storage"
	"github.com/nikbrunner/bmdeck/internal/store"
	"github.com/nikbrunner/bmdeck/internal/tui"
)

// App carries what every command shares: flags, config and the open store.
type App struct {
	ConfigPath string
	Debug      bool

	cfg     *storage.Config
	logger  *zap.Logger
	kv      storage.KV
	closeKV func() error
	store   *store.Store
}

func newRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "bmdeck",
		Short:         "Bookmark deck for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Open the column board
  bmdeck

  # Restore a backup, or merge in a browser export
  bmdeck import ~/Downloads/bookmarks_backup_2024-03-09.json
  bmdeck import --append ~/Downloads/bookmarks.html

  # Quick open by fuzzy title match
  bmdeck open hacker
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config file (default ~/.config/bmdeck/config.json)")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Log debug output to stderr (the TUI writes debug.log next to the data file)")

	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newFoldersCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newAddFolderCmd(app))
	cmd.AddCommand(newAddBookmarkCmd(app))

	return cmd
}

// setup builds the logger and reads the config. The store opens lazily so
// commands that fail on arguments never touch the data file.
func (a *App) setup() error {
	logger, err := newLogger(a.Debug)
	if err != nil {
		return err
	}
	a.logger = logger

	path := a.ConfigPath
	if path == "" {
		path, err = storage.DefaultConfigFilePath()
		if err != nil {
			return err
		}
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("config loaded",
		zap.String("path", path),
		zap.String("backend", cfg.Backend),
		zap.String("data", cfg.DataPath),
	)
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func newFileLogger(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// openStore opens the configured backend and loads the hierarchy.
func (a *App) openStore(ctx context.Context) (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	kv, closeKV, err := storage.Open(*a.cfg)
	if err != nil {
		return nil, err
	}
	a.kv = kv
	a.closeKV = closeKV

	s := store.New(kv, store.WithLogger(a.logger))
	s.Subscribe(func(c store.Change) {
		a.logger.Debug("store changed", zap.Stringer("op", c.Op), zap.Uint64("revision", c.Revision))
	})
	if err := s.Load(ctx); err != nil {
		// Load keeps the in-memory copy; only the durable write failed.
		a.logger.Warn("persisting loaded hierarchy failed", zap.Error(err))
	}
	a.store = s
	return s, nil
}

func (a *App) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.closeKV == nil {
		return nil
	}
	err := a.closeKV()
	a.closeKV = nil
	return err
}

func (a *App) columnConfig() layout.ColumnConfig {
	return layout.ColumnConfig{
		SingleMax:    a.cfg.Columns.SingleMax,
		DoubleMax:    a.cfg.Columns.DoubleMax,
		UnitsPerCell: a.cfg.Columns.UnitsPerCell,
	}
}

func runTUI(ctx context.Context, a *App) error {
	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	logger := zap.NewNop()
	if a.Debug {
		path := filepath.Join(filepath.Dir(a.cfg.DataPath), "debug.log")
		fileLogger, err := newFileLogger(path)
		if err != nil {
			return err
		}
		logger = fileLogger
	}
	a.logger = logger

	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}

	layoutCfg := layout.DefaultConfig()
	layoutCfg.Columns = a.columnConfig()
	resolver := favicon.New(a.cfg.Favicon)

	app := tui.NewApp(tui.AppParams{
		Store:        s,
		KV:           a.kv,
		Favicon:      resolver.URL,
		Logger:       logger,
		ExportDir:    a.cfg.ExportDir,
		Verbatim:     a.cfg.VerbatimExport,
		Theme:        store.LoadTheme(ctx, a.kv),
		LayoutConfig: &layoutCfg,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
