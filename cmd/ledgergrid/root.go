package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/ledgergrid/internal/config"
	"github.com/jask/ledgergrid/internal/database"
	"github.com/jask/ledgergrid/internal/database/repository"
	"github.com/jask/ledgergrid/internal/grid"
	"github.com/jask/ledgergrid/internal/prefs"
	"github.com/jask/ledgergrid/internal/service"
	"github.com/jask/ledgergrid/internal/tui"
)

// viewTimeout bounds each stored view read or write.
const viewTimeout = 2 * time.Second

var flags struct {
	dbPath    string
	storage   string
	pageSize  int
	selection string
	variant   string
	logLevel  string
}

var rootCmd = &cobra.Command{
	Use:          "ledgergrid",
	Short:        "Terminal listing of ledger transactions",
	Long:         "ledgergrid - browse, sort, filter and select ledger transactions with per-view column layouts.",
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.dbPath, "db", "", "sqlite database path")
	pf.StringVar(&flags.storage, "storage", "", "column view storage: sqlite, file or memory")
	pf.IntVar(&flags.pageSize, "page-size", 0, "rows per page")
	pf.StringVar(&flags.selection, "selection", "", "selection mode: autoClear or keepPagination")
	pf.StringVar(&flags.variant, "filter", "", "filter variant: overlay or aside")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(seedCmd, resetViewCmd)
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	fs := cmd.Flags()
	if fs.Changed("db") {
		cfg.Database.Path = flags.dbPath
	}
	if fs.Changed("storage") {
		cfg.Storage.Driver = flags.storage
	}
	if fs.Changed("page-size") {
		cfg.Grid.PageSize = flags.pageSize
	}
	if fs.Changed("selection") {
		cfg.Grid.SelectionMode = flags.selection
	}
	if fs.Changed("filter") {
		cfg.Grid.FilterVariant = flags.variant
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger writes text logs to the configured file. The TUI owns the
// terminal, so an empty file discards logs instead of using stderr.
func newLogger(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f, nil
}

// env is everything a command needs once config, logging and the database
// are up.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sql.DB
	log    io.Closer
}

func openEnv(ctx context.Context, cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger, logFile, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	db, err := database.Prepare(ctx, cfg.Database.Path)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}
	logger.Info("database ready", "path", cfg.Database.Path, "storage", cfg.Storage.Driver)
	return &env{cfg: cfg, logger: logger, db: db, log: logFile}, nil
}

func (e *env) Close() {
	_ = e.db.Close()
	_ = e.log.Close()
}

// viewStore picks the column view repository for the configured driver.
func (e *env) viewStore(ctx context.Context) grid.ViewConfigRepository {
	switch e.cfg.Storage.Driver {
	case config.DriverFile:
		return prefs.NewViewFile(e.cfg.Storage.Path)
	case config.DriverMemory:
		return grid.NewMemoryRepository()
	default:
		return repository.NewViewConfigRepo(e.db).Store(ctx, viewTimeout)
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	accounts, err := repository.NewAccountRepo(e.db).Names(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	app := tui.New(ctx, tui.Options{
		Source:        &service.RowSource{Transactions: repository.NewTransactionRepo(e.db)},
		Views:         e.viewStore(ctx),
		StorageKey:    e.cfg.Grid.StorageKey,
		PageSize:      e.cfg.Grid.PageSize,
		SelectionMode: e.cfg.Grid.Selection(),
		FilterVariant: e.cfg.Grid.Variant(),
		Accounts:      accounts,
		Logger:        e.logger,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
