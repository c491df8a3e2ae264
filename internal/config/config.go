package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/ledgergrid/internal/grid"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Storage  StorageConfig
	Grid     GridConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// StorageConfig selects where column views are persisted.
type StorageConfig struct {
	Driver string // sqlite, file or memory
	Path   string // views file when Driver is file
}

// GridConfig holds listing page behaviour.
type GridConfig struct {
	PageSize      int    `mapstructure:"page_size"`
	SelectionMode string `mapstructure:"selection_mode"`
	FilterVariant string `mapstructure:"filter_variant"`
	StorageKey    string `mapstructure:"storage_key"`
}

// Selection maps the configured selection mode onto the grid policy.
func (g GridConfig) Selection() grid.SelectionMode {
	if g.SelectionMode == "autoClear" {
		return grid.AutoClear
	}
	return grid.KeepPagination
}

// Variant maps the configured filter variant onto the grid variant.
func (g GridConfig) Variant() grid.FilterVariant {
	if g.FilterVariant == "aside" {
		return grid.VariantAside
	}
	return grid.VariantOverlay
}

// LogConfig holds logging settings. File is required while the TUI owns the
// terminal; an empty File discards logs.
type LogConfig struct {
	Level string
	File  string
}

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "ledgergrid")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "ledgergrid")
}

func configPath() string {
	if p := os.Getenv("LEDGERGRID_CONFIG"); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ledgergrid", "config.toml")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "ledgergrid", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix LEDGERGRID_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(dataDir(), "ledgergrid.db"))
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.path", filepath.Join(dataDir(), "views.json"))
	v.SetDefault("grid.page_size", 10)
	v.SetDefault("grid.selection_mode", "keepPagination")
	v.SetDefault("grid.filter_variant", "overlay")
	v.SetDefault("grid.storage_key", "transactions")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir(), "ledgergrid.log"))

	v.SetConfigType("toml")
	v.SetConfigFile(configPath())

	v.SetEnvPrefix("LEDGERGRID")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the listing page cannot run with.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverFile, DriverMemory:
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	switch c.Grid.SelectionMode {
	case "autoClear", "keepPagination":
	default:
		return fmt.Errorf("grid.selection_mode: unknown mode %q", c.Grid.SelectionMode)
	}
	switch c.Grid.FilterVariant {
	case "overlay", "aside":
	default:
		return fmt.Errorf("grid.filter_variant: unknown variant %q", c.Grid.FilterVariant)
	}
	if c.Grid.PageSize < 1 {
		return fmt.Errorf("grid.page_size: must be positive, got %d", c.Grid.PageSize)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("storage.driver", cfg.Storage.Driver)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("grid.page_size", cfg.Grid.PageSize)
	v.Set("grid.selection_mode", cfg.Grid.SelectionMode)
	v.Set("grid.filter_variant", cfg.Grid.FilterVariant)
	v.Set("grid.storage_key", cfg.Grid.StorageKey)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
