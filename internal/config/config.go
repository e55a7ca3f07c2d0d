// Package config provides Viper-based configuration loading for the game.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Persistence drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File, when set, receives log output instead of stderr so that logs do
	// not interleave with the game transcript.
	File string `mapstructure:"file"`
}

// ContentConfig locates the world map, authored content, and section text.
type ContentConfig struct {
	WorldMap   string `mapstructure:"world_map"`
	QuestsDir  string `mapstructure:"quests_dir"`
	NPCsDir    string `mapstructure:"npcs_dir"`
	ItemsDir   string `mapstructure:"items_dir"`
	PuzzlesDir string `mapstructure:"puzzles_dir"`
	// DocsDir holds one directory per era of chapter markdown; empty disables
	// section text.
	DocsDir string `mapstructure:"docs_dir"`
}

// GameConfig holds the rules of a new game.
type GameConfig struct {
	StartLocation string `mapstructure:"start_location"`
	StartEra      string `mapstructure:"start_era"`
	// EraOrder lists era tags oldest first. Empty uses world map order.
	EraOrder []string `mapstructure:"era_order"`
}

// PersistenceConfig selects where progress is saved.
type PersistenceConfig struct {
	// Driver is one of "memory", "file", "sqlite", or "postgres".
	Driver     string `mapstructure:"driver"`
	FilePath   string `mapstructure:"file_path"`
	SQLitePath string `mapstructure:"sqlite_path"`
	// Slot names the save record for the sqlite and postgres drivers.
	Slot string `mapstructure:"slot"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging"`
	Content     ContentConfig     `mapstructure:"content"`
	Game        GameConfig        `mapstructure:"game"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
	Database    DatabaseConfig    `mapstructure:"database"`
}

// Validate checks all configuration invariants. Database settings are only
// checked when the postgres driver is selected.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validatePersistence(c.Persistence); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Persistence.Driver == DriverPostgres {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.WorldMap == "" {
		return fmt.Errorf("content.world_map must not be empty")
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.StartLocation == "" {
		errs = append(errs, "game.start_location must not be empty")
	}
	if g.StartEra == "" {
		errs = append(errs, "game.start_era must not be empty")
	}
	seen := make(map[string]bool, len(g.EraOrder))
	for _, tag := range g.EraOrder {
		if seen[tag] {
			errs = append(errs, fmt.Sprintf("game.era_order lists %q twice", tag))
		}
		seen[tag] = true
	}
	if len(g.EraOrder) > 0 && g.StartEra != "" && !seen[g.StartEra] {
		errs = append(errs, fmt.Sprintf("game.start_era %q is not in game.era_order", g.StartEra))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePersistence(p PersistenceConfig) error {
	switch p.Driver {
	case DriverMemory:
	case DriverFile:
		if p.FilePath == "" {
			return fmt.Errorf("persistence.file_path must not be empty for the file driver")
		}
	case DriverSQLite:
		if p.SQLitePath == "" {
			return fmt.Errorf("persistence.sqlite_path must not be empty for the sqlite driver")
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("persistence.driver must be one of [memory, file, sqlite, postgres], got %q", p.Driver)
	}
	if p.Driver != DriverMemory && p.Driver != DriverFile && p.Slot == "" {
		return fmt.Errorf("persistence.slot must not be empty for the %s driver", p.Driver)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. Relative content paths are resolved
// against the directory holding the file.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := LoadFromViper(v)
	if err != nil {
		return Config{}, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// LoadDefaults builds a Config from defaults and environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func LoadDefaults() (Config, error) {
	return LoadFromViper(newViper())
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with STDQUEST_ prefix
	v.SetEnvPrefix("STDQUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{
		&c.Content.WorldMap,
		&c.Content.QuestsDir,
		&c.Content.NPCsDir,
		&c.Content.ItemsDir,
		&c.Content.PuzzlesDir,
		&c.Content.DocsDir,
		&c.Persistence.FilePath,
		&c.Persistence.SQLitePath,
		&c.Logging.File,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("content.world_map", "content/world-map.json")
	v.SetDefault("content.quests_dir", "content/quests")
	v.SetDefault("content.npcs_dir", "content/npcs")
	v.SetDefault("content.items_dir", "content/items")
	v.SetDefault("content.puzzles_dir", "content/puzzles")
	v.SetDefault("content.docs_dir", "content/docs")

	v.SetDefault("game.start_location", "intro")
	v.SetDefault("game.start_era", "n4950")

	v.SetDefault("persistence.driver", DriverFile)
	v.SetDefault("persistence.file_path", "stdquest-save.json")
	v.SetDefault("persistence.sqlite_path", "stdquest.db")
	v.SetDefault("persistence.slot", "default")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "stdquest")
	v.SetDefault("database.password", "stdquest")
	v.SetDefault("database.name", "stdquest")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "1h")
}
