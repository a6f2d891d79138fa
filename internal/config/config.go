package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pacsweep/pacsweep/internal/models"
	"gopkg.in/yaml.v3"
)

// Built-in defaults, overridable by file and flags.
const (
	DefaultCacheDir = "/var/cache/pacman/pkg"
	DefaultDBDir    = "/var/lib/pacman/local"
	DefaultKeep     = 2
)

// DefaultExtensions returns the archive suffixes recognized in the cache.
func DefaultExtensions() []string {
	return []string{"pkg.tar.zst", "pkg.tar.xz", "pkg.tar.gz"}
}

// Config carries the paths, retention count and recognized archive
// suffixes of one run.
type Config struct {
	CacheDir   string   `yaml:"cache_dir"`
	DBDir      string   `yaml:"db_dir"`
	Keep       int      `yaml:"keep"`
	Extensions []string `yaml:"extensions"`
}

// fileConfig mirrors Config for YAML decoding. Keep is a pointer so that
// an explicit "keep: 0" can be told apart from an absent key.
type fileConfig struct {
	CacheDir   string   `yaml:"cache_dir"`
	DBDir      string   `yaml:"db_dir"`
	Keep       *int     `yaml:"keep"`
	Extensions []string `yaml:"extensions"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CacheDir:   DefaultCacheDir,
		DBDir:      DefaultDBDir,
		Keep:       DefaultKeep,
		Extensions: DefaultExtensions(),
	}
}

// DefaultPath returns the per-user configuration file location, or an
// empty string when no user config directory exists.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pacsweep", "config.yaml")
}

// Load reads the YAML file at path and overlays it on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if fc.CacheDir != "" {
		cfg.CacheDir = fc.CacheDir
	}
	if fc.DBDir != "" {
		cfg.DBDir = fc.DBDir
	}
	if fc.Keep != nil {
		cfg.Keep = *fc.Keep
	}
	if len(fc.Extensions) > 0 {
		cfg.Extensions = fc.Extensions
	}
	return cfg, nil
}

// LoadOptional is Load, except a missing file yields the defaults. Used
// for the per-user configuration path, which usually does not exist.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks the configuration before any catalog is built.
func Validate(cfg Config) error {
	if cfg.CacheDir == "" {
		return invalid("cache directory is required")
	}
	if cfg.DBDir == "" {
		return invalid("package database directory is required")
	}
	if cfg.Keep < 0 {
		return invalid(fmt.Sprintf("keep must be non-negative, got %d", cfg.Keep))
	}
	if len(cfg.Extensions) == 0 {
		return invalid("at least one archive extension is required")
	}
	for _, ext := range cfg.Extensions {
		if ext == "" || strings.HasPrefix(ext, ".") {
			return invalid(fmt.Sprintf("extension %q must be a bare suffix without a leading dot", ext))
		}
	}
	return nil
}

func invalid(reason string) error {
	return &models.SweepError{
		Type: models.ErrInvalidConfig,
		Err:  fmt.Errorf("%s", reason),
	}
}
