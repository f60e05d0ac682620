// Package config loads scadkit configuration from a TOML file.
//
// Configuration is optional: every field has a working default, and a
// missing file is not an error. The default location is
// $XDG_CONFIG_HOME/scadkit/config.toml (falling back to
// ~/.config/scadkit/config.toml); an explicit path overrides it.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scadkit/pkg/errors"
	"github.com/matzehuels/scadkit/pkg/solid"
)

// Config is the full scadkit configuration.
type Config struct {
	// Facets is the default facet count for curved surfaces.
	Facets int `toml:"facets"`

	// OutputDir is where generated files land when a command is given a
	// bare file name. Empty means the current directory.
	OutputDir string `toml:"output_dir"`

	Tools  Tools  `toml:"tools"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Tools locates the external binaries used for exports.
type Tools struct {
	// OpenSCAD is the path to the OpenSCAD binary. Empty means probe the
	// usual install locations and PATH.
	OpenSCAD string `toml:"openscad"`

	// Slicer is the path to the slicer binary used for G-code export.
	Slicer string `toml:"slicer"`

	// TimeoutSeconds bounds a single tool invocation.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Cache configures artifact caching.
type Cache struct {
	// Enabled turns artifact caching on.
	Enabled bool `toml:"enabled"`

	// Dir is the file cache directory. Empty means
	// ~/.cache/scadkit.
	Dir string `toml:"dir"`

	// RedisURL switches the backend to Redis when set
	// (e.g. "redis://localhost:6379/0").
	RedisURL string `toml:"redis_url"`

	// TTLHours is how long artifacts stay cached.
	TTLHours int `toml:"ttl_hours"`
}

// Server configures the preview server.
type Server struct {
	// Addr is the listen address of `scadkit serve`.
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Facets: solid.DefaultFacets,
		Tools: Tools{
			TimeoutSeconds: 600,
		},
		Cache: Cache{
			Enabled:  true,
			TTLHours: 7 * 24,
		},
		Server: Server{
			Addr: "localhost:8385",
		},
	}
}

// Load reads the configuration at path, or the default location when path
// is empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "config file %s does not exist", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "scadkit.toml")
	}
	return filepath.Join(dir, "scadkit", "config.toml")
}

// CacheDir returns the file cache directory, defaulting to the user cache.
func (c Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "scadkit")
	}
	return filepath.Join(".", ".scadkit-cache")
}

// ToolTimeout returns the external tool timeout as a duration.
func (c Config) ToolTimeout() time.Duration {
	return time.Duration(c.Tools.TimeoutSeconds) * time.Second
}

// CacheTTL returns the artifact cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

func (c Config) validate() error {
	if c.Facets <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "facets must be positive, got %d", c.Facets)
	}
	if c.Tools.TimeoutSeconds <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout_seconds must be positive, got %d", c.Tools.TimeoutSeconds)
	}
	if c.Cache.TTLHours < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "ttl_hours must not be negative, got %d", c.Cache.TTLHours)
	}
	return nil
}
