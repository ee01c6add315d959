// Package config loads the elecciones TOML configuration.
//
// Every setting has a default, so the file is optional. Flags override the
// file; the file overrides the defaults.
//
//	[server]
//	listen = ":8080"
//
//	[data]
//	dir = "/srv/elecciones/data"
//	geojson = "/srv/elecciones/provincias.geojson"
//
//	[cache]
//	backend = "redis"
//	layout_ttl = "720h"
//
//	[cache.redis]
//	addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/elecciones/pkg/cache"
	"github.com/matzehuels/elecciones/pkg/errors"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Backends lists the accepted cache backends.
var Backends = []string{BackendFile, BackendRedis, BackendNone}

// FileName is the config file looked up in the user's config directory.
const FileName = "config.toml"

// Config is the full configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Cache  CacheConfig  `toml:"cache"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig configures the web site.
type ServerConfig struct {
	Listen          string        `toml:"listen"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	Metrics         bool          `toml:"metrics"`
}

// DataConfig points at election data and province outlines. Empty values
// use the bundled data and the tile map.
type DataConfig struct {
	Dir     string `toml:"dir"`
	GeoJSON string `toml:"geojson"`
}

// CacheConfig selects and tunes the chart cache.
type CacheConfig struct {
	Backend     string        `toml:"backend"`
	Dir         string        `toml:"dir"`
	Namespace   string        `toml:"namespace"`
	LayoutTTL   time.Duration `toml:"layout_ttl"`
	ArtifactTTL time.Duration `toml:"artifact_ttl"`
	Redis       RedisConfig   `toml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string        `toml:"addr"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	Timeout  time.Duration `toml:"timeout"`
}

// LogConfig sets the default log level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen:          ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Metrics:         true,
		},
		Cache: CacheConfig{
			Backend:     BackendFile,
			LayoutTTL:   cache.TTLLayout,
			ArtifactTTL: cache.TTLArtifact,
			Redis: RedisConfig{
				Addr:    "localhost:6379",
				Timeout: 3 * time.Second,
			},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the TOML file at path over the defaults. Unknown keys are
// rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// LoadOptional is [Load] that returns the defaults when path does not exist.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the decoder cannot.
func (c Config) Validate() error {
	if c.Server.Listen == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.listen must not be empty")
	}
	if !slices.Contains(Backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"cache.backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
	}
	if c.Cache.LayoutTTL < 0 || c.Cache.ArtifactTTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache TTLs must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "log.level %q (must be one of: debug, info, warn, error)", c.Log.Level)
	}
	return nil
}

// DefaultPath returns the config file location following the XDG
// standard (~/.config/elecciones/config.toml).
func DefaultPath(appName string) (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, FileName), nil
}
