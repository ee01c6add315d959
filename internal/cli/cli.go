package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/elecciones/internal/config"
	"github.com/matzehuels/elecciones/pkg/buildinfo"
	"github.com/matzehuels/elecciones/pkg/cache"
	"github.com/matzehuels/elecciones/pkg/choropleth"
	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "elecciones"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	// configPath is set by --config; empty uses the XDG location.
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Resultados de las elecciones generales de Panamá, 1994-2024",
		Long: `elecciones draws Panama's executive and legislative election results as
bar, pie, hemicycle and map charts, and serves them as a small web site.

Data for every general election since 1994 is bundled; --config points at a
TOML file that can swap in another data directory, province outlines or a
shared Redis cache.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/elecciones/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.yearsCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner over the configured data, cache and
// province outlines.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	data, err := c.loadData()
	if err != nil {
		return nil, err
	}
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}

	var keyer cache.Keyer
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), ns)
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger, data)

	if path := c.Config.Data.GeoJSON; path != "" {
		b, err := choropleth.LoadGeoJSONFile(path)
		if err != nil {
			store.Close()
			return nil, err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			store.Close()
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		runner.SetBoundaries(b, cache.Hash(raw))
		c.Logger.Debug("loaded province outlines", "path", path, "provinces", len(b.Features))
	}
	return runner, nil
}

// loadData returns the configured dataset, or the bundled one.
func (c *CLI) loadData() (*election.Dataset, error) {
	if dir := c.Config.Data.Dir; dir != "" {
		c.Logger.Debug("loading election data", "dir", dir)
		return election.Load(dir)
	}
	return election.Default()
}

// newCache opens the configured backend. A file cache that cannot be
// created degrades to no caching; an unreachable Redis is an error.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}

	dir, err := c.fileCacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache unavailable, caching disabled", "dir", dir, "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/elecciones/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// setCLIDefaults applies CLI-specific defaults. Frame and format defaults
// depend on the chart, so the pipeline fills them in after flag parsing.
func setCLIDefaults(opts *pipeline.Options) {
	opts.Strict = true
	opts.Popups = true
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
