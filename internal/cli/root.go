package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/elecciones/internal/config"
)

// setup runs before every command: it loads the config file, applies the
// log level and attaches the logger to the command's context.
//
// Precedence for the log level is --verbose, then log.level from the file,
// then info. An explicit --config must exist; the default location is
// optional.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg

	level := log.InfoLevel
	if parsed, err := log.ParseLevel(cfg.Log.Level); err == nil {
		level = parsed
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		c.Logger.Debug("loading config", "path", c.configPath)
		return config.Load(c.configPath)
	}
	path, err := config.DefaultPath(appName)
	if err != nil {
		return config.Default(), nil
	}
	return config.LoadOptional(path)
}
