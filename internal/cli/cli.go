// Package cli implements the jarscope command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jarscope/pkg/buildinfo"
	"github.com/matzehuels/jarscope/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "jarscope"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Configuration is loaded once, before any subcommand runs: a .env file in
// the working directory, then the --config file (or the default location),
// then JARSCOPE_* variables.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "jarscope identifies JVM archives and resolves their Maven dependencies",
		Long: `jarscope identifies JAR files by their SHA-1 checksum against a Maven search
index and resolves the direct dependencies declared in each artifact's POM.

Lookups go through a local tier (the local Maven repository and a checksum
cache) and a remote tier; the consistency mode of each controls which tiers
are consulted and whether remote answers are written back.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				registerHooks(c.Logger)
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/jarscope/config.toml)")

	root.AddCommand(c.identifyCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.auditCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	if c.config != nil {
		return nil
	}
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("configuration loaded",
		"finder", cfg.Finder.Mode,
		"repository", cfg.Repository.Mode,
		"store", cfg.Store.Backend,
	)
	return nil
}
