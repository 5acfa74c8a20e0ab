package chains

import (
	"github.com/spf13/cobra"

	"github.com/btc-alpha-stack/alpha-stack/engine/config"
	"github.com/btc-alpha-stack/alpha-stack/pkg/logger"
)

// Config holds the configuration for chain commands.
type Config struct {
	// Logger is the logger to use for command output. Required.
	Logger logger.Logger

	// Runner is the loaded runner configuration. Required.
	Runner *config.Config

	// Deps holds optional dependencies that can be overridden.
	// If fields are nil, production defaults are used.
	Deps Deps
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

// NewCommand creates the chains command with all subcommands.
//
// Usage:
//
//	rootCmd.AddCommand(chains.NewCommand(chains.Config{
//	    Logger: lggr,
//	    Runner: cfg,
//	}))
func NewCommand(cfg Config) *cobra.Command {
	cfg.deps()

	cmd := &cobra.Command{
		Use:   "chains",
		Short: "Chain connection commands",
	}

	cmd.AddCommand(
		newListCmd(cfg),
		newCheckCmd(cfg),
	)

	return cmd
}
