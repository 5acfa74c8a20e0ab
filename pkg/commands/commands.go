// Package commands provides the CLI command packages of the runner.
//
// There are two ways to use commands from this package:
//
// 1. Via the Commands factory (recommended for most use cases):
//
//	commands := commands.New(lggr)
//	app.AddCommand(
//	    commands.Chains(cfg),
//	    commands.Units(),
//	)
//
// 2. Via direct package imports (for advanced DI/testing):
//
//	import "github.com/btc-alpha-stack/alpha-stack/pkg/commands/chains"
//
//	app.AddCommand(chains.NewCommand(chains.Config{
//	    Logger: lggr,
//	    Runner: cfg,
//	    Deps:   chains.Deps{...}, // inject fakes for testing
//	}))
package commands

import (
	"github.com/spf13/cobra"

	"github.com/btc-alpha-stack/alpha-stack/engine/config"
	"github.com/btc-alpha-stack/alpha-stack/pkg/commands/chains"
	"github.com/btc-alpha-stack/alpha-stack/pkg/commands/units"
	"github.com/btc-alpha-stack/alpha-stack/pkg/logger"
)

// Commands provides a factory for creating CLI commands with shared configuration.
// This allows setting the logger once and reusing it across all commands.
type Commands struct {
	lggr logger.Logger
}

// New creates a new Commands factory with the given logger.
func New(lggr logger.Logger) *Commands {
	return &Commands{lggr: lggr}
}

// Chains creates the chains command group, which lists and checks the chains of cfg.
func (c *Commands) Chains(cfg *config.Config) *cobra.Command {
	return chains.NewCommand(chains.Config{
		Logger: c.lggr,
		Runner: cfg,
	})
}

// Units creates the units command group for wei and ether conversions.
func (c *Commands) Units() *cobra.Command {
	return units.NewCommand()
}
