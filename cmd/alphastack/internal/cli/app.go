// Package cli assembles the alphastack command line application.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/btc-alpha-stack/alpha-stack/engine/config"
	"github.com/btc-alpha-stack/alpha-stack/pkg/commands"
	"github.com/btc-alpha-stack/alpha-stack/pkg/commands/text"
	"github.com/btc-alpha-stack/alpha-stack/pkg/logger"
)

const (
	// ConfigPathEnv names the variable that points to the config file.
	ConfigPathEnv = "ALPHASTACK_CONFIG"

	defaultConfigPath = "alphastack.yml"
	dotEnvPath        = ".env"
)

var rootLong = text.LongDesc(`
	alphastack connects a trading process to its EVM chains.

	Configuration is read from alphastack.yml (or the file named by ALPHASTACK_CONFIG), a .env file
	in the working directory and the process environment, in increasing order of precedence.
`)

// App is the configured command line application.
type App struct {
	root *cobra.Command
	lggr logger.Logger
}

// NewApp loads the configuration from the working directory and the environment and builds the
// command tree.
func NewApp() (*App, error) {
	if err := config.LoadDotEnv(dotEnvPath); err != nil {
		return nil, err
	}

	path := os.Getenv(ConfigPathEnv)
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	lggrCfg, err := cfg.LoggerConfig()
	if err != nil {
		return nil, err
	}
	lggr, err := lggrCfg.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return newApp(lggr, cfg), nil
}

func newApp(lggr logger.Logger, cfg *config.Config) *App {
	root := &cobra.Command{
		Use:          "alphastack",
		Short:        "Chain connectivity tooling",
		Long:         rootLong,
		SilenceUsage: true,
	}

	cmds := commands.New(lggr)
	root.AddCommand(
		cmds.Chains(cfg),
		cmds.Units(),
	)

	return &App{root: root, lggr: lggr}
}

// Run executes the command selected by the process arguments. It stops on SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = a.lggr.Sync() }()

	return a.root.ExecuteContext(ctx)
}
