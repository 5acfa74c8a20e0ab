// Package chains provides CLI commands that inspect and check the configured chains.
package chains

import (
	"context"

	"github.com/btc-alpha-stack/alpha-stack/chain"
	"github.com/btc-alpha-stack/alpha-stack/engine/bootstrap"
	"github.com/btc-alpha-stack/alpha-stack/engine/config"
	"github.com/btc-alpha-stack/alpha-stack/pkg/logger"
)

// BootstrapFunc connects to every chain of cfg.
type BootstrapFunc func(ctx context.Context, lggr logger.Logger, cfg *config.Config) (*chain.Registry, error)

// defaultBootstrap is the production implementation that dials the configured EVM endpoints.
func defaultBootstrap(ctx context.Context, lggr logger.Logger, cfg *config.Config) (*chain.Registry, error) {
	opts := append(cfg.BootstrapOptions(), bootstrap.WithLogger(lggr))

	return bootstrap.New(opts...).BootstrapAll(ctx, cfg.Chains)
}

// Deps holds the injectable dependencies for chain commands.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// Bootstrap connects to the configured chains.
	// Default: bootstrap.Bootstrapper.BootstrapAll
	Bootstrap BootstrapFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.Bootstrap == nil {
		d.Bootstrap = defaultBootstrap
	}
}
