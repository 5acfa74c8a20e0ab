package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btc-alpha-stack/alpha-stack/engine/bootstrap"
	"github.com/btc-alpha-stack/alpha-stack/engine/config"
	"github.com/btc-alpha-stack/alpha-stack/pkg/logger"
)

func TestNewApp_CommandTree(t *testing.T) {
	t.Parallel()

	app := newApp(logger.Test(t), &config.Config{Chains: bootstrap.DefaultEntries()})

	names := make([]string, 0)
	for _, c := range app.root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"chains", "units"})
	assert.True(t, app.root.SilenceUsage)
}

func TestApp_RunsSubcommand(t *testing.T) {
	t.Parallel()

	app := newApp(logger.Test(t), &config.Config{Chains: bootstrap.DefaultEntries()})

	var out bytes.Buffer
	app.root.SetOut(&out)
	app.root.SetArgs([]string{"units", "to-display", "2000000000000000000"})

	require.NoError(t, app.root.ExecuteContext(context.Background()))
	assert.Equal(t, "2\n", out.String())
}

func TestNewApp_InvalidConfig(t *testing.T) { //nolint:paralleltest // uses t.Setenv
	t.Setenv(ConfigPathEnv, "./testdata/missing.yml")
	t.Setenv("BOOTSTRAP_CONCURRENCY", "0")

	_, err := NewApp()
	require.ErrorContains(t, err, "bootstrap.concurrency must be at least 1")
}
