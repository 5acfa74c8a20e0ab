package chains

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/btc-alpha-stack/alpha-stack/chain"
	"github.com/btc-alpha-stack/alpha-stack/pkg/commands/flags"
	"github.com/btc-alpha-stack/alpha-stack/pkg/commands/text"
)

var (
	checkLong = text.LongDesc(`
		Connects to every configured chain and verifies that its endpoint answers.

		The check fails as a whole if any chain is not configured or cannot be reached; no partial
		result is printed. Chains with a chain selector must also serve the matching chain ID.
	`)

	checkExample = text.Examples(`
		# Check every configured chain
		alphastack chains check

		# Check with json output, e.g. for scripts
		alphastack chains check -o json
	`)
)

// connectedChain is one row of the check output.
type connectedChain struct {
	Name          string `json:"name" yaml:"name"`
	ChainID       uint64 `json:"chain_id" yaml:"chain_id"`
	ChainSelector uint64 `json:"chain_selector,omitempty" yaml:"chain_selector,omitempty"`
}

type checkReport struct {
	Chains []connectedChain `json:"chains" yaml:"chains"`
}

func (r checkReport) header() []string {
	return []string{"Chain", "Chain ID", "Selector"}
}

func (r checkReport) rows() [][]string {
	rows := make([][]string, 0, len(r.Chains))
	for _, c := range r.Chains {
		rows = append(rows, []string{c.Name, strconv.FormatUint(c.ChainID, 10), formatSelector(c.ChainSelector)})
	}

	return rows
}

func newCheckReport(reg *chain.Registry) checkReport {
	report := checkReport{Chains: make([]connectedChain, 0, reg.Len())}
	for c := range reg.All() {
		report.Chains = append(report.Chains, connectedChain{
			Name:          c.Name(),
			ChainID:       c.ChainID(),
			ChainSelector: c.ChainSelector(),
		})
	}

	return report
}

// newCheckCmd creates the "check" subcommand.
func newCheckCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Connect to every configured chain",
		Long:    checkLong,
		Example: checkExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, cfg)
		},
	}

	flags.Output(cmd)

	return cmd
}

// runCheck executes the check command logic.
// This is separated from the RunE closure to improve testability.
func runCheck(cmd *cobra.Command, cfg Config) error {
	deps := cfg.deps()

	reg, err := deps.Bootstrap(cmd.Context(), cfg.Logger, cfg.Runner)
	if err != nil {
		return fmt.Errorf("chain check failed: %w", err)
	}
	defer reg.Close()

	return writeReport(cmd.OutOrStdout(), flags.MustString(cmd.Flags().GetString("output")), newCheckReport(reg))
}
