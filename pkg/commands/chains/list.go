package chains

import (
	"github.com/spf13/cobra"

	"github.com/btc-alpha-stack/alpha-stack/pkg/commands/flags"
	"github.com/btc-alpha-stack/alpha-stack/pkg/commands/text"
)

var (
	listLong = text.LongDesc(`
		Lists the configured chains and whether an endpoint URL is set for each of them.

		Endpoint URLs are not printed because they commonly embed provider API keys.
	`)

	listExample = text.Examples(`
		# List the chains as a table
		alphastack chains list

		# List the chains as yaml
		alphastack chains list -o yaml
	`)
)

// configuredChain is one row of the list output.
type configuredChain struct {
	Name             string `json:"name" yaml:"name"`
	EndpointVariable string `json:"endpoint_variable" yaml:"endpoint_variable"`
	ChainSelector    uint64 `json:"chain_selector,omitempty" yaml:"chain_selector,omitempty"`
	EndpointSet      bool   `json:"endpoint_set" yaml:"endpoint_set"`
}

type listReport struct {
	Chains []configuredChain `json:"chains" yaml:"chains"`
}

func (r listReport) header() []string {
	return []string{"Chain", "Variable", "Selector", "Endpoint"}
}

func (r listReport) rows() [][]string {
	rows := make([][]string, 0, len(r.Chains))
	for _, c := range r.Chains {
		endpoint := "missing"
		if c.EndpointSet {
			endpoint = "set"
		}
		rows = append(rows, []string{c.Name, c.EndpointVariable, formatSelector(c.ChainSelector), endpoint})
	}

	return rows
}

// newListCmd creates the "list" subcommand.
func newListCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the configured chains",
		Long:    listLong,
		Example: listExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := listReport{Chains: make([]configuredChain, 0, len(cfg.Runner.Chains))}
			for _, e := range cfg.Runner.Chains {
				report.Chains = append(report.Chains, configuredChain{
					Name:             e.ChainName,
					EndpointVariable: e.EndpointVariable,
					ChainSelector:    e.ChainSelector,
					EndpointSet:      cfg.Runner.Endpoint(e.EndpointVariable) != "",
				})
			}

			return writeReport(cmd.OutOrStdout(), flags.MustString(cmd.Flags().GetString("output")), report)
		},
	}

	flags.Output(cmd)

	return cmd
}
