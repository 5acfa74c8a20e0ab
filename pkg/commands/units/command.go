// Package units provides CLI commands that convert amounts between base and display units.
package units

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btc-alpha-stack/alpha-stack/pkg/commands/text"
	"github.com/btc-alpha-stack/alpha-stack/pkg/units"
)

var (
	toDisplayExample = text.Examples(`
		# 1.5 ether
		alphastack units to-display 1500000000000000000

		# hex input is accepted as well
		alphastack units to-display 0xde0b6b3a7640000
	`)

	toBaseExample = text.Examples(`
		# 1 gwei
		alphastack units to-base 0.000000001
	`)
)

// NewCommand creates the units command with all subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Convert amounts between wei and ether",
	}

	cmd.AddCommand(
		newToDisplayCmd(),
		newToBaseCmd(),
	)

	return cmd
}

func newToDisplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "to-display <wei>",
		Short:   "Convert an amount of wei to ether",
		Example: toDisplayExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := units.ParseBaseUnit(args[0])
			if err != nil {
				return err
			}
			display, err := units.ToDisplayUnit(base)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), display.String())

			return err
		},
	}
}

func newToBaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "to-base <ether>",
		Short:   "Convert an amount of ether to wei",
		Example: toBaseExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			display, err := units.ParseDisplayUnit(args[0])
			if err != nil {
				return err
			}
			base, err := units.ToBaseUnit(display)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), base.String())

			return err
		},
	}
}
