// Package flags provides flag helpers shared by several commands.
//
// Command specific flags are defined next to the command.
package flags

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Output formats accepted by the --output flag.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var formats = []string{FormatText, FormatJSON, FormatYAML}

// MustString returns the string value, ignoring the error.
// Safe to use with registered flags where GetString cannot fail.
func MustString(s string, _ error) string { return s }

// formatValue is a pflag.Value restricted to the supported output formats.
type formatValue string

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	s = strings.ToLower(s)
	if !slices.Contains(formats, s) {
		return fmt.Errorf("must be one of %s", strings.Join(formats, ", "))
	}
	*f = formatValue(s)

	return nil
}

// Type reports "string" so the value can be read back with GetString.
func (f *formatValue) Type() string { return "string" }

// Output adds the --output/-o flag selecting text, json or yaml output (default: text).
// Retrieve the value with cmd.Flags().GetString("output").
//
// Usage:
//
//	flags.Output(cmd)
//	// later in RunE:
//	format := flags.MustString(cmd.Flags().GetString("output"))
func Output(cmd *cobra.Command) {
	v := formatValue(FormatText)
	cmd.Flags().VarP(&v, "output", "o", "Output format: "+strings.Join(formats, ", "))
}
