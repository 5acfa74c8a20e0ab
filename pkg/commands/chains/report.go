package chains

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/btc-alpha-stack/alpha-stack/pkg/commands/flags"
)

// tabular is implemented by reports that can render as a text table.
type tabular interface {
	header() []string
	rows() [][]string
}

// writeReport renders report in the requested format.
func writeReport(w io.Writer, format string, report tabular) error {
	switch format {
	case flags.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	case flags.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}

		return enc.Close()
	case flags.FormatText, "":
		table := tablewriter.NewWriter(w)
		table.SetAutoWrapText(false)
		table.SetHeader(report.header())
		table.AppendBulk(report.rows())
		table.Render()

		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func formatSelector(sel uint64) string {
	if sel == 0 {
		return "-"
	}

	return strconv.FormatUint(sel, 10)
}
