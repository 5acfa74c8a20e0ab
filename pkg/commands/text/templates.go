// Package text formats help text of CLI commands.
package text

import (
	"strings"
)

// Indentation prefixes every line of an example block.
const Indentation = `  `

// LongDesc trims the surrounding blank space of a long description written as a raw string.
func LongDesc(s string) string {
	return strings.TrimSpace(s)
}

// Examples trims an example block and indents each of its lines by Indentation, discarding the
// source indentation of the raw string.
func Examples(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	var b strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Indentation)
		b.WriteString(strings.TrimSpace(line))
	}

	return b.String()
}
