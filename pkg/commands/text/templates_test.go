package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLongDesc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "surrounding whitespace", input: "  \n Connects to chains.\n  ", want: "Connects to chains."},
		{name: "keeps inner lines", input: "\nLine one.\nLine two.\n", want: "Line one.\nLine two."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, LongDesc(tt.input))
		})
	}
}

func TestExamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "   ", want: ""},
		{name: "single line", input: "alphastack chains check", want: "  alphastack chains check"},
		{
			name: "raw string block",
			input: `
				# Check every configured chain
				alphastack chains check -o json
			`,
			want: "  # Check every configured chain\n  alphastack chains check -o json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Examples(tt.input))
		})
	}
}
