package output_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nilsdeppe/FlameGraphFilter/internal/output"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		width   int
		filled  int
	}{
		{"empty", 0, 10, 0},
		{"half", 50, 10, 5},
		{"full", 100, 10, 10},
		{"rounds down", 55, 10, 5},
		{"clamped above", 250, 10, 10},
		{"clamped below", -5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := output.ProgressBar(tt.percent, tt.width)
			require.Equal(t, tt.width, len([]rune(bar)))
			require.Equal(t, tt.filled, strings.Count(bar, "█"))
		})
	}
}

func TestProgressBarZeroWidth(t *testing.T) {
	require.Empty(t, output.ProgressBar(50, 0))
}

func TestTermWidth(t *testing.T) {
	require.Greater(t, output.TermWidth(), 0)
}
