package output

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const defaultWidth = 80

// TermWidth returns the current terminal width, falling back to a fixed
// width when stdout is not a terminal.
func TermWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}

	return width
}

// ProgressBar renders a fixed-width bar filled proportionally to percent.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	filled := (percent * width) / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return fmt.Sprintf("%s%s",
		strings.Repeat("█", filled),
		strings.Repeat(" ", width-filled),
	)
}
