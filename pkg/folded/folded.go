package folded

import (
	"strconv"
	"strings"
)

// Delimiter separates frames inside the frame portion of a folded stack
// line. The trailing sample count is set off by a single space and never
// contains a delimiter.
const Delimiter = ';'

// LeafFrame returns the innermost frame of a folded stack line. For a
// sample collected in main()->foo()->bar() it returns "bar". A line
// without any delimiter is a single-frame stack, so the whole frame
// portion is the leaf.
func LeafFrame(line string) string {
	start := strings.LastIndexByte(line, Delimiter) + 1
	end := strings.LastIndexByte(line, ' ')
	if end < start {
		end = len(line)
	}

	return line[start:end]
}

// SampleCount returns the number of samples recorded for the stack line,
// parsed from the text after the last space. A missing or malformed count
// yields zero, never an error.
func SampleCount(line string) uint64 {
	idx := strings.LastIndexByte(line, ' ')
	if idx < 0 {
		return 0
	}
	n, err := strconv.ParseUint(line[idx+1:], 10, 64)
	if err != nil {
		return 0
	}

	return n
}

// TrimStack removes caller-side frames so that at most limit leaf-most
// frames remain: main()->foo()->bar()->baz() with a limit of two keeps
// bar;baz. The count field is untouched. A limit of zero disables
// trimming, and a stack shallower than the limit passes through
// unchanged.
func TrimStack(line string, limit int) string {
	if limit <= 0 {
		return line
	}
	// The first scan starts past the count field, which holds no
	// delimiter, so only frame boundaries are counted.
	pos := len(line)
	for i := 0; i < limit && pos >= 0; i++ {
		pos = strings.LastIndexByte(line[:pos], Delimiter)
	}
	if pos < 0 {
		return line
	}

	return line[pos+1:]
}
