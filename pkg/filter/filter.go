package filter

import (
	"bufio"
	"context"
	"io"
	"os"
	"regexp"

	"github.com/pkg/errors"
	log "github.com/rs/zerolog"

	"github.com/nilsdeppe/FlameGraphFilter/pkg/folded"
)

// StackFilter reduces a folded stack profile to the leaf groups worth
// looking at: groups whose share of the total samples exceeds the cutoff
// percentage and, when show patterns are given, whose leaf frame matches
// one of them. Surviving stacks can additionally be trimmed to their
// leaf-most frames.
type StackFilter struct {
	show []*regexp.Regexp

	*StackFilterOptions
}

func NewStackFilter(opts ...StackFilterOption) *StackFilter {
	f := &StackFilter{
		StackFilterOptions: &StackFilterOptions{},
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Init validates the options and compiles the show patterns. Patterns
// must match the whole leaf frame, so they are anchored on both ends
// before compiling.
func (f *StackFilter) Init() error {
	if err := f.validate(); err != nil {
		return err
	}
	if f.logger == nil {
		logger := log.New(log.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		f.logger = &logger
	}
	for _, pattern := range f.showPatterns {
		re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
		if err != nil {
			return errors.Wrapf(err, "compiling show pattern %q", pattern)
		}
		f.show = append(f.show, re)
	}

	return nil
}

func (f *StackFilter) validate() error {
	if f.inputPath == "" {
		return ErrInputPathEmpty
	}
	if f.outputPath == "" {
		return ErrOutputPathEmpty
	}

	return nil
}

// Run executes the pipeline: group the input by leaf frame, drop the
// insignificant groups, trim the survivors, and write them out.
func (f *StackFilter) Run(ctx context.Context) error {
	in, err := folded.Open(f.inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	stacks, err := BuildStackMap(in)
	if err != nil {
		return err
	}
	f.logger.Debug().
		Int("groups", len(stacks)).
		Uint64("samples", stacks.TotalSamples()).
		Str("input", f.inputPath).
		Msg("grouped folded stacks by leaf frame")

	if err := ctx.Err(); err != nil {
		return err
	}

	kept, err := f.FilterStacks(stacks)
	if err != nil {
		return err
	}
	f.logger.Debug().
		Int("kept", len(kept)).
		Int("dropped", len(stacks)-len(kept)).
		Float64("cutoff_percentage", f.cutoffPercentage).
		Msg("filtered leaf groups")

	lines := f.TrimStacks(kept.Lines())

	out, err := folded.Create(f.outputPath)
	if err != nil {
		return err
	}
	if err := WriteStacks(out, lines); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "closing output file")
	}
	f.logger.Info().
		Int("groups", len(kept)).
		Int("stacks", len(lines)).
		Str("output", f.outputPath).
		Msg("wrote filtered stacks")

	return nil
}

// FilterStacks drops every leaf group whose share of the total samples
// does not exceed the cutoff percentage. When show patterns are set, the
// remaining groups are further restricted to those whose leaf frame
// matches at least one pattern. A profile with zero total samples cannot
// be filtered.
func (f *StackFilter) FilterStacks(stacks StackMap) (StackMap, error) {
	total := stacks.TotalSamples()
	if total == 0 {
		return nil, ErrNoSamples
	}

	kept := make(StackMap)
	for leaf, group := range stacks {
		if f.keep(leaf, group.Samples, total) {
			kept[leaf] = group
		}
	}

	return kept, nil
}

func (f *StackFilter) keep(leaf string, samples, total uint64) bool {
	if !Significant(samples, total, f.cutoffPercentage) {
		return false
	}
	if len(f.show) == 0 {
		return true
	}
	for _, re := range f.show {
		if re.MatchString(leaf) {
			return true
		}
	}

	return false
}

// Significant reports whether a sample count's share of the total
// strictly exceeds the cutoff percentage.
func Significant(samples, total uint64, cutoffPercentage float64) bool {
	return float64(samples)/float64(total) > 0.01*cutoffPercentage
}

// TrimStacks applies the stack depth limit to every line. A zero limit
// leaves the lines untouched.
func (f *StackFilter) TrimStacks(lines []string) []string {
	if f.stackLimit == 0 {
		return lines
	}
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = folded.TrimStack(line, int(f.stackLimit))
	}

	return trimmed
}

// WriteStacks writes one folded stack line per entry.
func WriteStacks(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return errors.Wrap(err, "writing stacks")
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "writing stacks")
		}
	}

	return errors.Wrap(bw.Flush(), "writing stacks")
}
