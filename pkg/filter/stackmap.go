package filter

import (
	"bufio"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/nilsdeppe/FlameGraphFilter/pkg/folded"
)

// Folded stacks from heavily inlined or templated programs can produce
// very long lines, well past bufio.Scanner's default limit.
const maxLineSize = 1024 * 1024

// LeafGroup collects every stack line that ends in the same leaf frame,
// along with the sum of their sample counts.
type LeafGroup struct {
	Samples uint64
	Stacks  []string
}

// Leaf returns the group's leaf frame, read from the first stack added.
func (g *LeafGroup) Leaf() string {
	if len(g.Stacks) == 0 {
		return ""
	}

	return folded.LeafFrame(g.Stacks[0])
}

// StackMap indexes leaf groups by their leaf frame.
type StackMap map[string]*LeafGroup

// BuildStackMap groups the folded stack lines read from r by leaf frame.
// Blank lines are skipped, and lines within a group keep their input
// order.
func BuildStackMap(r io.Reader) (StackMap, error) {
	stacks := make(StackMap)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		leaf := folded.LeafFrame(line)
		group, ok := stacks[leaf]
		if !ok {
			group = new(LeafGroup)
			stacks[leaf] = group
		}
		group.Samples += folded.SampleCount(line)
		group.Stacks = append(group.Stacks, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading folded stacks")
	}

	return stacks, nil
}

// TotalSamples sums the sample counts over all leaf groups.
func (m StackMap) TotalSamples() uint64 {
	var total uint64
	for _, group := range m {
		total += group.Samples
	}

	return total
}

// SortedLeaves returns the leaf frames in lexicographic order.
func (m StackMap) SortedLeaves() []string {
	leaves := make([]string, 0, len(m))
	for leaf := range m {
		leaves = append(leaves, leaf)
	}
	sort.Strings(leaves)

	return leaves
}

// Lines flattens the map back into stack lines: groups ordered by leaf
// frame, lines within a group in input order.
func (m StackMap) Lines() []string {
	lines := make([]string, 0, len(m))
	for _, leaf := range m.SortedLeaves() {
		lines = append(lines, m[leaf].Stacks...)
	}

	return lines
}
