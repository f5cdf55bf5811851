package report

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/nilsdeppe/FlameGraphFilter/pkg/filter"
)

// GroupStat describes one leaf group of a profile.
type GroupStat struct {
	Leaf    string  `json:"leaf"`
	Stacks  int     `json:"stacks"`
	Samples uint64  `json:"samples"`
	Share   float64 `json:"share"`
	Kept    bool    `json:"kept"`
}

// Report summarizes a folded stack profile by leaf group, flagging for
// each group whether it would survive the cutoff.
type Report struct {
	TotalSamples     uint64      `json:"total_samples"`
	TotalStacks      int         `json:"total_stacks"`
	TotalGroups      int         `json:"total_groups"`
	CutoffPercentage float64     `json:"cutoff_percentage"`
	Groups           []GroupStat `json:"groups"`

	top int
}

type ReportOption func(*Report)

func NewReport(opts ...ReportOption) *Report {
	report := new(Report)
	for _, opt := range opts {
		opt(report)
	}

	return report
}

func WithReportCutoffPercentage(cutoff float64) ReportOption {
	return func(o *Report) {
		o.CutoffPercentage = cutoff
	}
}

func WithReportTop(top int) ReportOption {
	return func(o *Report) {
		o.top = top
	}
}

// Build computes the per-group statistics from the stack map, ordered by
// descending sample count. The totals always cover the whole profile,
// even when the group list is capped.
func (r *Report) Build(stacks filter.StackMap) {
	total := stacks.TotalSamples()
	r.TotalSamples = total
	r.TotalGroups = len(stacks)
	r.TotalStacks = 0
	r.Groups = make([]GroupStat, 0, len(stacks))

	for leaf, group := range stacks {
		r.TotalStacks += len(group.Stacks)
		stat := GroupStat{
			Leaf:    leaf,
			Stacks:  len(group.Stacks),
			Samples: group.Samples,
		}
		if total > 0 {
			stat.Share = float64(group.Samples) / float64(total)
			stat.Kept = filter.Significant(group.Samples, total, r.CutoffPercentage)
		}
		r.Groups = append(r.Groups, stat)
	}

	sort.Slice(r.Groups, func(i, j int) bool {
		if r.Groups[i].Samples != r.Groups[j].Samples {
			return r.Groups[i].Samples > r.Groups[j].Samples
		}
		return r.Groups[i].Leaf < r.Groups[j].Leaf
	})
	if r.top > 0 && len(r.Groups) > r.top {
		r.Groups = r.Groups[:r.top]
	}
}

// WriteReport writes the report as JSON.
func (r *Report) WriteReport(w io.Writer) error {
	encoder := json.NewEncoder(w)
	return encoder.Encode(r)
}
