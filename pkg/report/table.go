package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/nilsdeppe/FlameGraphFilter/internal/output"
)

const shareBarWidth = 20

// RenderTable writes the report as a terminal table, one row per leaf
// group, with the share column colored by whether the group survives the
// cutoff.
func (r *Report) RenderTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Leaf frame", "Stacks", "Samples", "Share", ""})
	table.SetBorder(false)
	table.SetColWidth(output.TermWidth() / 2)

	for _, group := range r.Groups {
		share := fmt.Sprintf("%.2f%%", group.Share*100)
		if group.Kept {
			share = color.GreenString(share)
		} else {
			share = color.RedString(share)
		}
		table.Append([]string{
			group.Leaf,
			humanize.Comma(int64(group.Stacks)),
			humanize.Comma(int64(group.Samples)),
			share,
			output.ProgressBar(int(group.Share*100), shareBarWidth),
		})
	}
	table.Render()

	fmt.Fprintf(w, "\n%s samples across %s stacks in %s leaf groups\n",
		humanize.Comma(int64(r.TotalSamples)),
		humanize.Comma(int64(r.TotalStacks)),
		humanize.Comma(int64(r.TotalGroups)),
	)
}
