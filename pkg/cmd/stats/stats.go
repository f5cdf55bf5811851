package stats

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nilsdeppe/FlameGraphFilter/pkg/cmd/options"
	"github.com/nilsdeppe/FlameGraphFilter/pkg/filter"
	"github.com/nilsdeppe/FlameGraphFilter/pkg/folded"
	"github.com/nilsdeppe/FlameGraphFilter/pkg/report"
)

const (
	CmdName = "stats"

	cutoffFlag   = "cutoff-percentage"
	topFlag      = "top"
	jsonFlag     = "json"
	logLevelFlag = "log-level"

	defaultCutoff = 0.5
	defaultTop    = 20
)

type Options struct {
	cutoffPercentage float64
	top              int
	json             bool

	*options.CommonOptions
}

func NewCommand(opts *options.CommonOptions) *cobra.Command {
	o := &Options{CommonOptions: opts}

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <input-file>", CmdName),
		Short: "Summarize a folded stack profile by leaf group",
		Long: `Group the folded stacks by leaf frame and report sample counts and shares
per group, largest first, flagging which groups the cutoff would keep. The
input file may be gzip-compressed (".gz" suffix), and "-" reads from standard
input.`,
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE:              o.Run,
	}

	cmd.Flags().Float64Var(&o.cutoffPercentage, cutoffFlag, defaultCutoff, "Cutoff percentage used to flag which leaf groups would be kept")
	cmd.Flags().IntVar(&o.top, topFlag, defaultTop, "Show only this many leaf groups, largest first (0 shows all)")
	cmd.Flags().BoolVar(&o.json, jsonFlag, false, "Write the report as JSON instead of a table")

	return cmd
}

func (o *Options) Run(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}

	logLevel, err := log.ParseLevel(viper.GetString(logLevelFlag))
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	o.Logger = o.Logger.Level(logLevel)

	in, err := folded.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	stacks, err := filter.BuildStackMap(in)
	if err != nil {
		return err
	}
	o.Logger.Debug().
		Int("groups", len(stacks)).
		Str("input", args[0]).
		Msg("grouped folded stacks by leaf frame")

	rep := report.NewReport(
		report.WithReportCutoffPercentage(viper.GetFloat64(cutoffFlag)),
		report.WithReportTop(viper.GetInt(topFlag)),
	)
	rep.Build(stacks)

	if viper.GetBool(jsonFlag) {
		return rep.WriteReport(cmd.OutOrStdout())
	}
	rep.RenderTable(cmd.OutOrStdout())

	return nil
}
