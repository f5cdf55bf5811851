package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nilsdeppe/FlameGraphFilter/internal/settings"
	"github.com/nilsdeppe/FlameGraphFilter/internal/version"
	"github.com/nilsdeppe/FlameGraphFilter/pkg/cmd/options"
	statscmd "github.com/nilsdeppe/FlameGraphFilter/pkg/cmd/stats"
	"github.com/nilsdeppe/FlameGraphFilter/pkg/filter"
)

const (
	outputFlag     = "output"
	cutoffFlag     = "cutoff-percentage"
	stackLimitFlag = "stack-limit"
	showFlag       = "show"
	logLevelFlag   = "log-level"

	defaultCutoff = 0.5
	logLevelInfo  = "info"
)

type Options struct {
	output           string
	cutoffPercentage float64
	stackLimit       uint
	showPatterns     []string

	*options.CommonOptions
}

func NewRootCmd(opts *options.CommonOptions) *cobra.Command {
	o := &Options{CommonOptions: opts}

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <input-file>", settings.CmdName),
		Short: fmt.Sprintf("%s reduces a folded stack profile to the stacks that matter", settings.CmdName),
		Long: fmt.Sprintf(`%s filters folded stack samples, as produced by the stackcollapse scripts,
down to the stacks worth plotting. Stack lines are grouped by their leaf frame,
groups whose share of the total samples does not exceed the cutoff percentage
are dropped, and the surviving stacks can be trimmed to their leaf-most frames.

The input file may be gzip-compressed (".gz" suffix), and "-" reads from
standard input or writes to standard output.`, settings.CmdName),
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		Version:           version.Version,
		RunE:              o.Run,
	}

	cmd.Flags().StringVarP(&o.output, outputFlag, "o", "", `Path to write the filtered stacks to ("-" for standard output)`)
	cmd.Flags().Float64Var(&o.cutoffPercentage, cutoffFlag, defaultCutoff, "Drop leaf groups whose share of total samples does not exceed this percentage")
	cmd.Flags().UintVar(&o.stackLimit, stackLimitFlag, 0, "Keep at most this many leaf-most frames per stack (0 keeps whole stacks)")
	cmd.Flags().StringArrayVar(&o.showPatterns, showFlag, nil, "Show only leaf groups whose leaf frame fully matches this regex (repeatable, default shows all)")

	cmd.PersistentFlags().StringVar(&o.LogLevel, logLevelFlag, logLevelInfo, "Log level (trace, debug, info, warn, error, fatal, panic)")

	cmd.AddCommand(statscmd.NewCommand(opts))

	viper.SetEnvPrefix(settings.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

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

	f := filter.NewStackFilter(
		filter.WithInputPath(args[0]),
		filter.WithOutputPath(viper.GetString(outputFlag)),
		filter.WithCutoffPercentage(viper.GetFloat64(cutoffFlag)),
		filter.WithStackLimit(viper.GetUint(stackLimitFlag)),
		filter.WithShowPatterns(o.showPatterns...),
		filter.WithLogger(&o.Logger),
	)
	if err := f.Init(); err != nil {
		return errors.Wrap(err, "failed to init stack filter")
	}
	if err := f.Run(o.Ctx); err != nil {
		return errors.Wrap(err, "failed to filter stacks")
	}

	return nil
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	logger := log.New(log.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	go func() {
		<-ctx.Done()
		cancel()
	}()

	opts := options.NewCommonOptions(
		options.WithContext(ctx),
		options.WithLogger(logger),
	)

	if err := NewRootCmd(opts).Execute(); err != nil {
		os.Exit(1)
	}
}
