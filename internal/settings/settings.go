package settings

const (
	CmdName = "flamegraph-filter"

	// EnvPrefix is the prefix for environment variable overrides of the
	// command line flags, e.g. FLAMEGRAPH_FILTER_CUTOFF_PERCENTAGE.
	EnvPrefix = "FLAMEGRAPH_FILTER"
)
