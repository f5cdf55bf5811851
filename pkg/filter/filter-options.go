package filter

import (
	log "github.com/rs/zerolog"
)

type StackFilterOptions struct {
	inputPath  string
	outputPath string

	cutoffPercentage float64
	stackLimit       uint

	showPatterns []string

	logger *log.Logger
}

type StackFilterOption func(*StackFilter)

func WithInputPath(path string) StackFilterOption {
	return func(o *StackFilter) {
		o.inputPath = path
	}
}

func WithOutputPath(path string) StackFilterOption {
	return func(o *StackFilter) {
		o.outputPath = path
	}
}

func WithCutoffPercentage(cutoff float64) StackFilterOption {
	return func(o *StackFilter) {
		o.cutoffPercentage = cutoff
	}
}

func WithStackLimit(limit uint) StackFilterOption {
	return func(o *StackFilter) {
		o.stackLimit = limit
	}
}

func WithShowPatterns(patterns ...string) StackFilterOption {
	return func(o *StackFilter) {
		o.showPatterns = patterns
	}
}

func WithLogger(logger *log.Logger) StackFilterOption {
	return func(o *StackFilter) {
		o.logger = logger
	}
}
