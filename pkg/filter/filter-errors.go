package filter

import (
	"github.com/pkg/errors"
)

var (
	ErrInputPathEmpty  = errors.New("input path is empty")
	ErrOutputPathEmpty = errors.New("output path is empty")
	ErrNoSamples       = errors.New("no samples found in input")
)
