package fundwatch

import (
	"fmt"
	"strings"

	"github.com/etnz/fundwatch/date"
)

// MalformedInputError is returned when a snapshot source lacks a required column.
// The snapshot is skipped.
type MalformedInputError struct {
	Source  string   // name of the source, usually the file path
	Missing []string // required columns that could not be found
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed snapshot %q: missing required column(s) %s", e.Source, strings.Join(e.Missing, ", "))
}

// EmptyDataError is returned when a snapshot source parses but holds no usable holding.
type EmptyDataError struct {
	Source string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("empty snapshot %q: no holding with a name", e.Source)
}

// InvalidThresholdError is returned when the fuzzy match threshold is outside [0, 100].
type InvalidThresholdError struct {
	Threshold int
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("invalid fuzzy match threshold %d: must be between 0 and 100", e.Threshold)
}

// UnknownPeriodError is returned when a requested month has no loaded snapshot.
type UnknownPeriodError struct {
	Fund   string
	Period date.Month
}

func (e *UnknownPeriodError) Error() string {
	if e.Fund == "" {
		return fmt.Sprintf("no snapshot loaded for %s", e.Period)
	}
	return fmt.Sprintf("no snapshot loaded for %q in %s", e.Fund, e.Period)
}
