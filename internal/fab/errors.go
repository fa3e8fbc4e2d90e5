package fab

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	// ErrMissingColumns is returned when an input lacks a required column.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrEmptyInput is returned when an input has no header row.
	ErrEmptyInput = errors.New("input has no header row")
)

// MissingColumnsError names the required columns absent from an input table.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

// Unwrap lets errors.Is match ErrMissingColumns.
func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}
