// Package domain defines core types, interfaces, and errors for the
// match consolidation pipeline.
package domain

import (
	"fmt"
	"strings"
)

// MissingColumnsError indicates required canonical columns are absent
// from a table.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// TypeMismatchError indicates a canonical column is present but carries
// the wrong type.
type TypeMismatchError struct {
	// Details holds one "Column: got X, want Y" entry per offending column.
	Details []string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column types do not match schema: %s", strings.Join(e.Details, "; "))
}

// UnexpectedColumnsError indicates non-canonical columns were found while
// extras are not tolerated.
type UnexpectedColumnsError struct {
	Columns []string
}

func (e *UnexpectedColumnsError) Error() string {
	return fmt.Sprintf("unexpected columns: %s", strings.Join(e.Columns, ", "))
}

// MissingKeyError indicates a delta batch lacks the primary-key column.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("delta is missing the key column %q", e.Key)
}

// ErrMissingColumns creates a MissingColumnsError for the given columns.
func ErrMissingColumns(columns ...string) *MissingColumnsError {
	return &MissingColumnsError{Columns: columns}
}

// ErrTypeMismatch creates a TypeMismatchError from per-column detail strings.
func ErrTypeMismatch(details ...string) *TypeMismatchError {
	return &TypeMismatchError{Details: details}
}

// ErrUnexpectedColumns creates an UnexpectedColumnsError for the given columns.
func ErrUnexpectedColumns(columns ...string) *UnexpectedColumnsError {
	return &UnexpectedColumnsError{Columns: columns}
}

// ErrMissingKey creates a MissingKeyError for the given key column.
func ErrMissingKey(key string) *MissingKeyError {
	return &MissingKeyError{Key: key}
}
