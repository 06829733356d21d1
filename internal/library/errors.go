package library

import (
	"errors"
	"fmt"
)

// ErrNoWords is returned when an import yields no usable entries.
var ErrNoWords = errors.New("no valid words found")

// ParseError reports a file that could not be read in its declared format.
type ParseError struct {
	Format string
	Line   int // 1-based, 0 when unknown
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
