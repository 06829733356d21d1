package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// StorageError reports a failed read or write against the record store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err (or anything it wraps) is a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// wrapErr tags err with the operation that produced it. nil stays nil.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// isNoRows reports whether err means the queried row does not exist.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
