package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed store operation
type ErrorKind int

const (
	KindUnknown     ErrorKind = iota
	KindConstraint            // the row violates a table constraint
	KindUnavailable           // the store could not be reached or timed out
)

func (k ErrorKind) String() string {
	switch k {
	case KindConstraint:
		return "constraint"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// StoreError is returned by repositories when a write fails
type StoreError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of the first StoreError in err's chain.
func KindOf(err error) ErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
