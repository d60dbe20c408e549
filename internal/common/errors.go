// Package common defines the sentinel errors and error kinds shared by the
// record store, its backends and the CLI. Callers should use errors.Is to
// match the sentinels and KindOf to decide whether an operation may be
// attempted again.
package common

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors.
	ErrSheetNotFound      = errors.New("sheet not found")
	ErrColumnAbsent       = errors.New("required column absent")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Selection errors.
	ErrNotFound  = errors.New("not found")
	ErrAmbiguous = errors.New("ambiguous selection")

	// Transient errors.
	ErrUnavailable = errors.New("store unavailable")
	ErrSaveFailed  = errors.New("save failed")
)

// Kind classifies a failure by how the caller is expected to react.
type Kind int

const (
	// KindUnknown is reported for errors that carry no classification.
	KindUnknown Kind = iota
	// KindConfig marks a configuration defect. Retrying will not help.
	KindConfig
	// KindTransient marks a network or write failure. The same operation may
	// be attempted again with the same in-memory state.
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Error attaches an operation name and a Kind to an underlying error.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ConfigError wraps err as a configuration failure of op.
func ConfigError(op string, err error) error {
	return &Error{Op: op, Kind: KindConfig, Err: err}
}

// TransientError wraps err as a recoverable failure of op.
func TransientError(op string, err error) error {
	return &Error{Op: op, Kind: KindTransient, Err: err}
}

// KindOf returns the Kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
