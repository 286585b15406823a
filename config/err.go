package config

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNoProgram       = errors.New(f("no program"))
	ErrProgramConflict = errors.New(f("more than one program"))
	ErrMode            = errors.New(f("unknown mode"))
	ErrNetworkSize     = errors.New(f("network size must be positive"))
	ErrNetworkMonitor  = errors.New(f("network monitor must not be a node address"))
	ErrNetworkIdle     = errors.New(f("network idle must be positive"))
	ErrNetworkLimit    = errors.New(f("network limit must not be negative"))
)

// ErrUnknownKey is a profile key that is not understood.
type ErrUnknownKey string

func (err ErrUnknownKey) Error() string {
	return f("unknown key %v", string(err))
}

// ErrProfile indicates the profile that failed to load.
type ErrProfile struct {
	Path string
	Err  error
}

func (err *ErrProfile) Error() string {
	return f("profile %v: %v", err.Path, err.Err)
}

func (err *ErrProfile) Unwrap() error {
	return err.Err
}
