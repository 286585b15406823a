package emulator

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrStalled      = errors.New(f("no node can make progress"))
	ErrSilent       = errors.New(f("last node produced no output"))
	ErrMonitorEmpty = errors.New(f("network idle with no packet at the monitor"))
	ErrTickLimit    = errors.New(f("tick limit exceeded"))
	ErrPhases       = errors.New(f("no phases"))
)

// ErrRuntime indicates the node, and the source line if known, of a runtime
// error.
type ErrRuntime struct {
	Node   int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("node %d line %d %v", err.Node, err.LineNo, err.Err)
	}
	return f("node %d %v", err.Node, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
