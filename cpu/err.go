package cpu

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Decode errors
	ErrOpcode = errors.New(f("invalid opcode"))
	ErrMode   = errors.New(f("invalid parameter mode"))

	// Execution errors
	ErrWriteImmediate = errors.New(f("writing to immediate"))
	ErrAddress        = errors.New(f("address out of range"))
	ErrHalted         = errors.New(f("cpu halted"))

	// Program text errors
	ErrProgramEmpty = errors.New(f("program empty"))
)

// ErrExecute locates a failed instruction.
type ErrExecute struct {
	Ip   int64 // Instruction pointer of the failed instruction.
	Word int64 // Opcode word at Ip.
	Err  error
}

func (err *ErrExecute) Error() string {
	return f("ip %d opcode %d: %v", err.Ip, err.Word, err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}

// ErrParse reports a malformed program token.
type ErrParse struct {
	Index int    // Index of the token in the program text.
	Token string // Offending token.
	Err   error
}

func (err *ErrParse) Error() string {
	return f("token %d '%v' is not a number", err.Index, err.Token)
}

func (err *ErrParse) Unwrap() error {
	return err.Err
}
