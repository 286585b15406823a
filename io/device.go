// Package io provides the I/O capability of the Intcode CPU, and the
// standard adapters that implement it: fixed vectors, FIFO queues shared
// between CPUs, an interactive console tape, and a packet router for CPU
// networks.
package io

import (
	"fmt"
	"iter"
	"maps"
)

var _io_defines = map[string]string{
	"NO_PACKET":        fmt.Sprintf("%v", NO_PACKET),
	"TAPE_ASCII_LIMIT": fmt.Sprintf("%v", TAPE_ASCII_LIMIT),
}

// Defines returns an iterator over the assembler defines of the adapters.
func Defines() iter.Seq2[string, string] {
	return maps.All(_io_defines)
}

// Device is the I/O capability of an Intcode CPU.
type Device interface {
	// Input returns the next input value. If no input is available,
	// Input must return an error rather than a default value.
	Input() (value int64, err error)
	// Output accepts the next output value.
	Output(value int64)
}

// Funcs is a Device built from separate input and output functions.
// A nil In always fails with ErrInputExhausted, and a nil Out discards
// values.
type Funcs struct {
	In  func() (int64, error)
	Out func(value int64)
}

var _ Device = (*Funcs)(nil)

func (fn *Funcs) Input() (value int64, err error) {
	if fn.In == nil {
		err = ErrInputExhausted
		return
	}

	return fn.In()
}

func (fn *Funcs) Output(value int64) {
	if fn.Out == nil {
		return
	}

	fn.Out(value)
}
