// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives Intcode CPUs: singly, as a feedback ring, or as a
// packet network.
package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/intcode/asm"
	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

const (
	NETWORK_SIZE    = 50  // Default number of network nodes.
	NETWORK_MONITOR = 255 // Default monitor address.
	NETWORK_IDLE    = 50  // Default consecutive empty reads before idle.
)

var _emulator_defines = map[string]string{
	"NETWORK_SIZE":    fmt.Sprintf("%v", NETWORK_SIZE),
	"NETWORK_MONITOR": fmt.Sprintf("%v", NETWORK_MONITOR),
	"NETWORK_IDLE":    fmt.Sprintf("%v", NETWORK_IDLE),
}

// Defines returns an iterator over all of the assembler defines.
func Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		cpu.Defines(),
		io.Defines(),
	)
}

// Emulator state. A single CPU, its device, and an optional listing.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Program  cpu.Program    // Program loaded on Reset.
	Listing  *asm.Assembler // Assembler state of Program, if assembled.
	Device   io.Device      // Device used by the CPU.
	Node     int            // Node index, when part of a ring or network.
}

// NewEmulator creates a new emulator, ready to run program.
func NewEmulator(program cpu.Program, dev io.Device) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(program),
		Program: program,
		Device:  dev,
	}

	return
}

// Reset reloads the program.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(emu.Program)
}

// LineNo returns the source line number of the next instruction, or 0 if
// there is no listing.
func (emu *Emulator) LineNo() int {
	if emu.Listing == nil {
		return 0
	}

	stmt, ok := emu.Listing.Lookup(emu.Cpu.Ip)
	if !ok {
		return 0
	}

	return stmt.LineNo
}

// wrap annotates err with the location of the emulator.
func (emu *Emulator) wrap(err error, lineno int) error {
	if err == nil {
		return nil
	}

	if emu.Verbose {
		log.Printf("emulator: node %d: %v", emu.Node, err)
	}

	return &ErrRuntime{Node: emu.Node, LineNo: lineno, Err: err}
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()

	err = emu.Cpu.Tick(emu.Device)
	if err != nil {
		err = emu.wrap(err, lineno)
		return
	}

	done = emu.Cpu.Halted()
	return
}

// Run ticks the emulator until the program halts.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

// RunUntilInput ticks the emulator until the program halts, or waits on an
// input that ready reports is not available.
func (emu *Emulator) RunUntilInput(ready func() bool) (ticks int, err error) {
	emu.Cpu.Verbose = emu.Verbose

	ticks, err = emu.Cpu.RunUntilInput(emu.Device, ready)
	err = emu.wrap(err, emu.LineNo())

	return
}
