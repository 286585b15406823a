package cpu

import (
	"fmt"
	"log"

	"github.com/ezrec/intcode/io"
)

// Device is the I/O capability used by the input and output instructions.
type Device io.Device

// State is the execution state of a CPU.
type State int

const (
	STATE_READY   = State(0) // ready
	STATE_RUNNING = State(1) // running
	STATE_HALTED  = State(2) // halted
	STATE_ERRORED = State(3) // errored
)

// Step is the outcome of executing a single instruction.
type Step struct {
	Ip     int64 // Next instruction pointer.
	Base   int64 // Next relative base.
	Halted bool  // Set if the instruction was a halt.
}

// Execute executes the single instruction at ip, using base as the relative
// base and dev for input and output.
func Execute(mem *Memory, ip int64, base int64, dev Device) (step Step, err error) {
	in, err := Decode(mem, ip)
	if err != nil {
		return
	}

	step = Step{Ip: ip + in.Size(), Base: base}

	p := in.Params
	read := func(n int) int64 { return mem.ReadParam(p[n], base) }

	switch in.Op {
	case OP_ADD:
		err = mem.WriteParam(p[2], read(0)+read(1), base)
	case OP_MUL:
		err = mem.WriteParam(p[2], read(0)*read(1), base)
	case OP_IN:
		if p[0].Mode == MODE_IMMEDIATE {
			err = ErrWriteImmediate
			return
		}
		var value int64
		value, err = dev.Input()
		if err != nil {
			return
		}
		err = mem.WriteParam(p[0], value, base)
	case OP_OUT:
		dev.Output(read(0))
	case OP_JNZ:
		if read(0) != 0 {
			step.Ip = read(1)
		}
	case OP_JZ:
		if read(0) == 0 {
			step.Ip = read(1)
		}
	case OP_LT:
		err = mem.WriteParam(p[2], flag(read(0) < read(1)), base)
	case OP_EQ:
		err = mem.WriteParam(p[2], flag(read(0) == read(1)), base)
	case OP_ARB:
		step.Base = base + read(0)
	case OP_HALT:
		step.Halted = true
	}

	if err == nil && step.Ip < 0 {
		err = ErrAddress
	}

	return
}

func flag(cond bool) int64 {
	if cond {
		return 1
	}
	return 0
}

// NeedsInput reports if the instruction at ip is an input instruction,
// without executing it.
func NeedsInput(mem *Memory, ip int64) (ok bool, err error) {
	in, err := Decode(mem, ip)
	if err != nil {
		return
	}

	ok = in.Op == OP_IN
	return
}

// Run executes a copy of program until it halts, and returns the final
// memory contents.
func Run(program []int64, dev Device) (memory []int64, err error) {
	cpu := NewCpu(program)

	err = cpu.Run(dev)
	if err != nil {
		return
	}

	memory = cpu.Memory.Data()
	return
}

// Cpu is the state of a single Intcode virtual machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory *Memory // Program memory, owned by the CPU.
	Ip     int64   // Current instruction pointer.
	Base   int64   // Current relative base.
	State  State   // Execution state.
	Err    error   // Error that moved the CPU to STATE_ERRORED.

	Ticks int // Instructions executed.
}

// NewCpu creates a CPU with a private copy of program.
func NewCpu(program []int64) (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset(program)

	return
}

// Reset reloads the CPU with a copy of program, and clears all state.
func (cpu *Cpu) Reset(program []int64) {
	cpu.Memory = NewMemory(program)
	cpu.Ip = 0
	cpu.Base = 0
	cpu.State = STATE_READY
	cpu.Err = nil
	cpu.Ticks = 0

	if cpu.Verbose {
		log.Printf("cpu: reset, %d words", cpu.Memory.Len())
	}
}

// Clone returns an independent copy of the CPU, including its memory.
func (cpu *Cpu) Clone() *Cpu {
	dup := *cpu
	dup.Memory = cpu.Memory.Clone()
	return &dup
}

// Halted returns true once the CPU has executed a halt instruction.
func (cpu *Cpu) Halted() bool {
	return cpu.State == STATE_HALTED
}

// Done returns true if the CPU can no longer be stepped.
func (cpu *Cpu) Done() bool {
	return cpu.State == STATE_HALTED || cpu.State == STATE_ERRORED
}

// NeedsInput reports if the next instruction is an input instruction.
func (cpu *Cpu) NeedsInput() (ok bool, err error) {
	if cpu.Done() {
		return
	}

	return NeedsInput(cpu.Memory, cpu.Ip)
}

// Instruction decodes the next instruction, without executing it.
func (cpu *Cpu) Instruction() (Instruction, error) {
	return Decode(cpu.Memory, cpu.Ip)
}

// Tick executes a single instruction.
func (cpu *Cpu) Tick(dev Device) (err error) {
	switch cpu.State {
	case STATE_HALTED:
		return ErrHalted
	case STATE_ERRORED:
		return cpu.Err
	}

	if cpu.Verbose {
		in, derr := cpu.Instruction()
		if derr == nil {
			log.Printf("cpu: %04d: %v", cpu.Ip, in)
		}
	}

	step, err := Execute(cpu.Memory, cpu.Ip, cpu.Base, dev)
	if err != nil {
		err = &ErrExecute{Ip: cpu.Ip, Word: cpu.Memory.Read(cpu.Ip), Err: err}
		cpu.State = STATE_ERRORED
		cpu.Err = err
		if cpu.Verbose {
			log.Printf("cpu: %v", err)
		}
		return
	}

	cpu.Ticks++

	if step.Halted {
		if cpu.Verbose {
			log.Printf("cpu: halted at %04d after %d ticks", cpu.Ip, cpu.Ticks)
		}
		cpu.State = STATE_HALTED
	} else {
		cpu.State = STATE_RUNNING
	}

	cpu.Ip = step.Ip
	cpu.Base = step.Base

	return
}

// Run ticks the CPU until it halts or fails.
func (cpu *Cpu) Run(dev Device) (err error) {
	for !cpu.Halted() {
		err = cpu.Tick(dev)
		if err != nil {
			return
		}
	}

	return
}

// RunUntilInput ticks the CPU until it halts, or until the next instruction
// is an input and ready returns false.
func (cpu *Cpu) RunUntilInput(dev Device, ready func() bool) (ticks int, err error) {
	for !cpu.Halted() {
		var need bool
		need, err = cpu.NeedsInput()
		if err != nil {
			err = &ErrExecute{Ip: cpu.Ip, Word: cpu.Memory.Read(cpu.Ip), Err: err}
			cpu.State = STATE_ERRORED
			cpu.Err = err
			return
		}
		if need && !ready() {
			return
		}
		err = cpu.Tick(dev)
		if err != nil {
			return
		}
		ticks++
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("%5s: %v\n", "state", cpu.State)
	text += fmt.Sprintf("%5s: %d\n", "ip", cpu.Ip)
	text += fmt.Sprintf("%5s: %d\n", "base", cpu.Base)
	text += fmt.Sprintf("%5s: %d\n", "ticks", cpu.Ticks)
	text += fmt.Sprintf("%5s: %d\n", "mem", cpu.Memory.Len())

	in, err := cpu.Instruction()
	if err == nil {
		text += fmt.Sprintf("%5s: %v\n", "next", in)
	} else {
		text += fmt.Sprintf("%5s: %v\n", "next", err)
	}

	return
}
