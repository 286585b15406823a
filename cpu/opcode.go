package cpu

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -linecomment -type=Op,Mode,State

// Op is an Intcode operation, the two least significant decimal digits of
// an instruction word.
type Op int

const (
	OP_ADD  = Op(1)  // add
	OP_MUL  = Op(2)  // mul
	OP_IN   = Op(3)  // in
	OP_OUT  = Op(4)  // out
	OP_JNZ  = Op(5)  // jnz
	OP_JZ   = Op(6)  // jz
	OP_LT   = Op(7)  // lt
	OP_EQ   = Op(8)  // eq
	OP_ARB  = Op(9)  // arb
	OP_HALT = Op(99) // hlt
)

var _op_names = map[Op]string{
	OP_ADD:  "add",
	OP_MUL:  "mul",
	OP_IN:   "in",
	OP_OUT:  "out",
	OP_JNZ:  "jnz",
	OP_JZ:   "jz",
	OP_LT:   "lt",
	OP_EQ:   "eq",
	OP_ARB:  "arb",
	OP_HALT: "hlt",
}

var _op_params = map[Op]int{
	OP_ADD:  3,
	OP_MUL:  3,
	OP_IN:   1,
	OP_OUT:  1,
	OP_JNZ:  2,
	OP_JZ:   2,
	OP_LT:   3,
	OP_EQ:   3,
	OP_ARB:  1,
	OP_HALT: 0,
}

// OpByName returns the operation for a mnemonic.
func OpByName(name string) (op Op, ok bool) {
	for op, opname := range _op_names {
		if opname == name {
			return op, true
		}
	}

	return
}

// Valid returns true if op is a known operation.
func (op Op) Valid() bool {
	_, ok := _op_names[op]
	return ok
}

// Params returns the number of parameters the operation takes.
func (op Op) Params() int {
	return _op_params[op]
}

// Writes returns the index of the parameter the operation writes to, or -1.
func (op Op) Writes() int {
	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		return 2
	case OP_IN:
		return 0
	}

	return -1
}

// Mode is a parameter addressing mode.
type Mode int

const (
	MODE_POSITION  = Mode(0) // position
	MODE_IMMEDIATE = Mode(1) // immediate
	MODE_RELATIVE  = Mode(2) // relative
)

// ModeOf extracts the addressing mode of parameter index (0 based) from an
// instruction word.
func ModeOf(word int64, index int) (mode Mode, err error) {
	digits := word / 100
	for range index {
		digits /= 10
	}

	mode = Mode(digits % 10)
	switch mode {
	case MODE_POSITION, MODE_IMMEDIATE, MODE_RELATIVE:
	default:
		err = ErrMode
	}

	return
}

// Param is a decoded instruction parameter.
type Param struct {
	Mode  Mode
	Value int64 // Address, literal, or relative base offset.
}

// String returns the assembler notation of the parameter.
func (param Param) String() string {
	switch param.Mode {
	case MODE_IMMEDIATE:
		return fmt.Sprintf("#%d", param.Value)
	case MODE_RELATIVE:
		return fmt.Sprintf("~%d", param.Value)
	}

	return fmt.Sprintf("[%d]", param.Value)
}

// Instruction is a decoded Intcode instruction.
type Instruction struct {
	Ip     int64 // Address of the instruction word.
	Word   int64 // Raw instruction word.
	Op     Op
	Params []Param
}

// Size returns the number of memory words the instruction occupies.
func (in Instruction) Size() int64 {
	return int64(1 + len(in.Params))
}

// String returns the assembler notation of the instruction.
func (in Instruction) String() string {
	args := make([]string, len(in.Params))
	for n, param := range in.Params {
		args[n] = param.String()
	}

	if len(args) == 0 {
		return in.Op.String()
	}

	return in.Op.String() + " " + strings.Join(args, ", ")
}

// Decode decodes the instruction at ip. Decode does not modify memory.
func Decode(mem *Memory, ip int64) (in Instruction, err error) {
	word := mem.Read(ip)

	in = Instruction{
		Ip:   ip,
		Word: word,
		Op:   Op(word % 100),
	}

	if !in.Op.Valid() {
		err = ErrOpcode
		return
	}

	count := in.Op.Params()
	if count > 0 {
		in.Params = make([]Param, count)
	}
	for n := range count {
		var mode Mode
		mode, err = ModeOf(word, n)
		if err != nil {
			return
		}
		in.Params[n] = Param{Mode: mode, Value: mem.Read(ip + 1 + int64(n))}
	}

	return
}
