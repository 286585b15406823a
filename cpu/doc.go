// Package cpu implements the Intcode virtual machine.
//
// An Intcode program is a flat array of signed 64-bit integers which is also
// the machine's memory. The CPU state is the instruction pointer (IP), the
// relative base used by relative-mode parameters, and the memory itself.
// Memory reads past the end return zero, and writes past the end grow the
// memory.
//
// Each instruction word encodes the operation in its two least significant
// decimal digits, and the addressing mode of each parameter in the digits
// above them (hundreds for the first parameter, thousands for the second, and
// so on).
//
// Input and output are delegated to a Device, so that the same CPU can be
// driven from a fixed vector, a queue shared with other CPUs, a network
// router, or an interactive console. Execute and Cpu.Tick step exactly one
// instruction, letting external schedulers interleave many CPUs.
package cpu
