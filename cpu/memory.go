package cpu

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

const (
	MEMORY_LIMIT = 1 << 24 // Maximum addressable memory, in words.
)

var _cpu_defines = map[string]string{
	"MEMORY_LIMIT": fmt.Sprintf("%v", MEMORY_LIMIT),
}

// Defines returns an iterator over the assembler defines of the CPU.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Memory is the auto-growing program memory of a CPU. Writes past the end
// grow it, but writes at or beyond MEMORY_LIMIT fail with ErrAddress.
type Memory struct {
	data []int64
}

// NewMemory creates a memory holding a copy of program.
func NewMemory(program []int64) (mem *Memory) {
	mem = &Memory{
		data: slices.Clone(program),
	}

	return
}

// Len returns the current size of the backing store.
func (mem *Memory) Len() int {
	return len(mem.data)
}

// Data returns the backing store. The slice is owned by the memory, and is
// only valid until the next write.
func (mem *Memory) Data() []int64 {
	return mem.data
}

// Clone returns an independent copy of the memory.
func (mem *Memory) Clone() *Memory {
	return NewMemory(mem.data)
}

// Read returns the word at addr. Addresses outside of the backing store
// read as zero.
func (mem *Memory) Read(addr int64) (value int64) {
	if addr < 0 || addr >= int64(len(mem.data)) {
		return
	}

	value = mem.data[addr]
	return
}

// Write stores value at addr, zero-filling the memory up to addr if needed.
func (mem *Memory) Write(addr int64, value int64) (err error) {
	if addr < 0 || addr >= MEMORY_LIMIT {
		err = ErrAddress
		return
	}

	if addr >= int64(len(mem.data)) {
		mem.data = append(mem.data, make([]int64, addr+1-int64(len(mem.data)))...)
	}

	mem.data[addr] = value

	return
}

// address resolves the memory address of a positional or relative parameter.
func (param Param) address(base int64) (addr int64, err error) {
	switch param.Mode {
	case MODE_POSITION:
		addr = param.Value
	case MODE_RELATIVE:
		addr = base + param.Value
	case MODE_IMMEDIATE:
		err = ErrWriteImmediate
	default:
		err = ErrMode
	}

	return
}

// ReadParam returns the value of a decoded parameter.
func (mem *Memory) ReadParam(param Param, base int64) (value int64) {
	if param.Mode == MODE_IMMEDIATE {
		return param.Value
	}

	addr, err := param.address(base)
	if err != nil {
		return
	}

	return mem.Read(addr)
}

// WriteParam stores value at the address of a decoded parameter.
// Immediate parameters cannot be written.
func (mem *Memory) WriteParam(param Param, value int64, base int64) (err error) {
	addr, err := param.address(base)
	if err != nil {
		return
	}

	return mem.Write(addr, value)
}
