package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Read(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory([]int64{1, 2, 3, 4})
	assert.Equal(int64(3), mem.Read(2))
	assert.Equal(int64(0), mem.Read(119))
	assert.Equal(int64(0), mem.Read(-1))
	assert.Equal(4, mem.Len())
}

func TestMemory_Write(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory([]int64{1, 2})
	assert.NoError(mem.Write(1, 7))
	assert.Equal([]int64{1, 7}, mem.Data())

	assert.NoError(mem.Write(5, 9))
	assert.Equal([]int64{1, 7, 0, 0, 0, 9}, mem.Data())

	assert.ErrorIs(mem.Write(-1, 1), ErrAddress)
	assert.ErrorIs(mem.Write(MEMORY_LIMIT, 1), ErrAddress)
	assert.Equal(6, mem.Len())
}

func TestMemory_Private(t *testing.T) {
	assert := assert.New(t)

	program := []int64{1, 2, 3}
	mem := NewMemory(program)
	assert.NoError(mem.Write(0, 100))
	assert.Equal(int64(1), program[0])

	dup := mem.Clone()
	assert.NoError(dup.Write(1, 200))
	assert.Equal(int64(2), mem.Read(1))
	assert.Equal(int64(200), dup.Read(1))
}

func TestMemory_Param(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory([]int64{10, 20, 30, 40})

	table := []struct {
		name  string
		param Param
		base  int64
		value int64
	}{
		{"position", Param{MODE_POSITION, 2}, 0, 30},
		{"position_base", Param{MODE_POSITION, 2}, 1, 30},
		{"immediate", Param{MODE_IMMEDIATE, 2}, 1, 2},
		{"relative", Param{MODE_RELATIVE, 2}, 1, 40},
		{"relative_negative", Param{MODE_RELATIVE, -1}, 1, 10},
		{"relative_beyond", Param{MODE_RELATIVE, 5}, 10, 0},
	}

	for _, entry := range table {
		assert.Equal(entry.value, mem.ReadParam(entry.param, entry.base), entry.name)
	}
}

func TestMemory_WriteParam(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory([]int64{0, 0, 0})

	assert.NoError(mem.WriteParam(Param{MODE_POSITION, 0}, 5, 10))
	assert.NoError(mem.WriteParam(Param{MODE_RELATIVE, -8}, 6, 10))
	assert.Equal([]int64{5, 0, 6}, mem.Data())

	err := mem.WriteParam(Param{MODE_IMMEDIATE, 1}, 7, 0)
	assert.ErrorIs(err, ErrWriteImmediate)

	err = mem.WriteParam(Param{MODE_RELATIVE, -11}, 7, 10)
	assert.ErrorIs(err, ErrAddress)
	assert.Equal([]int64{5, 0, 6}, mem.Data())
}
