package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector_Input(t *testing.T) {
	assert := assert.New(t)

	vec := NewVector(1, 2)

	value, err := vec.Input()
	assert.NoError(err)
	assert.Equal(int64(1), value)

	value, err = vec.Input()
	assert.NoError(err)
	assert.Equal(int64(2), value)

	_, err = vec.Input()
	assert.ErrorIs(err, ErrInputExhausted)
}

func TestVector_Input_Empty(t *testing.T) {
	assert := assert.New(t)

	vec := &Vector{}
	value, err := vec.Input()
	assert.ErrorIs(err, ErrInputExhausted)
	assert.Equal(int64(0), value)
}

func TestVector_Output(t *testing.T) {
	assert := assert.New(t)

	vec := &Vector{}
	_, ok := vec.Last()
	assert.False(ok)

	vec.Output(7)
	vec.Output(-3)

	assert.Equal([]int64{7, -3}, vec.Outputs)
	last, ok := vec.Last()
	assert.True(ok)
	assert.Equal(int64(-3), last)
}

func TestFuncs(t *testing.T) {
	assert := assert.New(t)

	var got []int64
	dev := &Funcs{
		In:  func() (int64, error) { return 42, nil },
		Out: func(value int64) { got = append(got, value) },
	}

	value, err := dev.Input()
	assert.NoError(err)
	assert.Equal(int64(42), value)

	dev.Output(1)
	assert.Equal([]int64{1}, got)

	empty := &Funcs{}
	_, err = empty.Input()
	assert.ErrorIs(err, ErrInputExhausted)
	empty.Output(5)
}
