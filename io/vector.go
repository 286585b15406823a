package io

// Vector is a Device with a fixed list of inputs, consumed in order, which
// collects all outputs.
type Vector struct {
	Inputs  []int64 // Remaining inputs.
	Outputs []int64 // Collected outputs.
}

var _ Device = (*Vector)(nil)

// NewVector creates a vector device with the given inputs.
func NewVector(inputs ...int64) *Vector {
	return &Vector{Inputs: inputs}
}

// Input consumes the next input. Returns ErrInputExhausted when no inputs
// remain.
func (vec *Vector) Input() (value int64, err error) {
	if len(vec.Inputs) == 0 {
		err = ErrInputExhausted
		return
	}

	value = vec.Inputs[0]
	vec.Inputs = vec.Inputs[1:]

	return
}

// Output appends value to the outputs.
func (vec *Vector) Output(value int64) {
	vec.Outputs = append(vec.Outputs, value)
}

// Last returns the most recent output.
func (vec *Vector) Last() (value int64, ok bool) {
	if len(vec.Outputs) == 0 {
		return
	}

	return vec.Outputs[len(vec.Outputs)-1], true
}
