package emulator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/cpu"
)

func mustParse(t *testing.T, text string) cpu.Program {
	prog, err := cpu.ParseProgram(text)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

var ringSamples = []struct {
	name    string
	program string
	phases  []int64
	signal  int64
}{
	{"pass_43210",
		"3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0",
		[]int64{4, 3, 2, 1, 0}, 43210},
	{"pass_54321",
		"3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0",
		[]int64{0, 1, 2, 3, 4}, 54321},
	{"pass_65210",
		"3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0",
		[]int64{1, 0, 4, 3, 2}, 65210},
	{"feedback_139629729",
		"3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5",
		[]int64{9, 8, 7, 6, 5}, 139629729},
	{"feedback_18216",
		"3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10",
		[]int64{9, 7, 8, 5, 6}, 18216},
}

func TestRing(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range ringSamples {
		ring := NewRing(mustParse(t, entry.program), entry.phases)
		assert.Len(ring.Nodes, len(entry.phases), entry.name)

		signal, err := ring.Run()
		assert.NoError(err, entry.name)
		assert.Equal(entry.signal, signal, entry.name)
		for n, emu := range ring.Nodes {
			assert.True(emu.Halted(), entry.name)
			assert.Equal(n, emu.Node, entry.name)
		}
	}
}

func TestRing_Rounds(t *testing.T) {
	assert := assert.New(t)

	single := NewRing(mustParse(t, ringSamples[0].program), ringSamples[0].phases)
	_, err := single.Run()
	assert.NoError(err)
	assert.Equal(1, single.Rounds)

	feedback := NewRing(mustParse(t, ringSamples[3].program), ringSamples[3].phases)
	_, err = feedback.Run()
	assert.NoError(err)
	assert.Greater(feedback.Rounds, 1)
	assert.Greater(feedback.Links[4].Count, 1)
}

func TestRing_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := NewRing(cpu.Program{99}, nil).Run()
	assert.ErrorIs(err, ErrPhases)

	_, err = NewRing(cpu.Program{3, 0, 3, 0, 3, 0, 99}, []int64{0}).Run()
	assert.ErrorIs(err, ErrStalled)

	_, err = NewRing(cpu.Program{99}, []int64{0, 1}).Run()
	assert.ErrorIs(err, ErrSilent)

	_, err = NewRing(cpu.Program{3, 0, 3, 0, 42}, []int64{7, 8}).Run()
	assert.ErrorIs(err, cpu.ErrOpcode)
	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(0, rt.Node)
	}
}

func TestMaxSignal(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range ringSamples {
		phases := []int64{0, 1, 2, 3, 4}
		if entry.phases[0] >= 5 {
			phases = []int64{5, 6, 7, 8, 9}
		}

		best, order, err := MaxSignal(mustParse(t, entry.program), phases)
		assert.NoError(err, entry.name)
		assert.Equal(entry.signal, best, entry.name)
		assert.Equal(entry.phases, order, entry.name)
	}

	_, _, err := MaxSignal(cpu.Program{99}, nil)
	assert.ErrorIs(err, ErrPhases)
}
