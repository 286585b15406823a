package emulator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// Each node reports (addr, addr*10+5) to the monitor, then forwards every
// packet it receives to the monitor.
var networkEcho = []string{
	"        in   [addr]",
	"        mul  [addr], #10, [y]",
	"        add  [y], #5, [y]",
	"        out  #NETWORK_MONITOR",
	"        out  [addr]",
	"        out  [y]",
	"loop:   in   [x]",
	"        eq   [x], #NO_PACKET, [t]",
	"        jnz  [t], #loop",
	"        in   [y]",
	"        out  #NETWORK_MONITOR",
	"        out  [x]",
	"        out  [y]",
	"        jmp  loop",
	"addr:   .data 0",
	"x:      .data 0",
	"y:      .data 0",
	"t:      .data 0",
}

// Each node polls its input forever.
var networkPoll = []string{
	"loop:   in   [x]",
	"        jmp  loop",
	"x:      .data 0",
}

func TestNetwork(t *testing.T) {
	assert := assert.New(t)

	prog, _ := assemble(t, networkEcho)

	net := NewNetwork(prog, 3)
	net.Idle = 5

	result, err := net.Run()
	assert.NoError(err)
	assert.Equal(Result{FirstY: 5, RepeatedY: 25}, result)
	assert.Equal(2, net.Injections)
	assert.Equal(3, net.Live())
	assert.Equal(6, net.Router.Sent)
}

func TestNetwork_Defaults(t *testing.T) {
	assert := assert.New(t)

	net := NewNetwork(cpu.Program{99}, NETWORK_SIZE)
	assert.Equal(50, net.Size)
	assert.Equal(int64(255), net.Monitor)
	assert.Equal(50, net.Idle)
	assert.Equal(0, net.Limit)
	assert.Len(net.Nodes, 50)
	assert.Len(net.Nics, 50)
	assert.Equal(49, net.Nodes[49].Node)
	assert.Equal([]int64{7}, net.Router.Queue(7).Drain())
}

func TestNetwork_Quiet(t *testing.T) {
	assert := assert.New(t)

	prog, _ := assemble(t, networkPoll)

	net := NewNetwork(prog, 2)
	net.Idle = 2
	assert.False(net.Quiet())

	// Boot address reads, then two empty reads per node.
	for range 5 {
		assert.False(net.Quiet())
		assert.NoError(net.Tick())
	}
	assert.True(net.Quiet())
	assert.Equal(2, net.Nics[0].Idle)
	assert.Equal(1, net.Nics[0].Received)

	net.Router.Send(io.Packet{Dest: 1, X: 3, Y: 4})
	assert.False(net.Quiet())
}

func TestNetwork_Errors(t *testing.T) {
	assert := assert.New(t)

	prog, _ := assemble(t, networkPoll)

	net := NewNetwork(prog, 2)
	net.Idle = 3
	_, err := net.Run()
	assert.ErrorIs(err, ErrMonitorEmpty)

	net = NewNetwork(prog, 2)
	net.Limit = 4
	_, err = net.Run()
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(4, net.Ticks)

	_, err = NewNetwork(cpu.Program{99}, 3).Run()
	assert.ErrorIs(err, ErrStalled)

	_, err = NewNetwork(cpu.Program{104, 1, 42}, 2).Run()
	assert.ErrorIs(err, cpu.ErrOpcode)
	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(0, rt.Node)
	}
}
