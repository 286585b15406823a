package emulator

import (
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// Result of a network run.
type Result struct {
	FirstY    int64 // First Y value received by the monitor.
	RepeatedY int64 // First Y value injected by the monitor twice in a row. A Y seen earlier, but not in the previous injection, does not count.
}

// Network is a packet network of CPUs running copies of one program. Every
// node is stepped one instruction per tick, in address order. The monitor
// address is not a node: it holds the most recent packet sent to it, and
// injects that packet into node 0 whenever the network goes idle.
type Network struct {
	Verbose bool // If set, enables verbose logging.

	Size    int   // Number of nodes.
	Monitor int64 // Monitor address.
	Idle    int   // Consecutive empty reads per node before the network is idle.
	Limit   int   // Maximum ticks, or 0 for no limit.

	Router     *io.Router
	Nodes      []*Emulator
	Nics       []*io.Nic
	Ticks      int // Ticks completed.
	Injections int // Monitor injections.

	first    bool      // Set once the monitor has received a packet.
	firstY   int64     // Y of the first monitor packet.
	held     io.Packet // Most recent monitor packet.
	injected bool      // Set once the monitor has injected a packet.
	lastY    int64     // Y of the last injected packet.
}

// NewNetwork creates a network of size nodes with the default monitor
// address and idle threshold.
func NewNetwork(program cpu.Program, size int) (net *Network) {
	net = &Network{
		Size:    size,
		Monitor: NETWORK_MONITOR,
		Idle:    NETWORK_IDLE,
		Router:  io.NewRouter(),
	}

	for n := range size {
		nic := net.Router.Nic(int64(n))
		emu := NewEmulator(program, nic)
		emu.Node = n

		net.Nics = append(net.Nics, nic)
		net.Nodes = append(net.Nodes, emu)
	}

	return
}

// Tick steps every live node by one instruction, then collects any packets
// sent to the monitor.
func (net *Network) Tick() (err error) {
	net.Router.Verbose = net.Verbose

	for _, emu := range net.Nodes {
		if emu.Done() {
			continue
		}

		emu.Verbose = net.Verbose
		_, err = emu.Tick()
		if err != nil {
			return
		}
	}

	net.Ticks++

	packets := net.Router.Receive(net.Monitor)
	if len(packets) == 0 {
		return
	}

	if !net.first {
		net.first = true
		net.firstY = packets[0].Y
		if net.Verbose {
			log.Printf("network: tick %d, first monitor packet (%d, %d)", net.Ticks, packets[0].X, packets[0].Y)
		}
	}
	net.held = packets[len(packets)-1]

	return
}

// Quiet returns true if every node queue is empty, and every live node has
// read at least Idle consecutive empty inputs.
func (net *Network) Quiet() bool {
	for n, nic := range net.Nics {
		if !net.Router.Queue(int64(n)).Empty() {
			return false
		}
		if net.Nodes[n].Done() {
			continue
		}
		if nic.Idle < net.Idle {
			return false
		}
	}

	return true
}

// Live returns the number of nodes that have not halted or failed.
func (net *Network) Live() (count int) {
	for _, emu := range net.Nodes {
		if !emu.Done() {
			count++
		}
	}

	return
}

// inject sends the held monitor packet to node 0. Returns true if its Y
// value repeats the previous injection.
func (net *Network) inject() (repeated bool, err error) {
	if !net.first {
		err = ErrMonitorEmpty
		return
	}

	packet := io.Packet{Dest: 0, X: net.held.X, Y: net.held.Y}
	if net.Verbose {
		log.Printf("network: tick %d, idle, monitor injects (%d, %d)", net.Ticks, packet.X, packet.Y)
	}

	repeated = net.injected && net.lastY == packet.Y
	net.injected = true
	net.lastY = packet.Y
	net.Injections++

	net.Router.Send(packet)

	return
}

// Run ticks the network until the monitor injects the same Y value into
// node 0 twice in a row.
func (net *Network) Run() (result Result, err error) {
	for {
		if net.Limit > 0 && net.Ticks >= net.Limit {
			err = ErrTickLimit
			return
		}

		if net.Live() == 0 {
			err = ErrStalled
			return
		}

		err = net.Tick()
		if err != nil {
			return
		}

		if !net.Quiet() {
			continue
		}

		var repeated bool
		repeated, err = net.inject()
		if err != nil {
			return
		}

		if repeated {
			result = Result{FirstY: net.firstY, RepeatedY: net.lastY}
			return
		}
	}
}
