package io

import (
	"errors"
	"log"
	"maps"
	"slices"
)

const (
	// NO_PACKET is the input value supplied to a node with no queued packet.
	NO_PACKET = int64(-1)
)

// Packet is a single (X, Y) message to a network address.
type Packet struct {
	Dest int64
	X    int64
	Y    int64
}

// Router is a keyed routing table of queues, one per network address.
// Queues are created on first use.
type Router struct {
	Verbose bool // Set to enable verbose logging.

	Queues map[int64](*Queue)
	Sent   int // Packets routed.
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{Queues: make(map[int64](*Queue))}
}

// Queue returns the queue for addr, creating it if needed.
func (router *Router) Queue(addr int64) (queue *Queue) {
	if router.Queues == nil {
		router.Queues = make(map[int64](*Queue))
	}

	queue, ok := router.Queues[addr]
	if !ok {
		queue = &Queue{}
		router.Queues[addr] = queue
	}

	return
}

// Addresses returns the known addresses in ascending order.
func (router *Router) Addresses() []int64 {
	return slices.Sorted(maps.Keys(router.Queues))
}

// Send queues a packet for its destination.
func (router *Router) Send(packet Packet) {
	if router.Verbose {
		log.Printf("router: %d <- (%d, %d)", packet.Dest, packet.X, packet.Y)
	}

	queue := router.Queue(packet.Dest)
	queue.Push(packet.X)
	queue.Push(packet.Y)
	router.Sent++
}

// Receive removes all queued packets for addr.
func (router *Router) Receive(addr int64) (packets []Packet) {
	values := router.Queue(addr).Drain()
	for n := 0; n+1 < len(values); n += 2 {
		packets = append(packets, Packet{Dest: addr, X: values[n], Y: values[n+1]})
	}

	return
}

// Nic creates the network interface of the node at addr. The node's first
// input is its own address.
func (router *Router) Nic(addr int64) (nic *Nic) {
	nic = &Nic{
		Addr:   addr,
		Router: router,
	}
	router.Queue(addr).Push(addr)

	return
}

// Nic is the Device of one network node. Input pops the node's queue, or
// supplies NO_PACKET when it is empty. Output assembles (destination, x, y)
// triples into packets.
type Nic struct {
	Addr   int64
	Router *Router

	Idle     int // Consecutive reads that found no packet.
	Received int // Words received.

	pending []int64
}

var _ Device = (*Nic)(nil)

// Input returns the next queued word, or NO_PACKET if the queue is empty.
// A closed queue is an error.
func (nic *Nic) Input() (value int64, err error) {
	value, err = nic.Router.Queue(nic.Addr).Pop()
	if errors.Is(err, ErrQueueEmpty) {
		nic.Idle++
		return NO_PACKET, nil
	}
	if err != nil {
		return
	}

	nic.Idle = 0
	nic.Received++
	return
}

// Output accumulates value into the next outgoing packet.
func (nic *Nic) Output(value int64) {
	nic.pending = append(nic.pending, value)
	if len(nic.pending) < 3 {
		return
	}

	nic.Router.Send(Packet{Dest: nic.pending[0], X: nic.pending[1], Y: nic.pending[2]})
	nic.pending = nic.pending[:0]
}

// Sending returns true if a packet is partially assembled.
func (nic *Nic) Sending() bool {
	return len(nic.pending) != 0
}
