package emulator

import (
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

// Ring is a feedback loop of CPUs running copies of one program. Node n
// reads from queue n, and writes to queue n+1; the last node writes back to
// queue 0. Each queue is primed with the phase of its node, and queue 0 is
// also primed with the initial signal 0.
type Ring struct {
	Verbose bool // If set, enables verbose logging.

	Nodes  []*Emulator
	Links  []*io.Link
	Rounds int // Scheduling rounds completed.
}

// NewRing creates a ring with one node per phase.
func NewRing(program cpu.Program, phases []int64) (ring *Ring) {
	ring = &Ring{}

	queues := make([]*io.Queue, len(phases))
	for n, phase := range phases {
		queues[n] = io.NewQueue(phase)
	}

	for n := range phases {
		link := &io.Link{
			In:  queues[n],
			Out: queues[(n+1)%len(queues)],
		}
		emu := NewEmulator(program, link)
		emu.Node = n

		ring.Links = append(ring.Links, link)
		ring.Nodes = append(ring.Nodes, emu)
	}

	if len(queues) > 0 {
		queues[0].Push(0)
	}

	return
}

// Run schedules the nodes round robin until all have halted, and returns
// the last output of the last node. Each node runs until it halts, or needs
// an input that is not yet queued.
func (ring *Ring) Run() (signal int64, err error) {
	if len(ring.Nodes) == 0 {
		err = ErrPhases
		return
	}

	for {
		progress := false
		live := 0

		for n, emu := range ring.Nodes {
			if emu.Halted() {
				continue
			}

			emu.Verbose = ring.Verbose

			var ticks int
			ticks, err = emu.RunUntilInput(ring.Links[n].Ready)
			if err != nil {
				return
			}

			if ticks > 0 {
				progress = true
			}
			if !emu.Halted() {
				live++
			}
		}

		ring.Rounds++

		if ring.Verbose {
			log.Printf("ring: round %d, %d live", ring.Rounds, live)
		}

		if live == 0 {
			break
		}

		if !progress {
			err = ErrStalled
			return
		}
	}

	last := ring.Links[len(ring.Links)-1]
	if last.Count == 0 {
		err = ErrSilent
		return
	}

	signal = last.Last
	return
}

// MaxSignal runs a ring for every ordering of phases, and returns the
// largest signal and the phase ordering that produced it.
func MaxSignal(program cpu.Program, phases []int64) (best int64, order []int64, err error) {
	if len(phases) == 0 {
		err = ErrPhases
		return
	}

	found := false
	for perm := range internal.Permutations(phases) {
		var signal int64
		signal, err = NewRing(program, perm).Run()
		if err != nil {
			return
		}

		if !found || signal > best {
			best = signal
			order = perm
			found = true
		}
	}

	return
}
