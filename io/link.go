package io

// Link is a Device joining two queues, as one stage of a pipeline or ring of
// CPUs. Inputs are popped from In, and outputs pushed to Out.
type Link struct {
	In  *Queue
	Out *Queue

	Last  int64 // Most recent output.
	Count int   // Number of outputs.
}

var _ Device = (*Link)(nil)

// Ready returns true if an input is available.
func (link *Link) Ready() bool {
	return !link.In.Empty()
}

// Input pops the next value from In.
func (link *Link) Input() (int64, error) {
	return link.In.Pop()
}

// Output pushes value to Out, and records it.
func (link *Link) Output(value int64) {
	link.Last = value
	link.Count++
	if link.Out != nil {
		link.Out.Push(value)
	}
}
