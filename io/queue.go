package io

const (
	// QUEUE_DEFAULT_CAPACITY is the initial capacity in words of a new queue.
	QUEUE_DEFAULT_CAPACITY = 16
)

// Queue is a growable circular FIFO of words. A *Queue is the handle shared
// between the CPUs of a pipeline, ring or network.
type Queue struct {
	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []int64

	closed bool
}

var _ Device = (*Queue)(nil)

// NewQueue creates a queue holding values.
func NewQueue(values ...int64) (queue *Queue) {
	queue = &Queue{}
	for _, value := range values {
		queue.Push(value)
	}

	return
}

// Len returns the number of queued words.
func (queue *Queue) Len() int {
	return queue.Size
}

// Empty returns true if no words are queued.
func (queue *Queue) Empty() bool {
	return queue.Size == 0
}

// Closed returns true if the queue has been closed.
func (queue *Queue) Closed() bool {
	return queue.closed
}

// Close marks the queue as closed. Queued words can still be popped.
func (queue *Queue) Close() {
	queue.closed = true
}

// grow doubles the capacity of the queue, unwrapping the ring.
func (queue *Queue) grow() {
	capacity := len(queue.Data) * 2
	if capacity == 0 {
		capacity = QUEUE_DEFAULT_CAPACITY
	}

	data := make([]int64, capacity)
	for n := range queue.Size {
		data[n] = queue.Data[(queue.ReadIndex+n)%len(queue.Data)]
	}

	queue.Data = data
	queue.ReadIndex = 0
	queue.WriteIndex = queue.Size
}

// Push appends value to the end of the queue.
func (queue *Queue) Push(value int64) {
	if queue.Size == len(queue.Data) {
		queue.grow()
	}

	queue.Data[queue.WriteIndex] = value

	queue.WriteIndex++
	if queue.WriteIndex == len(queue.Data) {
		queue.WriteIndex = 0
	}
	queue.Size++
}

// Peek returns the word at the front of the queue without removing it.
func (queue *Queue) Peek() (value int64, ok bool) {
	if queue.Size == 0 {
		return
	}

	return queue.Data[queue.ReadIndex], true
}

// Pop removes and returns the word at the front of the queue.
// Returns ErrQueueEmpty, or ErrQueueClosed if closed, when there is nothing
// to pop.
func (queue *Queue) Pop() (value int64, err error) {
	if queue.Size == 0 {
		if queue.closed {
			err = ErrQueueClosed
		} else {
			err = ErrQueueEmpty
		}
		return
	}

	value = queue.Data[queue.ReadIndex]
	queue.ReadIndex++
	if queue.ReadIndex == len(queue.Data) {
		queue.ReadIndex = 0
	}
	queue.Size--

	return
}

// Drain removes and returns all queued words.
func (queue *Queue) Drain() (values []int64) {
	for queue.Size > 0 {
		value, _ := queue.Pop()
		values = append(values, value)
	}

	return
}

// Input pops the front of the queue.
func (queue *Queue) Input() (int64, error) {
	return queue.Pop()
}

// Output pushes value onto the queue.
func (queue *Queue) Output(value int64) {
	queue.Push(value)
}
