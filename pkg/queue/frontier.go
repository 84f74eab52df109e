package queue

// Frontier is a double-buffered FIFO queue of node ids.
// The zero value is an empty frontier ready to use.
type Frontier struct {
	current []int
	future  []int
}

// NewFrontier returns a frontier whose buffers have room for capacity
// elements each.
func NewFrontier(capacity int) *Frontier {
	return &Frontier{
		current: make([]int, 0, capacity),
		future:  make([]int, 0, capacity),
	}
}

// PushBack enqueues v into the future batch.
func (f *Frontier) PushBack(v int) {
	f.future = append(f.future, v)
}

// PopFront dequeues an element. Elements of the current batch come out in
// reverse push order; the future batch becomes current once the current
// batch is exhausted. Returns false when both batches are empty.
func (f *Frontier) PopFront() (int, bool) {
	if len(f.current) == 0 {
		if len(f.future) == 0 {
			return 0, false
		}
		f.current, f.future = f.future, f.current[:0]
	}
	last := len(f.current) - 1
	v := f.current[last]
	f.current = f.current[:last]
	return v, true
}

// Len returns the number of queued elements across both batches.
func (f *Frontier) Len() int {
	return len(f.current) + len(f.future)
}

// Reset empties both batches while keeping the allocated storage.
func (f *Frontier) Reset() {
	f.current = f.current[:0]
	f.future = f.future[:0]
}
