package queue

// KeyFunc returns the priority of v and whether that priority is defined.
// Elements with an undefined key are never extracted.
type KeyFunc func(v int) (key int, ok bool)

// Heap is an unordered multiset of node ids with scan-based extraction.
// The zero value is an empty heap ready to use.
type Heap struct {
	items []int
}

// NewHeap returns a heap with room for capacity elements.
func NewHeap(capacity int) *Heap {
	return &Heap{items: make([]int, 0, capacity)}
}

// Push adds v. Duplicates are allowed.
func (h *Heap) Push(v int) {
	h.items = append(h.items, v)
}

// Len returns the number of stored elements.
func (h *Heap) Len() int {
	return len(h.items)
}

// Reset removes every element while keeping the allocated storage.
func (h *Heap) Reset() {
	h.items = h.items[:0]
}

// ExtractMin removes and returns the element with the smallest defined key.
// Ties go to the first element encountered scanning from the front.
// Returns false if the heap is empty or no element has a defined key; in
// that case nothing is removed.
func (h *Heap) ExtractMin(key KeyFunc) (int, bool) {
	best := -1
	bestKey := 0
	for i, v := range h.items {
		k, ok := key(v)
		if !ok {
			continue
		}
		if best < 0 || k < bestKey {
			best, bestKey = i, k
		}
	}
	if best < 0 {
		return 0, false
	}
	return h.remove(best), true
}

// ExtractNext is ExtractMin with a known lower bound on the keys present.
// The scan starts at the most recently pushed element and stops at the first
// element whose key equals lower. If none does, the element with the
// smallest defined key seen during the scan is returned.
func (h *Heap) ExtractNext(lower int, key KeyFunc) (int, bool) {
	best := -1
	bestKey := 0
	for i := len(h.items) - 1; i >= 0; i-- {
		k, ok := key(h.items[i])
		if !ok {
			continue
		}
		if k == lower {
			return h.remove(i), true
		}
		if best < 0 || k < bestKey {
			best, bestKey = i, k
		}
	}
	if best < 0 {
		return 0, false
	}
	return h.remove(best), true
}

// remove deletes index i by swapping it with the last element.
func (h *Heap) remove(i int) int {
	last := len(h.items) - 1
	v := h.items[i]
	h.items[i] = h.items[last]
	h.items = h.items[:last]
	return v
}
