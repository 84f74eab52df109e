// Package queue provides the two work containers used by graph traversals.
//
// # Heap
//
// [Heap] is an unordered bag of node ids. It does not maintain heap order;
// instead each extraction scans the bag with a caller-supplied key function.
// That keeps Push at amortized O(1) and lets the caller change keys freely
// between extractions, which is what a distance array does while a search
// is running:
//
//	var h queue.Heap
//	h.Push(origin)
//	for {
//	    u, ok := h.ExtractNext(lower, func(v int) (int, bool) {
//	        return dist[v], dist[v] >= 0
//	    })
//	    if !ok {
//	        break
//	    }
//	    // ...
//	}
//
// [Heap.ExtractMin] returns the element with the smallest defined key.
// [Heap.ExtractNext] takes a lower bound: the first element found (scanning
// from the most recently pushed end) whose key equals the bound is returned
// without completing the scan. Elements whose key is undefined are kept.
//
// Extraction is O(len) in the worst case. Removal swaps the chosen element
// with the last one, so the relative order of the remaining elements is not
// preserved.
//
// # Frontier
//
// [Frontier] is a FIFO queue built from two slices. Pushes go to the future
// buffer and pops come from the end of the current buffer; when the current
// buffer runs dry the two are swapped. Within one batch, elements come out
// in reverse push order, but every element pushed before a swap comes out
// before any element pushed after it. Breadth-first search only needs that
// level ordering, and the container never shifts or reallocates its backing
// arrays once they have grown.
package queue
