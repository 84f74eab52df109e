package search

// Unreached marks a node that the search did not reach.
const Unreached = -1

// Distances holds the distance from one origin to every node, or Unreached.
type Distances []int

func newDistances(n int) Distances {
	d := make(Distances, n)
	for i := range d {
		d[i] = Unreached
	}
	return d
}

// Reached reports whether v was reached. Out-of-range ids are unreached.
func (d Distances) Reached(v int) bool {
	return v >= 0 && v < len(d) && d[v] != Unreached
}

// Max returns the largest finite distance. It returns false when no node was
// reached.
func (d Distances) Max() (int, bool) {
	best, found := 0, false
	for _, x := range d {
		if x != Unreached && (!found || x > best) {
			best, found = x, true
		}
	}
	return best, found
}

// Count returns the number of reached nodes, including the origin.
func (d Distances) Count() int {
	n := 0
	for _, x := range d {
		if x != Unreached {
			n++
		}
	}
	return n
}

// Farthest returns the reached node with the largest distance, preferring
// the lowest id on ties. It returns false when no node was reached.
func (d Distances) Farthest() (int, bool) {
	best := -1
	for v, x := range d {
		if x != Unreached && (best < 0 || x > d[best]) {
			best = v
		}
	}
	return best, best >= 0
}
