package diameter

// Weight summarizes the stripped trees hanging below a node.
//
// Deep is the length of the longest chain from the node down into its
// stripped subtrees. Branch is the length of the longest path that lies
// entirely inside those subtrees plus the node itself. The zero value
// describes a node with nothing attached.
type Weight struct {
	Deep   int `json:"deep"`
	Branch int `json:"branch"`
}

// Walk returns w seen from one edge further up: every chain gets one longer.
func (w Weight) Walk() Weight {
	w.Deep++
	return w
}

// Merge combines two weights attached to the same node. Two chains meeting
// at the node form a path of length a.Deep+b.Deep. Merge is associative and
// commutative with the zero Weight as identity.
func (w Weight) Merge(b Weight) Weight {
	return Weight{
		Deep:   max(w.Deep, b.Deep),
		Branch: max(w.Branch, b.Branch, w.Deep+b.Deep),
	}
}

// Max returns the longest path described by w.
func (w Weight) Max() int {
	return max(w.Deep, w.Branch)
}
