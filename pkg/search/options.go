package search

// WeightFunc returns the length of the edge u→v. Lengths must be
// non-negative.
type WeightFunc func(u, v int) int

// Option configures a search.
type Option func(*options)

type options struct {
	weight WeightFunc
	filter func(v int) bool
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithWeight sets edge lengths for PrioritySearch. BFS rejects it.
// A nil function keeps unit lengths.
func WithWeight(w WeightFunc) Option {
	return func(o *options) {
		o.weight = w
	}
}

// WithFilter restricts the search to nodes for which keep returns true.
// Filtered nodes are never entered and stay Unreached. The origin is always
// entered.
func WithFilter(keep func(v int) bool) Option {
	return func(o *options) {
		o.filter = keep
	}
}

func (o options) allowed(v int) bool {
	return o.filter == nil || o.filter(v)
}
