package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis or MongoDB backend without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "graphstat:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// StatsKey generates a prefixed key for statistics.
func (k *ScopedKeyer) StatsKey(dataHash string, opts StatsKeyOpts) string {
	return k.prefix + k.inner.StatsKey(dataHash, opts)
}

// RenderKey generates a prefixed key for renderings.
func (k *ScopedKeyer) RenderKey(dataHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(dataHash, opts)
}
