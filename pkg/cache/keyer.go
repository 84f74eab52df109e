package cache

// StatsKeyOpts lists the options that change computed statistics.
type StatsKeyOpts struct {
	Format    string `json:"format"`
	Capacity  int    `json:"capacity"`
	NodeLimit int    `json:"node_limit"`
	Directed  bool   `json:"directed"`
	Limit     int    `json:"limit"`
	Method    string `json:"method"`
}

// RenderKeyOpts lists the options that change rendered output.
type RenderKeyOpts struct {
	StatsKeyOpts
	Output   string `json:"output"`
	Weights  bool   `json:"weights"`
	MaxNodes int    `json:"max_nodes"`
}

// Keyer derives cache keys.
type Keyer interface {
	// StatsKey returns the key for statistics of the edge list with the
	// given content hash.
	StatsKey(dataHash string, opts StatsKeyOpts) string

	// RenderKey returns the key for a rendering of the edge list.
	RenderKey(dataHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes the content hash and options into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// StatsKey returns "stats:<sha256>".
func (DefaultKeyer) StatsKey(dataHash string, opts StatsKeyOpts) string {
	return digestKey(KeyTypeStats, dataHash, opts)
}

// RenderKey returns "render:<sha256>".
func (DefaultKeyer) RenderKey(dataHash string, opts RenderKeyOpts) string {
	return digestKey(KeyTypeRender, dataHash, opts)
}
