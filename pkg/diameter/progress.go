package diameter

// Stage identifies a phase of the diameter computation.
type Stage int

const (
	// StageStrip is the leaf peeling pass. One event per stripped node.
	StageStrip Stage = iota
	// StageRoots is the per-component root search. One event per core
	// component.
	StageRoots
	// StageSearch is the bounded origin search. One event per origin.
	StageSearch
)

// String returns the stage name used in logs and progress views.
func (s Stage) String() string {
	switch s {
	case StageStrip:
		return "strip"
	case StageRoots:
		return "roots"
	case StageSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Event describes one unit of progress.
type Event struct {
	Stage   Stage
	Node    int // node just processed
	Done    int // units completed in this stage
	Total   int // best known total for this stage, 0 if unknown
	Longest int // longest path found so far
}

// Progress receives events while the engine runs. Events are delivered from
// a single goroutine, in order. Implementations should return quickly;
// throttling is up to the receiver.
type Progress interface {
	Report(ev Event)
}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func(ev Event)

// Report calls f(ev).
func (f ProgressFunc) Report(ev Event) { f(ev) }

type noopProgress struct{}

func (noopProgress) Report(Event) {}
