package search

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphstat/internal/testgraph"
	"github.com/matzehuels/graphstat/pkg/graph"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

func TestBFSPath(t *testing.T) {
	g := testgraph.Path(5)

	d, err := BFS(g, 0)
	require.NoError(t, err)
	require.Equal(t, Distances{0, 1, 2, 3, 4}, d)

	d, err = BFS(g, 2)
	require.NoError(t, err)
	require.Equal(t, Distances{2, 1, 0, 1, 2}, d)
}

func TestBFSUnreached(t *testing.T) {
	g := graph.New(4, graph.Undirected)
	g.Add(0, 1)
	g.Add(2, 3)

	d, err := BFS(g, 0)
	require.NoError(t, err)
	require.Equal(t, Distances{0, 1, Unreached, Unreached}, d)
	require.False(t, d.Reached(2))
	require.Equal(t, 2, d.Count())
}

func TestInvalidOrigin(t *testing.T) {
	g := testgraph.Path(3)

	for _, origin := range []int{-1, 3} {
		_, err := BFS(g, origin)
		require.True(t, errs.Is(err, errs.ErrCodeInvalidOrigin), "BFS(%d): %v", origin, err)

		_, err = PrioritySearch(g, origin)
		require.True(t, errs.Is(err, errs.ErrCodeInvalidOrigin), "PrioritySearch(%d): %v", origin, err)
	}

	_, err := BFS(graph.New(0, graph.Undirected), 0)
	require.Error(t, err)
}

func TestBFSRejectsWeights(t *testing.T) {
	_, err := BFS(testgraph.Path(2), 0, WithWeight(func(int, int) int { return 2 }))
	require.True(t, errs.Is(err, errs.ErrCodeUnsupported))
}

func TestDirected(t *testing.T) {
	g := graph.New(3, graph.Directed)
	g.Add(0, 1)
	g.Add(1, 2)

	d, err := BFS(g, 2)
	require.NoError(t, err)
	require.Equal(t, Distances{Unreached, Unreached, 0}, d)

	d, err = PrioritySearch(g, 0)
	require.NoError(t, err)
	require.Equal(t, Distances{0, 1, 2}, d)
}

func TestWithFilter(t *testing.T) {
	// 0-1-2-3 plus a shortcut 0-4-3; blocking 4 forces the long way.
	g := testgraph.Path(4)
	g.Push(0, 4)
	g.Push(4, 3)

	keep := func(v int) bool { return v != 4 }

	d, err := BFS(g, 0, WithFilter(keep))
	require.NoError(t, err)
	require.Equal(t, 3, d[3])
	require.False(t, d.Reached(4))

	d, err = PrioritySearch(g, 0, WithFilter(keep))
	require.NoError(t, err)
	require.Equal(t, 3, d[3])
}

func TestPrioritySearchWeighted(t *testing.T) {
	// 0-1 (5), 0-2 (1), 2-1 (1): the two-hop route to 1 is shorter.
	g := graph.New(3, graph.Undirected)
	g.Add(0, 1)
	g.Add(0, 2)
	g.Add(2, 1)
	w := func(u, v int) int {
		if min(u, v) == 0 && max(u, v) == 1 {
			return 5
		}
		return 1
	}

	d, err := PrioritySearch(g, 0, WithWeight(w))
	require.NoError(t, err)
	require.Equal(t, Distances{0, 2, 1}, d)

	_, err = PrioritySearch(g, 0, WithWeight(func(int, int) int { return -1 }))
	require.True(t, errs.Is(err, errs.ErrCodeInvalidInput))
}

func TestBFSMatchesPrioritySearch(t *testing.T) {
	r := testgraph.Rand(7)
	for i := range 60 {
		n := 1 + r.IntN(80)
		m := r.IntN(3 * n)
		kind := graph.Undirected
		if i%3 == 0 {
			kind = graph.Directed
		}
		g := testgraph.Random(r, n, m, kind)
		origin := r.IntN(n)

		a, err := BFS(g, origin)
		require.NoError(t, err)
		b, err := PrioritySearch(g, origin)
		require.NoError(t, err)
		require.Equal(t, a, b, "graph %d (n=%d m=%d %s) origin %d", i, n, m, kind, origin)
	}
}

func TestSearchDoesNotMutate(t *testing.T) {
	g := testgraph.Random(testgraph.Rand(3), 30, 60, graph.Undirected)
	before := slices.Collect(g.Edges())

	_, err := BFS(g, 0)
	require.NoError(t, err)
	_, err = PrioritySearch(g, 0)
	require.NoError(t, err)

	require.Equal(t, before, slices.Collect(g.Edges()))
}

func TestDistancesHelpers(t *testing.T) {
	d := Distances{0, 3, Unreached, 3, 1}

	m, ok := d.Max()
	require.True(t, ok)
	require.Equal(t, 3, m)

	far, ok := d.Farthest()
	require.True(t, ok)
	require.Equal(t, 1, far)

	require.Equal(t, 4, d.Count())
	require.False(t, d.Reached(-1))
	require.False(t, d.Reached(9))

	_, ok = Distances{Unreached}.Max()
	require.False(t, ok)
}

func TestComponents(t *testing.T) {
	g := graph.New(6, graph.Directed)
	g.Add(1, 0)
	g.Add(2, 3)
	g.Add(3, 4)

	labels, n := Components(g)
	require.Equal(t, 3, n)
	require.Equal(t, []int{0, 0, 1, 1, 1, 2}, labels)

	_, n = Components(graph.New(0, graph.Undirected))
	require.Equal(t, 0, n)
}
