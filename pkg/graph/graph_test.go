package graph

import (
	"slices"
	"testing"
)

func TestAddBounded(t *testing.T) {
	g := New(3, Undirected)

	if !g.Add(0, 1) {
		t.Fatal("Add(0, 1) = false, want true")
	}
	if g.Add(0, 3) {
		t.Error("Add(0, 3) = true, want false for out-of-range target")
	}
	if g.Add(-1, 2) {
		t.Error("Add(-1, 2) = true, want false for negative source")
	}

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if g.Ignored() != 2 {
		t.Errorf("Ignored = %d, want 2", g.Ignored())
	}
	if got := g.Children(1); !slices.Equal(got, []int{0}) {
		t.Errorf("Children(1) = %v, want [0]", got)
	}
}

func TestPushGrows(t *testing.T) {
	var g Graph

	g.Push(0, 4)
	if g.NodeCount() != 5 {
		t.Fatalf("NodeCount = %d, want 5", g.NodeCount())
	}
	g.Push(2, 1)
	if g.NodeCount() != 5 {
		t.Errorf("NodeCount after interior push = %d, want 5", g.NodeCount())
	}
	if g.Push(-3, 1) {
		t.Error("Push with negative id = true, want false")
	}
	if g.Ignored() != 1 {
		t.Errorf("Ignored = %d, want 1", g.Ignored())
	}
	if got := g.Children(3); len(got) != 0 {
		t.Errorf("Children(3) = %v, want empty", got)
	}
}

func TestPushHugeID(t *testing.T) {
	const huge = 1152921504606846976

	g := New(0, Undirected)
	if g.Push(0, huge) {
		t.Error("Push(0, 2^60) = true, want false")
	}
	if g.Push(MaxNodeLimit, 0) {
		t.Error("Push at MaxNodeLimit = true, want false")
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 || g.Ignored() != 2 {
		t.Errorf("got nodes=%d edges=%d ignored=%d, want 0/0/2",
			g.NodeCount(), g.EdgeCount(), g.Ignored())
	}

	g.SetNodeLimit(4)
	if !g.Push(0, 3) {
		t.Error("Push(0, 3) = false, want true under limit 4")
	}
	if g.Push(1, 4) {
		t.Error("Push(1, 4) = true, want false under limit 4")
	}
	g.Grow(huge)
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount after Grow(2^60) = %d, want 4", g.NodeCount())
	}
}

func TestNodeLimit(t *testing.T) {
	var g Graph
	if g.NodeLimit() != MaxNodeLimit {
		t.Errorf("zero Graph NodeLimit = %d, want %d", g.NodeLimit(), MaxNodeLimit)
	}
	for _, n := range []int{0, -1, MaxNodeLimit + 1} {
		g.SetNodeLimit(n)
		if g.NodeLimit() != MaxNodeLimit {
			t.Errorf("SetNodeLimit(%d) gave %d, want %d", n, g.NodeLimit(), MaxNodeLimit)
		}
	}
}

func TestPushDuplicate(t *testing.T) {
	g := New(0, Undirected)
	g.Push(0, 1)
	nodes, deg := g.NodeCount(), g.Degree(0)

	g.Push(0, 1)
	if g.NodeCount() != nodes {
		t.Errorf("NodeCount = %d, want %d", g.NodeCount(), nodes)
	}
	if g.Degree(0) != 2*deg {
		t.Errorf("Degree(0) = %d, want %d", g.Degree(0), 2*deg)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}
}

func TestDirected(t *testing.T) {
	g := New(3, Directed)
	g.Add(0, 1)
	g.Add(1, 2)

	if !g.Directed() || g.Kind() != Directed {
		t.Fatal("expected directed graph")
	}
	if got := g.Children(1); !slices.Equal(got, []int{2}) {
		t.Errorf("Children(1) = %v, want [2]", got)
	}
	if got := g.Children(2); len(got) != 0 {
		t.Errorf("Children(2) = %v, want empty", got)
	}
}

func TestChildrenOutOfRange(t *testing.T) {
	g := New(2, Undirected)
	for _, u := range []int{-1, 2, 100} {
		if got := g.Children(u); got != nil {
			t.Errorf("Children(%d) = %v, want nil", u, got)
		}
		if d := g.Degree(u); d != 0 {
			t.Errorf("Degree(%d) = %d, want 0", u, d)
		}
	}
}

func TestSelfLoop(t *testing.T) {
	g := New(2, Undirected)
	g.Add(0, 0)
	g.Add(0, 1)

	if g.Degree(0) != 3 {
		t.Errorf("Degree(0) = %d, want 3", g.Degree(0))
	}
	edges := slices.Collect(g.Edges())
	want := []Edge{{0, 0}, {0, 1}}
	if !slices.Equal(edges, want) {
		t.Errorf("Edges = %v, want %v", edges, want)
	}
}

func TestDegreeStats(t *testing.T) {
	tests := []struct {
		name      string
		edges     []Edge
		capacity  int
		wantMax   int
		wantAvg   float64
		wantHisto []int
	}{
		{
			name:      "empty",
			wantHisto: []int{},
		},
		{
			name:      "isolated nodes",
			capacity:  3,
			wantHisto: []int{3},
		},
		{
			name:      "star",
			edges:     []Edge{{0, 1}, {0, 2}, {0, 3}},
			wantMax:   3,
			wantAvg:   1.5,
			wantHisto: []int{0, 3, 0, 1},
		},
		{
			name:      "path",
			edges:     []Edge{{0, 1}, {1, 2}, {2, 3}},
			wantMax:   2,
			wantAvg:   1.5,
			wantHisto: []int{0, 2, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := FromSlice(tt.edges, BuildOptions{Capacity: tt.capacity})
			if got := g.MaxDegree(); got != tt.wantMax {
				t.Errorf("MaxDegree = %d, want %d", got, tt.wantMax)
			}
			if got := g.AverageDegree(); got != tt.wantAvg {
				t.Errorf("AverageDegree = %v, want %v", got, tt.wantAvg)
			}
			if got := g.DegreeHistogram(); !slices.Equal(got, tt.wantHisto) {
				t.Errorf("DegreeHistogram = %v, want %v", got, tt.wantHisto)
			}
		})
	}
}

func TestFromEdges(t *testing.T) {
	edges := []Edge{{0, 1}, {1, 2}, {2, 9}, {3, 1}}

	t.Run("bounded", func(t *testing.T) {
		g := FromSlice(edges, BuildOptions{Capacity: 4})
		if g.NodeCount() != 4 || g.EdgeCount() != 3 || g.Ignored() != 1 {
			t.Errorf("got nodes=%d edges=%d ignored=%d, want 4/3/1",
				g.NodeCount(), g.EdgeCount(), g.Ignored())
		}
	})

	t.Run("growing", func(t *testing.T) {
		g := FromSlice(edges, BuildOptions{})
		if g.NodeCount() != 10 || g.EdgeCount() != 4 || g.Ignored() != 0 {
			t.Errorf("got nodes=%d edges=%d ignored=%d, want 10/4/0",
				g.NodeCount(), g.EdgeCount(), g.Ignored())
		}
	})

	t.Run("limit", func(t *testing.T) {
		g := FromSlice(edges, BuildOptions{Limit: 2})
		if g.NodeCount() != 3 || g.EdgeCount() != 2 {
			t.Errorf("got nodes=%d edges=%d, want 3/2", g.NodeCount(), g.EdgeCount())
		}
	})

	t.Run("node limit", func(t *testing.T) {
		g := FromSlice(edges, BuildOptions{NodeLimit: 5})
		if g.NodeCount() != 4 || g.EdgeCount() != 3 || g.Ignored() != 1 {
			t.Errorf("got nodes=%d edges=%d ignored=%d, want 4/3/1",
				g.NodeCount(), g.EdgeCount(), g.Ignored())
		}
	})

	t.Run("capacity clamped to node limit", func(t *testing.T) {
		g := FromSlice(edges, BuildOptions{Capacity: 1 << 40, NodeLimit: 3})
		if g.NodeCount() != 3 || g.EdgeCount() != 2 || g.Ignored() != 2 {
			t.Errorf("got nodes=%d edges=%d ignored=%d, want 3/2/2",
				g.NodeCount(), g.EdgeCount(), g.Ignored())
		}
	})

	t.Run("directed", func(t *testing.T) {
		g := FromSlice(edges, BuildOptions{Kind: Directed})
		if !g.Directed() {
			t.Fatal("expected directed graph")
		}
		if g.Degree(1) != 1 {
			t.Errorf("Degree(1) = %d, want 1", g.Degree(1))
		}
	})
}

func TestEdgesRoundTrip(t *testing.T) {
	in := []Edge{{0, 1}, {2, 1}, {1, 0}, {3, 3}}

	for _, kind := range []Kind{Undirected, Directed} {
		t.Run(kind.String(), func(t *testing.T) {
			g := FromSlice(in, BuildOptions{Kind: kind})
			out := slices.Collect(g.Edges())
			if len(out) != len(in) {
				t.Fatalf("Edges yielded %d edges, want %d: %v", len(out), len(in), out)
			}

			rebuilt := FromSlice(out, BuildOptions{Kind: kind})
			for u := range g.NodeCount() {
				a := slices.Sorted(slices.Values(g.Children(u)))
				b := slices.Sorted(slices.Values(rebuilt.Children(u)))
				if !slices.Equal(a, b) {
					t.Errorf("Children(%d) = %v after round trip, want %v", u, b, a)
				}
			}
		})
	}
}

func TestEdgesEarlyStop(t *testing.T) {
	g := FromSlice([]Edge{{0, 1}, {1, 2}, {2, 3}}, BuildOptions{})
	n := 0
	for range g.Edges() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d edges, want 2", n)
	}
}
