package diameter

import "testing"

func TestWeightWalk(t *testing.T) {
	w := Weight{Deep: 2, Branch: 5}.Walk()
	if w.Deep != 3 || w.Branch != 5 {
		t.Errorf("Walk = %+v, want {Deep:3 Branch:5}", w)
	}
}

func TestWeightMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b Weight
		want Weight
	}{
		{"identity", Weight{}, Weight{Deep: 3, Branch: 4}, Weight{Deep: 3, Branch: 4}},
		{"two chains", Weight{Deep: 2}, Weight{Deep: 3}, Weight{Deep: 3, Branch: 5}},
		{"branch dominates", Weight{Deep: 1, Branch: 9}, Weight{Deep: 2}, Weight{Deep: 2, Branch: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Merge(tt.b); got != tt.want {
				t.Errorf("Merge = %+v, want %+v", got, tt.want)
			}
			if got := tt.b.Merge(tt.a); got != tt.want {
				t.Errorf("Merge (swapped) = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWeightMergeAssociative(t *testing.T) {
	ws := []Weight{{1, 1}, {4, 2}, {0, 0}, {2, 7}, {3, 3}}
	for _, a := range ws {
		for _, b := range ws {
			for _, c := range ws {
				l := a.Merge(b).Merge(c)
				r := a.Merge(b.Merge(c))
				if l != r {
					t.Fatalf("(%v+%v)+%v = %v, %v+(%v+%v) = %v", a, b, c, l, a, b, c, r)
				}
			}
		}
	}
}

func TestWeightMax(t *testing.T) {
	if got := (Weight{Deep: 4, Branch: 2}).Max(); got != 4 {
		t.Errorf("Max = %d, want 4", got)
	}
	if got := (Weight{Deep: 1, Branch: 6}).Max(); got != 6 {
		t.Errorf("Max = %d, want 6", got)
	}
}
