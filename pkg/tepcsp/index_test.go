package tepcsp

import (
	"testing"

	"github.com/abworrall/tep-csp/pkg/tcolor"
)

func TestBuildIndex(t *testing.T) {
	f0 := []tcolor.RGB{red, green, red, blue}
	f1 := []tcolor.RGB{blue, blue, red, green}
	f2 := []tcolor.RGB{red, red, red, red}

	idx, err := BuildIndex(stackOf(2, 2, f0, f1, f2), 3)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	if len(idx) != 3 {
		t.Fatalf("expected 3 colors, got %d", len(idx))
	}
	if idx.NumPositions() != 12 {
		t.Fatalf("expected 12 positions, got %d", idx.NumPositions())
	}

	// x outer, y inner, frames in order
	want := []Position{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {2, 0, 0}, {2, 0, 1}, {2, 1, 0}, {2, 1, 1}}
	got := idx[red]
	if len(got) != len(want) {
		t.Fatalf("red positions: %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("red positions: %v, want %v", got, want)
		}
	}

	if len(idx[green]) != 2 || len(idx[blue]) != 3 {
		t.Fatalf("unexpected counts: green=%v blue=%v", idx[green], idx[blue])
	}
}

func TestBuildIndexWorkerCounts(t *testing.T) {
	stack := randomStack(3, 7, 5, 6)

	base, err := BuildIndex(stack, 1)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	for _, nWorkers := range []int{0, 2, 6, 100} {
		idx, err := BuildIndex(stack, nWorkers)
		if err != nil {
			t.Fatalf("BuildIndex(%d): %v", nWorkers, err)
		}
		if len(idx) != len(base) {
			t.Fatalf("workers=%d: %d colors, want %d", nWorkers, len(idx), len(base))
		}
		for c, positions := range base {
			if len(idx[c]) != len(positions) {
				t.Fatalf("workers=%d: color %s has %d positions, want %d", nWorkers, c, len(idx[c]), len(positions))
			}
			for i := range positions {
				if idx[c][i] != positions[i] {
					t.Fatalf("workers=%d: color %s positions differ", nWorkers, c)
				}
			}
		}
	}
}

// Each position appears exactly once in the index.
func TestBuildIndexCoversEveryPixel(t *testing.T) {
	stack := randomStack(9, 6, 8, 3)
	idx, err := BuildIndex(stack, 2)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	seen := map[Position]tcolor.RGB{}
	for c, positions := range idx {
		for _, p := range positions {
			if _, exists := seen[p]; exists {
				t.Fatalf("position %s indexed twice", p)
			}
			seen[p] = c
			if want := tcolor.FromColor(stack.Frames[p.Frame].At(p.X, p.Y)); want != c {
				t.Fatalf("position %s indexed as %s, is %s", p, c, want)
			}
		}
	}
	if len(seen) != stack.Dims().NumPixels() {
		t.Fatalf("indexed %d positions, want %d", len(seen), stack.Dims().NumPixels())
	}
}

func TestMergeIndexes(t *testing.T) {
	a := ColorIndex{red: {{0, 0, 0}}, green: {{0, 1, 0}}}
	b := ColorIndex{red: {{1, 0, 0}, {1, 1, 1}}}
	c := ColorIndex{blue: {{2, 0, 0}}}

	merged := mergeIndexes([]ColorIndex{a, b, c})
	if len(merged) != 3 {
		t.Fatalf("expected 3 colors, got %d", len(merged))
	}
	if len(merged[red]) != 3 || merged[red][0] != (Position{0, 0, 0}) || merged[red][2] != (Position{1, 1, 1}) {
		t.Fatalf("unexpected red positions: %v", merged[red])
	}
}
