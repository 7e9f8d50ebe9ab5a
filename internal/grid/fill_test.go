package grid

import (
	"testing"

	"github.com/gravitas-games/hexgrid/internal/hex"
)

func TestDistanceFillLayers(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	from := g.OffsetToCell(5, 5)
	fill := g.NewDistanceFill(from)

	first := fill.Step()
	if len(first) != 1 || first[0] != from || from.Distance() != 0 {
		t.Fatalf("expected the first step to hold only the start cell")
	}
	second := fill.Step()
	if len(second) != 6 {
		t.Fatalf("expected 6 cells in the second layer, got %d", len(second))
	}
	for _, c := range second {
		if c.Distance() != 1 {
			t.Fatalf("expected distance 1 for %v, got %d", c.Coordinate(), c.Distance())
		}
	}

	reached := len(first) + len(second)
	for !fill.Done() {
		for _, c := range fill.Step() {
			if want := hex.Distance(from.Coordinate(), c.Coordinate()); c.Distance() != want {
				t.Fatalf("expected distance %d for %v, got %d", want, c.Coordinate(), c.Distance())
			}
			reached++
		}
	}
	if reached != g.CellCount() {
		t.Fatalf("expected fill to reach %d cells, got %d", g.CellCount(), reached)
	}
	if fill.Step() != nil {
		t.Fatalf("expected nil step after done")
	}
}

func TestDistanceFillSkipsImpassable(t *testing.T) {
	g := newTestGrid(t, 1, 1)
	blocked := g.OffsetToCell(3, 3)
	blocked.SetImpassable(true)
	fill := g.NewDistanceFill(g.OffsetToCell(0, 0))
	for !fill.Done() {
		for _, c := range fill.Step() {
			if c == blocked {
				t.Fatalf("fill entered an impassable cell")
			}
		}
	}
}

func TestDistanceFillSupersededBySearch(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	fill := g.NewDistanceFill(g.OffsetToCell(0, 0))
	fill.Step()
	g.Search(g.OffsetToCell(9, 9), g.OffsetToCell(8, 8), false)
	if !fill.Done() {
		t.Fatalf("expected fill to end once a search claims a newer phase")
	}
	if fill.Step() != nil {
		t.Fatalf("expected no more layers from a superseded fill")
	}
}
