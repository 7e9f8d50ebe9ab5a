package grid

import (
	"math"
	"testing"

	"github.com/gravitas-games/hexgrid/internal/hex"
)

func TestEditCellsCoversBrushArea(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	center := g.OffsetToCell(5, 5)
	for size := 0; size <= 3; size++ {
		seen := make(map[int]bool)
		n := g.EditCells(center, size, func(c *Cell) {
			if seen[c.Index()] {
				t.Fatalf("brush %d visited %v twice", size, c.Coordinate())
			}
			seen[c.Index()] = true
			if d := hex.Distance(center.Coordinate(), c.Coordinate()); d > size {
				t.Fatalf("brush %d reached %v at distance %d", size, c.Coordinate(), d)
			}
		})
		if n != hex.SpiralSize(size) || len(seen) != n {
			t.Fatalf("expected brush %d to edit %d cells, got %d", size, hex.SpiralSize(size), n)
		}
	}
}

func TestEditCellsClampsAtBorder(t *testing.T) {
	g := newTestGrid(t, 1, 1)
	corner := g.OffsetToCell(0, 0)
	n := g.EditCells(corner, 2, func(c *Cell) { c.SetImpassable(true) })
	if n >= hex.SpiralSize(2) {
		t.Fatalf("expected fewer than %d cells at the corner, got %d", hex.SpiralSize(2), n)
	}
	if !corner.Impassable() {
		t.Fatalf("expected the center cell to be edited")
	}
	if g.EditCells(nil, 2, func(*Cell) {}) != 0 {
		t.Fatalf("expected no edits without a center")
	}
}

func TestEditCellsHugeBrushCoversGrid(t *testing.T) {
	g := newTestGrid(t, 2, 1)
	seen := make(map[int]bool)
	n := g.EditCells(g.OffsetToCell(3, 2), math.MaxInt, func(c *Cell) {
		if seen[c.Index()] {
			t.Fatalf("visited %v twice", c.Coordinate())
		}
		seen[c.Index()] = true
	})
	if n != g.CellCount() {
		t.Fatalf("expected every one of %d cells edited, got %d", g.CellCount(), n)
	}
}
