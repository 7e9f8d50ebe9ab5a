package unit

import (
	"github.com/gravitas-games/hexgrid/internal/grid"
	"github.com/gravitas-games/hexgrid/internal/hex"
)

// Footprint is the set of cells a unit would cover around a center.
type Footprint struct {
	Cells []*grid.Cell
	// Expected is the cell count of the footprint with no clipping.
	Expected int
}

// Clipped reports whether part of the footprint fell outside the grid.
func (f Footprint) Clipped() bool { return len(f.Cells) != f.Expected }

// FootprintSize returns the number of cells a unit of the given size covers.
// Odd sizes 2k+1 cover a spiral of radius k; even sizes 2k+2 cover three
// overlapping spirals of radius k.
func FootprintSize(size int) int {
	if size < 1 {
		return 0
	}
	k := (size - 1) / 2
	if size%2 == 1 {
		return 1 + 3*k*(k+1)
	}
	return 3 + 3*k + 3*k*(k+1)
}

// ComputeFootprint returns the cells a unit of size covers around center.
func ComputeFootprint(g *grid.Grid, center *grid.Cell, size int) Footprint {
	fp := Footprint{Expected: FootprintSize(size)}
	if center == nil || size < 1 {
		return fp
	}
	c := center.Coordinate()
	k := (size - 1) / 2

	var coords []hex.Coordinate
	if size%2 == 1 {
		coords = hex.Spiral(c, k)
	} else {
		coords = make([]hex.Coordinate, 0, 3*hex.SpiralSize(k))
		seen := make(map[hex.Coordinate]bool, fp.Expected)
		for _, origin := range []hex.Coordinate{c, c.Neighbor(hex.SW), c.Neighbor(hex.SE)} {
			for _, a := range hex.Spiral(origin, k) {
				if !seen[a] {
					seen[a] = true
					coords = append(coords, a)
				}
			}
		}
	}

	fp.Cells = make([]*grid.Cell, 0, len(coords))
	for _, a := range coords {
		if cell := g.CoordinateToCell(a); cell != nil {
			fp.Cells = append(fp.Cells, cell)
		}
	}
	return fp
}
