package grid

import "github.com/gravitas-games/hexgrid/internal/hex"

// DistanceFill paints breadth-first step distances outward from a cell,
// one ring of the flood per Step. It claims a search phase, so a later
// search or fill on the same grid ends it.
type DistanceFill struct {
	g        *Grid
	phase    int
	frontier []int
}

// NewDistanceFill starts a fill at from. Nothing is written until Step.
func (g *Grid) NewDistanceFill(from *Cell) *DistanceFill {
	g.searchFrontierPhase += 2
	return &DistanceFill{
		g:        g,
		phase:    g.searchFrontierPhase,
		frontier: []int{from.index},
	}
}

// Done reports whether the fill has nothing left to do.
func (f *DistanceFill) Done() bool {
	return len(f.frontier) == 0 || f.phase != f.g.searchFrontierPhase
}

// Step writes distances for the next layer and returns its cells.
// It returns nil once the fill is done or has been superseded.
func (f *DistanceFill) Step() []*Cell {
	if f.Done() {
		return nil
	}
	g := f.g
	layer := make([]*Cell, 0, len(f.frontier))
	var next []int

	for _, i := range f.frontier {
		c := &g.cells[i]
		if c.searchPhase != f.phase {
			// seed cell
			c.searchPhase = f.phase
			c.distance = 0
			c.pathFrom = c.index
		}
		layer = append(layer, c)

		for _, d := range hex.Directions {
			n := c.Neighbor(d)
			if n == nil || n.searchPhase == f.phase || n.Blocked() {
				continue
			}
			n.searchPhase = f.phase
			n.distance = c.distance + 1
			n.pathFrom = c.index
			next = append(next, n.index)
		}
	}
	f.frontier = next
	return layer
}
