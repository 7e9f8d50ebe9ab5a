package grid

import (
	"context"

	"github.com/gravitas-games/hexgrid/internal/hex"
)

// searchCheckInterval is how many cells a search finalizes between
// context checks.
const searchCheckInterval = 64

// Search looks for the cheapest route from one cell to another. It writes
// Distance and PathFrom on the cells it reaches and reports whether to was
// reached. Cells that are impassable or held by a blocking occupant are
// skipped unless ignoreCollision is set.
func (g *Grid) Search(from, to *Cell, ignoreCollision bool) bool {
	found, _ := g.SearchContext(context.Background(), from, to, ignoreCollision)
	return found
}

// SearchContext is Search with cancellation. On cancellation it returns
// false and the context error.
func (g *Grid) SearchContext(ctx context.Context, from, to *Cell, ignoreCollision bool) (bool, error) {
	g.searchFrontierPhase += 2
	phase := g.searchFrontierPhase
	g.queue.Clear()

	from.searchPhase = phase
	from.distance = 0
	from.searchHeuristic = 0
	from.pathFrom = from.index
	g.queue.Enqueue(from)

	for popped := 0; g.queue.Count() > 0; popped++ {
		if popped%searchCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}

		current := g.queue.Dequeue()
		current.searchPhase++
		if current == to {
			return true, nil
		}

		for _, d := range hex.Directions {
			neighbor := current.Neighbor(d)
			if neighbor == nil || neighbor.searchPhase > phase {
				continue
			}
			if !ignoreCollision && neighbor.Blocked() {
				continue
			}

			distance := current.distance + current.movementCost
			if neighbor.searchPhase < phase {
				neighbor.searchPhase = phase
				neighbor.distance = distance
				neighbor.pathFrom = current.index
				neighbor.searchHeuristic = hex.Distance(neighbor.coord, to.coord)
				g.queue.Enqueue(neighbor)
			} else if distance < neighbor.distance {
				oldPriority := neighbor.SearchPriority()
				neighbor.distance = distance
				neighbor.pathFrom = current.index
				g.queue.Change(neighbor, oldPriority)
			}
		}
	}
	return false, nil
}

// FindPath clears the displayed path, searches from from to to and
// marks the result. speed is the distance covered per turn.
func (g *Grid) FindPath(from, to *Cell, speed int, ignoreCollision bool) bool {
	g.ClearPath()
	g.currentPathFrom = from.index
	g.currentPathTo = to.index
	g.currentPathExists = g.Search(from, to, ignoreCollision)
	g.showPath(speed)
	return g.currentPathExists
}

func (g *Grid) showPath(speed int) {
	if speed < 1 {
		speed = 1
	}
	from := &g.cells[g.currentPathFrom]
	to := &g.cells[g.currentPathTo]

	if g.currentPathExists {
		g.currentPath = g.currentPath[:0]
		for current := to; current != from; current = current.PathFrom() {
			g.currentPath = append(g.currentPath, current.index)
			current.setPathMarking(HighlightPath, (current.distance-1)/speed)
		}
		g.currentPath = append(g.currentPath, from.index)
		reverse(g.currentPath)
	}
	from.setPathMarking(HighlightFrom, 0)
	to.setPathMarking(HighlightTo, to.turn)
}

// ClearPath removes the markings of the displayed path, or of whichever
// endpoints were set when no path was found.
func (g *Grid) ClearPath() {
	if g.currentPathExists {
		for _, i := range g.currentPath {
			g.cells[i].setPathMarking(HighlightNone, 0)
		}
		g.currentPathExists = false
	}
	if g.currentPathFrom != noCell {
		g.cells[g.currentPathFrom].setPathMarking(HighlightNone, 0)
	}
	if g.currentPathTo != noCell {
		g.cells[g.currentPathTo].setPathMarking(HighlightNone, 0)
	}
	g.currentPath = g.currentPath[:0]
	g.currentPathFrom = noCell
	g.currentPathTo = noCell
}

// HasPath reports whether the last FindPath succeeded.
func (g *Grid) HasPath() bool { return g.currentPathExists }

// PathEndpoints returns the endpoints of the last FindPath, nil when unset.
func (g *Grid) PathEndpoints() (from, to *Cell) {
	return g.Cell(g.currentPathFrom), g.Cell(g.currentPathTo)
}

// Path returns the displayed path from start to end, or nil.
func (g *Grid) Path() []*Cell {
	if !g.currentPathExists {
		return nil
	}
	out := make([]*Cell, len(g.currentPath))
	for i, idx := range g.currentPath {
		out[i] = &g.cells[idx]
	}
	return out
}

// TracePath follows PathFrom links from to back to from after a
// successful Search and returns the route in walking order.
func (g *Grid) TracePath(from, to *Cell) []*Cell {
	var out []*Cell
	for current := to; ; current = current.PathFrom() {
		out = append(out, current)
		if current == from || current.PathFrom() == current {
			break
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
