package grid

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gravitas-games/hexgrid/internal/hex"
)

type fakeOccupant struct {
	ignore bool
	blocks bool
}

func (o *fakeOccupant) IgnoresCollision() bool { return o.ignore }
func (o *fakeOccupant) BlocksMovement() bool   { return o.blocks }

func TestSearchMatchesHexDistanceOnOpenGrid(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	pairs := [][4]int{{0, 0, 9, 9}, {9, 0, 0, 9}, {4, 4, 4, 4}, {2, 7, 8, 1}, {0, 5, 9, 5}}
	for _, p := range pairs {
		from := g.OffsetToCell(p[0], p[1])
		to := g.OffsetToCell(p[2], p[3])
		if !g.Search(from, to, false) {
			t.Fatalf("expected path from %v to %v", from.Coordinate(), to.Coordinate())
		}
		want := hex.Distance(from.Coordinate(), to.Coordinate())
		if to.Distance() != want {
			t.Fatalf("expected distance %d from %v to %v, got %d", want, from.Coordinate(), to.Coordinate(), to.Distance())
		}
		if got := len(g.TracePath(from, to)) - 1; got != want {
			t.Fatalf("expected %d steps, got %d", want, got)
		}
	}
}

func TestSearchDetoursAroundSingleObstacle(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	from := g.OffsetToCell(2, 4)
	target := from.Coordinate().Add(hex.E.Vector().Scale(2)).Add(hex.SE.Vector().Scale(2))
	to := g.CoordinateToCell(target)
	if to == nil {
		t.Fatalf("target %v out of bounds", target)
	}
	from.Neighbor(hex.E).SetImpassable(true)

	if !g.Search(from, to, false) {
		t.Fatalf("expected a path around the obstacle")
	}
	if to.Distance() != 4 {
		t.Fatalf("expected distance 4, got %d", to.Distance())
	}
	for _, c := range g.TracePath(from, to) {
		if c.Impassable() {
			t.Fatalf("path crosses impassable cell %v", c.Coordinate())
		}
	}
}

func TestSearchFailsBehindWall(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	for col := 0; col < g.CellCountX(); col++ {
		g.OffsetToCell(col, 5).SetImpassable(true)
	}
	from := g.OffsetToCell(3, 2)
	to := g.OffsetToCell(3, 8)

	if g.Search(from, to, false) {
		t.Fatalf("expected no path through a wall")
	}
	if !g.Search(from, to, true) {
		t.Fatalf("expected a path when collision is ignored")
	}
	if want := hex.Distance(from.Coordinate(), to.Coordinate()); to.Distance() != want {
		t.Fatalf("expected distance %d, got %d", want, to.Distance())
	}
}

func TestSearchPrefersCheaperDetour(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	from := g.OffsetToCell(0, 4)
	to := g.OffsetToCell(6, 4)
	g.OffsetToCell(3, 4).SetMovementCost(5)

	if !g.Search(from, to, false) {
		t.Fatalf("expected a path")
	}
	if to.Distance() != 7 {
		t.Fatalf("expected cost 7 around the expensive cell, got %d", to.Distance())
	}
}

func TestSearchAcrossMaximumCost(t *testing.T) {
	g := newTestGrid(t, 2, 1)
	from := g.OffsetToCell(0, 0)
	to := g.OffsetToCell(9, 0)
	for row := 0; row < g.CellCountZ(); row++ {
		for col := 0; col < 9; col++ {
			g.OffsetToCell(col, row).SetMovementCost(math.MaxInt)
		}
	}
	if from.MovementCost() != MaxMovementCost {
		t.Fatalf("expected cost clamped to %d, got %d", MaxMovementCost, from.MovementCost())
	}

	if !g.Search(from, to, false) {
		t.Fatalf("expected a path across expensive cells")
	}
	if want := 9 * MaxMovementCost; to.Distance() != want {
		t.Fatalf("expected distance %d, got %d", want, to.Distance())
	}
}

func TestSearchAvoidsBlockingOccupants(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	from := g.OffsetToCell(0, 4)
	to := g.OffsetToCell(4, 4)
	blocker := &fakeOccupant{blocks: true}
	g.OffsetToCell(2, 4).AddUnit(blocker)
	g.OffsetToCell(3, 4).AddUnit(&fakeOccupant{})

	if !g.Search(from, to, false) {
		t.Fatalf("expected a path")
	}
	for _, c := range g.TracePath(from, to) {
		if c.HasUnit(blocker) {
			t.Fatalf("path crosses the blocking occupant at %v", c.Coordinate())
		}
	}
	if to.Distance() != 5 {
		t.Fatalf("expected distance 5, got %d", to.Distance())
	}
}

func TestSearchPhasesDoNotLeak(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	a := g.OffsetToCell(0, 0)
	b := g.OffsetToCell(9, 9)
	c := g.OffsetToCell(5, 0)

	if !g.Search(a, b, false) {
		t.Fatalf("expected first path")
	}
	firstPhase := b.SearchPhase()
	if !g.Search(c, a, false) {
		t.Fatalf("expected second path")
	}
	if a.Distance() != hex.Distance(a.Coordinate(), c.Coordinate()) {
		t.Fatalf("stale distance on second search: %d", a.Distance())
	}
	if a.SearchPhase() <= firstPhase {
		t.Fatalf("expected a newer phase stamp, got %d after %d", a.SearchPhase(), firstPhase)
	}
}

func TestSearchContextCancelled(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	found, err := g.SearchContext(ctx, g.Cell(0), g.Cell(99), false)
	if found || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got found=%v err=%v", found, err)
	}
}

func TestFindPathMarksAndClears(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	from := g.OffsetToCell(1, 1)
	to := g.OffsetToCell(7, 6)

	if !g.FindPath(from, to, 2, false) {
		t.Fatalf("expected a path")
	}
	path := g.Path()
	want := hex.Distance(from.Coordinate(), to.Coordinate())
	if len(path) != want+1 {
		t.Fatalf("expected %d path cells, got %d", want+1, len(path))
	}
	if path[0] != from || path[len(path)-1] != to {
		t.Fatalf("path does not run from start to end")
	}
	if from.Highlight() != HighlightFrom || to.Highlight() != HighlightTo {
		t.Fatalf("endpoints not highlighted")
	}
	for _, c := range path[1 : len(path)-1] {
		if c.Highlight() != HighlightPath {
			t.Fatalf("path cell %v not highlighted", c.Coordinate())
		}
		if c.Turn() != (c.Distance()-1)/2 {
			t.Fatalf("cell %v has turn %d for distance %d", c.Coordinate(), c.Turn(), c.Distance())
		}
	}

	g.ClearPath()
	if g.HasPath() || g.Path() != nil {
		t.Fatalf("expected no path after clear")
	}
	for _, c := range path {
		if c.Highlight() != HighlightNone {
			t.Fatalf("cell %v still highlighted after clear", c.Coordinate())
		}
	}
	if f, tt := g.PathEndpoints(); f != nil || tt != nil {
		t.Fatalf("expected endpoints cleared")
	}
}

func TestFindPathWithoutRouteKeepsEndpoints(t *testing.T) {
	g := newTestGrid(t, 1, 1)
	to := g.OffsetToCell(2, 2)
	for _, d := range hex.Directions {
		to.Neighbor(d).SetImpassable(true)
	}
	from := g.OffsetToCell(0, 0)

	if g.FindPath(from, to, 1, false) {
		t.Fatalf("expected no path to an enclosed cell")
	}
	if g.Path() != nil {
		t.Fatalf("expected nil path")
	}
	if from.Highlight() != HighlightFrom || to.Highlight() != HighlightTo {
		t.Fatalf("expected endpoints highlighted")
	}
	g.ClearPath()
	if from.Highlight() != HighlightNone || to.Highlight() != HighlightNone {
		t.Fatalf("expected endpoints cleared")
	}
}
