// Package unit places multi-cell units on a grid and arbitrates collisions
// between them.
package unit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gravitas-games/hexgrid/internal/grid"
)

// ErrInvalidSize is returned for a unit size outside [1, MaxSize(g)].
var ErrInvalidSize = errors.New("invalid unit size")

// Capability is a set of unit behaviors.
type Capability uint8

const (
	// Moves lets a unit travel along a searched path.
	Moves Capability = 1 << iota
	// Blocks makes searches route around the unit's cells.
	Blocks
	// Teleports lets a unit jump to any free cell.
	Teleports
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{Moves, "moves"},
	{Blocks, "blocks"},
	{Teleports, "teleports"},
}

// Has reports whether every capability in o is set.
func (c Capability) Has(o Capability) bool { return c&o == o }

func (c Capability) String() string {
	var names []string
	for _, n := range capabilityNames {
		if c.Has(n.c) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// Names returns the capability names in c.
func (c Capability) Names() []string {
	if c == 0 {
		return nil
	}
	return strings.Split(c.String(), "|")
}

// ParseCapabilities builds a set from names such as "moves" or "blocks".
func ParseCapabilities(names []string) (Capability, error) {
	var c Capability
	for _, name := range names {
		found := false
		for _, n := range capabilityNames {
			if strings.EqualFold(name, n.name) {
				c |= n.c
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown capability %q", name)
		}
	}
	return c, nil
}

// Unit is a piece standing on one or more cells of a grid.
type Unit struct {
	grid            *grid.Grid
	size            int
	ignoreCollision bool
	caps            Capability

	center   *grid.Cell
	occupied []*grid.Cell
}

// Option configures a Unit.
type Option func(*Unit)

// WithIgnoreCollision lets the unit share cells with others.
func WithIgnoreCollision() Option {
	return func(u *Unit) { u.ignoreCollision = true }
}

// WithCapabilities sets the unit's capabilities.
func WithCapabilities(c Capability) Option {
	return func(u *Unit) { u.caps = c }
}

// MaxSize is the largest unit size g accepts. A footprint that size
// already spans the whole grid.
func MaxSize(g *grid.Grid) int {
	return g.CellCountX() + g.CellCountZ()
}

// New creates an unplaced unit of the given footprint size on g.
func New(g *grid.Grid, size int, opts ...Option) (*Unit, error) {
	if size < 1 || size > MaxSize(g) {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidSize, size, MaxSize(g))
	}
	u := &Unit{grid: g, size: size}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

func (u *Unit) Size() int                   { return u.size }
func (u *Unit) Capabilities() Capability    { return u.caps }
func (u *Unit) IgnoresCollision() bool      { return u.ignoreCollision }
func (u *Unit) BlocksMovement() bool        { return u.caps.Has(Blocks) }
func (u *Unit) Center() *grid.Cell          { return u.center }
func (u *Unit) Placed() bool                { return u.center != nil }
func (u *Unit) OccupiedCells() []*grid.Cell { return append([]*grid.Cell(nil), u.occupied...) }

// Footprint returns the cells the unit would cover centered on cell.
func (u *Unit) Footprint(cell *grid.Cell) Footprint {
	return ComputeFootprint(u.grid, cell, u.size)
}

// Collides reports whether fp is clipped by the grid border or holds an
// occupant other than u that does not ignore collision.
func (u *Unit) Collides(fp Footprint) bool {
	if fp.Clipped() {
		return true
	}
	for _, cell := range fp.Cells {
		for _, o := range cell.Units() {
			if o != grid.Occupant(u) && !o.IgnoresCollision() {
				return true
			}
		}
	}
	return false
}

// CanOccupy reports whether Occupy(cell) would succeed.
func (u *Unit) CanOccupy(cell *grid.Cell) bool {
	if cell == nil {
		return false
	}
	return u.ignoreCollision || !u.Collides(u.Footprint(cell))
}

// Occupy moves the unit onto the footprint around cell. On collision it
// returns false and leaves the unit where it was.
func (u *Unit) Occupy(cell *grid.Cell) bool {
	if cell == nil {
		return false
	}
	fp := u.Footprint(cell)
	if !u.ignoreCollision && u.Collides(fp) {
		return false
	}
	u.Unoccupy()
	for _, c := range fp.Cells {
		c.AddUnit(u)
	}
	u.occupied = fp.Cells
	u.center = cell
	return true
}

// Unoccupy lifts the unit off every cell it holds.
func (u *Unit) Unoccupy() {
	for _, c := range u.occupied {
		c.RemoveUnit(u)
	}
	u.occupied = nil
	u.center = nil
}

// Move relocates the unit to dest. Teleporting units jump directly;
// moving units need a searched path from their current center. The route
// taken is returned. On failure the unit stays where it was.
func (u *Unit) Move(dest *grid.Cell) ([]*grid.Cell, bool) {
	if dest == nil || !(u.caps.Has(Moves) || u.caps.Has(Teleports)) {
		return nil, false
	}
	origin := u.center
	if origin == nil {
		if !u.Occupy(dest) {
			return nil, false
		}
		return []*grid.Cell{dest}, true
	}

	// lift the unit so its own cells do not block the search
	u.Unoccupy()
	var route []*grid.Cell
	ok := false
	if u.caps.Has(Teleports) {
		route = []*grid.Cell{origin, dest}
		ok = u.Occupy(dest)
	} else if u.grid.Search(origin, dest, u.ignoreCollision) {
		route = u.grid.TracePath(origin, dest)
		ok = u.Occupy(dest)
	}
	if !ok {
		u.Occupy(origin)
		return nil, false
	}
	return route, true
}
