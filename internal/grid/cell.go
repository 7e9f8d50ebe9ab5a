package grid

import (
	"math"

	"github.com/gravitas-games/hexgrid/internal/hex"
)

// Unreachable is the distance of a cell no search has reached.
const Unreachable = math.MaxInt

// noCell marks an empty index slot.
const noCell = -1

// MaxMovementCost bounds a cell's movement cost. Search priorities index
// the queue's buckets, so distances must stay small.
const MaxMovementCost = 100

// Occupant is anything that can stand on a cell.
type Occupant interface {
	// IgnoresCollision reports whether others may share cells with it.
	IgnoresCollision() bool
	// BlocksMovement reports whether searches must route around it.
	BlocksMovement() bool
}

// Highlight marks how a cell takes part in the displayed path.
type Highlight uint8

const (
	HighlightNone Highlight = iota
	HighlightPath
	HighlightFrom
	HighlightTo
)

func (h Highlight) String() string {
	switch h {
	case HighlightPath:
		return "path"
	case HighlightFrom:
		return "from"
	case HighlightTo:
		return "to"
	}
	return ""
}

// Cell is a node of the adjacency graph. Cells live in the grid's arena
// and refer to each other by arena index.
type Cell struct {
	arena    []Cell
	index    int
	chunk    int
	coord    hex.Coordinate
	position hex.Point

	color        uint32
	impassable   bool
	movementCost int

	// search state, valid only while searchPhase matches the grid phase
	distance             int
	pathFrom             int
	searchHeuristic      int
	searchPhase          int
	nextWithSamePriority int

	neighbors [hex.DirectionCount]int
	units     []Occupant

	highlight Highlight
	turn      int
}

func (c *Cell) init(arena []Cell, index int, coord hex.Coordinate, position hex.Point) {
	c.arena = arena
	c.index = index
	c.coord = coord
	c.position = position
	c.movementCost = 1
	c.distance = Unreachable
	c.pathFrom = index
	c.nextWithSamePriority = noCell
	for i := range c.neighbors {
		c.neighbors[i] = noCell
	}
}

// Index returns the cell's position in the grid arena.
func (c *Cell) Index() int { return c.index }

// Coordinate returns the cube coordinate of the cell.
func (c *Cell) Coordinate() hex.Coordinate { return c.coord }

// Position returns the cell center in pixel space.
func (c *Cell) Position() hex.Point { return c.position }

// Neighbor returns the adjacent cell in direction d, or nil at the border.
func (c *Cell) Neighbor(d hex.Direction) *Cell {
	return c.at(c.neighbors[d])
}

// SetNeighbor links c and other in both directions.
func (c *Cell) SetNeighbor(d hex.Direction, other *Cell) {
	c.neighbors[d] = other.index
	other.neighbors[d.Opposite()] = c.index
}

func (c *Cell) at(i int) *Cell {
	if i == noCell {
		return nil
	}
	return &c.arena[i]
}

func (c *Cell) Color() uint32         { return c.color }
func (c *Cell) SetColor(color uint32) { c.color = color }

func (c *Cell) Impassable() bool         { return c.impassable }
func (c *Cell) SetImpassable(value bool) { c.impassable = value }

// MovementCost is the cost of leaving this cell. It is never below 1.
func (c *Cell) MovementCost() int { return c.movementCost }

// SetMovementCost sets the cost of leaving the cell, clamped to
// [1, MaxMovementCost].
func (c *Cell) SetMovementCost(cost int) {
	if cost < 1 {
		cost = 1
	} else if cost > MaxMovementCost {
		cost = MaxMovementCost
	}
	c.movementCost = cost
}

// Distance returns the distance written by the most recent search or fill.
func (c *Cell) Distance() int { return c.distance }

// PathFrom returns the cell the last search reached c from, or c itself.
func (c *Cell) PathFrom() *Cell { return c.at(c.pathFrom) }

func (c *Cell) SearchHeuristic() int { return c.searchHeuristic }
func (c *Cell) SearchPhase() int     { return c.searchPhase }

// SearchPriority is the bucket the priority queue files c under.
func (c *Cell) SearchPriority() int { return c.distance + c.searchHeuristic }

// Highlight returns the path marking of the cell.
func (c *Cell) Highlight() Highlight { return c.highlight }

// Turn returns the turn the displayed path reaches c in.
func (c *Cell) Turn() int { return c.turn }

// Units returns the occupants of the cell.
func (c *Cell) Units() []Occupant { return c.units }

// HasUnit reports whether u occupies c.
func (c *Cell) HasUnit(u Occupant) bool {
	for _, o := range c.units {
		if o == u {
			return true
		}
	}
	return false
}

// AddUnit registers u on the cell. Adding twice is a no-op.
func (c *Cell) AddUnit(u Occupant) {
	if c.HasUnit(u) {
		return
	}
	c.units = append(c.units, u)
}

// RemoveUnit unregisters u from the cell.
func (c *Cell) RemoveUnit(u Occupant) {
	for i, o := range c.units {
		if o == u {
			c.units = append(c.units[:i], c.units[i+1:]...)
			return
		}
	}
}

// Blocked reports whether a search that respects collision must skip c.
func (c *Cell) Blocked() bool {
	if c.impassable {
		return true
	}
	for _, o := range c.units {
		if o.BlocksMovement() {
			return true
		}
	}
	return false
}

func (c *Cell) setPathMarking(h Highlight, turn int) {
	c.highlight = h
	c.turn = turn
}
