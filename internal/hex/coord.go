package hex

import (
	"fmt"
	"math"
)

// Coordinate represents cube coordinates (x, y, z) with x+y+z=0.
// Y is always derived from X and Z.
type Coordinate struct {
	X int
	Y int
	Z int
}

// Point is a position in the grid's local pixel space.
type Point struct {
	X float64
	Y float64
}

// New builds a coordinate from its x and z components.
func New(x, z int) Coordinate {
	return Coordinate{X: x, Y: -x - z, Z: z}
}

// FromOffset converts an offset (column, row) pair by undoing the
// horizontal shift applied to odd rows.
func FromOffset(col, row int) Coordinate {
	return New(col-floorDiv(row, 2), row)
}

// FromPosition returns the coordinate of the cell containing p, for cells
// of the given metrics. The result is not bounds-checked.
func FromPosition(p Point, m Metrics) Coordinate {
	x := p.X / (m.InnerRadius() * 2)
	y := -x
	offset := p.Y / (m.OuterRadius * 3)
	x -= offset
	y -= offset
	z := -x - y

	ix := math.Round(x)
	iy := math.Round(y)
	iz := math.Round(z)

	// rounding can break x+y+z=0; rebuild the component that moved the most
	if ix+iy+iz != 0 {
		dx := math.Abs(x - ix)
		dy := math.Abs(y - iy)
		dz := math.Abs(z - iz)
		if dx > dy && dx > dz {
			ix = -iy - iz
		} else if dz > dy {
			iz = -ix - iy
		}
	}
	return New(int(ix), int(iz))
}

// Offset returns the (column, row) pair for c.
func (c Coordinate) Offset() (col, row int) {
	return c.X + floorDiv(c.Z, 2), c.Z
}

// OffsetIndex returns the row-major index of c in a grid width cells wide.
func (c Coordinate) OffsetIndex(width int) int {
	col, row := c.Offset()
	return col + row*width
}

// Add returns c+o.
func (c Coordinate) Add(o Coordinate) Coordinate { return New(c.X+o.X, c.Z+o.Z) }

// Scale multiplies c by k.
func (c Coordinate) Scale(k int) Coordinate { return New(c.X*k, c.Z*k) }

// Neighbor returns the adjacent coordinate in direction d.
func (c Coordinate) Neighbor(d Direction) Coordinate { return c.Add(d.Vector()) }

// Position returns the center of c in pixel space.
func (c Coordinate) Position(m Metrics) Point {
	_, row := c.Offset()
	return Point{
		X: (float64(c.X) + float64(row)*0.5) * (m.InnerRadius() * 2),
		Y: float64(row) * (m.OuterRadius * 1.5),
	}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Distance returns hex distance between two coordinates.
func Distance(a, b Coordinate) int {
	return (abs(a.X-b.X) + abs(a.Y-b.Y) + abs(a.Z-b.Z)) / 2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
