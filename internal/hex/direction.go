package hex

// Direction names one of the six neighbors of a cell.
type Direction int

const (
	NE Direction = iota
	E
	SE
	SW
	W
	NW
)

// DirectionCount is the number of neighbor slots per cell.
const DirectionCount = 6

// Directions lists all directions in order.
var Directions = [DirectionCount]Direction{NE, E, SE, SW, W, NW}

var directionVectors = [DirectionCount]Coordinate{
	New(1, -1),
	New(1, 0),
	New(0, 1),
	New(-1, 1),
	New(-1, 0),
	New(0, -1),
}

var directionNames = [DirectionCount]string{"NE", "E", "SE", "SW", "W", "NW"}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	if d < 3 {
		return d + 3
	}
	return d - 3
}

// Vector returns the unit cube offset for d.
func (d Direction) Vector() Coordinate { return directionVectors[d] }

func (d Direction) String() string {
	if d < 0 || d >= DirectionCount {
		return "invalid"
	}
	return directionNames[d]
}
