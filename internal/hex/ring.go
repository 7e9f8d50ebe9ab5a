package hex

// Ring returns the coordinates at exact distance k from center c,
// starting at the W corner and walking NE, E, SE, SW, W, NW in turn.
// If k==0, returns [c].
func Ring(c Coordinate, k int) []Coordinate {
	if k <= 0 {
		return []Coordinate{c}
	}
	res := make([]Coordinate, 0, 6*k)
	cur := c.Add(W.Vector().Scale(k))
	for _, d := range Directions {
		for step := 0; step < k; step++ {
			res = append(res, cur)
			cur = cur.Neighbor(d)
		}
	}
	return res
}

// Spiral returns c followed by rings 1..k around it.
func Spiral(c Coordinate, k int) []Coordinate {
	res := make([]Coordinate, 0, SpiralSize(k))
	res = append(res, c)
	for i := 1; i <= k; i++ {
		res = append(res, Ring(c, i)...)
	}
	return res
}

// SpiralSize is the number of coordinates within distance k of a center.
func SpiralSize(k int) int {
	if k < 0 {
		return 0
	}
	return 1 + 3*k*(k+1)
}
