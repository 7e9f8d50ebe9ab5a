package grid

// Chunk is a fixed-size rectangular block of cells used to batch
// rendering work. It has no effect on search.
type Chunk struct {
	X     int // chunk column
	Z     int // chunk row
	arena []Cell
	cells []int // arena indices in local row-major order
}

func newChunk(arena []Cell, x, z, size int) Chunk {
	ch := Chunk{X: x, Z: z, arena: arena, cells: make([]int, size)}
	for i := range ch.cells {
		ch.cells[i] = noCell
	}
	return ch
}

// addCell stores c at the local slot index.
func (ch *Chunk) addCell(local int, c *Cell) {
	ch.cells[local] = c.index
}

// Cells returns the chunk's cells in local row-major order.
func (ch *Chunk) Cells() []*Cell {
	out := make([]*Cell, 0, len(ch.cells))
	for _, i := range ch.cells {
		if i != noCell {
			out = append(out, &ch.arena[i])
		}
	}
	return out
}

// CellCount returns the number of cells in the chunk.
func (ch *Chunk) CellCount() int { return len(ch.cells) }
