package grid

import "github.com/gravitas-games/hexgrid/internal/hex"

// EditCells calls edit for every cell within brushSize of center.
// The area is scanned as two triangles: the rows above the center
// including the center row, then the rows below. Coordinates outside the
// grid are skipped. Brushes wider than the grid are clamped to its span.
// It returns the number of cells edited.
func (g *Grid) EditCells(center *Cell, brushSize int, edit func(*Cell)) int {
	if center == nil || brushSize < 0 {
		return 0
	}
	if span := g.cellCountX + g.cellCountZ; brushSize > span {
		brushSize = span
	}
	cx, cz := center.coord.X, center.coord.Z
	edited := 0
	visit := func(x, z int) {
		if c := g.CoordinateToCell(hex.New(x, z)); c != nil {
			edit(c)
			edited++
		}
	}

	for r, z := 0, cz-brushSize; z <= cz; z, r = z+1, r+1 {
		for x := cx - r; x <= cx+brushSize; x++ {
			visit(x, z)
		}
	}
	for r, z := 0, cz+brushSize; z > cz; z, r = z-1, r+1 {
		for x := cx - brushSize; x <= cx+r; x++ {
			visit(x, z)
		}
	}
	return edited
}
