// Package grid owns the hex cell graph: construction, chunking, pointer
// lookup, path search and brush selection.
package grid

import (
	"fmt"

	"github.com/gravitas-games/hexgrid/internal/hex"
)

// Options configures cell metrics and chunk size.
type Options struct {
	Metrics    hex.Metrics
	ChunkSizeX int
	ChunkSizeZ int
}

// DefaultOptions returns the default metrics and 5x5 chunks.
func DefaultOptions() Options {
	return Options{
		Metrics:    hex.DefaultMetrics(),
		ChunkSizeX: hex.DefaultChunkSizeX,
		ChunkSizeZ: hex.DefaultChunkSizeZ,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Metrics.OuterRadius <= 0 {
		o.Metrics = def.Metrics
	}
	if o.ChunkSizeX <= 0 {
		o.ChunkSizeX = def.ChunkSizeX
	}
	if o.ChunkSizeZ <= 0 {
		o.ChunkSizeZ = def.ChunkSizeZ
	}
	return o
}

// Grid holds every cell of a rectangular map, laid out in offset rows.
// Dimensions never change after New.
type Grid struct {
	opts Options

	chunkCountX int
	chunkCountZ int
	cellCountX  int
	cellCountZ  int

	cells  []Cell
	chunks []Chunk

	queue               *PriorityQueue
	searchFrontierPhase int

	currentPathFrom   int
	currentPathTo     int
	currentPathExists bool
	currentPath       []int
}

// New builds a grid of chunkCountX by chunkCountZ chunks and links
// every cell to its neighbors.
func New(chunkCountX, chunkCountZ int, opts Options) (*Grid, error) {
	if chunkCountX <= 0 || chunkCountZ <= 0 {
		return nil, fmt.Errorf("invalid chunk count %dx%d", chunkCountX, chunkCountZ)
	}
	opts = opts.withDefaults()

	g := &Grid{
		opts:            opts,
		chunkCountX:     chunkCountX,
		chunkCountZ:     chunkCountZ,
		cellCountX:      chunkCountX * opts.ChunkSizeX,
		cellCountZ:      chunkCountZ * opts.ChunkSizeZ,
		currentPathFrom: noCell,
		currentPathTo:   noCell,
	}
	g.cells = make([]Cell, g.cellCountX*g.cellCountZ)
	g.queue = NewPriorityQueue(g.cells)

	g.createChunks()
	for z, i := 0, 0; z < g.cellCountZ; z++ {
		for x := 0; x < g.cellCountX; x++ {
			g.createCell(x, z, i)
			i++
		}
	}
	return g, nil
}

func (g *Grid) createChunks() {
	size := g.opts.ChunkSizeX * g.opts.ChunkSizeZ
	g.chunks = make([]Chunk, 0, g.chunkCountX*g.chunkCountZ)
	for z := 0; z < g.chunkCountZ; z++ {
		for x := 0; x < g.chunkCountX; x++ {
			g.chunks = append(g.chunks, newChunk(g.cells, x, z, size))
		}
	}
}

func (g *Grid) createCell(x, z, i int) {
	coord := hex.FromOffset(x, z)
	c := &g.cells[i]
	c.init(g.cells, i, coord, coord.Position(g.opts.Metrics))

	// link back to cells that already exist: same row to the west,
	// previous row to the north
	for _, d := range [...]hex.Direction{hex.W, hex.NW, hex.NE} {
		if n := g.CoordinateToCell(coord.Neighbor(d)); n != nil {
			c.SetNeighbor(d, n)
		}
	}

	g.addCellToChunk(x, z, c)
}

func (g *Grid) addCellToChunk(x, z int, c *Cell) {
	chunkX := x / g.opts.ChunkSizeX
	chunkZ := z / g.opts.ChunkSizeZ
	idx := chunkX + chunkZ*g.chunkCountX
	c.chunk = idx

	localX := x - chunkX*g.opts.ChunkSizeX
	localZ := z - chunkZ*g.opts.ChunkSizeZ
	g.chunks[idx].addCell(localX+localZ*g.opts.ChunkSizeX, c)
}

// Metrics returns the cell metrics the grid was built with.
func (g *Grid) Metrics() hex.Metrics { return g.opts.Metrics }

func (g *Grid) CellCountX() int  { return g.cellCountX }
func (g *Grid) CellCountZ() int  { return g.cellCountZ }
func (g *Grid) ChunkCountX() int { return g.chunkCountX }
func (g *Grid) ChunkCountZ() int { return g.chunkCountZ }

// CellCount returns the number of cells in the grid.
func (g *Grid) CellCount() int { return len(g.cells) }

// Cell returns the cell at arena index i, or nil if out of range.
func (g *Grid) Cell(i int) *Cell {
	if i < 0 || i >= len(g.cells) {
		return nil
	}
	return &g.cells[i]
}

// OffsetToCell returns the cell at column col and row row, or nil.
func (g *Grid) OffsetToCell(col, row int) *Cell {
	if col < 0 || col >= g.cellCountX || row < 0 || row >= g.cellCountZ {
		return nil
	}
	return &g.cells[col+row*g.cellCountX]
}

// CoordinateToCell returns the cell at coord, or nil outside the grid.
func (g *Grid) CoordinateToCell(coord hex.Coordinate) *Cell {
	col, row := coord.Offset()
	return g.OffsetToCell(col, row)
}

// PositionToCell returns the cell under the local pixel position p, or nil.
func (g *Grid) PositionToCell(p hex.Point) *Cell {
	return g.CoordinateToCell(hex.FromPosition(p, g.opts.Metrics))
}

// Chunks returns all chunks in row-major order.
func (g *Grid) Chunks() []*Chunk {
	out := make([]*Chunk, len(g.chunks))
	for i := range g.chunks {
		out[i] = &g.chunks[i]
	}
	return out
}

// ChunkOf returns the chunk holding c.
func (g *Grid) ChunkOf(c *Cell) *Chunk {
	return &g.chunks[c.chunk]
}
