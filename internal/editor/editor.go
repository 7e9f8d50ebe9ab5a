// Package editor applies brush edits to a grid from pointer input.
package editor

import (
	"errors"
	"fmt"

	"github.com/gravitas-games/hexgrid/internal/grid"
	"github.com/gravitas-games/hexgrid/internal/hex"
)

// Mode selects what a brush stroke changes.
type Mode string

const (
	ModeNone       Mode = "none"
	ModeColor      Mode = "color"
	ModeImpassable Mode = "impassable"
	ModePassable   Mode = "passable"
	ModeCost       Mode = "cost"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeNone, ModeColor, ModeImpassable, ModePassable, ModeCost:
		return m, nil
	case "":
		return ModeNone, nil
	}
	return "", fmt.Errorf("unknown edit mode %q", s)
}

// Settings are the brush parameters pushed by the UI.
type Settings struct {
	Enabled      bool   `json:"enabled" yaml:"enabled"`
	Mode         Mode   `json:"mode" yaml:"mode"`
	BrushSize    int    `json:"brush_size" yaml:"brush_size"`
	Color        uint32 `json:"color" yaml:"color"`
	MovementCost int    `json:"movement_cost" yaml:"movement_cost"`
}

// MaxBrushSize bounds the brush radius in cells.
const MaxBrushSize = 32

// ErrInvalidSettings is returned for settings outside the brush limits.
var ErrInvalidSettings = errors.New("invalid editor settings")

// Validate rejects a negative or oversized brush, and a cost brush whose
// movement cost is outside [1, grid.MaxMovementCost].
func (s Settings) Validate() error {
	if s.BrushSize < 0 || s.BrushSize > MaxBrushSize {
		return fmt.Errorf("%w: brush size %d not in [0,%d]", ErrInvalidSettings, s.BrushSize, MaxBrushSize)
	}
	if s.Mode == ModeCost && (s.MovementCost < 1 || s.MovementCost > grid.MaxMovementCost) {
		return fmt.Errorf("%w: movement cost %d not in [1,%d]", ErrInvalidSettings, s.MovementCost, grid.MaxMovementCost)
	}
	return nil
}

// Editor turns pointer input into brush edits on one grid.
type Editor struct {
	grid     *grid.Grid
	settings Settings
	previous *grid.Cell
}

// New creates an editor for g.
func New(g *grid.Grid, s Settings) *Editor {
	e := &Editor{grid: g}
	e.SetSettings(s)
	return e
}

// Settings returns the current brush settings.
func (e *Editor) Settings() Settings { return e.settings }

// SetSettings replaces the brush settings. The brush size is clamped to
// [0, MaxBrushSize].
func (e *Editor) SetSettings(s Settings) {
	if s.BrushSize < 0 {
		s.BrushSize = 0
	} else if s.BrushSize > MaxBrushSize {
		s.BrushSize = MaxBrushSize
	}
	if s.Mode == "" {
		s.Mode = ModeNone
	}
	e.settings = s
}

// HandleInput processes one pointer sample in grid-local pixels. While
// pressed, each newly entered cell is edited with the brush; releasing
// the pointer ends the drag. It returns the edited cells.
func (e *Editor) HandleInput(p hex.Point, pressed bool) []*grid.Cell {
	if !pressed {
		e.previous = nil
		return nil
	}
	cell := e.grid.PositionToCell(p)
	if cell == nil || cell == e.previous {
		return nil
	}
	e.previous = cell
	return e.EditAt(cell)
}

// EditAt applies the brush centered on cell.
func (e *Editor) EditAt(cell *grid.Cell) []*grid.Cell {
	if !e.settings.Enabled || e.settings.Mode == ModeNone || cell == nil {
		return nil
	}
	var edited []*grid.Cell
	e.grid.EditCells(cell, e.settings.BrushSize, func(c *grid.Cell) {
		e.editCell(c)
		edited = append(edited, c)
	})
	return edited
}

func (e *Editor) editCell(c *grid.Cell) {
	switch e.settings.Mode {
	case ModeColor:
		c.SetColor(e.settings.Color)
	case ModeImpassable:
		c.SetImpassable(true)
	case ModePassable:
		c.SetImpassable(false)
	case ModeCost:
		c.SetMovementCost(e.settings.MovementCost)
	}
}
