package editor

import (
	"errors"
	"math"
	"testing"

	"github.com/gravitas-games/hexgrid/internal/grid"
	"github.com/gravitas-games/hexgrid/internal/hex"
)

func newTestEditor(t *testing.T, s Settings) (*Editor, *grid.Grid) {
	t.Helper()
	g, err := grid.New(2, 2, grid.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to build grid: %v", err)
	}
	return New(g, s), g
}

func TestHandleInputPaintsBrush(t *testing.T) {
	e, g := newTestEditor(t, Settings{Enabled: true, Mode: ModeColor, BrushSize: 1, Color: 0xff0000})
	center := g.OffsetToCell(4, 4)

	edited := e.HandleInput(center.Position(), true)
	if len(edited) != 7 {
		t.Fatalf("expected 7 edited cells, got %d", len(edited))
	}
	for _, c := range edited {
		if c.Color() != 0xff0000 {
			t.Fatalf("cell %v not painted", c.Coordinate())
		}
	}

	// dragging within the same cell is a no-op
	if again := e.HandleInput(center.Position(), true); again != nil {
		t.Fatalf("expected no edits on the same cell, got %d", len(again))
	}
	// releasing and pressing again repaints
	e.HandleInput(center.Position(), false)
	if again := e.HandleInput(center.Position(), true); len(again) != 7 {
		t.Fatalf("expected a fresh stroke to edit 7 cells, got %d", len(again))
	}
}

func TestHandleInputDisabled(t *testing.T) {
	e, g := newTestEditor(t, Settings{Enabled: false, Mode: ModeImpassable})
	cell := g.OffsetToCell(2, 2)
	if edited := e.HandleInput(cell.Position(), true); edited != nil {
		t.Fatalf("expected no edits while disabled")
	}
	if cell.Impassable() {
		t.Fatalf("cell changed while editing is disabled")
	}
}

func TestModes(t *testing.T) {
	e, g := newTestEditor(t, Settings{Enabled: true, Mode: ModeImpassable})
	cell := g.OffsetToCell(3, 3)
	e.EditAt(cell)
	if !cell.Impassable() {
		t.Fatalf("expected impassable cell")
	}
	e.SetSettings(Settings{Enabled: true, Mode: ModePassable})
	e.EditAt(cell)
	if cell.Impassable() {
		t.Fatalf("expected passable cell")
	}
	e.SetSettings(Settings{Enabled: true, Mode: ModeCost, MovementCost: 4})
	e.EditAt(cell)
	if cell.MovementCost() != 4 {
		t.Fatalf("expected movement cost 4, got %d", cell.MovementCost())
	}
}

func TestOutsidePointerIgnored(t *testing.T) {
	e, _ := newTestEditor(t, Settings{Enabled: true, Mode: ModeImpassable, BrushSize: 2})
	if edited := e.HandleInput(hex.Point{X: -1000, Y: -1000}, true); edited != nil {
		t.Fatalf("expected no edits outside the grid, got %d", len(edited))
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("cost"); err != nil || m != ModeCost {
		t.Fatalf("expected cost mode, got %q (%v)", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeNone {
		t.Fatalf("expected none for empty mode, got %q (%v)", m, err)
	}
	if _, err := ParseMode("erase"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		ok       bool
	}{
		{"color brush", Settings{Mode: ModeColor, BrushSize: 3}, true},
		{"largest brush", Settings{Mode: ModeImpassable, BrushSize: MaxBrushSize}, true},
		{"negative brush", Settings{Mode: ModeColor, BrushSize: -1}, false},
		{"oversized brush", Settings{Mode: ModeColor, BrushSize: 1 << 40}, false},
		{"highest cost", Settings{Mode: ModeCost, MovementCost: grid.MaxMovementCost}, true},
		{"zero cost", Settings{Mode: ModeCost, MovementCost: 0}, false},
		{"oversized cost", Settings{Mode: ModeCost, MovementCost: math.MaxInt}, false},
		{"cost ignored outside cost mode", Settings{Mode: ModeColor, MovementCost: math.MaxInt}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestSetSettingsClampsLimits(t *testing.T) {
	e, g := newTestEditor(t, Settings{Enabled: true, Mode: ModeCost, BrushSize: 1 << 40, MovementCost: math.MaxInt})
	if e.Settings().BrushSize != MaxBrushSize {
		t.Fatalf("expected brush clamped to %d, got %d", MaxBrushSize, e.Settings().BrushSize)
	}

	cell := g.OffsetToCell(4, 4)
	if edited := e.EditAt(cell); len(edited) != g.CellCount() {
		t.Fatalf("expected the clamped brush to cover all %d cells, got %d", g.CellCount(), len(edited))
	}
	if cell.MovementCost() != grid.MaxMovementCost {
		t.Fatalf("expected cost clamped to %d, got %d", grid.MaxMovementCost, cell.MovementCost())
	}
	if !g.Search(g.OffsetToCell(0, 0), g.OffsetToCell(9, 9), false) {
		t.Fatalf("expected a path across maximum cost cells")
	}
}
