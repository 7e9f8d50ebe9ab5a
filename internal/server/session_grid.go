package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gravitas-games/hexgrid/internal/editor"
	"github.com/gravitas-games/hexgrid/internal/grid"
	"github.com/gravitas-games/hexgrid/internal/hex"
	"github.com/gravitas-games/hexgrid/internal/network"
	"github.com/gravitas-games/hexgrid/internal/unit"
	"github.com/gravitas-games/hexgrid/pkg/models"
)

// SendGrid streams the grid to client one chunk at a time
func (s *Session) SendGrid(client Client) error {
	return s.exec(func() error {
		for _, ch := range s.grid.Chunks() {
			client.SendMessage(&network.ServerMessage{
				Type: network.MsgTypeGridChunk,
				Payload: network.GridChunkPayload{
					ChunkX: ch.X,
					ChunkZ: ch.Z,
					Cells:  s.cellStates(ch.Cells()),
				},
			})
		}
		return nil
	})
}

// UpdateEditorSettings replaces the player's brush settings
func (s *Session) UpdateEditorSettings(player *models.Player, payload network.EditorSettingsPayload) error {
	mode, err := editor.ParseMode(payload.Mode)
	if err != nil {
		return err
	}
	if payload.Enabled && mode != editor.ModeNone && !player.Can(models.PermEdit) {
		return ErrForbidden
	}

	settings := editor.Settings{
		Enabled:      payload.Enabled,
		Mode:         mode,
		BrushSize:    payload.BrushSize,
		Color:        payload.Color,
		MovementCost: payload.MovementCost,
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.exec(func() error {
		e, ok := s.editors[player.ID]
		if !ok {
			return fmt.Errorf("player %s has no editor", player.ID)
		}
		e.SetSettings(settings)
		return nil
	})
}

// HandlePointer feeds one pointer sample to the player's editor and
// broadcasts the edited cells
func (s *Session) HandlePointer(player *models.Player, payload network.PointerPayload) error {
	if payload.Pressed && !player.Can(models.PermEdit) {
		return ErrForbidden
	}
	return s.exec(func() error {
		e, ok := s.editors[player.ID]
		if !ok {
			return fmt.Errorf("player %s has no editor", player.ID)
		}
		edited := e.HandleInput(hex.Point{X: payload.X, Y: payload.Y}, payload.Pressed)
		if len(edited) == 0 {
			return nil
		}
		s.BroadcastMessage(&network.ServerMessage{
			Type:    network.MsgTypeCellsChanged,
			Payload: network.CellsChangedPayload{Cells: s.cellStates(edited)},
		})
		return nil
	})
}

// FindPath searches between two cells, marks the result on the grid and
// broadcasts it
func (s *Session) FindPath(payload network.FindPathPayload) (network.PathPayload, error) {
	var result network.PathPayload
	err := s.exec(func() error {
		from, to := s.grid.Cell(payload.From), s.grid.Cell(payload.To)
		if from == nil || to == nil {
			return ErrUnknownCell
		}
		found := s.grid.FindPath(from, to, payload.Speed, payload.IgnoreCollision)
		result = network.PathPayload{Found: found, From: from.Index(), To: to.Index()}
		if found {
			result.Cells = cellIndices(s.grid.Path())
			result.Distance = to.Distance()
		}
		s.BroadcastMessage(&network.ServerMessage{Type: network.MsgTypePath, Payload: result})
		return nil
	})
	return result, err
}

// ClearPath removes the displayed path
func (s *Session) ClearPath() error {
	return s.exec(func() error {
		s.grid.ClearPath()
		s.BroadcastMessage(&network.ServerMessage{
			Type:    network.MsgTypePath,
			Payload: network.PathPayload{Found: false, From: -1, To: -1},
		})
		return nil
	})
}

// SpawnUnit places a new unit centered on a cell and returns its ID
func (s *Session) SpawnUnit(player *models.Player, payload network.SpawnUnitPayload) (string, error) {
	if !player.Can(models.PermUnits) {
		return "", ErrForbidden
	}
	caps, err := unit.ParseCapabilities(payload.Capabilities)
	if err != nil {
		return "", err
	}
	if len(payload.Capabilities) == 0 {
		caps = unit.Moves
	}
	opts := []unit.Option{unit.WithCapabilities(caps)}
	if payload.IgnoreCollision {
		opts = append(opts, unit.WithIgnoreCollision())
	}

	var id string
	err = s.exec(func() error {
		cell := s.grid.Cell(payload.Cell)
		if cell == nil {
			return ErrUnknownCell
		}
		u, err := unit.New(s.grid, payload.Size, opts...)
		if err != nil {
			return err
		}
		if !u.Occupy(cell) {
			return ErrOccupied
		}

		id = uuid.NewString()
		s.units[id] = u
		s.unitIDs[u] = id
		s.BroadcastMessage(&network.ServerMessage{
			Type:    network.MsgTypeUnitUpdate,
			Payload: s.unitPayload(id, u, nil),
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	log.Printf("Player %s spawned unit %s at cell %d", player.Username, id, payload.Cell)
	return id, nil
}

// MoveUnit moves a unit to a cell and broadcasts the route taken
func (s *Session) MoveUnit(player *models.Player, payload network.MoveUnitPayload) error {
	if !player.Can(models.PermUnits) {
		return ErrForbidden
	}
	return s.exec(func() error {
		u, ok := s.units[payload.UnitID]
		if !ok {
			return ErrUnknownUnit
		}
		dest := s.grid.Cell(payload.Cell)
		if dest == nil {
			return ErrUnknownCell
		}
		route, ok := u.Move(dest)
		if !ok {
			return ErrNoRoute
		}
		s.BroadcastMessage(&network.ServerMessage{
			Type:    network.MsgTypeUnitUpdate,
			Payload: s.unitPayload(payload.UnitID, u, route),
		})
		return nil
	})
}

// RemoveUnit lifts a unit off the grid and forgets it
func (s *Session) RemoveUnit(player *models.Player, payload network.RemoveUnitPayload) error {
	if !player.Can(models.PermUnits) {
		return ErrForbidden
	}
	return s.exec(func() error {
		u, ok := s.units[payload.UnitID]
		if !ok {
			return ErrUnknownUnit
		}
		u.Unoccupy()
		delete(s.units, payload.UnitID)
		delete(s.unitIDs, u)
		s.BroadcastMessage(&network.ServerMessage{
			Type:    network.MsgTypeUnitRemoved,
			Payload: network.UnitRemovedPayload{UnitID: payload.UnitID},
		})
		return nil
	})
}

// FillDistances starts a distance fill from a cell, cancelling any fill
// already running
func (s *Session) FillDistances(payload network.FillDistancesPayload) error {
	return s.exec(func() error {
		origin := s.grid.Cell(payload.Cell)
		if origin == nil {
			return ErrUnknownCell
		}
		if s.fillCancel != nil {
			s.fillCancel()
		}
		ctx, cancel := context.WithCancel(s.ctx)
		s.fillCancel = cancel
		go s.runFill(ctx, cancel, s.grid.NewDistanceFill(origin), origin.Index())
		return nil
	})
}

// runFill submits one fill step per tick until the fill is done or cancelled
func (s *Session) runFill(ctx context.Context, cancel context.CancelFunc, fill *grid.DistanceFill, origin int) {
	ticker := time.NewTicker(s.fillDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.submit(func() {
				if ctx.Err() != nil {
					return
				}
				layer := fill.Step()
				if len(layer) == 0 {
					cancel()
					return
				}
				s.BroadcastMessage(&network.ServerMessage{
					Type: network.MsgTypeFillStep,
					Payload: network.FillStepPayload{
						Origin:   origin,
						Distance: layer[0].Distance(),
						Cells:    cellIndices(layer),
					},
				})
			})
		}
	}
}

func (s *Session) cellStates(cells []*grid.Cell) []network.CellState {
	states := make([]network.CellState, 0, len(cells))
	for _, c := range cells {
		coord := c.Coordinate()
		state := network.CellState{
			Index:        c.Index(),
			X:            coord.X,
			Y:            coord.Y,
			Z:            coord.Z,
			Color:        c.Color(),
			Impassable:   c.Impassable(),
			MovementCost: c.MovementCost(),
			Highlight:    c.Highlight().String(),
			Turn:         c.Turn(),
		}
		for _, o := range c.Units() {
			if u, ok := o.(*unit.Unit); ok {
				state.Units = append(state.Units, s.unitIDs[u])
			}
		}
		states = append(states, state)
	}
	return states
}

func (s *Session) unitPayload(id string, u *unit.Unit, route []*grid.Cell) network.UnitPayload {
	center := -1
	if c := u.Center(); c != nil {
		center = c.Index()
	}
	return network.UnitPayload{
		UnitID:          id,
		Size:            u.Size(),
		IgnoreCollision: u.IgnoresCollision(),
		Capabilities:    u.Capabilities().Names(),
		Center:          center,
		Cells:           cellIndices(u.OccupiedCells()),
		Route:           cellIndices(route),
	}
}

func cellIndices(cells []*grid.Cell) []int {
	if cells == nil {
		return nil
	}
	out := make([]int, len(cells))
	for i, c := range cells {
		out[i] = c.Index()
	}
	return out
}
