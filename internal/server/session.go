package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gravitas-games/hexgrid/internal/config"
	"github.com/gravitas-games/hexgrid/internal/editor"
	"github.com/gravitas-games/hexgrid/internal/grid"
	"github.com/gravitas-games/hexgrid/internal/hex"
	"github.com/gravitas-games/hexgrid/internal/network"
	"github.com/gravitas-games/hexgrid/internal/unit"
	"github.com/gravitas-games/hexgrid/pkg/models"
)

var (
	// ErrSessionClosed is returned for commands sent after Close
	ErrSessionClosed = errors.New("session closed")
	// ErrSessionFull is returned when MaxPlayers is reached
	ErrSessionFull = errors.New("session full")
	// ErrUnknownCell is returned for cell indices outside the grid
	ErrUnknownCell = errors.New("unknown cell")
	// ErrUnknownUnit is returned for unit IDs the session does not hold
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrForbidden is returned when a player lacks a permission
	ErrForbidden = errors.New("permission denied")
	// ErrOccupied is returned when a unit cannot stand on a cell
	ErrOccupied = errors.New("cell occupied")
	// ErrNoRoute is returned when a unit cannot reach its destination
	ErrNoRoute = errors.New("no route")
)

// Client receives server messages
type Client interface {
	SendMessage(msg *network.ServerMessage)
}

// Session owns one grid and everything placed on it. All grid access
// happens on the session goroutine; other goroutines submit commands.
type Session struct {
	ID        string
	CreatedAt time.Time

	// Player management
	players map[string]*models.Player // playerID -> Player
	clients map[string]Client         // playerID -> Client
	mu      sync.RWMutex

	// Grid state, owned by the run goroutine
	grid    *grid.Grid
	editors map[string]*editor.Editor // playerID -> brush state
	units   map[string]*unit.Unit
	unitIDs map[*unit.Unit]string

	// Distance fill, at most one running
	fillCancel context.CancelFunc
	fillDelay  time.Duration

	commands chan func()
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}

	// Configuration
	config *config.Config
}

// NewSession creates a new editing session and starts its command loop
func NewSession(id string, cfg *config.Config) (*Session, error) {
	log.Printf("Creating session: %s", id)

	g, err := grid.New(cfg.Grid.ChunkCountX, cfg.Grid.ChunkCountZ, grid.Options{
		Metrics: hex.Metrics{OuterRadius: cfg.Grid.OuterRadius},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}

	if cfg.Terrain.Enabled {
		blocked := grid.GenerateTerrain(g, grid.TerrainConfig{
			Seed:                cfg.Terrain.Seed,
			Frequency:           cfg.Terrain.Frequency,
			Octaves:             cfg.Terrain.Octaves,
			ImpassableThreshold: cfg.Terrain.ImpassableThreshold,
			MaxMovementCost:     cfg.Terrain.MaxMovementCost,
		})
		log.Printf("Terrain seeded with %s impassable cells", humanize.Comma(int64(blocked)))
	}

	fillDelay := time.Duration(cfg.Fill.StepDelayMs) * time.Millisecond
	if fillDelay <= 0 {
		fillDelay = time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	session := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		players:   make(map[string]*models.Player),
		clients:   make(map[string]Client),
		grid:      g,
		editors:   make(map[string]*editor.Editor),
		units:     make(map[string]*unit.Unit),
		unitIDs:   make(map[*unit.Unit]string),
		fillDelay: fillDelay,
		commands:  make(chan func(), 64),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		config:    cfg,
	}
	go session.run()

	log.Printf("Session %s created with %s cells in %d chunks", id,
		humanize.Comma(int64(g.CellCount())), g.ChunkCountX()*g.ChunkCountZ())
	return session, nil
}

// run executes submitted commands one at a time
func (s *Session) run() {
	defer close(s.done)
	for {
		select {
		case cmd := <-s.commands:
			cmd()
		case <-s.ctx.Done():
			return
		}
	}
}

// Close stops the command loop and any running fill
func (s *Session) Close() {
	s.cancel()
	<-s.done
	log.Printf("Session %s closed", s.ID)
}

// submit queues fn without waiting for it
func (s *Session) submit(fn func()) bool {
	select {
	case s.commands <- fn:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// exec runs fn on the session goroutine and waits for its result
func (s *Session) exec(fn func() error) error {
	errc := make(chan error, 1)
	if !s.submit(func() { errc <- fn() }) {
		return ErrSessionClosed
	}
	select {
	case err := <-errc:
		return err
	case <-s.ctx.Done():
		return ErrSessionClosed
	}
}

// GridInfo returns the grid dimensions
func (s *Session) GridInfo() network.GridInfo {
	return network.GridInfo{
		CellCountX:  s.grid.CellCountX(),
		CellCountZ:  s.grid.CellCountZ(),
		ChunkCountX: s.grid.ChunkCountX(),
		ChunkCountZ: s.grid.ChunkCountZ(),
		OuterRadius: s.grid.Metrics().OuterRadius,
	}
}

// AddPlayer adds a player to the session
func (s *Session) AddPlayer(player *models.Player, client Client) error {
	s.mu.Lock()
	if len(s.players) >= s.config.Session.MaxPlayers {
		s.mu.Unlock()
		return ErrSessionFull
	}
	s.players[player.ID] = player
	s.clients[player.ID] = client
	s.mu.Unlock()

	settings := s.defaultEditorSettings()
	err := s.exec(func() error {
		s.editors[player.ID] = editor.New(s.grid, settings)
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Player %s (%s) joined session %s", player.Username, player.ID, s.ID)
	return nil
}

// RemovePlayer removes a player from the session
func (s *Session) RemovePlayer(playerID string) {
	s.mu.Lock()
	player, exists := s.players[playerID]
	if exists {
		delete(s.players, playerID)
		delete(s.clients, playerID)
	}
	s.mu.Unlock()

	if !exists {
		return
	}
	s.submit(func() { delete(s.editors, playerID) })
	log.Printf("Player %s (%s) left session %s", player.Username, playerID, s.ID)
}

// GetPlayer retrieves a player by ID
func (s *Session) GetPlayer(playerID string) (*models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, exists := s.players[playerID]
	return player, exists
}

// GetPlayers returns all players in the session
func (s *Session) GetPlayers() []*models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*models.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, player)
	}
	return players
}

// BroadcastMessage sends a message to all connected players
func (s *Session) BroadcastMessage(msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, client := range s.clients {
		client.SendMessage(msg)
	}
}

// BroadcastExcept sends a message to all players except the specified client
func (s *Session) BroadcastExcept(exclude Client, msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, client := range s.clients {
		if client != exclude {
			client.SendMessage(msg)
		}
	}
}

// GetStatus returns the current session status
func (s *Session) GetStatus() network.SessionStatus {
	s.mu.RLock()
	players := len(s.players)
	s.mu.RUnlock()

	units := 0
	s.exec(func() error {
		units = len(s.units)
		return nil
	})

	state := "waiting"
	if players > 0 {
		state = "running"
	}
	return network.SessionStatus{
		State:       state,
		PlayerCount: players,
		MaxPlayers:  s.config.Session.MaxPlayers,
		UnitCount:   units,
		Uptime:      int64(time.Since(s.CreatedAt).Seconds()),
	}
}

func (s *Session) defaultEditorSettings() editor.Settings {
	mode, err := editor.ParseMode(s.config.Editor.Mode)
	if err != nil {
		log.Printf("Invalid editor mode %q in config, using none", s.config.Editor.Mode)
		mode = editor.ModeNone
	}
	return editor.Settings{
		Enabled:      s.config.Editor.Enabled,
		Mode:         mode,
		BrushSize:    s.config.Editor.BrushSize,
		Color:        s.config.Editor.Color,
		MovementCost: s.config.Editor.MovementCost,
	}
}
