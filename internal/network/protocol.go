package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypeJoin           = "join"
	MsgTypeLeave          = "leave"
	MsgTypePing           = "ping"
	MsgTypeEditorSettings = "editor_settings"
	MsgTypePointer        = "pointer"
	MsgTypeFindPath       = "find_path"
	MsgTypeClearPath      = "clear_path"
	MsgTypeSpawnUnit      = "spawn_unit"
	MsgTypeMoveUnit       = "move_unit"
	MsgTypeRemoveUnit     = "remove_unit"
	MsgTypeFillDistances  = "fill_distances"
)

// Message types - Server → Client
const (
	MsgTypeWelcome      = "welcome"
	MsgTypePlayerJoined = "player_joined"
	MsgTypePlayerLeft   = "player_left"
	MsgTypeGridChunk    = "grid_chunk"
	MsgTypeCellsChanged = "cells_changed"
	MsgTypePath         = "path"
	MsgTypeUnitUpdate   = "unit_update"
	MsgTypeUnitRemoved  = "unit_removed"
	MsgTypeFillStep     = "fill_step"
	MsgTypeError        = "error"
	MsgTypePong         = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type" jsonschema:"required"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type" jsonschema:"required"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// EditorSettingsPayload replaces the brush settings
type EditorSettingsPayload struct {
	Enabled      bool   `json:"enabled"`
	Mode         string `json:"mode"`
	BrushSize    int    `json:"brush_size"`
	Color        uint32 `json:"color"`
	MovementCost int    `json:"movement_cost"`
}

// PointerPayload is one pointer sample in grid-local pixels
type PointerPayload struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Pressed bool    `json:"pressed"`
}

// FindPathPayload requests a path between two cell indices
type FindPathPayload struct {
	From            int  `json:"from"`
	To              int  `json:"to"`
	Speed           int  `json:"speed"`
	IgnoreCollision bool `json:"ignore_collision"`
}

// SpawnUnitPayload places a new unit centered on a cell
type SpawnUnitPayload struct {
	Cell            int      `json:"cell"`
	Size            int      `json:"size"`
	IgnoreCollision bool     `json:"ignore_collision"`
	Capabilities    []string `json:"capabilities,omitempty"`
}

// MoveUnitPayload moves a unit to a cell
type MoveUnitPayload struct {
	UnitID string `json:"unit_id"`
	Cell   int    `json:"cell"`
}

// RemoveUnitPayload removes a unit from the grid
type RemoveUnitPayload struct {
	UnitID string `json:"unit_id"`
}

// FillDistancesPayload starts a distance fill from a cell
type FillDistancesPayload struct {
	Cell int `json:"cell"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after successful connection
type WelcomePayload struct {
	PlayerID      string        `json:"player_id"`
	Username      string        `json:"username"`
	SessionID     string        `json:"session_id"`
	Grid          GridInfo      `json:"grid"`
	SessionStatus SessionStatus `json:"session_status"`
}

// GridInfo describes the grid dimensions
type GridInfo struct {
	CellCountX  int     `json:"cell_count_x"`
	CellCountZ  int     `json:"cell_count_z"`
	ChunkCountX int     `json:"chunk_count_x"`
	ChunkCountZ int     `json:"chunk_count_z"`
	OuterRadius float64 `json:"outer_radius"`
}

// CellState is the renderable state of one cell
type CellState struct {
	Index        int      `json:"index"`
	X            int      `json:"x"`
	Y            int      `json:"y"`
	Z            int      `json:"z"`
	Color        uint32   `json:"color"`
	Impassable   bool     `json:"impassable"`
	MovementCost int      `json:"movement_cost"`
	Highlight    string   `json:"highlight,omitempty"`
	Turn         int      `json:"turn,omitempty"`
	Units        []string `json:"units,omitempty"`
}

// GridChunkPayload carries the cells of one chunk
type GridChunkPayload struct {
	ChunkX int         `json:"chunk_x"`
	ChunkZ int         `json:"chunk_z"`
	Cells  []CellState `json:"cells"`
}

// CellsChangedPayload carries cells changed by an edit
type CellsChangedPayload struct {
	Cells []CellState `json:"cells"`
}

// PathPayload reports the result of a path search
type PathPayload struct {
	Found    bool  `json:"found"`
	From     int   `json:"from"`
	To       int   `json:"to"`
	Cells    []int `json:"cells,omitempty"`
	Distance int   `json:"distance,omitempty"`
}

// UnitPayload describes a unit and the cells it occupies
type UnitPayload struct {
	UnitID          string   `json:"unit_id"`
	Size            int      `json:"size"`
	IgnoreCollision bool     `json:"ignore_collision"`
	Capabilities    []string `json:"capabilities,omitempty"`
	Center          int      `json:"center"`
	Cells           []int    `json:"cells"`
	Route           []int    `json:"route,omitempty"`
}

// UnitRemovedPayload notifies clients that a unit is gone
type UnitRemovedPayload struct {
	UnitID string `json:"unit_id"`
}

// FillStepPayload carries one layer of a distance fill
type FillStepPayload struct {
	Origin   int   `json:"origin"`
	Distance int   `json:"distance"`
	Cells    []int `json:"cells"`
}

// PlayerJoinedPayload notifies clients when a player joins
type PlayerJoinedPayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// PlayerLeftPayload notifies clients when a player leaves
type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// SessionStatus represents the current session state
type SessionStatus struct {
	State       string `json:"state"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	UnitCount   int    `json:"unit_count"`
	Uptime      int64  `json:"uptime"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
