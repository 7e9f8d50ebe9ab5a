package models

import "time"

// Player represents a connected grid editor
type Player struct {
	ID          string `json:"id"`          // JWT user_id, or a generated UUID when anonymous
	Username    string `json:"username"`    // JWT claim
	Email       string `json:"email"`       // JWT claim
	Permissions int64  `json:"permissions"` // JWT claim: bitwise permission flags
	Activated   int64  `json:"activated"`   // JWT claim: activation timestamp or ban status
	Anonymous   bool   `json:"anonymous"`

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`

	// Session state
	SessionID string `json:"session_id"`
}

// Permission flags
const (
	PermEdit  int64 = 1 << 0 // brush edits
	PermUnits int64 = 1 << 1 // spawn, move and remove units
)

// AllPermissions is granted to anonymous editors when authentication is off
const AllPermissions = PermEdit | PermUnits

// IsActive checks if the player account is activated and not banned
func (p *Player) IsActive() bool {
	// activated > 0 means activated
	// activated == 0 means not activated
	// activated == -1 means banned
	return p.Anonymous || p.Activated > 0
}

// IsBanned checks if the player is banned
func (p *Player) IsBanned() bool {
	return p.Activated == -1
}

// Can reports whether the player holds every permission in perm
func (p *Player) Can(perm int64) bool {
	return p.Permissions&perm == perm
}
