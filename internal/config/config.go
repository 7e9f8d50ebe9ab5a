package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxChunks bounds the number of chunks in a grid. A joining client
// receives one message per chunk.
const MaxChunks = 192

// Config holds all server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Grid    GridConfig    `yaml:"grid"`
	Terrain TerrainConfig `yaml:"terrain"`
	Editor  EditorConfig  `yaml:"editor"`
	Fill    FillConfig    `yaml:"fill"`
	JWT     JWTConfig     `yaml:"jwt"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GridConfig holds the grid dimensions and cell metrics
type GridConfig struct {
	ChunkCountX int     `yaml:"chunk_count_x"`
	ChunkCountZ int     `yaml:"chunk_count_z"`
	OuterRadius float64 `yaml:"outer_radius"` // pixels
}

// TerrainConfig holds noise terrain seeding settings
type TerrainConfig struct {
	Enabled             bool    `yaml:"enabled"`
	Seed                int64   `yaml:"seed"`
	Frequency           float64 `yaml:"frequency"`
	Octaves             int     `yaml:"octaves"`
	ImpassableThreshold float64 `yaml:"impassable_threshold"`
	MaxMovementCost     int     `yaml:"max_movement_cost"`
}

// EditorConfig holds the initial brush settings
type EditorConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Mode         string `yaml:"mode"`
	BrushSize    int    `yaml:"brush_size"`
	Color        uint32 `yaml:"color"`
	MovementCost int    `yaml:"movement_cost"`
}

// FillConfig holds distance fill settings
type FillConfig struct {
	StepDelayMs int `yaml:"step_delay_ms"`
}

// JWTConfig holds JWT authentication settings.
// Authentication is disabled when PublicKeyURL is empty.
type JWTConfig struct {
	Issuer              string `yaml:"issuer"`
	PublicKeyURL        string `yaml:"public_key_url"`
	PublicKeyRefreshHrs int    `yaml:"public_key_refresh_hours"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
}

// SessionConfig holds editing session settings
type SessionConfig struct {
	MaxPlayers int `yaml:"max_players"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets defaults for values not provided
func (cfg *Config) applyDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Grid.ChunkCountX == 0 {
		cfg.Grid.ChunkCountX = 4
	}
	if cfg.Grid.ChunkCountZ == 0 {
		cfg.Grid.ChunkCountZ = 3
	}
	if cfg.Grid.OuterRadius == 0 {
		cfg.Grid.OuterRadius = 10
	}
	if cfg.Terrain.Frequency == 0 {
		cfg.Terrain.Frequency = 0.12
	}
	if cfg.Terrain.Octaves == 0 {
		cfg.Terrain.Octaves = 3
	}
	if cfg.Terrain.ImpassableThreshold == 0 {
		cfg.Terrain.ImpassableThreshold = 0.78
	}
	if cfg.Terrain.MaxMovementCost == 0 {
		cfg.Terrain.MaxMovementCost = 3
	}
	if cfg.Editor.Mode == "" {
		cfg.Editor.Mode = "none"
	}
	if cfg.Editor.MovementCost == 0 {
		cfg.Editor.MovementCost = 1
	}
	if cfg.Fill.StepDelayMs == 0 {
		cfg.Fill.StepDelayMs = 100
	}
	if cfg.JWT.PublicKeyRefreshHrs == 0 {
		cfg.JWT.PublicKeyRefreshHrs = 24
	}
	if cfg.Redis.BlacklistPrefix == "" {
		cfg.Redis.BlacklistPrefix = "blacklist:"
	}
	if cfg.Session.MaxPlayers == 0 {
		cfg.Session.MaxPlayers = 16
	}
}

// Validate rejects settings the grid cannot be built with
func (cfg *Config) Validate() error {
	if cfg.Grid.ChunkCountX < 1 || cfg.Grid.ChunkCountZ < 1 {
		return fmt.Errorf("grid chunk counts must be positive, got %dx%d", cfg.Grid.ChunkCountX, cfg.Grid.ChunkCountZ)
	}
	if cfg.Grid.ChunkCountX > MaxChunks || cfg.Grid.ChunkCountZ > MaxChunks ||
		cfg.Grid.ChunkCountX*cfg.Grid.ChunkCountZ > MaxChunks {
		return fmt.Errorf("grid of %dx%d chunks exceeds %d chunks", cfg.Grid.ChunkCountX, cfg.Grid.ChunkCountZ, MaxChunks)
	}
	if cfg.Grid.OuterRadius <= 0 {
		return fmt.Errorf("grid outer radius must be positive, got %v", cfg.Grid.OuterRadius)
	}
	if cfg.Editor.BrushSize < 0 {
		return fmt.Errorf("brush size must not be negative, got %d", cfg.Editor.BrushSize)
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	return nil
}
