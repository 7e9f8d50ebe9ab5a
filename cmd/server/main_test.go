package main

import (
	"strings"
	"testing"

	"github.com/gravitas-games/hexgrid/internal/config"
)

func TestDescribe(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.ChunkCountX = 40
	cfg.Grid.ChunkCountZ = 4

	lines := describe(cfg)
	if !strings.Contains(lines[0], "200x20 cells (4,000 total)") {
		t.Fatalf("unexpected grid line %q", lines[0])
	}
	if lines[1] != "Terrain: flat" {
		t.Fatalf("unexpected terrain line %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Auth: disabled") {
		t.Fatalf("unexpected auth line %q", lines[2])
	}

	cfg.Terrain.Enabled = true
	cfg.Terrain.Seed = 7
	cfg.JWT.PublicKeyURL = "https://auth.example/key"
	lines = describe(cfg)
	if !strings.HasPrefix(lines[1], "Terrain: seed 7") {
		t.Fatalf("unexpected terrain line %q", lines[1])
	}
	if lines[2] != "Auth: JWT keys from https://auth.example/key" {
		t.Fatalf("unexpected auth line %q", lines[2])
	}
}
