package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/gravitas-games/hexgrid/internal/config"
	"github.com/gravitas-games/hexgrid/internal/hex"
	"github.com/gravitas-games/hexgrid/internal/server"
)

func main() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "./configs/server.yaml"
	}
	configPath := flag.String("config", defaultPath, "path to the grid server config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load grid config %s: %v", *configPath, err)
	}
	for _, line := range describe(cfg) {
		log.Println(line)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build grid session: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Grid editor accepting websocket clients on ws://%s/ws", addr)
		if err := srv.Start(addr); err != nil {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Fatalf("Grid server error: %v", err)
	case sig := <-sigChan:
		log.Printf("Received %v, closing grid session", sig)
	}

	if err := srv.Shutdown(); err != nil {
		log.Printf("Error closing grid session: %v", err)
	}
	log.Println("Grid server stopped")
}

// describe summarizes the grid a config will build
func describe(cfg *config.Config) []string {
	cellsX := cfg.Grid.ChunkCountX * hex.DefaultChunkSizeX
	cellsZ := cfg.Grid.ChunkCountZ * hex.DefaultChunkSizeZ
	lines := []string{
		fmt.Sprintf("Hex grid: %dx%d chunks, %dx%d cells (%s total), outer radius %.1fpx",
			cfg.Grid.ChunkCountX, cfg.Grid.ChunkCountZ, cellsX, cellsZ,
			humanize.Comma(int64(cellsX*cellsZ)), cfg.Grid.OuterRadius),
	}
	if cfg.Terrain.Enabled {
		lines = append(lines, fmt.Sprintf("Terrain: seed %d, %d octaves, movement cost up to %d",
			cfg.Terrain.Seed, cfg.Terrain.Octaves, cfg.Terrain.MaxMovementCost))
	} else {
		lines = append(lines, "Terrain: flat")
	}
	if cfg.JWT.PublicKeyURL == "" {
		lines = append(lines, "Auth: disabled, clients join as guests with full edit rights")
	} else {
		lines = append(lines, fmt.Sprintf("Auth: JWT keys from %s", cfg.JWT.PublicKeyURL))
	}
	lines = append(lines, fmt.Sprintf("Session: up to %d editors, fill step %dms",
		cfg.Session.MaxPlayers, cfg.Fill.StepDelayMs))
	return lines
}
