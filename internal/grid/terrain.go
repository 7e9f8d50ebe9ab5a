package grid

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// TerrainConfig holds terrain seeding parameters.
type TerrainConfig struct {
	Seed                int64
	Frequency           float64 // noise frequency per cell width
	Octaves             int
	ImpassableThreshold float64 // noise at or above this is impassable; >=1 disables
	MaxMovementCost     int
}

// DefaultTerrainConfig returns gentle terrain with a few blocked patches.
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		Seed:                1,
		Frequency:           0.12,
		Octaves:             3,
		ImpassableThreshold: 0.78,
		MaxMovementCost:     3,
	}
}

// GenerateTerrain sets movement costs and impassable flags from layered
// simplex noise. The same config always yields the same terrain.
// It returns the number of impassable cells.
func GenerateTerrain(g *Grid, cfg TerrainConfig) int {
	if cfg.Octaves <= 0 {
		cfg.Octaves = 1
	}
	if cfg.MaxMovementCost < 1 {
		cfg.MaxMovementCost = 1
	}
	noise := opensimplex.NewNormalized(cfg.Seed)
	inner := g.opts.Metrics.InnerRadius() * 2

	impassable := 0
	for i := range g.cells {
		c := &g.cells[i]
		// sample in cell-width units so frequency is independent of metrics
		x := c.position.X / inner
		y := c.position.Y / inner
		v := octaveNoise(noise, x, y, cfg.Octaves, cfg.Frequency, 0.5)

		c.impassable = v >= cfg.ImpassableThreshold
		if c.impassable {
			impassable++
		}
		c.SetMovementCost(1 + int(v*float64(cfg.MaxMovementCost)))
		if c.movementCost > cfg.MaxMovementCost {
			c.movementCost = cfg.MaxMovementCost
		}
	}
	return impassable
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
