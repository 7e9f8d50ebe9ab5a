package hex

import "math"

// Default cell and chunk sizes.
const (
	DefaultOuterRadius = 10.0
	DefaultChunkSizeX  = 5
	DefaultChunkSizeZ  = 5
)

// Metrics describes the pixel size of a pointy-top cell.
// OuterRadius is center to corner; the inner radius is center to edge.
type Metrics struct {
	OuterRadius float64
}

// DefaultMetrics returns metrics for DefaultOuterRadius.
func DefaultMetrics() Metrics {
	return Metrics{OuterRadius: DefaultOuterRadius}
}

// InnerRadius returns the distance from the center to an edge.
func (m Metrics) InnerRadius() float64 {
	return m.OuterRadius * (math.Sqrt(3) / 2)
}
