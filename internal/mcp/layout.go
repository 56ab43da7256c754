package mcpserver

import (
	"math"

	"ovals/internal/domain"
)

const (
	GridSize = 10.0
	Padding  = 10.0 // gap kept around existing ovals
)

// LayoutEngine finds free space for ovals drawn by agents that did not
// say where to put them.
type LayoutEngine struct {
	gridSize float64
	padding  float64
}

func NewLayoutEngine() *LayoutEngine {
	return &LayoutEngine{
		gridSize: GridSize,
		padding:  Padding,
	}
}

// snap rounds v to the nearest grid point.
func (le *LayoutEngine) snap(v float64) float64 {
	return math.Round(v/le.gridSize) * le.gridSize
}

// NextPosition finds the first grid position, scanning rows top-to-bottom,
// where a box of size (newW, newH) fits inside maxW without touching the
// padded bounding box of any existing oval.
func (le *LayoutEngine) NextPosition(existing []domain.Box, newW, newH, maxW float64) (float64, float64) {
	if len(existing) == 0 {
		return 0, 0
	}

	occupied := make([]domain.Box, len(existing))
	for i, b := range existing {
		occupied[i] = domain.Box{
			X0: b.X0 - le.padding, Y0: b.Y0 - le.padding,
			X1: b.X1 + le.padding, Y1: b.Y1 + le.padding,
		}
	}

	lowest := 0.0
	for _, b := range existing {
		lowest = math.Max(lowest, b.Y1)
	}

	for y := 0.0; y <= lowest+le.padding; y += le.gridSize {
		for x := 0.0; x+newW <= maxW; x += le.gridSize {
			candidate := domain.Box{X0: le.snap(x), Y0: le.snap(y)}
			candidate.X1 = candidate.X0 + newW
			candidate.Y1 = candidate.Y0 + newH

			overlaps := false
			for _, occ := range occupied {
				if intersects(candidate, occ) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return candidate.X0, candidate.Y0
			}
		}
	}

	// Fallback: place below everything
	return 0, le.snap(lowest + le.padding*2)
}

func intersects(a, b domain.Box) bool {
	return a.X0 < b.X1 && a.X1 > b.X0 &&
		a.Y0 < b.Y1 && a.Y1 > b.Y0
}
