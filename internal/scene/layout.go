package scene

import "math"

// Layout holds the fixed geometry of a scene.
type Layout struct {
	Width  int
	Height int

	StarRadius float64

	MinRadius   float64
	MaxRadius   float64
	MinDistance float64
	MaxDistance float64

	MinBodies int
	MaxBodies int

	// Minimum gap between two bodies, as a multiple of MaxRadius.
	SpacingFactor float64

	OrbitLineWidth float64
	LabelOffset    float64
	TitleX         float64
	TitleY         float64
}

func DefaultLayout() Layout {
	return Layout{
		Width:          800,
		Height:         600,
		StarRadius:     30,
		MinRadius:      10,
		MaxRadius:      40,
		MinDistance:    120,
		MaxDistance:    300,
		MinBodies:      2,
		MaxBodies:      11,
		SpacingFactor:  2.5,
		OrbitLineWidth: 1,
		LabelOffset:    15,
		TitleX:         20,
		TitleY:         30,
	}
}

func (l Layout) Center() (float64, float64) {
	return float64(l.Width) / 2, float64(l.Height) / 2
}

func (l Layout) MinSpacing() float64 {
	return l.MaxRadius * l.SpacingFactor
}

// ShellDistance is the orbital distance of body i out of n. Distances grow
// linearly with the index; only the angle is random.
func (l Layout) ShellDistance(i, n int) float64 {
	return l.MinDistance + float64(i)*(l.MaxDistance-l.MinDistance)/float64(n)
}

// Overlaps reports whether two bodies are closer than their radii plus the
// minimum spacing.
func (l Layout) Overlaps(a, b Body) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) < a.Radius+b.Radius+l.MinSpacing()
}
