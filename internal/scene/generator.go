package scene

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"

	"solar-system-server/internal/catalog"
	"solar-system-server/internal/shared/random"
)

// Unique-name draws allowed per pool entry before falling back to a scan.
const nameAttemptsPerEntry = 8

var (
	orbitColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x33}
	textColor  = color.White
)

type Generator struct {
	layout   Layout
	catalogs *catalog.Store
	rng      random.Source
	now      func() time.Time
	logger   *slog.Logger
}

func NewGenerator(layout Layout, catalogs *catalog.Store, rng random.Source, logger *slog.Logger) *Generator {
	logger.Debug("Initializing scene generator",
		"width", layout.Width,
		"height", layout.Height,
		"min_bodies", layout.MinBodies,
		"max_bodies", layout.MaxBodies)

	return &Generator{
		layout:   layout,
		catalogs: catalogs,
		rng:      rng,
		now:      time.Now,
		logger:   logger,
	}
}

func (g *Generator) Layout() Layout {
	return g.layout
}

// Generate draws a new scene on a fresh surface. Candidates that come too
// close to an already placed body are dropped without a retry, so a scene may
// hold fewer bodies than requested.
func (g *Generator) Generate() *Scene {
	l := g.layout
	cat := g.catalogs.Get()

	canvas := NewCanvas(l.Width, l.Height)
	canvas.Clear()

	systemName := random.Choice(g.rng, cat.SystemNames)
	cx, cy := l.Center()
	canvas.FillCircle(cx, cy, l.StarRadius, cat.Star())

	requested := l.MinBodies + g.rng.Intn(l.MaxBodies-l.MinBodies+1)
	used := make(map[string]bool, requested)
	bodies := make([]Body, 0, requested)

	for i := 0; i < requested; i++ {
		distance := l.ShellDistance(i, requested)
		angle := g.rng.Float64() * math.Pi * 2
		candidate := Body{
			X:      cx + distance*math.Cos(angle),
			Y:      cy + distance*math.Sin(angle),
			Radius: random.Between(g.rng, l.MinRadius, l.MaxRadius),
		}
		fill := random.Choice(g.rng, cat.Colors())
		candidate.Name = uniqueName(g.rng, cat.PlanetNames, used)
		used[candidate.Name] = true

		if overlapsAny(l, candidate, bodies) {
			continue
		}

		canvas.StrokeCircle(cx, cy, distance, l.OrbitLineWidth, orbitColor)
		canvas.FillCircle(candidate.X, candidate.Y, candidate.Radius, fill)
		canvas.FillLabel(candidate.Name, candidate.X-candidate.Radius, candidate.Y+candidate.Radius+l.LabelOffset, textColor)

		bodies = append(bodies, candidate)
	}

	s := &Scene{
		SystemName:  systemName,
		Requested:   requested,
		Bodies:      bodies,
		GeneratedAt: g.now(),
	}
	canvas.FillTitle(s.Title(), l.TitleX, l.TitleY, textColor)
	s.Surface = canvas.Image()

	g.logger.Debug("Scene generated",
		"component", "scene_generator",
		"system", systemName,
		"requested", requested,
		"placed", len(bodies))

	return s
}

func overlapsAny(l Layout, candidate Body, placed []Body) bool {
	for _, other := range placed {
		if l.Overlaps(candidate, other) {
			return true
		}
	}
	return false
}

// uniqueName draws from pool until it finds a name not in used. The number of
// draws is capped; past the cap the first unused pool name is taken, and once
// the pool is exhausted a numeric suffix is appended to the last draw.
func uniqueName(rng random.Source, pool []string, used map[string]bool) string {
	name := random.Choice(rng, pool)
	for attempt := 1; used[name] && attempt < nameAttemptsPerEntry*len(pool); attempt++ {
		name = random.Choice(rng, pool)
	}
	if !used[name] {
		return name
	}

	for _, candidate := range pool {
		if !used[candidate] {
			return candidate
		}
	}

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", name, n)
		if !used[candidate] {
			return candidate
		}
	}
}
