package scene

import (
	"fmt"
	"math"

	"solar-system-server/internal/catalog"
	"solar-system-server/internal/shared/random"
)

const (
	minMass = 1
	maxMass = 1000
)

// Inspector answers pointer events over a scene. Descriptive attributes are
// drawn fresh on every hit and are never stored on the body.
type Inspector struct {
	catalogs *catalog.Store
	rng      random.Source
}

func NewInspector(catalogs *catalog.Store, rng random.Source) *Inspector {
	return &Inspector{catalogs: catalogs, rng: rng}
}

// Move hit-tests the pointer against the scene and returns the tooltip to show.
func (i *Inspector) Move(s *Scene, p Pointer) Tooltip {
	if s == nil {
		return Tooltip{}
	}

	x, y := p.Local()
	body, ok := HitTest(s.Bodies, x, y)
	if !ok {
		return Tooltip{}
	}

	cat := i.catalogs.Get()
	return Tooltip{
		Visible:     true,
		Left:        p.ClientX,
		Top:         p.ClientY,
		Name:        body.Name,
		Mass:        fmt.Sprintf("%.2f Earth masses", random.Between(i.rng, minMass, maxMass)),
		Composition: random.Choice(i.rng, cat.Compositions),
		Atmosphere:  random.Choice(i.rng, cat.Atmospheres),
	}
}

// Leave always hides the tooltip.
func (i *Inspector) Leave() Tooltip {
	return Tooltip{}
}

// HitTest returns the first body, in placement order, whose disc contains
// (x, y). Points exactly on the edge count as hits.
func HitTest(bodies []Body, x, y float64) (Body, bool) {
	for _, b := range bodies {
		if math.Hypot(x-b.X, y-b.Y) <= b.Radius {
			return b, true
		}
	}
	return Body{}, false
}
