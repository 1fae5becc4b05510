package scene

import (
	"fmt"
	"image"
	"time"
)

// Body is a placed orbiting object. Bodies are never modified after placement.
type Body struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Scene is one generated arrangement of a star and its bodies together with
// the rendered surface. A stored scene is replaced wholesale, never edited.
type Scene struct {
	SystemName  string
	Requested   int
	Bodies      []Body
	GeneratedAt time.Time
	Surface     *image.RGBA
}

func (s *Scene) Title() string {
	return fmt.Sprintf("Solar System: %s", s.SystemName)
}

// Summary is the JSON view of a scene, without the pixels.
type Summary struct {
	SystemName  string    `json:"system_name"`
	Title       string    `json:"title"`
	Requested   int       `json:"requested"`
	Placed      int       `json:"placed"`
	Bodies      []Body    `json:"bodies"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (s *Scene) Summary() Summary {
	bodies := s.Bodies
	if bodies == nil {
		bodies = []Body{}
	}

	bounds := s.Surface.Bounds()
	return Summary{
		SystemName:  s.SystemName,
		Title:       s.Title(),
		Requested:   s.Requested,
		Placed:      len(bodies),
		Bodies:      bodies,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		GeneratedAt: s.GeneratedAt,
	}
}

// Pointer is a pointer event position. ClientX/ClientY are in page space and
// OffsetX/OffsetY locate the surface's top-left corner in that same space.
type Pointer struct {
	ClientX float64
	ClientY float64
	OffsetX float64
	OffsetY float64
}

// Local translates the pointer into surface coordinates.
func (p Pointer) Local() (float64, float64) {
	return p.ClientX - p.OffsetX, p.ClientY - p.OffsetY
}

type Tooltip struct {
	Visible     bool    `json:"visible"`
	Left        float64 `json:"left"`
	Top         float64 `json:"top"`
	Name        string  `json:"name,omitempty"`
	Mass        string  `json:"mass,omitempty"`
	Composition string  `json:"composition,omitempty"`
	Atmosphere  string  `json:"atmosphere,omitempty"`
}

type AnimationStatus struct {
	Animating bool `json:"animating"`
	Changed   bool `json:"changed"`
}
