package scene

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	labelFontSize = 12
	titleFontSize = 18

	// Control point distance for approximating a quarter circle with one cubic Bézier.
	bezierCircle = 0.5522847498
)

var (
	regularOnce sync.Once
	regularFont *sfnt.Font
)

func parsedRegular() *sfnt.Font {
	regularOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			slog.With("component", "canvas").Warn("Failed to parse Go Regular, falling back to basicfont", "error", err)
			return
		}
		regularFont = f
	})
	return regularFont
}

// newFace builds a face at size pixels. Faces cache glyph state and must not be
// shared between goroutines, so each canvas gets its own.
func newFace(size float64) font.Face {
	f := parsedRegular()
	if f == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// Canvas is the drawing surface a scene is rendered on. It offers the few
// immediate-mode primitives generation needs.
type Canvas struct {
	img       *image.RGBA
	raster    *vector.Rasterizer
	labelFace font.Face
	titleFace font.Face
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		raster:    vector.NewRasterizer(width, height),
		labelFace: newFace(labelFontSize),
		titleFace: newFace(titleFontSize),
	}
}

// Clear resets every pixel to fully transparent.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color) {
	c.begin()
	c.circle(cx, cy, r, false)
	c.paint(col)
}

// StrokeCircle draws a ring of the given line width centered on radius r.
func (c *Canvas) StrokeCircle(cx, cy, r, lineWidth float64, col color.Color) {
	half := lineWidth / 2
	c.begin()
	c.circle(cx, cy, r+half, false)
	if inner := r - half; inner > 0 {
		// Opposite winding cancels the coverage inside the inner edge.
		c.circle(cx, cy, inner, true)
	}
	c.paint(col)
}

func (c *Canvas) FillLabel(text string, x, y float64, col color.Color) {
	c.fillText(text, x, y, c.labelFace, col)
}

func (c *Canvas) FillTitle(text string, x, y float64, col color.Color) {
	c.fillText(text, x, y, c.titleFace, col)
}

// Image returns the surface. The canvas must not be drawn on afterwards.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) begin() {
	b := c.img.Bounds()
	c.raster.Reset(b.Dx(), b.Dy())
	c.raster.DrawOp = draw.Over
}

func (c *Canvas) paint(col color.Color) {
	c.raster.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *Canvas) circle(cx, cy, r float64, reverse bool) {
	k := r * bezierCircle
	x, y := float32(cx), float32(cy)
	rr, kk := float32(r), float32(k)

	if !reverse {
		c.raster.MoveTo(x+rr, y)
		c.raster.CubeTo(x+rr, y+kk, x+kk, y+rr, x, y+rr)
		c.raster.CubeTo(x-kk, y+rr, x-rr, y+kk, x-rr, y)
		c.raster.CubeTo(x-rr, y-kk, x-kk, y-rr, x, y-rr)
		c.raster.CubeTo(x+kk, y-rr, x+rr, y-kk, x+rr, y)
	} else {
		c.raster.MoveTo(x+rr, y)
		c.raster.CubeTo(x+rr, y-kk, x+kk, y-rr, x, y-rr)
		c.raster.CubeTo(x-kk, y-rr, x-rr, y-kk, x-rr, y)
		c.raster.CubeTo(x-rr, y+kk, x-kk, y+rr, x, y+rr)
		c.raster.CubeTo(x+kk, y+rr, x+rr, y+kk, x+rr, y)
	}
	c.raster.ClosePath()
}

// fillText draws text with its alphabetic baseline at y.
func (c *Canvas) fillText(text string, x, y float64, face font.Face, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(text)
}
