// Package catalog holds the name pools, palette and descriptive attribute
// lists that scene generation draws from.
package catalog

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Catalog struct {
	StarColor    string   `yaml:"star_color"`
	Palette      []string `yaml:"palette"`
	PlanetNames  []string `yaml:"planet_names"`
	SystemNames  []string `yaml:"system_names"`
	Compositions []string `yaml:"compositions"`
	Atmospheres  []string `yaml:"atmospheres"`

	star   color.RGBA
	colors []color.RGBA
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads an override file on top of the embedded catalog. Only the name
// pools may change; the star color, palette, compositions and atmospheres are
// fixed and may be omitted or restated but not altered.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	c, err := ParseOverride(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

func ParseOverride(data []byte) (*Catalog, error) {
	var o Catalog
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	base := Default()

	switch {
	case o.StarColor == "":
		o.StarColor = base.StarColor
	case !strings.EqualFold(o.StarColor, base.StarColor):
		return nil, fmt.Errorf("star_color is fixed to %s", base.StarColor)
	}

	fixed := []struct {
		field string
		got   *[]string
		want  []string
		fold  bool
	}{
		{"palette", &o.Palette, base.Palette, true},
		{"compositions", &o.Compositions, base.Compositions, false},
		{"atmospheres", &o.Atmospheres, base.Atmospheres, false},
	}
	for _, f := range fixed {
		if len(*f.got) == 0 {
			*f.got = f.want
			continue
		}
		if !sameList(*f.got, f.want, f.fold) {
			return nil, fmt.Errorf("%s is fixed and cannot be overridden", f.field)
		}
	}

	if len(o.PlanetNames) == 0 {
		o.PlanetNames = base.PlanetNames
	}
	if len(o.SystemNames) == 0 {
		o.SystemNames = base.SystemNames
	}

	if err := o.validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

func sameList(got, want []string, fold bool) bool {
	if !fold {
		return slices.Equal(got, want)
	}
	return slices.EqualFunc(got, want, strings.EqualFold)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	lists := []struct {
		field string
		items []string
	}{
		{"palette", c.Palette},
		{"planet_names", c.PlanetNames},
		{"system_names", c.SystemNames},
		{"compositions", c.Compositions},
		{"atmospheres", c.Atmospheres},
	}
	for _, l := range lists {
		if len(l.items) == 0 {
			return fmt.Errorf("%s must not be empty", l.field)
		}
	}

	star, err := parseHex(c.StarColor)
	if err != nil {
		return fmt.Errorf("star_color: %w", err)
	}
	c.star = star

	c.colors = make([]color.RGBA, 0, len(c.Palette))
	for i, hex := range c.Palette {
		rgba, err := parseHex(hex)
		if err != nil {
			return fmt.Errorf("palette[%d]: %w", i, err)
		}
		c.colors = append(c.colors, rgba)
	}

	return nil
}

func parseHex(hex string) (color.RGBA, error) {
	parsed, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := parsed.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func (c *Catalog) Star() color.RGBA {
	return c.star
}

// Colors returns the parsed palette, in file order.
func (c *Catalog) Colors() []color.RGBA {
	return c.colors
}
