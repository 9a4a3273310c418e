// Package palette maps semantic color roles to concrete colors per theme.
//
// A chart is drawn with six roles: background, base, highlight, fill,
// guide, and text. Two themes are built in, [Dark] (light-on-dark) and
// [Light] (dark-on-light). A [Resolver] can override individual roles with
// hex colors, typically from the [palette] tables of a config file.
package palette

import (
	"image/color"
	"maps"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/radar/pkg/errors"
)

// Role is a semantic color slot.
type Role string

const (
	Background Role = "background"
	Base       Role = "base"
	Highlight  Role = "highlight"
	Fill       Role = "fill"
	Guide      Role = "guide"
	Text       Role = "text"
)

// Roles lists every role in drawing order.
var Roles = []Role{Background, Base, Highlight, Fill, Guide, Text}

// Built-in theme names.
const (
	NameDark  = "dark"
	NameLight = "light"
)

// Theme is an immutable role to color table.
type Theme struct {
	name   string
	colors map[Role]color.RGBA
}

// Name returns the theme's identifier.
func (t Theme) Name() string { return t.name }

// Color returns the color for role r. Unknown roles are transparent.
func (t Theme) Color(r Role) color.Color {
	return t.colors[r]
}

// Hex returns the color for role r as "#rrggbb".
func (t Theme) Hex(r Role) string {
	c, _ := colorful.MakeColor(t.colors[r])
	return c.Hex()
}

func newTheme(name string, colors map[Role]color.RGBA) Theme {
	return Theme{name: name, colors: maps.Clone(colors)}
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xff} }

// Dark is the light-on-dark theme.
var Dark = newTheme(NameDark, map[Role]color.RGBA{
	Background: rgb(0, 0, 0),
	Base:       rgb(100, 100, 120),
	Highlight:  rgb(230, 230, 255),
	Fill:       rgb(50, 70, 95),
	Guide:      rgb(30, 35, 50),
	Text:       rgb(200, 210, 255),
})

// Light is the dark-on-light theme.
var Light = newTheme(NameLight, map[Role]color.RGBA{
	Background: rgb(255, 255, 255),
	Base:       rgb(150, 150, 170),
	Highlight:  rgb(255, 255, 255),
	Fill:       rgb(100, 100, 150),
	Guide:      rgb(230, 230, 242),
	Text:       rgb(100, 100, 120),
})

// Resolve returns a built-in theme by name.
func Resolve(name string) (Theme, error) {
	return NewResolver().Resolve(name)
}

// Resolver looks up themes by name. The zero value is not usable; call
// [NewResolver].
type Resolver struct {
	themes map[string]Theme
}

// NewResolver returns a resolver holding the built-in themes.
func NewResolver() *Resolver {
	return &Resolver{themes: map[string]Theme{
		NameDark:  Dark,
		NameLight: Light,
	}}
}

// Resolve returns the theme called name, ignoring case.
func (r *Resolver) Resolve(name string) (Theme, error) {
	t, ok := r.themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, errors.New(errors.ErrCodeUnknownTheme, "unknown theme %q (available: %s)",
			name, strings.Join(r.Names(), ", "))
	}
	return t, nil
}

// Names returns the known theme names, built-ins first.
func (r *Resolver) Names() []string {
	names := []string{NameDark, NameLight}
	var extra []string
	for name := range r.themes {
		if name != NameDark && name != NameLight {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}

// Override replaces roles of the named theme with hex colors. A name that
// is not yet known starts from [Dark], so a new theme only needs the roles
// that differ.
func (r *Resolver) Override(name string, hex map[string]string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "palette name cannot be empty")
	}

	base, ok := r.themes[name]
	if !ok {
		base = Dark
	}
	colors := maps.Clone(base.colors)

	for key, value := range hex {
		role := Role(strings.ToLower(key))
		if !slices.Contains(Roles, role) {
			return errors.New(errors.ErrCodeInvalidConfig, "palette %s: unknown role %q", name, key)
		}
		c, err := colorful.Hex(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette %s: role %s", name, key)
		}
		cr, cg, cb := c.RGB255()
		colors[role] = rgb(cr, cg, cb)
	}

	r.themes[name] = newTheme(name, colors)
	return nil
}
