// Package config holds the render configuration for radar.
//
// Values are layered: [Default] first, then an optional TOML file via
// [Load], then command-line flags applied by the caller. [Config.Validate]
// checks the result once all layers are in place.
//
// Example file:
//
//	height = 2000
//	clear_background = true
//	themes = ["dark", "light", "sepia"]
//
//	[palette.sepia]
//	background = "#704214"
//	text = "#f5deb3"
package config

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/radar/pkg/chart"
	"github.com/matzehuels/radar/pkg/errors"
	"github.com/matzehuels/radar/pkg/palette"
)

// Config is the full set of render settings.
type Config struct {
	Height          int                          `toml:"height"`
	ClearBackground bool                         `toml:"clear_background"`
	CenterRings     int                          `toml:"center_rings"`
	ValueRings      int                          `toml:"value_rings"`
	Font            string                       `toml:"font"`
	Seed            uint64                       `toml:"seed"`
	Themes          []string                     `toml:"themes"`
	Palette         map[string]map[string]string `toml:"palette,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Height:      chart.DefaultHeight,
		CenterRings: chart.DefaultCenterRings,
		ValueRings:  chart.DefaultValueRings,
		Themes:      []string{palette.NameDark, palette.NameLight},
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Geometry derives the canvas geometry.
func (c Config) Geometry() (chart.Geometry, error) {
	return chart.NewGeometry(c.Height, c.CenterRings, c.ValueRings)
}

// Resolver returns a palette resolver with the configured overrides applied.
func (c Config) Resolver() (*palette.Resolver, error) {
	r := palette.NewResolver()
	for name, roles := range c.Palette {
		if err := r.Override(name, roles); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Validate checks that the configuration can drive a render.
func (c Config) Validate() error {
	if _, err := c.Geometry(); err != nil {
		return err
	}
	if len(c.Themes) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one theme is required")
	}
	r, err := c.Resolver()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Themes))
	for _, name := range c.Themes {
		t, err := r.Resolve(name)
		if err != nil {
			return err
		}
		if seen[t.Name()] {
			return errors.New(errors.ErrCodeInvalidConfig, "theme %q listed twice", name)
		}
		seen[t.Name()] = true
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}
