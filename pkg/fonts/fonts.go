// Package fonts provides the label typeface for chart rendering.
//
// The default face is Go Bold, compiled into the binary through
// golang.org/x/image/font/gofont, so rendering never depends on installed
// fonts. A different TrueType font can be selected by path or by file name;
// bare names are looked up in the platform font directories.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/matzehuels/radar/pkg/errors"
)

// DefaultName is the name reported for the embedded font.
const DefaultName = "Go Bold"

// Cache for the parsed default font (parsed once on first access).
var (
	defaultFont     *truetype.Font
	defaultFontErr  error
	defaultFontOnce sync.Once
)

// Default returns the embedded Go Bold font.
func Default() (*truetype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = truetype.Parse(gobold.TTF)
	})
	return defaultFont, defaultFontErr
}

// Load returns the font named by name. An empty name selects [Default]. A
// name that is an existing file is read directly; anything else is searched
// for in the system font directories (e.g. "DejaVuSans-Bold.ttf").
func Load(name string) (*truetype.Font, error) {
	if name == "" {
		return Default()
	}

	path := name
	if _, err := os.Stat(name); err != nil {
		found, ferr := findfont.Find(name)
		if ferr != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, ferr, "font %q not found", name)
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read font %s", path)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse font %s", path)
	}
	return f, nil
}

// Face returns a face of f at size pixels. Faces cache glyphs and are not
// safe for concurrent use; create one per render.
func Face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
