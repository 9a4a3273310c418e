// Package pipeline runs the load → normalize → render → write sequence that
// turns one attribute file into one chart image per configured theme.
//
// # Architecture
//
// A run has four stages:
//
//  1. Load: parse the attribute file ([attrs.Load])
//  2. Normalize: clamp values and fill unknowns, exactly once ([attrs.Normalize])
//  3. Render: draw every theme from the same normalized set, concurrently
//  4. Write: store each image next to the input file
//
// Normalizing before the themes branch is what keeps a randomly filled value
// identical in the dark and light images. Nothing is written until every
// theme has rendered. Images go to temporary files first and are renamed into
// place only after every write succeeded, so a failed run leaves images from
// an earlier run as they were.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, "host.csv", config.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, out := range result.Outputs {
//	    fmt.Println(out.Path)
//	}
package pipeline

import (
	"strings"
	"time"

	"github.com/matzehuels/radar/pkg/attrs"
	"github.com/matzehuels/radar/pkg/palette"
)

// InputExt is the input extension replaced by the image suffix.
const InputExt = ".csv"

// Result contains the outputs of a pipeline run.
type Result struct {
	// Attributes is the normalized set every theme was drawn from.
	Attributes attrs.Set

	// Outputs lists the written images in theme order.
	Outputs []Output

	// Stats contains timing information.
	Stats Stats
}

// Output describes one written image.
type Output struct {
	Theme string
	Path  string
	Bytes int
}

// Stats contains pipeline execution statistics.
type Stats struct {
	AttributeCount int
	LoadTime       time.Duration
	RenderTime     time.Duration
	WriteTime      time.Duration
}

// OutputPath returns the image path for input drawn in theme. A trailing
// ".csv" is replaced; any other name gets the suffix appended whole. The
// dark theme takes the plain ".png" name and every other theme is suffixed
// with its name, e.g. "host-light.png".
func OutputPath(input, theme string) string {
	base := strings.TrimSuffix(input, InputExt)
	if theme == palette.NameDark {
		return base + ".png"
	}
	return base + "-" + theme + ".png"
}
