package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang/freetype/truetype"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/radar/pkg/attrs"
	"github.com/matzehuels/radar/pkg/chart"
	"github.com/matzehuels/radar/pkg/config"
	"github.com/matzehuels/radar/pkg/errors"
	"github.com/matzehuels/radar/pkg/fonts"
	"github.com/matzehuels/radar/pkg/observability"
	"github.com/matzehuels/radar/pkg/palette"
)

// maxParallelRenders bounds concurrent theme renders; each holds a full
// canvas in memory.
const maxParallelRenders = 2

// Runner executes pipeline runs. It keeps no state between runs, so one
// Runner can serve several goroutines.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// artifact is a rendered image waiting to be written.
type artifact struct {
	theme string
	path  string
	data  []byte
}

// Execute renders input once per configured theme and writes the images.
func (r *Runner) Execute(ctx context.Context, input string, cfg config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	geo, err := cfg.Geometry()
	if err != nil {
		return nil, err
	}
	themes, err := resolveThemes(cfg)
	if err != nil {
		return nil, err
	}
	ttf, err := fonts.Load(cfg.Font)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	hooks := observability.Pipeline()

	// Stage 1: Load
	loadStart := time.Now()
	r.Logger.Infof("Reading personality data from %s..", input)
	hooks.OnLoadStart(ctx, input)
	raw, err := attrs.Load(input)
	if err == nil && raw.Len() == 0 {
		err = errors.New(errors.ErrCodeEmptyChart, "%s contains no attributes", input)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	hooks.OnLoadComplete(ctx, input, raw.Len(), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.Stats.AttributeCount = raw.Len()

	// Stage 2: Normalize, once for all themes
	result.Attributes = attrs.Normalize(raw, attrs.NewRand(cfg.Seed))
	r.Logger.Debug("normalized attributes",
		"count", raw.Len(),
		"values", result.Attributes.Values())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.renderAll(ctx, input, result.Attributes, themes, geo, cfg, ttf)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	// Stage 4: Write
	writeStart := time.Now()
	outputs, err := r.writeAll(ctx, artifacts)
	if err != nil {
		return nil, err
	}
	result.Outputs = outputs
	result.Stats.WriteTime = time.Since(writeStart)

	r.Logger.Debug("pipeline complete",
		"attributes", result.Stats.AttributeCount,
		"render", result.Stats.RenderTime,
		"write", result.Stats.WriteTime)

	return result, nil
}

func resolveThemes(cfg config.Config) ([]palette.Theme, error) {
	resolver, err := cfg.Resolver()
	if err != nil {
		return nil, err
	}
	themes := make([]palette.Theme, 0, len(cfg.Themes))
	for _, name := range cfg.Themes {
		t, err := resolver.Resolve(name)
		if err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}
	return themes, nil
}

func (r *Runner) renderAll(ctx context.Context, input string, set attrs.Set, themes []palette.Theme,
	geo chart.Geometry, cfg config.Config, ttf *truetype.Font) ([]artifact, error) {

	artifacts := make([]artifact, len(themes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRenders)

	hooks := observability.Pipeline()
	for i, theme := range themes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			hooks.OnRenderStart(ctx, theme.Name(), set.Len())
			data, err := chart.RenderPNG(set, theme, geo,
				chart.WithLogger(r.Logger),
				chart.WithFont(ttf),
				chart.WithClearBackground(cfg.ClearBackground),
			)
			hooks.OnRenderComplete(ctx, theme.Name(), len(data), time.Since(start), err)
			if err != nil {
				return err
			}
			artifacts[i] = artifact{
				theme: theme.Name(),
				path:  OutputPath(input, theme.Name()),
				data:  data,
			}
			r.Logger.Debug("rendered theme",
				"theme", theme.Name(),
				"bytes", len(data),
				"duration", time.Since(start))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// writeAll stores every artifact under a temporary name next to its target
// and renames them into place only after all writes succeeded. Images from an
// earlier run stay untouched when any write fails.
func (r *Runner) writeAll(ctx context.Context, artifacts []artifact) ([]Output, error) {
	for _, a := range artifacts {
		if info, err := os.Stat(a.path); err == nil && info.IsDir() {
			return nil, errors.New(errors.ErrCodeIO, "write %s: is a directory", a.path)
		}
	}

	hooks := observability.Pipeline()
	temps := make([]string, 0, len(artifacts))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}

	for _, a := range artifacts {
		r.Logger.Infof("Generating personality matrix in %s..", a.path)
		tmp, err := writeTemp(a.path, a.data)
		hooks.OnWrite(ctx, a.path, len(a.data), err)
		if err != nil {
			cleanup()
			return nil, errors.Wrap(errors.ErrCodeIO, err, "write %s", a.path)
		}
		temps = append(temps, tmp)
	}

	outputs := make([]Output, 0, len(artifacts))
	for i, a := range artifacts {
		if err := os.Rename(temps[i], a.path); err != nil {
			temps = temps[i:]
			cleanup()
			return nil, errors.Wrap(errors.ErrCodeIO, err, "write %s", a.path)
		}
		outputs = append(outputs, Output{Theme: a.theme, Path: a.path, Bytes: len(a.data)})
	}
	return outputs, nil
}

// writeTemp writes data to a hidden temporary file in the directory of path
// and returns its name.
func writeTemp(path string, data []byte) (name string, err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(f.Name())
			name = ""
		}
	}()
	if err = f.Chmod(0o644); err != nil {
		return "", err
	}
	_, err = f.Write(data)
	return f.Name(), err
}
