package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/radar/pkg/attrs"
	"github.com/matzehuels/radar/pkg/config"
	"github.com/matzehuels/radar/pkg/errors"
	"github.com/matzehuels/radar/pkg/observability"
	"github.com/matzehuels/radar/pkg/palette"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Height = 400
	cfg.Seed = 42
	return cfg
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, theme, want string
	}{
		{"host.csv", "dark", "host.png"},
		{"host.csv", "light", "host-light.png"},
		{"dir/host.csv", "sepia", "dir/host-sepia.png"},
		{"host.txt", "dark", "host.txt.png"},
		{"host.txt", "light", "host.txt-light.png"},
		{"host", "light", "host-light.png"},
		{"host.CSV", "dark", "host.CSV.png"},
	}
	for _, tt := range tests {
		t.Run(tt.input+"/"+tt.theme, func(t *testing.T) {
			if got := OutputPath(tt.input, tt.theme); got != tt.want {
				t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.input, tt.theme, got, tt.want)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	input := writeInput(t, "host.csv", "#comment\ncourage,15\nwit,-1\nloyalty,25\n")
	cfg := testConfig()

	result, err := NewRunner(nil).Execute(context.Background(), input, cfg)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	set := result.Attributes
	if set.Len() != 3 {
		t.Fatalf("attributes = %d, want 3", set.Len())
	}
	if set[0] != (attrs.Attribute{Name: "courage", Value: 15}) {
		t.Errorf("attributes[0] = %v, want courage=15", set[0])
	}
	if set[1].Name != "wit" || set[1].Value < 1 || set[1].Value > 20 {
		t.Errorf("attributes[1] = %v, want wit within [1,20]", set[1])
	}
	if set[2] != (attrs.Attribute{Name: "loyalty", Value: 20}) {
		t.Errorf("attributes[2] = %v, want loyalty=20", set[2])
	}

	geo, _ := cfg.Geometry()
	wantPaths := []string{
		strings.TrimSuffix(input, ".csv") + ".png",
		strings.TrimSuffix(input, ".csv") + "-light.png",
	}
	if len(result.Outputs) != len(wantPaths) {
		t.Fatalf("outputs = %d, want %d", len(result.Outputs), len(wantPaths))
	}
	for i, want := range wantPaths {
		out := result.Outputs[i]
		if out.Path != want {
			t.Errorf("output[%d] = %s, want %s", i, out.Path, want)
		}
		f, err := os.Open(out.Path)
		if err != nil {
			t.Fatalf("open output: %v", err)
		}
		pcfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", out.Path, err)
		}
		if pcfg.Width != geo.Width || pcfg.Height != geo.Height {
			t.Errorf("%s size = %dx%d, want %dx%d", out.Path, pcfg.Width, pcfg.Height, geo.Width, geo.Height)
		}
		if out.Bytes == 0 {
			t.Errorf("%s is empty", out.Path)
		}
	}
}

func TestExecuteSeedShared(t *testing.T) {
	input := writeInput(t, "unknowns.csv", "a,-1\nb,-1\nc,-1\nd,-1\n")
	cfg := testConfig()

	first, err := NewRunner(nil).Execute(context.Background(), input, cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewRunner(nil).Execute(context.Background(), input, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first.Attributes {
		if first.Attributes[i] != second.Attributes[i] {
			t.Errorf("seeded runs differ at %d: %v vs %v", i, first.Attributes[i], second.Attributes[i])
		}
	}

	// Each image must carry a value marker exactly where the shared
	// normalized value puts it.
	geo, _ := cfg.Geometry()
	layout, err := geo.Layout(first.Attributes.Len())
	if err != nil {
		t.Fatal(err)
	}
	for i, out := range first.Outputs {
		theme, err := palette.Resolve(cfg.Themes[i])
		if err != nil {
			t.Fatal(err)
		}
		img := decodePNG(t, out.Path)
		want := theme.Color(palette.Base).(color.RGBA)
		for j, a := range first.Attributes {
			p := layout.ValuePoint(geo.Center(), j, a.Value)
			got := color.RGBAModel.Convert(img.At(int(p.X), int(p.Y))).(color.RGBA)
			if got != want {
				t.Errorf("%s: marker for %s=%d at %v = %v, want %v", out.Theme, a.Name, a.Value, p, got, want)
			}
		}
	}
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestExecuteEmpty(t *testing.T) {
	input := writeInput(t, "empty.csv", "# only\n# comments\n")

	_, err := NewRunner(nil).Execute(context.Background(), input, testConfig())
	if !errors.IsEmptyChart(err) {
		t.Fatalf("Execute() error = %v, want EMPTY_CHART", err)
	}

	for _, theme := range []string{"dark", "light"} {
		if _, err := os.Stat(OutputPath(input, theme)); !os.IsNotExist(err) {
			t.Errorf("%s image should not exist, stat error = %v", theme, err)
		}
	}
}

func TestExecuteCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 24; i++ {
		fmt.Fprintf(&b, "trait%02d,%d\n", i, i%20+1)
	}
	input := writeInput(t, "many.csv", b.String())

	result, err := NewRunner(nil).Execute(context.Background(), input, testConfig())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Attributes.Len() != attrs.MaxAttributes {
		t.Errorf("attributes = %d, want %d", result.Attributes.Len(), attrs.MaxAttributes)
	}
}

func TestExecuteErrors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		_, err := NewRunner(nil).Execute(context.Background(), filepath.Join(t.TempDir(), "none.csv"), testConfig())
		if !errors.IsParse(err) {
			t.Errorf("Execute() error = %v, want PARSE_ERROR", err)
		}
	})

	t.Run("unknown theme", func(t *testing.T) {
		input := writeInput(t, "host.csv", "wit,3\n")
		cfg := testConfig()
		cfg.Themes = []string{"dark", "neon"}
		_, err := NewRunner(nil).Execute(context.Background(), input, cfg)
		if !errors.IsUnknownTheme(err) {
			t.Errorf("Execute() error = %v, want UNKNOWN_THEME", err)
		}
		if _, err := os.Stat(OutputPath(input, "dark")); !os.IsNotExist(err) {
			t.Error("no image should be written when a theme is unknown")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		input := writeInput(t, "host.csv", "wit,3\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewRunner(nil).Execute(ctx, input, testConfig())
		if err == nil {
			t.Error("Execute() error = nil, want context error")
		}
	})

	t.Run("unwritable output keeps previous images", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "host.csv")
		if err := os.WriteFile(input, []byte("wit,3\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		dark := OutputPath(input, "dark")
		if err := os.WriteFile(dark, []byte("previous"), 0o644); err != nil {
			t.Fatal(err)
		}
		// A directory where the light image should go makes that write fail.
		if err := os.Mkdir(OutputPath(input, "light"), 0o755); err != nil {
			t.Fatal(err)
		}
		_, err := NewRunner(nil).Execute(context.Background(), input, testConfig())
		if !errors.Is(err, errors.ErrCodeIO) {
			t.Fatalf("Execute() error = %v, want IO_ERROR", err)
		}
		data, err := os.ReadFile(dark)
		if err != nil {
			t.Fatalf("previous dark image removed: %v", err)
		}
		if string(data) != "previous" {
			t.Error("previous dark image was overwritten by a failed run")
		}
		assertNoTemps(t, dir)
	})
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, fmt.Sprintf(format, args...))
}

func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, count int, _ time.Duration, err error) {
	h.record("load %d %v", count, err == nil)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, theme string, size int, _ time.Duration, err error) {
	h.record("render %s %v", theme, size > 0 && err == nil)
}

func (h *recordingHooks) OnWrite(_ context.Context, path string, _ int, err error) {
	h.record("write %s %v", filepath.Base(path), err == nil)
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	input := writeInput(t, "host.csv", "wit,3\nguile,7\n")
	if _, err := NewRunner(nil).Execute(context.Background(), input, testConfig()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := map[string]bool{
		"load 2 true":               true,
		"render dark true":          true,
		"render light true":         true,
		"write host.png true":       true,
		"write host-light.png true": true,
	}
	if len(hooks.events) != len(want) {
		t.Fatalf("events = %v, want %d events", hooks.events, len(want))
	}
	for _, e := range hooks.events {
		if !want[e] {
			t.Errorf("unexpected event %q", e)
		}
	}
	if hooks.events[0] != "load 2 true" {
		t.Errorf("first event = %q, want load", hooks.events[0])
	}
}

func assertNoTemps(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) > 0 {
		t.Errorf("temporary files left behind: %v", matches)
	}
}

func TestExecuteReplacesPrevious(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "host.csv")
	if err := os.WriteFile(input, []byte("wit,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, theme := range []string{"dark", "light"} {
		if err := os.WriteFile(OutputPath(input, theme), []byte("previous"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := NewRunner(nil).Execute(context.Background(), input, testConfig()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, theme := range []string{"dark", "light"} {
		img := decodePNG(t, OutputPath(input, theme))
		if img.Bounds().Dx() == 0 {
			t.Errorf("%s image is empty", theme)
		}
	}
	assertNoTemps(t, dir)
}
