package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/matzehuels/radar/pkg/errors"
)

func TestDefault(t *testing.T) {
	f1, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	f2, _ := Default()
	if f1 != f2 {
		t.Error("Default() should return the cached font")
	}
}

func TestLoadEmptyIsDefault(t *testing.T) {
	f, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	def, _ := Default()
	if f != def {
		t.Error("Load(\"\") should return the default font")
	}
}

func TestLoadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bold.ttf")
	if err := os.WriteFile(path, gobold.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load(%s) error = %v", path, err)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := Load("no-such-font-anywhere-7f3a.ttf")
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Load error = %v, want INVALID_CONFIG", err)
		}
	})

	t.Run("not a font", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.ttf")
		if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Load error = %v, want INVALID_CONFIG", err)
		}
	})
}

func TestFaceScales(t *testing.T) {
	f, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	small := font.MeasureString(Face(f, 20), "COURAGE [15]")
	large := font.MeasureString(Face(f, 40), "COURAGE [15]")
	if large <= small {
		t.Errorf("width at 40px = %v, want greater than at 20px = %v", large, small)
	}
}
