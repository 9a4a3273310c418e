package polar

import (
	"math"
	"testing"

	"github.com/matzehuels/radar/pkg/errors"
)

func newLayout(t *testing.T, count int) Layout {
	t.Helper()
	l, err := New(count, 2, 142, 22*142, 56)
	if err != nil {
		t.Fatalf("New(%d) error = %v", count, err)
	}
	return l
}

func TestNewEmpty(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := New(n, 2, 10, 100, 4)
		if !errors.IsEmptyChart(err) {
			t.Errorf("New(%d) error = %v, want EMPTY_CHART", n, err)
		}
	}
}

func TestAnglesEvenlySpaced(t *testing.T) {
	for n := 1; n <= 20; n++ {
		l := newLayout(t, n)
		if got := l.Angle(0); got != -90 {
			t.Errorf("count %d: Angle(0) = %v, want -90", n, got)
		}
		want := 360 / float64(n)
		for i := 1; i < n; i++ {
			step := l.Angle(i) - l.Angle(i-1)
			if math.Abs(step-want) > 1e-9 {
				t.Errorf("count %d: step %d = %v, want %v", n, i, step, want)
			}
		}
	}
}

func TestRadiusMonotonic(t *testing.T) {
	l := newLayout(t, 20)
	prev := l.Radius(1)
	if prev <= 0 {
		t.Fatalf("Radius(1) = %v, want > 0", prev)
	}
	for v := 2; v <= 20; v++ {
		r := l.Radius(v)
		if r <= prev {
			t.Errorf("Radius(%d) = %v, not greater than Radius(%d) = %v", v, r, v-1, prev)
		}
		prev = r
	}
	if got, want := l.Radius(20), l.OuterRadius(); got != want {
		t.Errorf("Radius(20) = %v, want outer radius %v", got, want)
	}
}

func TestPointDirections(t *testing.T) {
	l := newLayout(t, 4)
	c := Point{X: 1000, Y: 1000}

	tests := []struct {
		i    int
		want Point
	}{
		{0, Point{1000, 900}},  // up
		{1, Point{1100, 1000}}, // right
		{2, Point{1000, 1100}}, // down
		{3, Point{900, 1000}},  // left
	}
	for _, tt := range tests {
		got := l.Point(c, tt.i, 100)
		if got != tt.want {
			t.Errorf("Point(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
}

func TestPolygon(t *testing.T) {
	l := newLayout(t, 3)
	c := Point{X: 0, Y: 0}
	pts := l.Polygon(c, []int{15, 8, 20})
	if len(pts) != 3 {
		t.Fatalf("len = %d, want 3", len(pts))
	}
	if pts[0] != l.ValuePoint(c, 0, 15) {
		t.Errorf("pts[0] = %v, want %v", pts[0], l.ValuePoint(c, 0, 15))
	}
}

func TestPlacement(t *testing.T) {
	tests := []struct {
		count int
		want  []Anchor
	}{
		{1, []Anchor{AnchorTop}},
		{2, []Anchor{AnchorTop, AnchorBottom}},
		{4, []Anchor{AnchorTop, AnchorRight, AnchorBottom, AnchorLeft}},
		{5, []Anchor{AnchorTop, AnchorRight, AnchorRight, AnchorLeft, AnchorLeft}},
		{6, []Anchor{AnchorTop, AnchorRight, AnchorRight, AnchorBottom, AnchorLeft, AnchorLeft}},
	}
	for _, tt := range tests {
		l := newLayout(t, tt.count)
		for i, want := range tt.want {
			if got := l.Placement(i); got != want {
				t.Errorf("count %d: Placement(%d) = %v, want %v", tt.count, i, got, want)
			}
		}
	}
}

func TestPlacementEvenCounts(t *testing.T) {
	for n := 2; n <= 20; n += 2 {
		l := newLayout(t, n)
		if got := l.Placement(0); got != AnchorTop {
			t.Errorf("count %d: Placement(0) = %v, want top", n, got)
		}
		if got := l.Placement(n / 2); got != AnchorBottom {
			t.Errorf("count %d: Placement(%d) = %v, want bottom", n, n/2, got)
		}
		for i := 1; i < n; i++ {
			if i == n/2 {
				continue
			}
			want := AnchorLeft
			if i < n/2 {
				want = AnchorRight
			}
			if got := l.Placement(i); got != want {
				t.Errorf("count %d: Placement(%d) = %v, want %v", n, i, got, want)
			}
		}
	}
}

func TestLabelTextFlip(t *testing.T) {
	l := newLayout(t, 6)
	tests := []struct {
		i    int
		want string
	}{
		{0, "COURAGE [15]"},
		{2, "COURAGE [15]"},
		{3, "COURAGE [15]"},
		{4, "[15] COURAGE"},
		{5, "[15] COURAGE"},
	}
	for _, tt := range tests {
		if got := l.LabelText(tt.i, "courage", 15); got != tt.want {
			t.Errorf("LabelText(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestLabelOrigin(t *testing.T) {
	l := newLayout(t, 4) // marker 56: gap 84, half 28, below 140
	p := Point{X: 500, Y: 500}
	const w = 200

	tests := []struct {
		i    int
		want Point
	}{
		{0, Point{400, 416}},
		{1, Point{584, 528}},
		{2, Point{400, 640}},
		{3, Point{216, 528}},
	}
	for _, tt := range tests {
		if got := l.LabelOrigin(tt.i, p, w); got != tt.want {
			t.Errorf("LabelOrigin(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	l := newLayout(t, 4)
	measure := func(s string) float64 { return float64(len(s) * 10) }

	lbl := l.Label(3, "wit", 7, Point{X: 500, Y: 500}, measure)
	if lbl.Text != "[7] WIT" {
		t.Errorf("Text = %q, want %q", lbl.Text, "[7] WIT")
	}
	if lbl.Anchor != AnchorLeft {
		t.Errorf("Anchor = %v, want left", lbl.Anchor)
	}
	// Right edge ends 1.5 markers left of the point.
	if right := lbl.Origin.X + 70; right != 500-84 {
		t.Errorf("right edge = %v, want %v", right, 500-84)
	}
}
