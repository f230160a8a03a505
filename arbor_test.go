package arbor

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	cases := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 60, 45, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"on left edge", 10, 45, true},
		{"left of rect", 9.999, 45, false},
		{"right of rect", 110.001, 45, false},
		{"above rect", 60, 19.999, false},
		{"below rect", 60, 70.001, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("%s: Contains(%v,%v) = %v, want %v", tc.name, tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	cases := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", Rect{X: 50, Y: 50, Width: 100, Height: 100}, true},
		{"contained", Rect{X: 25, Y: 25, Width: 50, Height: 50}, true},
		{"containing", Rect{X: -50, Y: -50, Width: 200, Height: 200}, true},
		{"sharing right edge", Rect{X: 100, Y: 0, Width: 50, Height: 100}, true},
		{"sharing bottom edge", Rect{X: 0, Y: 100, Width: 100, Height: 50}, true},
		{"disjoint right", Rect{X: 100.001, Y: 0, Width: 50, Height: 100}, false},
		{"disjoint below", Rect{X: 0, Y: 100.001, Width: 100, Height: 50}, false},
		{"disjoint diagonal", Rect{X: 200, Y: 200, Width: 10, Height: 10}, false},
	}
	for _, tc := range cases {
		if got := r.Intersects(tc.other); got != tc.want {
			t.Errorf("%s: Intersects(%v) = %v, want %v", tc.name, tc.other, got, tc.want)
		}
		// Intersection is symmetric.
		if got := tc.other.Intersects(r); got != tc.want {
			t.Errorf("%s: reverse Intersects = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRectEmpty(t *testing.T) {
	if (Rect{Width: 10, Height: 10}).Empty() {
		t.Error("10x10 rect reported empty")
	}
	if !(Rect{Width: 0, Height: 10}).Empty() {
		t.Error("zero-width rect not reported empty")
	}
	if !(Rect{Width: 10, Height: -1}).Empty() {
		t.Error("negative-height rect not reported empty")
	}
}

func TestRectTranslate(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	got := r.Translate(5, -5)
	want := Rect{X: 15, Y: 15, Width: 30, Height: 40}
	if got != want {
		t.Errorf("Translate(5,-5) = %v, want %v", got, want)
	}
}

func TestRectExpand(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	got := r.Expand(5)
	want := Rect{X: 5, Y: 15, Width: 110, Height: 60}
	if got != want {
		t.Errorf("Expand(5) = %v, want %v", got, want)
	}
}

func TestRectExpand_NegativeClampsSize(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	got := r.Expand(-20)
	if got.Width != 0 || got.Height != 0 {
		t.Errorf("Expand(-20) size = %vx%v, want 0x0", got.Width, got.Height)
	}
}
