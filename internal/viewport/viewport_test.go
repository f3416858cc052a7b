package viewport

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps*math.Max(1, math.Abs(b)) }

func TestRoundTrip(t *testing.T) {
	views := []Viewport{
		{Zoom: 1},
		{Zoom: 0.01, PanX: -300, PanY: 12.5},
		{Zoom: 20, PanX: 1000, PanY: -40},
		{Zoom: 1.37, PanX: 3.3, PanY: 7.7},
	}
	points := [][2]float64{{0, 0}, {10, 20}, {-55.5, 123.25}, {4096, -4096}}
	for _, v := range views {
		for _, p := range points {
			sx, sy := v.CanvasToScreen(p[0], p[1])
			cx, cy := v.ScreenToCanvas(sx, sy)
			if !near(cx, p[0]) || !near(cy, p[1]) {
				t.Fatalf("round trip %+v %v: got (%v,%v)", v, p, cx, cy)
			}
		}
	}
}

func TestWheelZoomKeepsAnchor(t *testing.T) {
	v := New()
	beforeX, beforeY := v.ScreenToCanvas(500, 400)
	v.ZoomAt(500, 400, WheelFactor(-100))

	if want := math.Pow(0.999, -100); !near(v.Zoom, want) {
		t.Fatalf("zoom = %v, want %v", v.Zoom, want)
	}
	if v.Zoom < 1.10 || v.Zoom > 1.11 {
		t.Fatalf("zoom %v outside expected ~1.105", v.Zoom)
	}
	sx, sy := v.CanvasToScreen(beforeX, beforeY)
	if !near(sx, 500) || !near(sy, 400) {
		t.Fatalf("anchor drifted to (%v,%v)", sx, sy)
	}
}

func TestZoomIsClamped(t *testing.T) {
	v := New()
	v.ZoomAt(10, 10, 1e6)
	if v.Zoom != MaxZoom {
		t.Fatalf("expected max zoom, got %v", v.Zoom)
	}
	v.ZoomAt(10, 10, 1e-9)
	if v.Zoom != MinZoom {
		t.Fatalf("expected min zoom, got %v", v.Zoom)
	}
	// the anchor still holds at the clamp boundary
	cx, cy := v.ScreenToCanvas(10, 10)
	sx, sy := v.CanvasToScreen(cx, cy)
	if !near(sx, 10) || !near(sy, 10) {
		t.Fatalf("anchor drifted to (%v,%v)", sx, sy)
	}
}

func TestPanUsesScreenPixels(t *testing.T) {
	v := Viewport{Zoom: 4}
	v.Pan(40, -8)
	if v.PanX != 40 || v.PanY != -8 {
		t.Fatalf("unexpected pan %+v", v)
	}
	cx, _ := v.ScreenToCanvas(40, 0)
	if cx != 0 {
		t.Fatalf("expected canvas origin under pan, got %v", cx)
	}
}

func TestFitCentresCanvas(t *testing.T) {
	var v Viewport
	v.Fit(400, 600, 1000, 1000)
	if want := 1000.0 / 600 * 0.9; !near(v.Zoom, want) {
		t.Fatalf("zoom = %v, want %v", v.Zoom, want)
	}
	left, top := v.CanvasToScreen(0, 0)
	right, bottom := v.CanvasToScreen(400, 600)
	if !near(left, 1000-right) || !near(top, 1000-bottom) {
		t.Fatalf("canvas not centred: (%v,%v)-(%v,%v)", left, top, right, bottom)
	}

	v.Fit(0, 600, 1000, 1000)
	if v != New() {
		t.Fatalf("degenerate fit should reset, got %+v", v)
	}
}
