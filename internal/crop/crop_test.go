package crop

import (
	"errors"
	"image"
	"math"
	"testing"
	"time"

	"github.com/example/layoutcanvas/internal/boxes"
	"github.com/example/layoutcanvas/internal/viewport"
)

func filledBox() *boxes.Box {
	return &boxes.Box{
		ID:   3,
		Rect: boxes.Rect{X: 10, Y: 20, Width: 100, Height: 100},
		Fill: &boxes.ImageFill{Bitmap: image.NewRGBA(image.Rect(0, 0, 50, 200)), Scale: 2, OffsetY: -150},
	}
}

func TestBeginRequiresFill(t *testing.T) {
	if _, err := Begin(&boxes.Box{ID: 1}); !errors.Is(err, ErrNoFill) {
		t.Fatalf("expected ErrNoFill, got %v", err)
	}
	b := filledBox()
	s, err := Begin(b)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if !b.Locked || s.BoxID != b.ID {
		t.Fatalf("session not bound: %+v %+v", s, b)
	}
	if s.Original == b.Fill {
		t.Fatalf("snapshot must not alias the live fill")
	}
}

func TestPanIsZoomNormalized(t *testing.T) {
	b := filledBox()
	s, _ := Begin(b)
	s.Pan(b, 20, -10, 2)
	if b.Fill.OffsetX != 10 || b.Fill.OffsetY != -155 {
		t.Fatalf("unexpected offsets (%v,%v)", b.Fill.OffsetX, b.Fill.OffsetY)
	}
	// the box itself stays put
	if b.X != 10 || b.Y != 20 {
		t.Fatalf("box moved during crop: %+v", b.Rect)
	}
	if s.Original.OffsetX != 0 {
		t.Fatalf("snapshot changed: %+v", s.Original)
	}
}

func TestWheelAndPinchClampScale(t *testing.T) {
	b := filledBox()
	s, _ := Begin(b)
	s.Wheel(b, -100)
	if want := 2 * math.Pow(0.999, -100); math.Abs(b.Fill.Scale-want) > 1e-9 {
		t.Fatalf("scale = %v, want %v", b.Fill.Scale, want)
	}
	s.Wheel(b, -1e6)
	if b.Fill.Scale != MaxScale {
		t.Fatalf("expected max scale, got %v", b.Fill.Scale)
	}
	s.BeginPinch(b)
	s.Pinch(b, 0.5)
	if b.Fill.Scale != 5 {
		t.Fatalf("pinch from start scale: got %v", b.Fill.Scale)
	}
	s.Pinch(b, 0.25)
	if b.Fill.Scale != 2.5 {
		t.Fatalf("pinch must not compound: got %v", b.Fill.Scale)
	}
	s.Pinch(b, 0)
	if b.Fill.Scale != MinScale {
		t.Fatalf("expected min scale, got %v", b.Fill.Scale)
	}
}

func TestCommitKeepsFillAndIsIdempotent(t *testing.T) {
	b := filledBox()
	s, _ := Begin(b)
	s.Pan(b, 5, 5, 1)
	s.Commit(b)
	if b.Locked || s.Active() {
		t.Fatalf("commit did not end the session")
	}
	after := *b.Fill
	s.Commit(b)
	s.Cancel(b)
	if *b.Fill != after {
		t.Fatalf("second commit changed fill: %+v vs %+v", *b.Fill, after)
	}
	s.Pan(b, 100, 100, 1)
	if *b.Fill != after {
		t.Fatalf("closed session still pans")
	}
}

func TestCancelRestoresSnapshot(t *testing.T) {
	b := filledBox()
	before := *b.Fill
	s, _ := Begin(b)
	s.Pan(b, 30, 30, 1)
	s.Wheel(b, 250)
	s.Cancel(b)
	if *b.Fill != before {
		t.Fatalf("cancel did not restore: %+v vs %+v", *b.Fill, before)
	}
	if b.Locked {
		t.Fatalf("cancel left the box locked")
	}
}

func TestCommitWithDeletedBox(t *testing.T) {
	b := filledBox()
	s, _ := Begin(b)
	s.Commit(nil)
	if s.Active() {
		t.Fatalf("session should end even without its box")
	}
}

func TestTapTracker(t *testing.T) {
	var tr TapTracker
	t0 := time.Unix(100, 0)
	if tr.Register(1, t0) {
		t.Fatalf("single tap reported as double")
	}
	if !tr.Register(1, t0.Add(400*time.Millisecond)) {
		t.Fatalf("expected double tap")
	}
	// a third tap starts over
	if tr.Register(1, t0.Add(500*time.Millisecond)) {
		t.Fatalf("tracker should reset after a double tap")
	}
	if tr.Register(2, t0.Add(600*time.Millisecond)) {
		t.Fatalf("taps on different boxes are not a double tap")
	}
	if tr.Register(2, t0.Add(1200*time.Millisecond)) {
		t.Fatalf("taps outside the window are not a double tap")
	}
	if tr.Register(0, t0.Add(1300*time.Millisecond)) || tr.Register(0, t0.Add(1310*time.Millisecond)) {
		t.Fatalf("empty space never double taps")
	}
}

func TestOverlayHoleIsAbsolute(t *testing.T) {
	vp := viewport.Viewport{Zoom: 2, PanX: 30, PanY: -10}
	b := filledBox()
	o := NewOverlay(vp, b, 800, 600)
	if !o.Absolute {
		t.Fatalf("hole must be flagged absolute")
	}
	if o.View.Max.X != 800 || o.View.Max.Y != 600 {
		t.Fatalf("view = %+v", o.View)
	}
	// box (10,20,100,100) at zoom 2 pan (30,-10)
	if o.Hole.Min.X != 50 || o.Hole.Min.Y != 30 || o.Hole.Max.X != 250 || o.Hole.Max.Y != 230 {
		t.Fatalf("hole = %+v", o.Hole)
	}
}
