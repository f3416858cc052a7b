package layout

import (
	"errors"
	"math"
	"testing"
)

func TestEnvelopeErrors(t *testing.T) {
	if _, err := Envelope(nil); !errors.Is(err, ErrNoLayoutDetected) {
		t.Fatalf("expected ErrNoLayoutDetected, got %v", err)
	}
	_, err := Envelope([]Rect{{X: 5, Y: 5, Width: 0, Height: 10}, {X: 5, Y: 20, Width: 0, Height: 3}})
	if !errors.Is(err, ErrDegenerateLayout) {
		t.Fatalf("expected ErrDegenerateLayout, got %v", err)
	}
}

func TestPlaceTwoColumns(t *testing.T) {
	rects := []Rect{{X: 10, Y: 10, Width: 80, Height: 80}, {X: 100, Y: 10, Width: 80, Height: 80}}
	p, err := Place(rects, 1024, 768)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if p.Envelope != (Rect{X: 10, Y: 10, Width: 170, Height: 80}) {
		t.Fatalf("envelope = %+v", p.Envelope)
	}
	want := 1024.0 / 170 * 0.9
	if math.Abs(p.ScaleFactor-want) > 1e-9 {
		t.Fatalf("scale factor = %v, want %v", p.ScaleFactor, want)
	}
	a, b := p.Boxes[0], p.Boxes[1]
	if a.Width != b.Width || math.Abs(a.Width-80*want) > 1e-9 {
		t.Fatalf("widths %v %v", a.Width, b.Width)
	}
	if math.Abs(a.Width-433.7) > 0.1 {
		t.Fatalf("width %v not ~433.7", a.Width)
	}
	if gap := b.X - (a.X + a.Width); math.Abs(gap-10*want) > 1e-9 {
		t.Fatalf("gap %v not preserved", gap)
	}
	// centred horizontally
	if left, right := a.X, 1024-(b.X+b.Width); math.Abs(left-right) > 1e-9 {
		t.Fatalf("not centred: %v vs %v", left, right)
	}
}

func TestPlaceFitsInsideCanvas(t *testing.T) {
	rects := []Rect{{X: -50, Y: 300, Width: 10, Height: 900}, {X: 400, Y: 0, Width: 20, Height: 20}}
	p, err := Place(rects, 400, 600)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	for _, r := range p.Boxes {
		if r.X < 0 || r.Y < 0 || r.X+r.Width > 400+1e-9 || r.Y+r.Height > 600+1e-9 {
			t.Fatalf("box %+v escapes canvas", r)
		}
	}
}

func TestPlaceNormalizesNegativeExtents(t *testing.T) {
	flipped := []Rect{{X: 100, Y: 10, Width: -80, Height: 80}, {X: 100, Y: 10, Width: 80, Height: 80}}
	upright := []Rect{{X: 20, Y: 10, Width: 80, Height: 80}, {X: 100, Y: 10, Width: 80, Height: 80}}
	got, err := Place(flipped, 400, 600)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	want, err := Place(upright, 400, 600)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if got.Envelope != want.Envelope {
		t.Fatalf("envelope = %+v, want %+v", got.Envelope, want.Envelope)
	}
	for i := range got.Boxes {
		r := got.Boxes[i]
		if r != want.Boxes[i] {
			t.Fatalf("box %d = %+v, want %+v", i, r, want.Boxes[i])
		}
		if r.Width <= 0 || r.Height <= 0 || r.X < 0 || r.Y < 0 || r.X+r.Width > 400+1e-9 || r.Y+r.Height > 600+1e-9 {
			t.Fatalf("box %d %+v escapes canvas", i, r)
		}
	}
}

func TestNormalize(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: -4, Height: -6}.Normalize()
	if r != (Rect{X: 6, Y: 4, Width: 4, Height: 6}) {
		t.Fatalf("normalize = %+v", r)
	}
}
