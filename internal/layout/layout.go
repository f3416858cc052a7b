// Package layout maps rectangles detected in a source image onto the canvas.
package layout

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Margin shrinks the imported layout so it does not touch the canvas edges.
const Margin = 0.9

var (
	ErrNoLayoutDetected = errors.New("no layout detected")
	ErrDegenerateLayout = errors.New("layout envelope has zero area")
)

// Rect is a rectangle in source image pixels, origin top-left.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Normalize flips a negative extent so the rectangle covers the same area
// with a non-negative width and height.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Envelope returns the smallest rectangle containing every rect, after
// normalizing each one.
func Envelope(rects []Rect) (Rect, error) {
	if len(rects) == 0 {
		return Rect{}, ErrNoLayoutDetected
	}
	x1 := make([]float64, len(rects))
	y1 := make([]float64, len(rects))
	x2 := make([]float64, len(rects))
	y2 := make([]float64, len(rects))
	for i, r := range rects {
		r = r.Normalize()
		x1[i], y1[i] = r.X, r.Y
		x2[i], y2[i] = r.X+r.Width, r.Y+r.Height
	}
	env := Rect{X: floats.Min(x1), Y: floats.Min(y1)}
	env.Width = floats.Max(x2) - env.X
	env.Height = floats.Max(y2) - env.Y
	if !(env.Width > 0) || !(env.Height > 0) {
		return env, fmt.Errorf("envelope %vx%v: %w", env.Width, env.Height, ErrDegenerateLayout)
	}
	return env, nil
}

// Plan is the result of placing a detected layout on a canvas.
type Plan struct {
	Envelope    Rect
	ScaleFactor float64
	OffsetX     float64
	OffsetY     float64
	// Boxes holds the placed rectangles in canvas coordinates, in input order.
	Boxes []Rect
}

// Place scales the envelope of rects to fit a canvasW×canvasH canvas with
// Margin and centres it. Rectangles with negative extents are normalized
// first.
func Place(rects []Rect, canvasW, canvasH float64) (Plan, error) {
	env, err := Envelope(rects)
	if err != nil {
		return Plan{}, err
	}
	sf := math.Min(canvasW/env.Width, canvasH/env.Height) * Margin
	p := Plan{
		Envelope:    env,
		ScaleFactor: sf,
		OffsetX:     (canvasW - env.Width*sf) / 2,
		OffsetY:     (canvasH - env.Height*sf) / 2,
		Boxes:       make([]Rect, len(rects)),
	}
	for i, r := range rects {
		r = r.Normalize()
		p.Boxes[i] = Rect{
			X:      (r.X-env.X)*sf + p.OffsetX,
			Y:      (r.Y-env.Y)*sf + p.OffsetY,
			Width:  r.Width * sf,
			Height: r.Height * sf,
		}
	}
	return p, nil
}
