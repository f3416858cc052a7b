package boxes

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Handle identifies which part of a box a drag grabbed.
type Handle int

const (
	HandleNone Handle = iota
	HandleMove
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

var handleNames = map[Handle]string{
	HandleNone:        "none",
	HandleMove:        "move",
	HandleTopLeft:     "top-left",
	HandleTop:         "top",
	HandleTopRight:    "top-right",
	HandleRight:       "right",
	HandleBottomRight: "bottom-right",
	HandleBottom:      "bottom",
	HandleBottomLeft:  "bottom-left",
	HandleLeft:        "left",
}

func (h Handle) String() string {
	if n, ok := handleNames[h]; ok {
		return n
	}
	return "unknown"
}

// Resizes reports whether h changes the box extent.
func (h Handle) Resizes() bool {
	return h >= HandleTopLeft && h <= HandleLeft
}

// HandleRects returns the eight resize handle squares for r, each side
// HandleSize/zoom, in the order top-left, top, top-right, right,
// bottom-right, bottom, bottom-left, left.
func HandleRects(r Rect, zoom float64) [8]r2.Box {
	if zoom <= 0 {
		zoom = 1
	}
	hs := HandleSize / zoom / 2
	b := r.Normalize().Bounds()
	cx := (b.Min.X + b.Max.X) / 2
	cy := (b.Min.Y + b.Max.Y) / 2
	sq := func(x, y float64) r2.Box {
		return r2.Box{Min: r2.Vec{X: x - hs, Y: y - hs}, Max: r2.Vec{X: x + hs, Y: y + hs}}
	}
	return [8]r2.Box{
		sq(b.Min.X, b.Min.Y), // tl
		sq(cx, b.Min.Y),      // t
		sq(b.Max.X, b.Min.Y), // tr
		sq(b.Max.X, cy),      // r
		sq(b.Max.X, b.Max.Y), // br
		sq(cx, b.Max.Y),      // b
		sq(b.Min.X, b.Max.Y), // bl
		sq(b.Min.X, cy),      // l
	}
}

var handleOrder = [8]Handle{
	HandleTopLeft, HandleTop, HandleTopRight, HandleRight,
	HandleBottomRight, HandleBottom, HandleBottomLeft, HandleLeft,
}

// cornerFirst lists handle indices so corners win over edge midpoints on
// tiny boxes where the squares overlap.
var cornerFirst = [8]int{0, 2, 4, 6, 1, 3, 5, 7}

// HandleAt classifies the canvas point (cx, cy) against box b.
func HandleAt(cx, cy float64, b *Box, zoom float64) Handle {
	if b == nil {
		return HandleNone
	}
	p := r2.Vec{X: cx, Y: cy}
	rects := HandleRects(b.Rect, zoom)
	for _, i := range cornerFirst {
		if rects[i].Contains(p) {
			return handleOrder[i]
		}
	}
	if b.Normalize().Bounds().Contains(p) {
		return HandleMove
	}
	return HandleNone
}

// Resize applies a drag of (dx, dy) canvas units through handle h to r and
// returns the normalized result.
func Resize(r Rect, h Handle, dx, dy float64) Rect {
	switch h {
	case HandleMove:
		r.X += dx
		r.Y += dy
	case HandleTopLeft:
		r.X += dx
		r.Y += dy
		r.Width -= dx
		r.Height -= dy
	case HandleTop:
		r.Y += dy
		r.Height -= dy
	case HandleTopRight:
		r.Y += dy
		r.Width += dx
		r.Height -= dy
	case HandleRight:
		r.Width += dx
	case HandleBottomRight:
		r.Width += dx
		r.Height += dy
	case HandleBottom:
		r.Height += dy
	case HandleBottomLeft:
		r.X += dx
		r.Width -= dx
		r.Height += dy
	case HandleLeft:
		r.X += dx
		r.Width -= dx
	}
	return r.Normalize()
}

// ApplyDrag moves or resizes b by (dx, dy) canvas units. Locked boxes are
// left untouched and ApplyDrag reports false.
func ApplyDrag(b *Box, h Handle, dx, dy float64) bool {
	if b == nil || b.Locked || h == HandleNone {
		return false
	}
	next := Resize(b.Rect, h, dx, dy)
	if !next.finite() {
		return false
	}
	b.Rect = next
	return true
}
