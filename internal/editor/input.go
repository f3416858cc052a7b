package editor

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/layoutcanvas/internal/boxes"
	"github.com/example/layoutcanvas/internal/viewport"
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// PointerEvent is a press, move or release in screen pixels.
type PointerEvent struct {
	X, Y float64
	Mods Modifiers
	// Touches is the number of touch points, 0 for a mouse.
	Touches int
	Time    time.Time
}

func (p PointerEvent) pos() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// WheelEvent is a scroll at a screen position.
type WheelEvent struct {
	X, Y   float64
	DeltaY float64
}

// GestureEvent is a two finger pinch. Scale is relative to the gesture start
// and X, Y is the midpoint between the fingers.
type GestureEvent struct {
	X, Y  float64
	Scale float64
}

// Key is a key the editor reacts to.
type Key int

const (
	KeyEnter Key = iota + 1
	KeyEscape
	KeyDelete
	KeyBackspace
)

// PointerDown starts a drag, pan, crop pan or clears the selection.
func (e *Editor) PointerDown(ev PointerEvent) {
	if c, ok := e.mode.(*Cropping); ok {
		if ev.Touches > 1 {
			return
		}
		c.dragging = true
		c.Last = ev.pos()
		return
	}

	cx, cy := e.View.ScreenToCanvas(ev.X, ev.Y)
	zoom := e.View.Zoom
	if sel := e.Boxes.Selected(); sel != nil && !sel.Locked {
		if h := boxes.HandleAt(cx, cy, sel, zoom); h.Resizes() {
			e.mode = Dragging{BoxID: sel.ID, Handle: h, Start: sel.Rect, Origin: r2.Vec{X: cx, Y: cy}}
			return
		}
	}
	if hit := e.Boxes.HitTest(cx, cy, zoom); hit != nil {
		_ = e.Boxes.Select(hit.ID)
		e.mode = Dragging{BoxID: hit.ID, Handle: boxes.HandleMove, Start: hit.Rect, Origin: r2.Vec{X: cx, Y: cy}}
		return
	}
	if ev.Mods&e.panMods != 0 || ev.Touches > 1 {
		e.mode = Panning{Last: ev.pos()}
		return
	}
	e.Boxes.ClearSelection()
	e.mode = Normal{}
}

// PointerMove continues the current drag.
func (e *Editor) PointerMove(ev PointerEvent) {
	switch m := e.mode.(type) {
	case Dragging:
		b := e.Boxes.Get(m.BoxID)
		if b == nil {
			e.mode = Normal{}
			return
		}
		if b.Locked {
			return
		}
		cx, cy := e.View.ScreenToCanvas(ev.X, ev.Y)
		b.Rect = m.Start
		boxes.ApplyDrag(b, m.Handle, cx-m.Origin.X, cy-m.Origin.Y)
	case Panning:
		p := ev.pos()
		e.View.Pan(p.X-m.Last.X, p.Y-m.Last.Y)
		e.mode = Panning{Last: p}
	case *Cropping:
		if !m.dragging || ev.Touches > 1 {
			return
		}
		b := e.Boxes.Get(m.Session.BoxID)
		if b == nil {
			e.CommitCrop()
			return
		}
		p := ev.pos()
		m.Session.Pan(b, p.X-m.Last.X, p.Y-m.Last.Y, e.View.Zoom)
		m.Last = p
	}
}

// PointerUp ends the current drag and feeds the double tap detector.
func (e *Editor) PointerUp(ev PointerEvent) {
	switch m := e.mode.(type) {
	case *Cropping:
		m.dragging = false
		return
	case Dragging, Panning:
		e.mode = Normal{}
	}

	cx, cy := e.View.ScreenToCanvas(ev.X, ev.Y)
	id := 0
	if hit := e.Boxes.HitTest(cx, cy, e.View.Zoom); hit != nil {
		id = hit.ID
	}
	at := ev.Time
	if at.IsZero() {
		at = time.Now()
	}
	if e.taps.Register(id, at) {
		if b := e.Boxes.Get(id); b != nil && b.Fill != nil {
			_ = e.EnterCrop(id)
		}
	}
}

// DoubleClick enters crop mode on the box under the pointer.
func (e *Editor) DoubleClick(ev PointerEvent) error {
	if e.Cropping() != nil {
		return nil
	}
	cx, cy := e.View.ScreenToCanvas(ev.X, ev.Y)
	hit := e.Boxes.HitTest(cx, cy, e.View.Zoom)
	if hit == nil {
		return nil
	}
	e.taps.Reset()
	return e.EnterCrop(hit.ID)
}

// Wheel zooms the view at the pointer, or rescales the image while cropping.
func (e *Editor) Wheel(ev WheelEvent) {
	if c, ok := e.mode.(*Cropping); ok {
		c.Session.Wheel(e.Boxes.Get(c.Session.BoxID), ev.DeltaY)
		return
	}
	e.View.ZoomAt(ev.X, ev.Y, viewport.WheelFactor(ev.DeltaY))
}

// PinchStart records the scale a pinch is relative to.
func (e *Editor) PinchStart(ev GestureEvent) {
	if c, ok := e.mode.(*Cropping); ok {
		c.dragging = false
		c.Session.BeginPinch(e.Boxes.Get(c.Session.BoxID))
		return
	}
	e.pinchZoom = e.View.Zoom
}

// Pinch zooms the view about the gesture midpoint, or rescales the image
// while cropping.
func (e *Editor) Pinch(ev GestureEvent) {
	if c, ok := e.mode.(*Cropping); ok {
		c.Session.Pinch(e.Boxes.Get(c.Session.BoxID), ev.Scale)
		return
	}
	if e.pinchZoom == 0 {
		e.pinchZoom = e.View.Zoom
	}
	e.View.SetZoomAt(ev.X, ev.Y, e.pinchZoom*ev.Scale)
}

// PinchEnd finishes a pinch.
func (e *Editor) PinchEnd(GestureEvent) {
	e.pinchZoom = 0
}

// KeyPress handles the editor's own keys and reports whether k was used.
func (e *Editor) KeyPress(k Key) bool {
	if e.Cropping() != nil {
		switch k {
		case KeyEnter:
			e.CommitCrop()
			return true
		case KeyEscape:
			e.CancelCrop()
			return true
		}
		return false
	}
	switch k {
	case KeyDelete, KeyBackspace:
		return e.DeleteActive() == nil
	case KeyEscape:
		e.Boxes.ClearSelection()
		return true
	}
	return false
}
