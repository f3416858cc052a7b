// Package crop implements the crop session that repositions and rescales an
// image inside a box without touching the box geometry.
package crop

import (
	"errors"
	"math"

	"github.com/example/layoutcanvas/internal/boxes"
	"github.com/example/layoutcanvas/internal/viewport"
)

const (
	MinScale = 0.1
	MaxScale = 10.0
)

// ErrNoFill is returned when entering crop mode on a box without an image.
var ErrNoFill = errors.New("box has no image to crop")

// Session is the state of one crop. It snapshots the fill on entry so a
// cancel can restore it.
type Session struct {
	BoxID    int
	Original *boxes.ImageFill

	pinchStart float64
	closed     bool
}

// Begin starts a crop on b and locks its geometry.
func Begin(b *boxes.Box) (*Session, error) {
	if b == nil || b.Fill == nil || b.Fill.Bitmap == nil {
		return nil, ErrNoFill
	}
	b.Locked = true
	return &Session{BoxID: b.ID, Original: b.Fill.Clone()}, nil
}

// Active reports whether the session still owns its box.
func (s *Session) Active() bool {
	return s != nil && !s.closed
}

func (s *Session) owns(b *boxes.Box) bool {
	return s.Active() && b != nil && b.ID == s.BoxID && b.Fill != nil
}

// Pan shifts the image by a screen-space drag of (dx, dy) at the given zoom.
// The cover invariant is not enforced while cropping.
func (s *Session) Pan(b *boxes.Box, dx, dy, zoom float64) {
	if !s.owns(b) {
		return
	}
	if zoom <= 0 {
		zoom = 1
	}
	next := b.Fill.Clone()
	next.OffsetX += dx / zoom
	next.OffsetY += dy / zoom
	b.Fill = next
}

// Wheel rescales the image by the wheel factor for deltaY.
func (s *Session) Wheel(b *boxes.Box, deltaY float64) {
	if !s.owns(b) {
		return
	}
	s.setScale(b, b.Fill.Scale*viewport.WheelFactor(deltaY))
}

// BeginPinch records the scale a pinch gesture is relative to.
func (s *Session) BeginPinch(b *boxes.Box) {
	if !s.owns(b) {
		return
	}
	s.pinchStart = b.Fill.Scale
}

// Pinch sets the scale to the gesture ratio applied to the scale at the
// start of the gesture.
func (s *Session) Pinch(b *boxes.Box, ratio float64) {
	if !s.owns(b) {
		return
	}
	if s.pinchStart == 0 {
		s.pinchStart = b.Fill.Scale
	}
	s.setScale(b, s.pinchStart*ratio)
}

func (s *Session) setScale(b *boxes.Box, scale float64) {
	if math.IsNaN(scale) {
		return
	}
	next := b.Fill.Clone()
	next.Scale = ClampScale(scale)
	b.Fill = next
}

// Commit ends the session keeping the current fill. b may be nil when the
// box was deleted during the session. Repeated calls are no-ops.
func (s *Session) Commit(b *boxes.Box) {
	if !s.Active() {
		return
	}
	s.closed = true
	if b != nil && b.ID == s.BoxID {
		b.Locked = false
	}
}

// Cancel restores the fill captured at Begin and ends the session.
func (s *Session) Cancel(b *boxes.Box) {
	if !s.Active() {
		return
	}
	if b != nil && b.ID == s.BoxID {
		b.Fill = s.Original.Clone()
	}
	s.Commit(b)
}

// ClampScale limits an image scale to [MinScale, MaxScale].
func ClampScale(v float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, v))
}
