package editor

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/layoutcanvas/internal/boxes"
	"github.com/example/layoutcanvas/internal/crop"
)

// Mode is the interaction state of the editor. Exactly one mode is active.
type Mode interface {
	mode()
}

// Normal is the idle mode.
type Normal struct{}

// Dragging moves or resizes a box for the length of one pointer press.
type Dragging struct {
	BoxID  int
	Handle boxes.Handle
	// Start is the box geometry at pointer down. Every move is applied to it
	// with the total delta from Origin.
	Start  boxes.Rect
	Origin r2.Vec
}

// Panning moves the viewport with the pointer.
type Panning struct {
	Last r2.Vec
}

// Cropping owns the crop session of one box.
type Cropping struct {
	Session *crop.Session
	// dragging is set while the pointer pans the image.
	dragging bool
	Last     r2.Vec
}

func (Normal) mode()    {}
func (Dragging) mode()  {}
func (Panning) mode()   {}
func (*Cropping) mode() {}

func modeName(m Mode) string {
	switch m.(type) {
	case Dragging:
		return "dragging"
	case Panning:
		return "panning"
	case *Cropping:
		return "cropping"
	}
	return "normal"
}
