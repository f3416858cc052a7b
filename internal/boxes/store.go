package boxes

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrUnknownBox      = errors.New("unknown box")
	ErrInvalidGeometry = errors.New("invalid box geometry")
)

// Direction selects the end of the stack a reorder moves a box to.
type Direction int

const (
	Front Direction = iota
	Back
)

func (d Direction) String() string {
	if d == Back {
		return "back"
	}
	return "front"
}

// Spec describes a box to be created by AddBatch.
type Spec struct {
	Rect
	Fill *ImageFill
}

// Store holds the boxes of one canvas. The index of a box in the z slice is
// its Z value, so ranks are always dense.
type Store struct {
	byID     map[int]*Box
	z        []*Box
	nextID   int
	selected int
}

// NewStore returns an empty store. IDs start at 1; 0 means no selection.
func NewStore() *Store {
	return &Store{byID: map[int]*Box{}, nextID: 1}
}

// Add creates a box at the top of the stack.
func (s *Store) Add(x, y, w, h float64) (*Box, error) {
	boxes, err := s.AddBatch([]Spec{{Rect: Rect{X: x, Y: y, Width: w, Height: h}}})
	if err != nil {
		return nil, err
	}
	return boxes[0], nil
}

// AddBatch appends every spec at the top of the stack in order. Nothing is
// added unless every spec is valid.
func (s *Store) AddBatch(specs []Spec) ([]*Box, error) {
	for i, sp := range specs {
		if !sp.Rect.finite() {
			return nil, fmt.Errorf("box %d: %w", i, ErrInvalidGeometry)
		}
	}
	out := make([]*Box, 0, len(specs))
	for _, sp := range specs {
		b := &Box{ID: s.nextID, Rect: sp.Rect.Normalize(), Z: len(s.z), Fill: sp.Fill}
		s.nextID++
		s.byID[b.ID] = b
		s.z = append(s.z, b)
		out = append(out, b)
	}
	return out, nil
}

// Get returns the box with id or nil.
func (s *Store) Get(id int) *Box {
	return s.byID[id]
}

// Remove deletes a box and re-ranks the rest.
func (s *Store) Remove(id int) error {
	b, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("remove %d: %w", id, ErrUnknownBox)
	}
	delete(s.byID, id)
	s.z = append(s.z[:b.Z], s.z[b.Z+1:]...)
	s.rerank()
	if s.selected == id {
		s.selected = 0
	}
	return nil
}

// Select makes id the active box.
func (s *Store) Select(id int) error {
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("select %d: %w", id, ErrUnknownBox)
	}
	s.selected = id
	return nil
}

// Selected returns the active box or nil.
func (s *Store) Selected() *Box {
	return s.byID[s.selected]
}

func (s *Store) ClearSelection() { s.selected = 0 }

// Len returns the number of boxes.
func (s *Store) Len() int { return len(s.z) }

// Sorted returns the boxes in ascending z order. The slice is a copy.
func (s *Store) Sorted() []*Box {
	out := make([]*Box, len(s.z))
	copy(out, s.z)
	return out
}

// HitTest returns the front-most box containing the canvas point, with the
// bounds widened by ClickTolerance screen pixels.
func (s *Store) HitTest(cx, cy, zoom float64) *Box {
	if zoom <= 0 {
		zoom = 1
	}
	tol := ClickTolerance / zoom
	p := r2.Vec{X: cx, Y: cy}
	for i := len(s.z) - 1; i >= 0; i-- {
		b := s.z[i].Normalize().Bounds()
		b.Min = r2.Sub(b.Min, r2.Vec{X: tol, Y: tol})
		b.Max = r2.Add(b.Max, r2.Vec{X: tol, Y: tol})
		if b.Contains(p) {
			return s.z[i]
		}
	}
	return nil
}

// Reorder moves a box to the front or the back of the stack.
func (s *Store) Reorder(id int, d Direction) error {
	b, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("reorder %d: %w", id, ErrUnknownBox)
	}
	s.z = append(s.z[:b.Z], s.z[b.Z+1:]...)
	if d == Back {
		s.z = append([]*Box{b}, s.z...)
	} else {
		s.z = append(s.z, b)
	}
	s.rerank()
	return nil
}

func (s *Store) rerank() {
	for i, b := range s.z {
		b.Z = i
	}
}
