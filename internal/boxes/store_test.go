package boxes

import (
	"errors"
	"image"
	"math"
	"math/rand"
	"testing"
)

func mustAdd(t *testing.T, s *Store, x, y, w, h float64) *Box {
	t.Helper()
	b, err := s.Add(x, y, w, h)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return b
}

func assertDense(t *testing.T, s *Store) {
	t.Helper()
	seen := make([]bool, s.Len())
	for _, b := range s.Sorted() {
		if b.Z < 0 || b.Z >= s.Len() || seen[b.Z] {
			t.Fatalf("z ranks not dense: box %d has z %d", b.ID, b.Z)
		}
		seen[b.Z] = true
	}
}

func TestAddAssignsIDsAndRanks(t *testing.T) {
	s := NewStore()
	a := mustAdd(t, s, 0, 0, 10, 10)
	b := mustAdd(t, s, 5, 5, 10, 10)
	if a.ID == b.ID || b.ID <= a.ID {
		t.Fatalf("ids not monotonic: %d %d", a.ID, b.ID)
	}
	if a.Z != 0 || b.Z != 1 {
		t.Fatalf("unexpected ranks %d %d", a.Z, b.Z)
	}
	c := mustAdd(t, s, 0, 0, -20, -30)
	if c.X != -20 || c.Y != -30 || c.Width != 20 || c.Height != 30 {
		t.Fatalf("negative extents not normalized: %+v", c.Rect)
	}
}

func TestAddBatchIsAllOrNothing(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, 0, 0, 1, 1)
	_, err := s.AddBatch([]Spec{
		{Rect: Rect{X: 0, Y: 0, Width: 5, Height: 5}},
		{Rect: Rect{X: math.NaN(), Y: 0, Width: 5, Height: 5}},
	})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("store partially mutated: %d boxes", s.Len())
	}
}

func TestHitTestFrontToBack(t *testing.T) {
	s := NewStore()
	back := mustAdd(t, s, 0, 0, 100, 100)
	front := mustAdd(t, s, 50, 50, 100, 100)

	if got := s.HitTest(75, 75, 1); got != front {
		t.Fatalf("expected front box, got %+v", got)
	}
	if got := s.HitTest(10, 10, 1); got != back {
		t.Fatalf("expected back box, got %+v", got)
	}
	// tolerance is 4 screen pixels, i.e. 2 canvas units at zoom 2
	if got := s.HitTest(-1.5, 10, 2); got != back {
		t.Fatalf("expected tolerance hit, got %+v", got)
	}
	if got := s.HitTest(-3, 10, 2); got != nil {
		t.Fatalf("expected miss, got %+v", got)
	}
}

func TestRemoveClearsSelection(t *testing.T) {
	s := NewStore()
	a := mustAdd(t, s, 0, 0, 1, 1)
	b := mustAdd(t, s, 0, 0, 1, 1)
	if err := s.Select(a.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := s.Remove(a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Selected() != nil {
		t.Fatalf("selection should be cleared")
	}
	if b.Z != 0 {
		t.Fatalf("remaining box should be re-ranked, z=%d", b.Z)
	}
	if err := s.Remove(a.ID); !errors.Is(err, ErrUnknownBox) {
		t.Fatalf("expected ErrUnknownBox, got %v", err)
	}
}

func TestReorderScenario(t *testing.T) {
	s := NewStore()
	a := mustAdd(t, s, 0, 0, 1, 1)
	b := mustAdd(t, s, 0, 0, 1, 1)
	c := mustAdd(t, s, 0, 0, 1, 1)

	if err := s.Reorder(a.ID, Front); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if a.Z != 2 || b.Z != 0 || c.Z != 1 {
		t.Fatalf("after front: a=%d b=%d c=%d", a.Z, b.Z, c.Z)
	}
	if err := s.Reorder(c.ID, Back); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if c.Z != 0 || b.Z != 1 || a.Z != 2 {
		t.Fatalf("after back: a=%d b=%d c=%d", a.Z, b.Z, c.Z)
	}
}

func TestReorderKeepsRanksDense(t *testing.T) {
	s := NewStore()
	var ids []int
	for i := 0; i < 12; i++ {
		ids = append(ids, mustAdd(t, s, 0, 0, 1, 1).ID)
	}
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		id := ids[r.Intn(len(ids))]
		switch r.Intn(3) {
		case 0:
			_ = s.Reorder(id, Front)
		case 1:
			_ = s.Reorder(id, Back)
		case 2:
			if s.Get(id) != nil && s.Len() > 1 {
				_ = s.Remove(id)
			} else if s.Get(id) == nil {
				ids = append(ids, mustAdd(t, s, 0, 0, 1, 1).ID)
			}
		}
		assertDense(t, s)
	}
}

func TestImageFillCovers(t *testing.T) {
	f := &ImageFill{Bitmap: image.NewRGBA(image.Rect(0, 0, 50, 200)), Scale: 2, OffsetY: -150}
	if !f.Covers(100, 100, 1e-9) {
		t.Fatalf("expected fill to cover")
	}
	f.OffsetX = 1
	if f.Covers(100, 100, 1e-9) {
		t.Fatalf("offset fill should not cover")
	}
	var nilFill *ImageFill
	if nilFill.Covers(1, 1, 0) || nilFill.Clone() != nil {
		t.Fatalf("nil fill misbehaves")
	}
}
