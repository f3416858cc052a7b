package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"math"

	"github.com/example/layoutcanvas/internal/boxes"
	"github.com/example/layoutcanvas/internal/fit"
	"github.com/example/layoutcanvas/internal/layout"
	"github.com/example/layoutcanvas/internal/render"
)

// begin marks an AI call in flight and returns its generation.
func (e *Editor) begin() (uint64, context.Context, context.CancelFunc) {
	e.busy = true
	e.gen++
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	return e.gen, ctx, cancel
}

// current reports whether a completion for gen is still wanted and, if so,
// clears the busy flag.
func (e *Editor) current(gen uint64) bool {
	if gen != e.gen {
		log.Printf("dropping stale AI response %d (current %d)", gen, e.gen)
		return false
	}
	e.busy = false
	return true
}

// CancelPending abandons any in-flight AI call. Its response is discarded
// when it arrives.
func (e *Editor) CancelPending() {
	if !e.busy {
		return
	}
	e.gen++
	e.busy = false
}

// UploadImageToActiveBox places img in the selected box with a cover fit.
// Images smaller than the box are first extended by the background filler;
// in that case the fill is applied when the completion runs.
func (e *Editor) UploadImageToActiveBox(img image.Image) error {
	b := e.Boxes.Selected()
	if b == nil {
		return e.fail(TopicFill, "No box selected", "Please select a box before uploading an image.", ErrNoSelection)
	}
	iw, ih := fit.Dims(img)
	if !(iw > 0) || !(ih > 0) {
		return e.fail(TopicFill, "Failed to load image", "", &fit.InvalidImageError{Width: iw, Height: ih})
	}
	if e.filler != nil && fit.NeedsExtension(iw, ih, b.Width, b.Height) {
		if e.busy {
			return ErrBusy
		}
		id := b.ID
		w, h := int(math.Ceil(b.Width)), int(math.Ceil(b.Height))
		gen, ctx, cancel := e.begin()
		e.notify(Notice{Kind: NoticeInfo, Topic: TopicFill, Title: "AI is filling the background...", Detail: "This might take a moment."})
		filler := e.filler
		go func() {
			defer cancel()
			out, err := filler.ExtendBackground(ctx, img, w, h)
			e.sched.Post(func() { e.finishUpload(gen, id, img, out, err) })
		}()
		return nil
	}
	if err := e.placeImage(b, img); err != nil {
		return e.fail(TopicFill, "Failed to load image", "", err)
	}
	return nil
}

func (e *Editor) finishUpload(gen uint64, id int, orig, out image.Image, err error) {
	if !e.current(gen) {
		return
	}
	b := e.Boxes.Get(id)
	if b == nil {
		log.Printf("box %d removed before background fill finished", id)
		return
	}
	if err == nil && out == nil {
		err = errors.New("empty background fill result")
	}
	if err == nil {
		err = e.placeImage(b, out)
		if err == nil {
			e.notify(Notice{Kind: NoticeSuccess, Topic: TopicFill, Title: "AI background fill complete!"})
			return
		}
	}
	e.notify(Notice{Kind: NoticeError, Topic: TopicFill, Title: "AI background fill failed", Detail: "Using original image instead.", Err: err})
	if err := e.placeImage(b, orig); err != nil {
		e.fail(TopicFill, "Failed to load image", "", err)
	}
}

// placeImage swaps in a cover-fitted fill for img, ending a crop of b first.
func (e *Editor) placeImage(b *boxes.Box, img image.Image) error {
	f, err := fit.Apply(img, b.Width, b.Height)
	if err != nil {
		return err
	}
	if s := e.Cropping(); s != nil && s.BoxID == b.ID {
		e.CommitCrop()
	}
	b.Fill = f
	return nil
}

// ImportLayoutFromImage asks the layout detector for the panels of img and
// adds one placeholder box per panel when the completion runs.
func (e *Editor) ImportLayoutFromImage(img image.Image) error {
	if e.detector == nil {
		return e.fail(TopicLayout, "AI layout detection failed", "No layout detector is configured.", ErrNoDetector)
	}
	iw, ih := fit.Dims(img)
	if !(iw > 0) || !(ih > 0) {
		return e.fail(TopicLayout, "Failed to load image", "", &fit.InvalidImageError{Width: iw, Height: ih})
	}
	if e.busy {
		return ErrBusy
	}
	gen, ctx, cancel := e.begin()
	e.notify(Notice{Kind: NoticeInfo, Topic: TopicLayout, Title: "AI is detecting layout...", Detail: "This might take a moment."})
	detector := e.detector
	go func() {
		defer cancel()
		rects, err := detector.DetectLayout(ctx, img)
		e.sched.Post(func() { e.finishImport(gen, rects, err) })
	}()
	return nil
}

func (e *Editor) finishImport(gen uint64, rects []layout.Rect, err error) {
	if !e.current(gen) {
		return
	}
	if err != nil {
		e.fail(TopicLayout, "AI layout detection failed", "Please try another image.", err)
		return
	}
	_, _ = e.ApplyLayout(rects)
}

// ApplyLayout places detected rectangles on the canvas as placeholder boxes
// in one batch. Nothing is added on error.
func (e *Editor) ApplyLayout(rects []layout.Rect) ([]*boxes.Box, error) {
	plan, err := layout.Place(rects, e.Canvas.Width, e.Canvas.Height)
	switch {
	case errors.Is(err, layout.ErrNoLayoutDetected):
		return nil, e.fail(TopicLayout, "No layout detected", "Couldn't find any boxes in the image.", err)
	case err != nil:
		return nil, e.fail(TopicLayout, "AI layout detection failed", "The detected boxes have no area.", err)
	}
	specs := make([]boxes.Spec, 0, len(plan.Boxes))
	for _, r := range plan.Boxes {
		pw := max(1, int(math.Round(r.Width)))
		ph := max(1, int(math.Round(r.Height)))
		f, err := fit.Apply(render.Placeholder(pw, ph, e.Theme, e.labels), r.Width, r.Height)
		if err != nil {
			return nil, e.fail(TopicLayout, "Error loading placeholder", "", err)
		}
		specs = append(specs, boxes.Spec{Rect: boxes.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, Fill: f})
	}
	added, err := e.Boxes.AddBatch(specs)
	if err != nil {
		return nil, e.fail(TopicLayout, "AI layout detection failed", "", err)
	}
	e.notify(Notice{Kind: NoticeSuccess, Topic: TopicLayout, Title: "AI layout detection complete!", Detail: fmt.Sprintf("Found %d boxes.", len(added))})
	return added, nil
}
