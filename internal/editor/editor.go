// Package editor is the controller of one layout canvas. It owns the box
// store, the viewport and the interaction mode, and gates the asynchronous
// AI operations. All methods must be called from a single goroutine; results
// of background work come back through the Scheduler.
package editor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/example/layoutcanvas/internal/ai"
	"github.com/example/layoutcanvas/internal/boxes"
	"github.com/example/layoutcanvas/internal/crop"
	"github.com/example/layoutcanvas/internal/fit"
	"github.com/example/layoutcanvas/internal/render"
	"github.com/example/layoutcanvas/internal/theme"
	"github.com/example/layoutcanvas/internal/viewport"
)

// NewBoxSize is the side of boxes created by AddBox.
const NewBoxSize = 200

// DefaultTimeout bounds each AI call.
const DefaultTimeout = 60 * time.Second

var (
	ErrBusy        = errors.New("an AI operation is already running")
	ErrNoSelection = errors.New("no box selected")
	ErrNoDetector  = errors.New("no layout detector configured")
)

// Canvas is the fixed-size drawing surface.
type Canvas struct {
	Width, Height float64
	Background    color.RGBA
}

// Editor is the state of one layout editor.
type Editor struct {
	Canvas  Canvas
	View    viewport.Viewport
	Boxes   *boxes.Store
	Presets *Presets
	Theme   *theme.Theme

	mode       Mode
	containerW float64
	containerH float64
	panMods    Modifiers
	pinchZoom  float64
	taps       crop.TapTracker

	detector ai.LayoutDetector
	filler   ai.BackgroundFiller
	sched    Scheduler
	timeout  time.Duration
	busy     bool
	gen      uint64

	onNotice NoticeHandler
	labels   bool
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithDetector sets the layout detection collaborator.
func WithDetector(d ai.LayoutDetector) Option { return func(e *Editor) { e.detector = d } }

// WithFiller sets the background extension collaborator.
func WithFiller(f ai.BackgroundFiller) Option { return func(e *Editor) { e.filler = f } }

// WithScheduler sets where AI completions are delivered.
func WithScheduler(s Scheduler) Option { return func(e *Editor) { e.sched = s } }

// WithTimeout bounds each AI call.
func WithTimeout(d time.Duration) Option { return func(e *Editor) { e.timeout = d } }

// WithNoticeHandler registers the receiver of user-visible notices.
func WithNoticeHandler(fn NoticeHandler) Option { return func(e *Editor) { e.onNotice = fn } }

// WithTheme sets the colours used for placeholders and rendering.
func WithTheme(t *theme.Theme) Option { return func(e *Editor) { e.Theme = t } }

// WithPresets replaces the canvas size presets. The canvas starts at the
// first preset unless WithCanvasSize is also given.
func WithPresets(p *Presets) Option { return func(e *Editor) { e.Presets = p } }

// WithCanvasSize sets the initial canvas size.
func WithCanvasSize(w, h float64) Option {
	return func(e *Editor) { e.Canvas.Width, e.Canvas.Height = w, h }
}

// WithBackground sets the initial canvas background.
func WithBackground(c color.RGBA) Option { return func(e *Editor) { e.Canvas.Background = c } }

// WithContainer sets the initial size of the view hosting the canvas.
func WithContainer(w, h float64) Option {
	return func(e *Editor) { e.containerW, e.containerH = w, h }
}

// WithPanModifiers sets the modifiers that turn a press on empty space into
// a pan. The default is Alt.
func WithPanModifiers(m Modifiers) Option { return func(e *Editor) { e.panMods = m } }

// WithPlaceholderLabels prints the pixel size on placeholder bitmaps.
func WithPlaceholderLabels(on bool) Option { return func(e *Editor) { e.labels = on } }

// New creates an Editor with the provided options. Without WithScheduler
// completions of AI calls go to a Queue of 16 that the caller must drain
// through Scheduler; until then they are not applied, and once it is full
// the AI goroutines block.
func New(opts ...Option) *Editor {
	e := &Editor{
		View:    viewport.New(),
		Boxes:   boxes.NewStore(),
		mode:    Normal{},
		panMods: ModAlt,
		timeout: DefaultTimeout,
	}
	for _, o := range opts {
		o(e)
	}
	if e.Presets == nil {
		e.Presets = NewPresets(DefaultPreset)
	}
	if e.Theme == nil {
		e.Theme = theme.Default()
	}
	if e.Canvas.Width <= 0 || e.Canvas.Height <= 0 {
		sz := e.Presets.First()
		e.Canvas.Width, e.Canvas.Height = float64(sz.Width), float64(sz.Height)
	}
	if e.Canvas.Background == (color.RGBA{}) {
		e.Canvas.Background = e.Theme.CanvasBackground
	}
	if e.sched == nil {
		e.sched = NewQueue(16)
	}
	e.refit()
	return e
}

// Scheduler returns where completions are posted. When it is the default
// Queue the caller drains it with Next or Drain.
func (e *Editor) Scheduler() Scheduler { return e.sched }

// Mode returns the current interaction mode.
func (e *Editor) Mode() Mode { return e.mode }

// ModeName is a short label for the current mode.
func (e *Editor) ModeName() string { return modeName(e.mode) }

// Busy reports whether an AI call is in flight.
func (e *Editor) Busy() bool { return e.busy }

// Cropping returns the active crop session, or nil.
func (e *Editor) Cropping() *crop.Session {
	if c, ok := e.mode.(*Cropping); ok {
		return c.Session
	}
	return nil
}

func (e *Editor) refit() {
	e.View.Fit(e.Canvas.Width, e.Canvas.Height, e.containerW, e.containerH)
}

// SetContainerSize records the size of the hosting view and refits.
func (e *Editor) SetContainerSize(w, h float64) {
	e.containerW, e.containerH = w, h
	e.refit()
}

// ContainerSize returns the size of the hosting view.
func (e *Editor) ContainerSize() (float64, float64) { return e.containerW, e.containerH }

// SetCanvasSize changes the canvas size and refits the viewport. Any crop in
// progress is committed first.
func (e *Editor) SetCanvasSize(w, h float64) error {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return e.fail(TopicEdit, "Invalid dimensions", "Width and height must be positive numbers.", ErrInvalidSize)
	}
	e.CommitCrop()
	e.Canvas.Width, e.Canvas.Height = w, h
	e.refit()
	return nil
}

// UsePreset switches the canvas to a preset size.
func (e *Editor) UsePreset(key string) error {
	sz, ok := e.Presets.Get(key)
	if !ok {
		return e.fail(TopicEdit, "Unknown size", key, fmt.Errorf("%s: %w", key, ErrUnknownPreset))
	}
	return e.SetCanvasSize(float64(sz.Width), float64(sz.Height))
}

// SetBackgroundColor changes the canvas background.
func (e *Editor) SetBackgroundColor(c color.RGBA) {
	e.Canvas.Background = c
}

// AddBox creates a NewBoxSize square in the middle of the canvas, fills it
// with a placeholder and selects it.
func (e *Editor) AddBox() (*boxes.Box, error) {
	e.CommitCrop()
	x := (e.Canvas.Width - NewBoxSize) / 2
	y := (e.Canvas.Height - NewBoxSize) / 2
	f, err := fit.Apply(render.Placeholder(NewBoxSize, NewBoxSize, e.Theme, e.labels), NewBoxSize, NewBoxSize)
	if err != nil {
		return nil, e.fail(TopicEdit, "Failed to load placeholder", "", err)
	}
	added, err := e.Boxes.AddBatch([]boxes.Spec{{Rect: boxes.Rect{X: x, Y: y, Width: NewBoxSize, Height: NewBoxSize}, Fill: f}})
	if err != nil {
		return nil, e.fail(TopicEdit, "Failed to add box", "", err)
	}
	b := added[0]
	_ = e.Boxes.Select(b.ID)
	return b, nil
}

// DeleteActive removes the selected box.
func (e *Editor) DeleteActive() error {
	b := e.Boxes.Selected()
	if b == nil {
		return ErrNoSelection
	}
	if s := e.Cropping(); s != nil && s.BoxID == b.ID {
		e.CommitCrop()
	}
	if d, ok := e.mode.(Dragging); ok && d.BoxID == b.ID {
		e.mode = Normal{}
	}
	return e.Boxes.Remove(b.ID)
}

// Reorder moves the selected box to the front or back and clears the
// selection.
func (e *Editor) Reorder(d boxes.Direction) error {
	b := e.Boxes.Selected()
	if b == nil {
		return e.fail(TopicEdit, "No box selected", "Select a box to move it "+d.String()+".", ErrNoSelection)
	}
	e.CommitCrop()
	if err := e.Boxes.Reorder(b.ID, d); err != nil {
		return err
	}
	e.Boxes.ClearSelection()
	return nil
}

// EnterCrop starts a crop session on the box with id. A session on another
// box is committed first; entering the box already being cropped is a no-op.
func (e *Editor) EnterCrop(id int) error {
	b := e.Boxes.Get(id)
	if b == nil {
		return fmt.Errorf("crop %d: %w", id, boxes.ErrUnknownBox)
	}
	if s := e.Cropping(); s != nil {
		if s.BoxID == id {
			return nil
		}
		e.CommitCrop()
	}
	s, err := crop.Begin(b)
	if err != nil {
		return err
	}
	_ = e.Boxes.Select(id)
	e.mode = &Cropping{Session: s}
	return nil
}

// CommitCrop ends the crop session keeping the adjusted fill. Without a
// session it does nothing.
func (e *Editor) CommitCrop() {
	c, ok := e.mode.(*Cropping)
	if !ok {
		return
	}
	c.Session.Commit(e.Boxes.Get(c.Session.BoxID))
	e.Boxes.ClearSelection()
	e.mode = Normal{}
}

// CancelCrop ends the crop session restoring the fill it started with.
func (e *Editor) CancelCrop() {
	c, ok := e.mode.(*Cropping)
	if !ok {
		return
	}
	c.Session.Cancel(e.Boxes.Get(c.Session.BoxID))
	e.Boxes.ClearSelection()
	e.mode = Normal{}
}

// Overlay returns the crop overlay for the current view, or nil when not
// cropping.
func (e *Editor) Overlay() *crop.Overlay {
	s := e.Cropping()
	if s == nil {
		return nil
	}
	o := crop.NewOverlay(e.View, e.Boxes.Get(s.BoxID), e.containerW, e.containerH)
	return &o
}

// Scene snapshots what the renderer needs.
func (e *Editor) Scene() render.Scene {
	return render.Scene{
		Width:      e.Canvas.Width,
		Height:     e.Canvas.Height,
		Background: e.Canvas.Background,
		Boxes:      e.Boxes.Sorted(),
		Theme:      e.Theme,
	}
}

// ExportPNG flattens the canvas at native size. A crop in progress is
// committed first.
func (e *Editor) ExportPNG() (image.Image, error) {
	e.CommitCrop()
	img, err := render.Export(e.Scene())
	if err != nil {
		return nil, e.fail(TopicExport, "Export failed", "", err)
	}
	return img, nil
}

// WritePNG exports the canvas and encodes it to w.
func (e *Editor) WritePNG(w io.Writer) error {
	e.CommitCrop()
	if err := render.ExportPNG(w, e.Scene()); err != nil {
		return e.fail(TopicExport, "Export failed", "", err)
	}
	return nil
}
