// Package ui hosts the editor in a desktop window.
package ui

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/layoutcanvas/internal/boxes"
	"github.com/example/layoutcanvas/internal/clipboard"
	"github.com/example/layoutcanvas/internal/editor"
	"github.com/example/layoutcanvas/internal/notify"
	"github.com/example/layoutcanvas/internal/render"
)

const (
	defaultWidth  = 1000
	defaultHeight = 800
	wheelStep     = 100
)

// completion carries an AI result back onto the event goroutine.
type completion func()

// Window is the interactive editor window.
type Window struct {
	Editor *editor.Editor

	output   string
	saveDir  string
	notifier *notify.Notifier
	onClose  func()
	width    int
	height   int

	pending chan func()
	msg     strip
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithOutput sets the file written by Ctrl+S.
func WithOutput(path string) Option { return func(w *Window) { w.output = path } }

// WithSaveDir sets where Ctrl+S writes when no output file is given.
func WithSaveDir(dir string) Option { return func(w *Window) { w.saveDir = dir } }

// WithNotifier forwards notices to desktop notifications.
func WithNotifier(n *notify.Notifier) Option { return func(w *Window) { w.notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(w *Window) { w.onClose = fn } }

// WithSize sets the initial window size.
func WithSize(width, height int) Option {
	return func(w *Window) { w.width, w.height = width, height }
}

// New creates a window and the editor it hosts. Editor completions and
// notices are routed through the window's event loop.
func New(editorOpts []editor.Option, opts ...Option) *Window {
	w := &Window{
		width:   defaultWidth,
		height:  defaultHeight,
		pending: make(chan func(), 16),
	}
	for _, o := range opts {
		o(w)
	}
	sched := editor.SchedulerFunc(func(fn func()) { w.pending <- fn })
	editorOpts = append(editorOpts,
		editor.WithScheduler(sched),
		editor.WithContainer(float64(w.width), float64(w.height)),
		editor.WithNoticeHandler(w.notice),
	)
	w.Editor = editor.New(editorOpts...)
	return w
}

func (w *Window) notice(n editor.Notice) {
	w.msg.show(n, time.Now())
	w.notifier.Notice(n)
}

// Run executes the UI loop using shiny's driver.
func (w *Window) Run() { driver.Main(w.Main) }

// Main runs the event loop on s until the window is closed.
func (w *Window) Main(s screen.Screen) {
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: w.width, Height: w.height, Title: "Layout Editor"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer win.Release()
	defer func() {
		if w.onClose != nil {
			w.onClose()
		}
	}()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case fn := <-w.pending:
				win.Send(completion(fn))
			case <-done:
				return
			}
		}
	}()

	repaintAfter := func(d time.Duration) {
		if d > 0 {
			time.AfterFunc(d+50*time.Millisecond, func() { win.Send(paint.Event{}) })
		}
	}

	e := w.Editor
	keys := w.bindings(repaintAfter)
	var dragging bool

	for {
		switch ev := win.NextEvent().(type) {
		case lifecycle.Event:
			if ev.To == lifecycle.StageDead {
				e.CancelPending()
				return
			}
		case size.Event:
			w.width, w.height = ev.WidthPx, ev.HeightPx
			e.SetContainerSize(float64(ev.WidthPx), float64(ev.HeightPx))
			win.Send(paint.Event{})
		case completion:
			ev()
			repaintAfter(w.msg.until.Sub(time.Now()))
			win.Send(paint.Event{})
		case paint.Event:
			w.paint(s, win)
		case mouse.Event:
			pe := editor.PointerEvent{X: float64(ev.X), Y: float64(ev.Y), Mods: editorMods(ev.Modifiers), Time: time.Now()}
			switch {
			case ev.Button == mouse.ButtonWheelUp || ev.Button == mouse.ButtonWheelDown:
				if ev.Direction == mouse.DirStep || ev.Direction == mouse.DirPress {
					dy := float64(wheelStep)
					if ev.Button == mouse.ButtonWheelUp {
						dy = -dy
					}
					e.Wheel(editor.WheelEvent{X: pe.X, Y: pe.Y, DeltaY: dy})
				}
			case ev.Button == mouse.ButtonLeft && ev.Direction == mouse.DirPress:
				dragging = true
				e.PointerDown(pe)
			case ev.Button == mouse.ButtonLeft && ev.Direction == mouse.DirRelease:
				dragging = false
				e.PointerUp(pe)
			case ev.Direction == mouse.DirNone && dragging:
				e.PointerMove(pe)
			default:
				continue
			}
			win.Send(paint.Event{})
		case key.Event:
			if ev.Direction != key.DirPress {
				continue
			}
			handled := false
			if k, ok := editorKey(ev.Code); ok && ev.Modifiers == 0 {
				handled = e.KeyPress(k)
			}
			if !handled {
				handled = keys.run(ev)
			}
			if handled {
				win.Send(paint.Event{})
			}
		case error:
			log.Print(ev)
		}
	}
}

func (w *Window) paint(s screen.Screen, win screen.Window) {
	e := w.Editor
	opts := render.ViewOptions{
		Viewport: e.View,
		Width:    w.width,
		Height:   w.height,
		Overlay:  e.Overlay(),
		Message:  w.msg.current(time.Now()),
	}
	if b := e.Boxes.Selected(); b != nil {
		opts.Selected = b.ID
	}
	frame := render.View(e.Scene(), opts)

	buf, err := s.NewBuffer(image.Point{X: w.width, Y: w.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer buf.Release()
	copy(buf.RGBA().Pix, frame.Pix)
	win.Upload(image.Point{}, buf, buf.Bounds())
	win.Publish()
}

// bindings registers the window level shortcuts.
func (w *Window) bindings(repaintAfter func(time.Duration)) *keymap {
	e := w.Editor
	m := newKeymap()
	flash := func(n editor.Notice) {
		w.notice(n)
		repaintAfter(messageDuration)
	}

	m.register("add box", shortcutList{{Rune: 'n'}}, func() {
		if _, err := e.AddBox(); err != nil {
			log.Printf("add box: %v", err)
		}
	})
	m.register("bring to front", shortcutList{{Rune: ']'}}, func() { _ = e.Reorder(boxes.Front) })
	m.register("send to back", shortcutList{{Rune: '['}}, func() { _ = e.Reorder(boxes.Back) })
	m.register("fit to window", shortcutList{{Rune: '0'}}, func() {
		e.SetContainerSize(float64(w.width), float64(w.height))
	})
	m.register("zoom in", shortcutList{{Rune: '='}, {Rune: '+'}}, func() {
		e.Wheel(editor.WheelEvent{X: float64(w.width) / 2, Y: float64(w.height) / 2, DeltaY: -wheelStep})
	})
	m.register("zoom out", shortcutList{{Rune: '-'}}, func() {
		e.Wheel(editor.WheelEvent{X: float64(w.width) / 2, Y: float64(w.height) / 2, DeltaY: wheelStep})
	})
	m.register("next canvas size", shortcutList{{Rune: 'p'}}, func() {
		keys := e.Presets.Keys()
		cur := fmt.Sprintf("%gx%g", e.Canvas.Width, e.Canvas.Height)
		next := keys[0]
		for i, k := range keys {
			if k == cur {
				next = keys[(i+1)%len(keys)]
			}
		}
		if err := e.UsePreset(next); err == nil {
			flash(editor.Notice{Kind: editor.NoticeSuccess, Topic: editor.TopicEdit, Title: "Canvas " + next})
		}
	})
	m.register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() {
		path := w.outputPath()
		if err := w.save(path); err != nil {
			log.Printf("save: %v", err)
			return
		}
		log.Printf("saved %s", path)
		flash(editor.Notice{Kind: editor.NoticeSuccess, Topic: editor.TopicExport, Title: "Saved", Detail: path})
		w.notifier.Saved(path)
	})
	m.register("copy canvas", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		img, err := e.ExportPNG()
		if err != nil {
			return
		}
		if err := clipboard.WriteImage(img); err != nil {
			flash(editor.Notice{Kind: editor.NoticeError, Topic: editor.TopicCopy, Title: "Copy failed", Err: err})
			return
		}
		flash(editor.Notice{Kind: editor.NoticeSuccess, Topic: editor.TopicCopy, Title: "Canvas copied to clipboard"})
		w.notifier.Copied(img)
	})
	m.register("paste into box", shortcutList{{Rune: 'v', Modifiers: key.ModControl}}, func() {
		img, err := clipboard.Paste()
		if err != nil {
			flash(editor.Notice{Kind: editor.NoticeError, Topic: editor.TopicFill, Title: "Failed to load image", Err: err})
			return
		}
		if err := e.UploadImageToActiveBox(img); errors.Is(err, editor.ErrBusy) {
			log.Print("paste ignored: AI operation in progress")
		}
	})
	m.register("import layout from clipboard", shortcutList{{Rune: 'i', Modifiers: key.ModControl}}, func() {
		img, err := clipboard.Paste()
		if err != nil {
			flash(editor.Notice{Kind: editor.NoticeError, Topic: editor.TopicLayout, Title: "Failed to load image", Err: err})
			return
		}
		if err := e.ImportLayoutFromImage(img); errors.Is(err, editor.ErrBusy) {
			log.Print("import ignored: AI operation in progress")
		}
	})
	m.register("cancel AI", shortcutList{{Code: key.CodeEscape, Modifiers: key.ModShift}}, func() {
		e.CancelPending()
	})
	return m
}

func (w *Window) outputPath() string {
	if w.output != "" {
		return w.output
	}
	name := "layout-" + time.Now().Format("20060102-150405") + ".png"
	return filepath.Join(w.saveDir, name)
}

func (w *Window) save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := w.Editor.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
