package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/layoutcanvas/internal/config"
	"github.com/example/layoutcanvas/internal/editor"
	"github.com/example/layoutcanvas/internal/platform"
)

// send is swapped in tests.
var send = platform.Notify

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title     string
	SavedText string // format for export notifications, %s is the path
	Enabled   config.Notify
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title:     "Layout Editor",
		SavedText: "Saved %s",
		Enabled:   config.New().Notify,
	}
}

// LoadPreferences overlays environment variables on the configured switches.
func LoadPreferences(cfg config.Notify) Preferences {
	prefs := DefaultPreferences()
	prefs.Enabled = cfg
	if v := strings.TrimSpace(os.Getenv("LAYOUTEDIT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	if v := strings.TrimSpace(os.Getenv("LAYOUTEDIT_NOTIFY_SAVE_TEXT")); v != "" {
		prefs.SavedText = v
	}
	return prefs
}

// Notifier forwards editor notices to the desktop notification center.
type Notifier struct {
	prefs Preferences
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	return &Notifier{prefs: prefs}
}

// Notice raises a desktop notification for n when its topic is enabled.
// Progress notices are never forwarded.
func (n *Notifier) Notice(ev editor.Notice) {
	if n == nil || ev.Kind == editor.NoticeInfo {
		return
	}
	isErr := ev.Kind == editor.NoticeError
	if !n.prefs.Enabled.Enabled(ev.Topic, isErr) {
		return
	}
	body := strings.TrimSpace(ev.Detail)
	if body == "" && ev.Err != nil {
		body = ev.Err.Error()
	}
	n.dispatch(ev.Title, body, platform.Options{Urgent: isErr})
}

// Saved announces an exported file, using the file itself as the icon.
func (n *Notifier) Saved(path string) {
	if n == nil || !n.prefs.Enabled.Enabled(editor.TopicExport, false) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(n.prefs.Title, fmt.Sprintf(n.prefs.SavedText, detail), opts)
}

// Copied announces an export placed on the clipboard with a preview icon.
func (n *Notifier) Copied(img image.Image) {
	if n == nil || !n.prefs.Enabled.Enabled(editor.TopicCopy, false) {
		return
	}
	opts := platform.Options{}
	if img != nil {
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(n.prefs.Title, "Copied canvas to clipboard", opts)
}

func (n *Notifier) dispatch(title, body string, opts platform.Options) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = n.prefs.Title
	}
	if err := send(title, strings.TrimSpace(body), opts); err != nil {
		log.Printf("notification %q: %v", title, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "layoutedit-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
