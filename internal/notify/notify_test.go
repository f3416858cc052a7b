package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/layoutcanvas/internal/config"
	"github.com/example/layoutcanvas/internal/editor"
	"github.com/example/layoutcanvas/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := send
	send = func(title, body string, opts platform.Options) error {
		if opts.IconPath != "" {
			if _, err := os.Stat(opts.IconPath); err != nil {
				t.Errorf("icon %q missing while notifying: %v", opts.IconPath, err)
			}
		}
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { send = prev })
	return &got
}

func TestNoticeRouting(t *testing.T) {
	got := capture(t)
	n := New(LoadPreferences(config.Notify{Fill: true, Error: true}))

	n.Notice(editor.Notice{Kind: editor.NoticeInfo, Topic: editor.TopicFill, Title: "AI is filling the background..."})
	n.Notice(editor.Notice{Kind: editor.NoticeSuccess, Topic: editor.TopicLayout, Title: "AI layout detection complete!"})
	n.Notice(editor.Notice{Kind: editor.NoticeSuccess, Topic: editor.TopicFill, Title: "AI background fill complete!"})
	n.Notice(editor.Notice{Kind: editor.NoticeError, Topic: editor.TopicLayout, Title: "AI layout detection failed", Err: errors.New("boom")})

	if len(*got) != 2 {
		t.Fatalf("sent %d notifications: %+v", len(*got), *got)
	}
	if (*got)[0].title != "AI background fill complete!" || (*got)[0].opts.Urgent {
		t.Fatalf("first = %+v", (*got)[0])
	}
	if last := (*got)[1]; !last.opts.Urgent || last.body != "boom" {
		t.Fatalf("error notification = %+v", last)
	}
}

func TestSavedAndCopied(t *testing.T) {
	got := capture(t)
	t.Setenv("LAYOUTEDIT_NOTIFY_TITLE", "Layouts")
	n := New(LoadPreferences(config.Notify{Export: true, Copy: true}))

	path := filepath.Join(t.TempDir(), "out.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n.Saved(path)
	n.Copied(image.NewRGBA(image.Rect(0, 0, 2, 2)))

	if len(*got) != 2 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	if s := (*got)[0]; s.title != "Layouts" || s.opts.IconPath != path || s.body != "Saved "+path {
		t.Fatalf("saved = %+v", s)
	}
	if s := (*got)[1]; s.opts.IconPath == "" {
		t.Fatalf("copy notification has no preview")
	} else if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview %q not cleaned up", s.opts.IconPath)
	}
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	n.Notice(editor.Notice{Kind: editor.NoticeError})
	n.Saved("x")
	n.Copied(nil)
}
