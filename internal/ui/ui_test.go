package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"

	"github.com/example/layoutcanvas/internal/editor"
)

func TestKeymapLookup(t *testing.T) {
	m := newKeymap()
	var ran []string
	m.register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() { ran = append(ran, "save") })
	m.register("zoom in", shortcutList{{Rune: '+'}}, func() { ran = append(ran, "zoom") })
	m.register("cancel", shortcutList{{Code: key.CodeEscape, Modifiers: key.ModShift}}, func() { ran = append(ran, "cancel") })

	if !m.run(key.Event{Rune: 'S', Code: key.CodeS, Modifiers: key.ModControl | key.ModShift}) {
		t.Fatalf("ctrl+shift+s should fall back to ctrl+s")
	}
	if !m.run(key.Event{Rune: '+', Code: key.CodeEqualSign, Modifiers: key.ModShift}) {
		t.Fatalf("shifted rune not matched")
	}
	if !m.run(key.Event{Rune: -1, Code: key.CodeEscape, Modifiers: key.ModShift}) {
		t.Fatalf("code shortcut not matched")
	}
	if m.run(key.Event{Rune: 's', Code: key.CodeS}) {
		t.Fatalf("plain s should not save")
	}
	if strings.Join(ran, ",") != "save,zoom,cancel" {
		t.Fatalf("ran = %v", ran)
	}
	help := m.help()
	if len(help) != 3 || !strings.HasPrefix(help[0], "Ctrl+S") {
		t.Fatalf("help = %q", help)
	}
}

func TestEditorKeyAndMods(t *testing.T) {
	if k, ok := editorKey(key.CodeDeleteForward); !ok || k != editor.KeyDelete {
		t.Fatalf("delete = %v %v", k, ok)
	}
	if _, ok := editorKey(key.CodeA); ok {
		t.Fatalf("A should not map to an editor key")
	}
	got := editorMods(key.ModAlt | key.ModControl)
	if got != editor.ModAlt|editor.ModCtrl {
		t.Fatalf("mods = %b", got)
	}
}

func TestStripExpiry(t *testing.T) {
	var s strip
	now := time.Unix(0, 0)
	if d := s.show(editor.Notice{Kind: editor.NoticeInfo, Title: "AI is detecting layout..."}, now); d != 0 {
		t.Fatalf("progress notices should not expire, got %v", d)
	}
	if s.current(now.Add(time.Hour)) == "" {
		t.Fatalf("progress notice expired")
	}
	s.show(editor.Notice{Kind: editor.NoticeError, Title: "AI background fill failed", Detail: "Using original image instead.", Err: errors.New("x")}, now)
	if got := s.current(now.Add(time.Second)); got != "AI background fill failed Using original image instead." {
		t.Fatalf("text = %q", got)
	}
	if s.current(now.Add(errorMessageDuration+time.Millisecond)) != "" {
		t.Fatalf("error notice did not expire")
	}
}

func TestNewRoutesEditorThroughWindow(t *testing.T) {
	w := New(nil, WithSize(640, 480), WithSaveDir(t.TempDir()))
	if cw, ch := w.Editor.ContainerSize(); cw != 640 || ch != 480 {
		t.Fatalf("container = %vx%v", cw, ch)
	}
	if err := w.Editor.Reorder(0); err == nil {
		t.Fatalf("expected no selection error")
	}
	if !strings.Contains(w.msg.text, "No box selected") {
		t.Fatalf("notice not shown in strip: %q", w.msg.text)
	}

	path := w.outputPath()
	if filepath.Dir(path) != w.saveDir || !strings.HasSuffix(path, ".png") {
		t.Fatalf("output path = %q", path)
	}
	if _, err := w.Editor.AddBox(); err != nil {
		t.Fatal(err)
	}
	if err := w.save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
}
