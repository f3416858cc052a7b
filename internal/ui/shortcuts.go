package ui

import (
	"strings"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/layoutcanvas/internal/editor"
)

// KeyShortcut describes a key combination.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

func (k KeyShortcut) String() string {
	var parts []string
	if k.Modifiers&key.ModControl != 0 {
		parts = append(parts, "Ctrl")
	}
	if k.Modifiers&key.ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if k.Modifiers&key.ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	switch {
	case k.Rune != 0:
		parts = append(parts, strings.ToUpper(string(k.Rune)))
	case k.Code == key.CodeDeleteForward:
		parts = append(parts, "Del")
	default:
		parts = append(parts, k.Code.String())
	}
	return strings.Join(parts, "+")
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// keymap resolves key events to named actions.
type keymap struct {
	byKey   map[KeyShortcut]string
	actions map[string]func()
	order   []string
	keys    map[string]KeyboardShortcuts
}

func newKeymap() *keymap {
	return &keymap{
		byKey:   map[KeyShortcut]string{},
		actions: map[string]func(){},
		keys:    map[string]KeyboardShortcuts{},
	}
}

func (m *keymap) register(name string, keys KeyboardShortcuts, fn func()) {
	m.actions[name] = fn
	m.order = append(m.order, name)
	m.keys[name] = keys
	for _, sc := range keys.KeyboardShortcuts() {
		m.byKey[sc] = name
	}
}

// lookup matches on the lower-cased rune first and falls back to the key
// code, so layouts that report no rune still work.
func (m *keymap) lookup(e key.Event) (string, bool) {
	mods := e.Modifiers &^ key.ModShift
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		if name, ok := m.byKey[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}]; ok {
			return name, true
		}
		if name, ok := m.byKey[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			return name, true
		}
	}
	name, ok := m.byKey[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]
	return name, ok
}

func (m *keymap) run(e key.Event) bool {
	name, ok := m.lookup(e)
	if !ok {
		return false
	}
	m.actions[name]()
	return true
}

// help lists every action with its shortcuts.
func (m *keymap) help() []string {
	out := make([]string, 0, len(m.order))
	for _, name := range m.order {
		var ks []string
		for _, sc := range m.keys[name].KeyboardShortcuts() {
			ks = append(ks, sc.String())
		}
		out = append(out, strings.Join(ks, " / ")+"  "+name)
	}
	return out
}

// editorKey maps the keys the editor handles itself.
func editorKey(c key.Code) (editor.Key, bool) {
	switch c {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		return editor.KeyEnter, true
	case key.CodeEscape:
		return editor.KeyEscape, true
	case key.CodeDeleteForward:
		return editor.KeyDelete, true
	case key.CodeDeleteBackspace:
		return editor.KeyBackspace, true
	}
	return 0, false
}

func editorMods(m key.Modifiers) editor.Modifiers {
	var out editor.Modifiers
	if m&key.ModShift != 0 {
		out |= editor.ModShift
	}
	if m&key.ModControl != 0 {
		out |= editor.ModCtrl
	}
	if m&key.ModAlt != 0 {
		out |= editor.ModAlt
	}
	if m&key.ModMeta != 0 {
		out |= editor.ModMeta
	}
	return out
}
