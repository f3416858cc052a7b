package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultPreset is the canvas size used when nothing else is configured.
const DefaultPreset = "400x600"

var (
	ErrInvalidSize     = errors.New("width and height must be positive numbers")
	ErrDuplicatePreset = errors.New("size already exists")
	ErrLastPreset      = errors.New("cannot delete last size")
	ErrUnknownPreset   = errors.New("unknown size")
)

// Size is a canvas size in pixels.
type Size struct {
	Width, Height int
}

// Key renders s as "WxH".
func (s Size) Key() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// ParseSize reads a "WxH" string.
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Size{}, fmt.Errorf("%q: %w", s, ErrInvalidSize)
	}
	wi, werr := strconv.Atoi(strings.TrimSpace(w))
	hi, herr := strconv.Atoi(strings.TrimSpace(h))
	if werr != nil || herr != nil || wi <= 0 || hi <= 0 {
		return Size{}, fmt.Errorf("%q: %w", s, ErrInvalidSize)
	}
	return Size{Width: wi, Height: hi}, nil
}

// Presets is the ordered set of canvas sizes offered to the user.
type Presets struct {
	keys  []string
	sizes map[string]Size
}

// NewPresets builds a preset list from "WxH" strings. Invalid and duplicate
// entries are skipped. An empty result falls back to DefaultPreset.
func NewPresets(sizes ...string) *Presets {
	p := &Presets{sizes: map[string]Size{}}
	for _, s := range sizes {
		sz, err := ParseSize(s)
		if err != nil {
			continue
		}
		_, _ = p.Add(sz.Width, sz.Height)
	}
	if len(p.keys) == 0 {
		_, _ = p.Add(400, 600)
	}
	return p
}

// Add registers a new size and returns its key.
func (p *Presets) Add(w, h int) (string, error) {
	if w <= 0 || h <= 0 {
		return "", ErrInvalidSize
	}
	sz := Size{Width: w, Height: h}
	key := sz.Key()
	if _, ok := p.sizes[key]; ok {
		return "", fmt.Errorf("%s: %w", key, ErrDuplicatePreset)
	}
	p.sizes[key] = sz
	p.keys = append(p.keys, key)
	return key, nil
}

// Delete removes a size. The last remaining size cannot be deleted.
func (p *Presets) Delete(key string) error {
	if _, ok := p.sizes[key]; !ok {
		return fmt.Errorf("%s: %w", key, ErrUnknownPreset)
	}
	if len(p.keys) <= 1 {
		return ErrLastPreset
	}
	delete(p.sizes, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Get looks up a size by key.
func (p *Presets) Get(key string) (Size, bool) {
	s, ok := p.sizes[key]
	return s, ok
}

// Keys returns the preset keys in insertion order.
func (p *Presets) Keys() []string {
	return append([]string(nil), p.keys...)
}

// First returns the first preset.
func (p *Presets) First() Size {
	return p.sizes[p.keys[0]]
}
