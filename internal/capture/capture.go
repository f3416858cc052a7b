// Package capture grabs the screen so an on-screen reference layout can be
// imported without saving it to a file first.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"
)

type platformBackend interface {
	Monitors() ([]Monitor, error)
	Root() (*image.RGBA, error)
}

var backend platformBackend = newBackend()

var (
	ErrUnsupported = errors.New("screen capture is not supported on this platform")
	errNoMonitors  = errors.New("no monitors available")
)

// Monitor describes one output in global screen coordinates.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// Monitors lists the connected outputs.
func Monitors() ([]Monitor, error) {
	return backend.Monitors()
}

// Screen captures the whole desktop, or one monitor when selector is set.
// Selectors are "primary", an index, or part of the output name.
func Screen(selector string) (*image.RGBA, error) {
	shot, err := backend.Root()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(selector) == "" {
		return shot, nil
	}
	monitors, err := backend.Monitors()
	if err != nil {
		return nil, err
	}
	mon, err := FindMonitor(monitors, selector)
	if err != nil {
		return nil, err
	}
	return cropToRect(shot, mon.Rect)
}

// Region captures a rectangle in global screen coordinates.
func Region(rect image.Rectangle) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("region is empty")
	}
	shot, err := backend.Root()
	if err != nil {
		return nil, err
	}
	return cropToRect(shot, rect)
}

// ParseRegion reads "x,y,w,h".
func ParseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("region %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q: size must be positive", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

// FindMonitor resolves a monitor selector against the provided list.
func FindMonitor(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	if lower == "" {
		return monitors[0], nil
	}
	if lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	lower = strings.TrimPrefix(lower, "#")
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
