package theme

import (
	"image/color"
)

// Theme defines the colours used to draw the canvas, its boxes and the
// editor chrome.
type Theme struct {
	Name string

	// Canvas
	CanvasBackground color.RGBA // Default canvas fill for new documents
	Workspace        color.RGBA // Area around the canvas in the window

	// Boxes
	BoxBorder    color.RGBA
	BorderWidth  float64 // Zero hides box borders
	Selection    color.RGBA
	Handle       color.RGBA
	HandleBorder color.RGBA

	// Crop mode
	CropOverlay color.RGBA

	// Placeholder bitmaps for empty boxes
	Placeholder     color.RGBA
	PlaceholderText color.RGBA

	// Transient message strip
	MessageBackground color.RGBA
	MessageText       color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		CanvasBackground:  color.RGBA{248, 248, 255, 255},
		Workspace:         color.RGBA{220, 220, 220, 255},
		BoxBorder:         color.RGBA{204, 204, 204, 255},
		BorderWidth:       2,
		Selection:         color.RGBA{0, 120, 215, 255},
		Handle:            color.RGBA{255, 255, 255, 255},
		HandleBorder:      color.RGBA{0, 120, 215, 255},
		CropOverlay:       color.RGBA{0, 0, 0, 140},
		Placeholder:       color.RGBA{224, 224, 224, 255},
		PlaceholderText:   color.RGBA{128, 128, 128, 255},
		MessageBackground: color.RGBA{0, 0, 0, 160},
		MessageText:       color.RGBA{255, 255, 255, 255},
	}
}
