// Package ai holds the collaborators the editor calls for layout detection
// and background extension, plus the HTTP client and local stand-ins for
// them.
package ai

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/example/layoutcanvas/internal/layout"
)

// LayoutDetector finds the rectangles of a layout in a source image. An empty
// result means no layout was found and is not an error.
type LayoutDetector interface {
	DetectLayout(ctx context.Context, img image.Image) ([]layout.Rect, error)
}

// BackgroundFiller extends img so it is at least w×h.
type BackgroundFiller interface {
	ExtendBackground(ctx context.Context, img image.Image, w, h int) (image.Image, error)
}

// ErrService matches every collaborator failure.
var ErrService = errors.New("ai service failure")

// ServiceError wraps a failed collaborator call.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

func (e *ServiceError) Is(target error) bool { return target == ErrService }

func serviceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Op: op, Err: err}
}
