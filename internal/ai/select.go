package ai

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Collaborator names accepted in configuration.
const (
	KindHTTP    = "http"
	KindContour = "contour"
	KindBlur    = "blur"
	KindNone    = "none"
)

// Settings selects and configures the collaborators.
type Settings struct {
	Endpoint string
	Timeout  time.Duration
	Detector string
	Filler   string
}

var errNoEndpoint = errors.New("ai endpoint not configured")

func (s Settings) client() *Client {
	return NewClient(s.Endpoint, WithHTTPClient(&http.Client{Timeout: s.Timeout}))
}

// NewDetector returns the configured layout detector, or nil for "none".
func NewDetector(s Settings) (LayoutDetector, error) {
	switch s.Detector {
	case KindNone:
		return nil, nil
	case "", KindHTTP:
		if s.Endpoint == "" {
			if s.Detector == "" {
				return nil, nil
			}
			return nil, errNoEndpoint
		}
		return s.client(), nil
	case KindContour:
		return ContourDetector{}, nil
	}
	return nil, fmt.Errorf("unknown detector %q", s.Detector)
}

// NewFiller returns the configured background filler, or nil for "none".
// An unset filler uses the HTTP service when an endpoint is configured and
// the local blur filler otherwise.
func NewFiller(s Settings) (BackgroundFiller, error) {
	switch s.Filler {
	case KindNone:
		return nil, nil
	case "":
		if s.Endpoint == "" {
			return BlurFiller{}, nil
		}
		return s.client(), nil
	case KindHTTP:
		if s.Endpoint == "" {
			return nil, errNoEndpoint
		}
		return s.client(), nil
	case KindBlur:
		return BlurFiller{}, nil
	}
	return nil, fmt.Errorf("unknown filler %q", s.Filler)
}
