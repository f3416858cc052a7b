package ui

import (
	"time"

	"github.com/example/layoutcanvas/internal/editor"
)

const (
	messageDuration      = 3 * time.Second
	errorMessageDuration = 5 * time.Second
)

// strip is the transient message shown along the bottom of the window.
// Progress notices stay up until replaced.
type strip struct {
	text  string
	until time.Time
}

func (s *strip) show(n editor.Notice, now time.Time) time.Duration {
	s.text = n.Title
	if n.Detail != "" {
		s.text += " " + n.Detail
	}
	d := messageDuration
	switch n.Kind {
	case editor.NoticeInfo:
		s.until = time.Time{}
		return 0
	case editor.NoticeError:
		d = errorMessageDuration
	}
	s.until = now.Add(d)
	return d
}

func (s *strip) current(now time.Time) string {
	if s.text == "" {
		return ""
	}
	if !s.until.IsZero() && now.After(s.until) {
		s.text = ""
		return ""
	}
	return s.text
}
