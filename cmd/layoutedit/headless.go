package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/example/layoutcanvas/internal/editor"
)

// session runs an editor without a window. Completions are delivered
// through a queue the command waits on.
type session struct {
	e       *editor.Editor
	q       *editor.Queue
	lastErr error
	r       *root
}

func newSession(r *root, opts []editor.Option) *session {
	s := &session{q: editor.NewQueue(1), r: r}
	opts = append(opts,
		editor.WithScheduler(s.q),
		editor.WithNoticeHandler(s.notice),
	)
	s.e = editor.New(opts...)
	return s
}

func (s *session) notice(n editor.Notice) {
	switch n.Kind {
	case editor.NoticeError:
		s.lastErr = fmt.Errorf("%s: %w", n.Title, n.Err)
	case editor.NoticeInfo:
		log.Print(n.Title)
		return
	}
	if s.r != nil {
		s.r.notifier.Notice(n)
	}
}

// wait blocks until the pending AI call completes.
func (s *session) wait(ctx context.Context) error {
	if !s.e.Busy() {
		return nil
	}
	if err := s.q.Next(ctx); err != nil {
		s.e.CancelPending()
		return err
	}
	return nil
}

// start runs fn and waits for any AI call it began. Busy is reported as an
// error since a headless session never overlaps calls.
func (s *session) start(ctx context.Context, fn func() error) error {
	s.lastErr = nil
	if err := fn(); err != nil {
		if errors.Is(err, editor.ErrBusy) {
			return err
		}
		if s.lastErr != nil {
			return s.lastErr
		}
		return err
	}
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.lastErr
}
