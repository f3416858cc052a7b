package editor

import "context"

// Scheduler runs completions of asynchronous work on the goroutine that owns
// the editor.
type Scheduler interface {
	Post(fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

func (f SchedulerFunc) Post(fn func()) { f(fn) }

// Queue is a channel backed Scheduler. The owner drains it with Next, Drain
// or by receiving from C.
type Queue struct {
	ch chan func()
}

// NewQueue returns a queue buffering up to n completions.
func NewQueue(n int) *Queue {
	return &Queue{ch: make(chan func(), n)}
}

// Post enqueues fn, blocking while the buffer is full.
func (q *Queue) Post(fn func()) { q.ch <- fn }

// C exposes the queue for select loops.
func (q *Queue) C() <-chan func() { return q.ch }

// Next waits for one completion and runs it.
func (q *Queue) Next(ctx context.Context) error {
	select {
	case fn := <-q.ch:
		fn()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain runs every completion already queued and reports how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}
