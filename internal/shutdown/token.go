// Package shutdown provides the one-shot termination signal shared by the
// Datagram Router and Service Manager workers. The original implementation
// repurposes a recursive lock as a termination flag: it acquires the lock
// at construction and has the worker poll TryAcquire each iteration,
// releasing it to signal shutdown. A closed channel expresses the same
// one-shot, poll-once-per-iteration contract without borrowing a mutex for
// something that isn't mutual exclusion.
package shutdown

import "sync"

// Token lets a worker goroutine poll, once per loop iteration, whether it
// has been asked to stop, and lets the owner block until the worker has
// actually exited.
type Token struct {
	stop    chan struct{}
	once    sync.Once
	done    chan struct{}
	doneSet sync.Once
}

// NewToken returns a token in the running state.
func NewToken() *Token {
	return &Token{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Stop signals the worker to exit. Idempotent: only the first call has
// an effect, later calls are no-ops.
func (t *Token) Stop() {
	t.once.Do(func() {
		close(t.stop)
	})
}

// Stopped reports whether Stop has been called, without blocking. The
// worker calls this once per loop iteration.
func (t *Token) Stopped() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

// MarkDone records that the worker has exited its loop. Idempotent.
func (t *Token) MarkDone() {
	t.doneSet.Do(func() {
		close(t.done)
	})
}

// WaitDone blocks until MarkDone has been called.
func (t *Token) WaitDone() {
	<-t.done
}
