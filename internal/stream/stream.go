// Package stream provides channel-based stream stages that can be chained
// into pipelines.
//
// A Stream is a receive-only channel and ends when the channel is closed.
// Every stage runs on its own goroutine, stops when its context is cancelled
// and always closes its output when it stops.
package stream

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
)

// Stream is a read-only sequence of values
type Stream[T any] <-chan T

// send delivers v unless ctx is cancelled first
func send[T any](ctx context.Context, out chan<- T, v T) bool {
	select {
	case out <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

// recv reads the next value, reporting false when the input ended or ctx was cancelled
func recv[T any](ctx context.Context, in Stream[T]) (T, bool) {
	select {
	case v, ok := <-in:
		return v, ok
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}

// Of returns a stream that emits vs and ends
func Of[T any](ctx context.Context, vs ...T) Stream[T] {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, v := range vs {
			if !send(ctx, out, v) {
				return
			}
		}
	}()
	return out
}

// Map applies f to every value
func Map[T, U any](ctx context.Context, in Stream[T], f func(T) U) Stream[U] {
	out := make(chan U)
	go func() {
		defer close(out)
		for {
			v, ok := recv(ctx, in)
			if !ok || !send(ctx, out, f(v)) {
				return
			}
		}
	}()
	return out
}

// MapTo replaces every value with v
func MapTo[T, U any](ctx context.Context, in Stream[T], v U) Stream[U] {
	return Map(ctx, in, func(T) U { return v })
}

// Filter forwards the values for which keep returns true
func Filter[T any](ctx context.Context, in Stream[T], keep func(T) bool) Stream[T] {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			v, ok := recv(ctx, in)
			if !ok {
				return
			}
			if keep(v) && !send(ctx, out, v) {
				return
			}
		}
	}()
	return out
}

// Debounce emits a value only after d has passed without a newer one.
// Each new value restarts the timer and replaces the pending one. When the
// input ends, a pending value is flushed before the output closes.
func Debounce[T any](ctx context.Context, in Stream[T], d time.Duration) Stream[T] {
	out := make(chan T)
	go func() {
		defer close(out)

		timer := time.NewTimer(d)
		timer.Stop()
		defer timer.Stop()

		var pending T
		hasPending := false
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					if hasPending {
						send(ctx, out, pending)
					}
					return
				}
				pending, hasPending = v, true
				timer.Reset(d)
			case <-timer.C:
				if !hasPending {
					continue
				}
				v := pending
				var zero T
				pending, hasPending = zero, false
				if !send(ctx, out, v) {
					return
				}
			}
		}
	}()
	return out
}

// Periodic emits 0, 1, 2, ... every d. The first value arrives after d.
// The ticker is stopped when ctx is cancelled.
func Periodic(ctx context.Context, d time.Duration) Stream[int] {
	out := make(chan int)
	go func() {
		defer close(out)
		ticker := time.NewTicker(d)
		defer ticker.Stop()

		for n := 0; ; n++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !send(ctx, out, n) {
					return
				}
			}
		}
	}()
	return out
}

// Take forwards the first n values and then ends. It stops reading from in,
// so whoever owns the upstream context should cancel it (see Finally).
func Take[T any](ctx context.Context, in Stream[T], n int) Stream[T] {
	out := make(chan T)
	go func() {
		defer close(out)
		for i := 0; i < n; i++ {
			v, ok := recv(ctx, in)
			if !ok || !send(ctx, out, v) {
				return
			}
		}
	}()
	return out
}

// Finally forwards every value and calls fn exactly once when the input ends
// or ctx is cancelled.
func Finally[T any](ctx context.Context, in Stream[T], fn func()) Stream[T] {
	out := make(chan T)
	go func() {
		defer close(out)
		defer fn()
		for {
			v, ok := recv(ctx, in)
			if !ok || !send(ctx, out, v) {
				return
			}
		}
	}()
	return out
}

// Merge interleaves all inputs in arrival order and ends once every input has ended
func Merge[T any](ctx context.Context, ins ...Stream[T]) Stream[T] {
	out := make(chan T)
	go func() {
		defer close(out)
		var wg conc.WaitGroup
		for _, in := range ins {
			wg.Go(func() {
				for {
					v, ok := recv(ctx, in)
					if !ok || !send(ctx, out, v) {
						return
					}
				}
			})
		}
		wg.Wait()
	}()
	return out
}

// Buffer forwards every value without ever blocking its input: values the
// consumer is not ready for are queued. The output ends once the input has
// ended and the queue is drained.
func Buffer[T any](ctx context.Context, in Stream[T]) Stream[T] {
	out := make(chan T)
	go func() {
		defer close(out)
		var queue []T
		for in != nil || len(queue) > 0 {
			// A nil channel disables its case
			var next T
			var ready chan<- T
			if len(queue) > 0 {
				next, ready = queue[0], out
			}
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				queue = append(queue, v)
			case ready <- next:
				var zero T
				queue[0] = zero
				queue = queue[1:]
			}
		}
	}()
	return out
}

// StartWith emits vs first and then forwards in
func StartWith[T any](ctx context.Context, in Stream[T], vs ...T) Stream[T] {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, v := range vs {
			if !send(ctx, out, v) {
				return
			}
		}
		for {
			v, ok := recv(ctx, in)
			if !ok || !send(ctx, out, v) {
				return
			}
		}
	}()
	return out
}

// Subject is a push source: values handed to Send come out of Stream.
type Subject[T any] struct {
	mu        sync.RWMutex
	ch        chan T
	done      chan struct{}
	closeOnce sync.Once
}

// NewSubject creates a subject whose stream buffers up to buf values
func NewSubject[T any](buf int) *Subject[T] {
	return &Subject[T]{
		ch:   make(chan T, buf),
		done: make(chan struct{}),
	}
}

// Stream returns the subject's output
func (s *Subject[T]) Stream() Stream[T] {
	return s.ch
}

// Send pushes v, blocking while the buffer is full.
// It returns false once the subject is closed.
func (s *Subject[T]) Send(v T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.ch <- v:
		return true
	case <-s.done:
		return false
	}
}

// Close ends the stream. Values already buffered are still delivered.
func (s *Subject[T]) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		// Wait for in-flight Sends to give up before closing the channel
		s.mu.Lock()
		close(s.ch)
		s.mu.Unlock()
	})
}
