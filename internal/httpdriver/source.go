package httpdriver

import (
	"context"
	"sync"

	"ghsearch/internal/domain"
	"ghsearch/internal/stream"
)

const selectionBuffer = 16

type selection struct {
	ctx      context.Context
	category domain.Category
	ch       chan domain.Response
}

// Source fans responses out to selections by category
type Source struct {
	mu     sync.Mutex
	subs   []*selection
	closed bool
}

func newSource() *Source {
	return &Source{}
}

// Select returns the responses whose request carried category. Each
// selection sees every matching response delivered after it was made. The
// stream ends when the driver stops; a selection whose ctx is cancelled
// stops receiving.
func (s *Source) Select(ctx context.Context, category domain.Category) stream.Stream[domain.Response] {
	ch := make(chan domain.Response, selectionBuffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch
	}
	s.subs = append(s.subs, &selection{ctx: ctx, category: category, ch: ch})
	return ch
}

func (s *Source) publish(ctx context.Context, res domain.Response) {
	s.mu.Lock()
	var targets []*selection
	for _, sub := range s.subs {
		if sub.category == res.Category() {
			targets = append(targets, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range targets {
		select {
		case sub.ch <- res:
		case <-sub.ctx.Done():
		case <-ctx.Done():
		}
	}
}

// close ends every selection; called once no publish is running
func (s *Source) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, sub := range s.subs {
		close(sub.ch)
	}
	s.subs = nil
}
