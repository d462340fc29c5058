package requests

import (
	"context"
	"time"

	"ghsearch/internal/domain"
	"ghsearch/internal/stream"
)

// BackgroundOptions configures the background request generator
type BackgroundOptions struct {
	URL      string
	Interval time.Duration
	Count    int
}

// BackgroundRequests emits Count google requests, one every Interval, then
// stops its timer for good.
func BackgroundRequests(ctx context.Context, opts BackgroundOptions) stream.Stream[domain.RequestDescriptor] {
	tickerCtx, stop := context.WithCancel(ctx)
	ticks := stream.Take(ctx, stream.Periodic(tickerCtx, opts.Interval), opts.Count)
	limited := stream.Finally(ctx, ticks, stop)

	return stream.MapTo(ctx, limited, domain.RequestDescriptor{
		URL:      opts.URL,
		Category: domain.CategoryGoogle,
	})
}
