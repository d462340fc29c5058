// Package requests builds the outgoing request streams: debounced searches
// typed by the user, a short burst of unrelated background requests, and the
// merge of both.
package requests

import (
	"context"
	"log"
	"time"

	"ghsearch/internal/domain"
	"ghsearch/internal/stream"
)

// SearchOptions configures the search request builder
type SearchOptions struct {
	BaseURL        string
	Debounce       time.Duration
	MinQueryLength int
}

// SearchURL returns the repository search URL for query
func SearchURL(baseURL, query string) string {
	return baseURL + "?q=" + EncodeURI(query)
}

// SearchRequests turns raw input changes into github search requests.
// Bursts are debounced, queries shorter than MinQueryLength are dropped and
// every surviving query gets the next sequence number.
func SearchRequests(ctx context.Context, inputs stream.Stream[domain.InputChangeEvent], opts SearchOptions) stream.Stream[domain.RequestDescriptor] {
	minLen := opts.MinQueryLength
	if minLen < 1 {
		minLen = 1
	}

	settled := stream.Debounce(ctx, inputs, opts.Debounce)
	queries := stream.Map(ctx, settled, func(ev domain.InputChangeEvent) string { return ev.Value })
	valid := stream.Filter(ctx, queries, func(q string) bool { return len(q) >= minLen })

	// Map runs on a single goroutine, so seq needs no locking
	var seq uint64
	return stream.Map(ctx, valid, func(q string) domain.RequestDescriptor {
		seq++
		log.Printf("requests: search #%d for %q", seq, q)
		return domain.RequestDescriptor{
			URL:      SearchURL(opts.BaseURL, q),
			Category: domain.CategoryGitHub,
			Seq:      seq,
		}
	})
}
