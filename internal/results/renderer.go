// Package results folds github search responses into the view state.
package results

import (
	"context"
	"log"

	"ghsearch/internal/domain"
	"ghsearch/internal/stream"
)

// Options configures the result renderer
type Options struct {
	// LatestWins drops a response whose request is older than the last one
	// applied, so a slow stale query cannot overwrite a newer result.
	LatestWins bool
}

// Views turns the github response stream into view states. The first value
// is the empty view; every accepted response replaces the whole view with its
// items. Responses that are not search responses are ignored.
func Views(ctx context.Context, responses stream.Stream[domain.Response], opts Options) stream.Stream[domain.ViewState] {
	searches := stream.Map(ctx,
		stream.Filter(ctx, responses, isSearchResponse),
		func(r domain.Response) domain.SearchResponse { return r.(domain.SearchResponse) },
	)

	if opts.LatestWins {
		// Filter runs on a single goroutine, so applied needs no locking
		var applied uint64
		searches = stream.Filter(ctx, searches, func(r domain.SearchResponse) bool {
			seq := r.Req.Seq
			if seq < applied {
				log.Printf("results: dropping stale response #%d, #%d already shown", seq, applied)
				return false
			}
			applied = seq
			return true
		})
	}

	views := stream.Map(ctx, searches, ToViewState)
	return stream.StartWith(ctx, views, domain.ViewState{})
}

// ToViewState builds the view for a single response
func ToViewState(r domain.SearchResponse) domain.ViewState {
	items := make([]domain.RepositoryRecord, len(r.Items))
	copy(items, r.Items)
	return domain.ViewState{Items: items}
}

func isSearchResponse(r domain.Response) bool {
	if r.Category() != domain.CategoryGitHub {
		return false
	}
	_, ok := r.(domain.SearchResponse)
	return ok
}
