// Package app wires the input, request and result streams together and runs
// them against the terminal UI and the HTTP driver.
package app

import (
	"context"
	"time"

	"ghsearch/internal/domain"
	"ghsearch/internal/requests"
	"ghsearch/internal/results"
	"ghsearch/internal/stream"
)

// Selector hands out the responses of one category
type Selector interface {
	Select(ctx context.Context, category domain.Category) stream.Stream[domain.Response]
}

// Sources are the streams flowing into the application
type Sources struct {
	Input stream.Stream[domain.InputChangeEvent]
	HTTP  Selector
}

// Sinks are the streams flowing out of the application
type Sinks struct {
	View stream.Stream[domain.ViewState]
	HTTP stream.Stream[domain.RequestDescriptor]
}

// Settings parameterises the stream wiring
type Settings struct {
	Search     requests.SearchOptions
	Background requests.BackgroundOptions
	// NoBackground disables the background generator entirely
	NoBackground bool
	LatestWins   bool
}

// DefaultSettings mirrors config.DefaultConfig
func DefaultSettings() Settings {
	return Settings{
		Search: requests.SearchOptions{
			BaseURL:        "https://api.github.com/search/repositories",
			Debounce:       500 * time.Millisecond,
			MinQueryLength: 1,
		},
		Background: requests.BackgroundOptions{
			URL:      "http://www.google.com",
			Interval: time.Second,
			Count:    2,
		},
	}
}

// Main describes the whole application as stream wiring. It performs no I/O:
// typed text becomes search requests merged with background requests, and
// github responses become view states.
func Main(ctx context.Context, src Sources, settings Settings) Sinks {
	search := requests.SearchRequests(ctx, src.Input, settings.Search)

	request := search
	if !settings.NoBackground {
		request = requests.Merge(ctx, search, requests.BackgroundRequests(ctx, settings.Background))
	}

	view := results.Views(ctx, src.HTTP.Select(ctx, domain.CategoryGitHub), results.Options{
		LatestWins: settings.LatestWins,
	})

	return Sinks{View: view, HTTP: request}
}
