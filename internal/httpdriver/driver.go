// Package httpdriver is the network boundary: it performs the GET requests
// described by a request stream and hands the responses back, routed by
// category, to whoever selected that category.
package httpdriver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"ghsearch/internal/domain"
	"ghsearch/internal/eventbus"
	"ghsearch/internal/stream"
)

// Options configures the HTTP transport
type Options struct {
	Token       string
	Timeout     time.Duration
	MaxInFlight int
	// MaxRateLimitSleep caps a single back-off on GitHub's secondary rate limit
	MaxRateLimitSleep time.Duration
}

// Driver executes request descriptors and publishes their responses
type Driver struct {
	client      *github.Client // github category
	pageClient  *github.Client // every other category
	bus         eventbus.EventBus
	maxInFlight int
	source      *Source
}

// New builds a driver whose github transport waits out GitHub's secondary
// rate limit and, when a token is given, authenticates github requests.
// Requests of other categories go through a plain client that never carries
// the token.
func New(opts Options, bus eventbus.EventBus) (*Driver, error) {
	sleepLimit := opts.MaxRateLimitSleep
	if sleepLimit <= 0 {
		sleepLimit = time.Minute
	}
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(sleepLimit, nil),
		github_ratelimit.WithLimitDetectedCallback(func(*github_ratelimit.CallbackContext) {
			log.Printf("httpdriver: secondary rate limit detected, backing off")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if opts.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
		}
	}

	githubClient := github.NewClient(&http.Client{
		Transport:     transport,
		Timeout:       opts.Timeout,
		CheckRedirect: sameHostRedirects,
	})
	pageClient := github.NewClient(&http.Client{Timeout: opts.Timeout})

	d := NewWithClient(githubClient, bus, opts.MaxInFlight)
	d.pageClient = pageClient
	return d, nil
}

// NewWithClient creates a driver that sends every category through client.
// bus may be nil.
func NewWithClient(client *github.Client, bus eventbus.EventBus, maxInFlight int) *Driver {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Driver{
		client:      client,
		pageClient:  client,
		bus:         bus,
		maxInFlight: maxInFlight,
		source:      newSource(),
	}
}

// Source returns the response source. It is available before Run so that
// consumers can select their categories first.
func (d *Driver) Source() *Source {
	return d.source
}

// Run performs a GET for every descriptor until the request stream ends or
// ctx is cancelled. Descriptors are always accepted at once; at most
// maxInFlight requests run concurrently and the rest wait in a queue, so a
// slow response never holds up whoever produces requests. Requests complete
// in whatever order the transport finishes them. Run waits for in-flight
// requests and then ends every selected response stream.
func (d *Driver) Run(ctx context.Context, requests stream.Stream[domain.RequestDescriptor]) error {
	defer d.source.close()

	queued := stream.Buffer(ctx, requests)

	var eg errgroup.Group
	for i := 0; i < d.maxInFlight; i++ {
		eg.Go(func() error {
			for desc := range queued {
				d.fetch(ctx, desc)
			}
			return nil
		})
	}

	_ = eg.Wait()
	return ctx.Err()
}

func (d *Driver) fetch(ctx context.Context, desc domain.RequestDescriptor) {
	d.publish(eventbus.RequestIssuedEvent{Request: desc})
	log.Printf("httpdriver: GET %s [%s]", desc.URL, desc.Category)

	start := time.Now()
	res, status, err := d.do(ctx, desc)
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("httpdriver: %s request failed after %s: %v", desc.Category, elapsed, err)
		d.publish(eventbus.RequestFailedEvent{Request: desc, Err: err, Duration: elapsed})
		return
	}

	d.publish(eventbus.ResponseReceivedEvent{Request: desc, StatusCode: status, Duration: elapsed})
	d.source.publish(ctx, res)
}

// do performs the exchange and decodes the body according to the category
func (d *Driver) do(ctx context.Context, desc domain.RequestDescriptor) (domain.Response, int, error) {
	switch desc.Category {
	case domain.CategoryGitHub:
		req, err := d.client.NewRequest(http.MethodGet, desc.URL, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to build request: %w", err)
		}
		var result github.RepositoriesSearchResult
		resp, err := d.client.Do(ctx, req, &result)
		if err != nil {
			return nil, statusCode(resp), fmt.Errorf("failed to search repositories: %w", err)
		}
		return toSearchResponse(desc, &result), resp.StatusCode, nil

	default:
		req, err := d.pageClient.NewRequest(http.MethodGet, desc.URL, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to build request: %w", err)
		}
		var body bytes.Buffer
		resp, err := d.pageClient.Do(ctx, req, &body)
		if err != nil {
			return nil, statusCode(resp), fmt.Errorf("failed to fetch %s: %w", desc.URL, err)
		}
		return domain.PageResponse{Req: desc, StatusCode: resp.StatusCode, Body: body.Bytes()}, resp.StatusCode, nil
	}
}

func (d *Driver) publish(event eventbus.DomainEvent) {
	if d.bus != nil {
		d.bus.Publish(event)
	}
}

// sameHostRedirects keeps the authenticated transport on the host it was
// sent to; a redirect elsewhere is returned as the response instead
func sameHostRedirects(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return errors.New("stopped after 10 redirects")
	}
	if req.URL.Host != via[0].URL.Host {
		return http.ErrUseLastResponse
	}
	return nil
}

func statusCode(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

func toSearchResponse(desc domain.RequestDescriptor, result *github.RepositoriesSearchResult) domain.SearchResponse {
	items := make([]domain.RepositoryRecord, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		items = append(items, domain.RepositoryRecord{
			Name:        repo.GetName(),
			HTMLURL:     repo.GetHTMLURL(),
			FullName:    repo.GetFullName(),
			Description: repo.GetDescription(),
			Stars:       repo.GetStargazersCount(),
		})
	}
	return domain.SearchResponse{
		Req:        desc,
		Items:      items,
		TotalCount: result.GetTotal(),
		Incomplete: result.GetIncompleteResults(),
	}
}
