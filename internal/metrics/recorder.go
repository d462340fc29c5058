// Package metrics keeps request latency figures gathered from the event bus.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/montanaflynn/stats"

	"ghsearch/internal/domain"
	"ghsearch/internal/eventbus"
)

// CategorySummary describes the requests of one category
type CategorySummary struct {
	Category domain.Category
	Count    int
	Failures int
	Mean     time.Duration
	Median   time.Duration
	P95      time.Duration
}

// Recorder collects response durations per category
type Recorder struct {
	mu        sync.Mutex
	durations map[domain.Category][]float64 // milliseconds
	failures  map[domain.Category]int
}

// NewRecorder creates a recorder subscribed to bus. With a nil bus it only
// records what is passed to Observe and Fail.
func NewRecorder(bus eventbus.EventBus) *Recorder {
	r := &Recorder{
		durations: make(map[domain.Category][]float64),
		failures:  make(map[domain.Category]int),
	}
	if bus == nil {
		return r
	}
	bus.Subscribe(eventbus.EventResponseReceived, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ResponseReceivedEvent); ok {
			r.Observe(ev.Request.Category, ev.Duration)
		}
	})
	bus.Subscribe(eventbus.EventRequestFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.RequestFailedEvent); ok {
			r.Fail(ev.Request.Category)
		}
	})
	return r
}

// Observe records one successful request
func (r *Recorder) Observe(category domain.Category, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations[category] = append(r.durations[category], float64(d)/float64(time.Millisecond))
}

// Fail records one failed request
func (r *Recorder) Fail(category domain.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[category]++
}

// Summary returns one entry per category seen, sorted by category
func (r *Recorder) Summary() []CategorySummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[domain.Category]bool)
	for c := range r.durations {
		seen[c] = true
	}
	for c := range r.failures {
		seen[c] = true
	}

	out := make([]CategorySummary, 0, len(seen))
	for c := range seen {
		s := CategorySummary{Category: c, Failures: r.failures[c]}
		data := stats.Float64Data(r.durations[c])
		s.Count = data.Len()
		if s.Count > 0 {
			// Errors only occur on empty input, ruled out above
			mean, _ := data.Mean()
			median, _ := data.Median()
			p95, _ := data.Percentile(95)
			s.Mean = millis(mean)
			s.Median = millis(median)
			s.P95 = millis(p95)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// String renders the summary as one line per category
func (r *Recorder) String() string {
	var b strings.Builder
	for _, s := range r.Summary() {
		fmt.Fprintf(&b, "%s: %d ok, %d failed, mean %s, median %s, p95 %s\n",
			s.Category, s.Count, s.Failures, s.Mean, s.Median, s.P95)
	}
	return b.String()
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond)).Round(time.Millisecond)
}
