package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"ghsearch/internal/config"
	"ghsearch/internal/domain"
	"ghsearch/internal/eventbus"
	"ghsearch/internal/httpdriver"
	"ghsearch/internal/metrics"
	"ghsearch/internal/requests"
	"ghsearch/internal/stream"
	"ghsearch/internal/ui"
)

// Options configures Run
type Options struct {
	Config *config.Config
	// Bus may be nil; request events and statistics are then not collected
	Bus          eventbus.EventBus
	InitialQuery string
	NoBackground bool
	// ProgramOptions are passed to tea.NewProgram after the defaults
	ProgramOptions []tea.ProgramOption
}

// SettingsFromConfig converts the file configuration into stream settings
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Search: requests.SearchOptions{
			BaseURL:        cfg.Search.BaseURL,
			Debounce:       cfg.Debounce(),
			MinQueryLength: cfg.Search.MinQueryLength,
		},
		Background: requests.BackgroundOptions{
			URL:      cfg.Background.URL,
			Interval: cfg.BackgroundInterval(),
			Count:    cfg.Background.Count,
		},
		NoBackground: !cfg.Background.Enabled,
		LatestWins:   cfg.Search.LatestWins,
	}
}

// Run starts the drivers, runs the UI until it exits or ctx is cancelled and
// returns the latency recorder. The recorder is fed through the bus, so close
// the bus before reading it.
func Run(ctx context.Context, opts Options) (*metrics.Recorder, error) {
	cfg := opts.Config
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	recorder := metrics.NewRecorder(opts.Bus)

	driver, err := httpdriver.New(httpdriver.Options{
		Token:       cfg.ResolveToken(),
		Timeout:     cfg.Timeout(),
		MaxInFlight: cfg.HTTP.MaxInFlight,
	}, opts.Bus)
	if err != nil {
		return recorder, fmt.Errorf("failed to create HTTP driver: %w", err)
	}

	input := stream.NewSubject[domain.InputChangeEvent](64)
	defer input.Close()

	settings := SettingsFromConfig(cfg)
	if opts.NoBackground {
		settings.NoBackground = true
	}
	sinks := Main(ctx, Sources{Input: input.Stream(), HTTP: driver.Source()}, settings)

	model := ui.NewModel(ui.Options{
		Hyperlinks:   cfg.UISettings.Hyperlinks,
		InitialQuery: opts.InitialQuery,
		OnInput: func(ev domain.InputChangeEvent) {
			input.Send(ev)
		},
	})

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UISettings.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	programOpts = append(programOpts, opts.ProgramOptions...)
	p := tea.NewProgram(model, programOpts...)

	driverDone := make(chan struct{})
	go func() {
		defer close(driverDone)
		if err := driver.Run(ctx, sinks.HTTP); err != nil && ctx.Err() == nil {
			log.Printf("HTTP driver stopped: %v", err)
		}
	}()

	// Forward every view state to the UI
	go func() {
		for view := range sinks.View {
			p.Send(ui.ViewStateMsg{State: view})
		}
	}()

	log.Printf("Starting UI...")
	_, runErr := p.Run()

	cancel()
	<-driverDone

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return recorder, fmt.Errorf("error running program: %w", runErr)
	}
	log.Printf("UI exited normally")
	return recorder, nil
}
