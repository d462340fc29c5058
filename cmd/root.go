// Package cmd contains the CLI commands for ghsearch, built using the Cobra
// library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ghsearch/internal/app"
	"ghsearch/internal/config"
	"ghsearch/internal/eventbus"
)

var rootCmd = &cobra.Command{
	Use:   "ghsearch [query]",
	Short: "Search GitHub repositories as you type",
	Long: `ghsearch is a terminal UI that searches GitHub repositories while you type.
Keystrokes are debounced before a search is issued, and the matching
repositories are listed as links. A short background request stream runs
alongside the search to exercise the HTTP driver.`,
	SilenceUsage: true,
	RunE:         runSearch,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print request statistics to stderr on exit")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default is <user config dir>/ghsearch/config.toml)")
	addRunFlags(rootCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("token", "", "GitHub token (default is GITHUB_TOKEN)")
	cmd.Flags().Duration("debounce", 0, "Quiet period before a search is issued, e.g. 300ms")
	cmd.Flags().Bool("latest-wins", false, "Drop search responses older than the one on screen")
	cmd.Flags().Bool("no-background", false, "Do not issue the background requests")
	cmd.Flags().Bool("no-alt-screen", false, "Render inline instead of in the alternate screen")
	cmd.Flags().String("log-file", "", "Log file (default from config)")
}

// applyOverrides copies the flags that were set onto cfg
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("token") {
		cfg.Token, _ = flags.GetString("token")
	}
	if flags.Changed("debounce") {
		d, _ := flags.GetDuration("debounce")
		cfg.Search.DebounceMs = int(d / time.Millisecond)
	}
	if flags.Changed("latest-wins") {
		cfg.Search.LatestWins, _ = flags.GetBool("latest-wins")
	}
	if noBackground, _ := flags.GetBool("no-background"); noBackground {
		cfg.Background.Enabled = false
	}
	if noAltScreen, _ := flags.GetBool("no-alt-screen"); noAltScreen {
		cfg.UISettings.AltScreen = false
	}
	if flags.Changed("log-file") {
		cfg.UISettings.LogFile, _ = flags.GetString("log-file")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// setupLogging sends the standard logger to path. An empty path discards logs.
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(logFile)
	return logFile, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configService := config.NewConfigServiceWithBus(bus, configPath)
	cfg, err := configService.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return err
	}

	logFile, err := setupLogging(cfg.UISettings.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		defer logFile.Close()
	}
	log.Printf("Using config %s", configService.Path())

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recorder, err := app.Run(ctx, app.Options{
		Config:       cfg,
		Bus:          bus,
		InitialQuery: strings.Join(args, " "),
	})
	// Drain the bus so the recorder has seen every response
	bus.Close()
	if err != nil {
		return err
	}

	summary := recorder.String()
	log.Printf("Request statistics:\n%s", summary)
	if verbose && summary != "" {
		fmt.Fprint(os.Stderr, summary)
	}
	return nil
}
