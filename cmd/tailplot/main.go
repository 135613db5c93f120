package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailplot/tailplot/internal/feed"
	"github.com/tailplot/tailplot/internal/ingest"
	"github.com/tailplot/tailplot/internal/model"
	"github.com/tailplot/tailplot/internal/store"
	"github.com/tailplot/tailplot/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var sourcesPath string
	var showVersion bool
	var flags sourceFlags

	pflag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/tailplot/config.yml)")
	pflag.StringVar(&sourcesPath, "sources", "", "YAML file listing sources")
	pflag.StringArrayVar(&flags.JSONStream, "json", nil, "JSON-lines file to follow (repeatable)")
	pflag.StringArrayVar(&flags.JSONPoll, "json-poll", nil, "JSON-lines file to re-read on change (repeatable)")
	pflag.StringArrayVar(&flags.CSVStream, "csv", nil, "CSV file to follow (repeatable)")
	pflag.StringArrayVar(&flags.CSVPoll, "csv-poll", nil, "CSV file or glob to re-read on change (repeatable)")
	pflag.StringVar(&flags.CSVHeader, "csv-header", "", "comma-separated column names for headerless CSV")
	pflag.StringVar(&flags.Delimiter, "csv-delimiter", "", "CSV field delimiter (default ,)")
	pflag.DurationVar(&flags.PollPeriod, "poll-period", 0, "fallback re-read interval for poll sources")
	pflag.BoolVar(&showVersion, "version", false, "print version information")
	pflag.Parse()

	if showVersion {
		fmt.Printf("Tailplot - Live Terminal Charts\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flags.PollPeriod <= 0 {
		flags.PollPeriod = cfg.PollPeriod
	}
	if sourcesPath == "" {
		sourcesPath = cfg.Sources
	}

	specs, err := sourcesFromFlags(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if sourcesPath != "" {
		fromFile, err := loadSourcesFile(sourcesPath, cfg.PollPeriod)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		specs = append(specs, fromFile...)
	}

	if err := run(cfg, specs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires feeds, ingestion, and the TUI, and blocks until the user quits.
func run(cfg appConfig, specs []model.SourceConfig) error {
	cleanupLogger := configureRuntimeLogger()
	defer cleanupLogger()

	if len(specs) == 0 {
		return errors.New("no sources given; use --json/--json-poll/--csv/--csv-poll or --sources")
	}

	warnings := feed.NewWarningSink(cfg.WarningBacklog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sources := make([]feed.Source, 0, len(specs))
	for _, spec := range specs {
		src, err := feed.Open(ctx, spec, warnings)
		if err != nil {
			for _, open := range sources {
				open.Stop()
			}
			return fmt.Errorf("opening %s: %w", spec.Path, err)
		}
		sources = append(sources, src)
	}

	st := store.New(cfg.Backlog)
	mux := ingest.NewMux(ctx, sources, cfg.MuxBufferSize)
	mux.Start()

	// Ingestion runs independently of the render loop; freezing or hiding
	// in the TUI never stops appends.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ingest.NewHub(mux, st).Run(gctx)
	})

	chart := tui.NewChartModel(st, warnings, tui.Config{
		FrameInterval:      cfg.FrameInterval,
		ViewSpan:           cfg.ViewSpan,
		WarningDisplay:     cfg.WarningDisplay,
		ReverseScrollWheel: cfg.ReverseScrollWheel,
	})
	p := tea.NewProgram(chart, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, runErr := p.Run()

	cancel()
	mux.Stop()
	if err := g.Wait(); err != nil {
		log.Printf("ingest: exited with error: %v", err)
	}

	if runErr != nil {
		if strings.Contains(runErr.Error(), "TTY") || strings.Contains(runErr.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", runErr)
	}
	return nil
}

// configureRuntimeLogger redirects the stdlib logger away from the terminal
// so stray goroutine messages cannot corrupt the alt screen.
func configureRuntimeLogger() func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	home, err := os.UserHomeDir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logDir := filepath.Join(home, ".local", "state", "tailplot")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logPath := filepath.Join(logDir, "tailplot.log")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		_ = f.Close()
	}
}
