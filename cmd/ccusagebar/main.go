package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rubensayshi/ccusagebar/internal/alert"
	"github.com/rubensayshi/ccusagebar/internal/config"
	"github.com/rubensayshi/ccusagebar/internal/domain"
	"github.com/rubensayshi/ccusagebar/internal/monitor"
	"github.com/rubensayshi/ccusagebar/internal/parser"
	"github.com/rubensayshi/ccusagebar/internal/pricing"
	"github.com/rubensayshi/ccusagebar/internal/statusfile"
	"github.com/rubensayshi/ccusagebar/internal/ui"
	"github.com/rubensayshi/ccusagebar/internal/watcher"
)

// version is set by goreleaser via ldflags.
var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", config.DefaultPath(), "config file path")
		dataDir     = flag.String("data-dir", defaultDataDir(), "Claude Code data directory")
		statusPath  = flag.String("status-file", config.DefaultStatusPath(), "status JSON path (empty to disable)")
		once        = flag.Bool("once", false, "run a single refresh, print the status JSON, and exit")
		headless    = flag.Bool("headless", false, "run without the terminal view")
		interval    = flag.Int("interval", 0, "override refresh interval minutes (1/2/5/10/15)")
		offline     = flag.Bool("offline", false, "skip the startup pricing fetch")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("ccusagebar", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *interval != 0 {
		if !config.ValidInterval(*interval) {
			fmt.Fprintf(os.Stderr, "Invalid interval: %d (use 1, 2, 5, 10 or 15)\n", *interval)
			os.Exit(1)
		}
		cfg.Refresh.IntervalMinutes = *interval
	}

	logger := newLogger(*headless || *once)

	table, err := pricing.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading pricing: %v\n", err)
		os.Exit(1)
	}
	if !*offline {
		if fetched, fetchErr := pricing.FetchLiteLLM(context.Background()); fetchErr == nil {
			table.Merge(fetched)
		} else {
			logger.Debug().Err(fetchErr).Msg("pricing fetch failed, using embedded table")
		}
	}
	calc := pricing.NewCalculator(table)

	notifier := alert.New(newSender(cfg, logger), cfg.Alerts.EnabledThresholds())

	dir := *dataDir
	mon, err := monitor.New(monitor.Options{
		Config:     cfg,
		Scan:       func() []domain.UsageEntry { return parser.Scan(dir) },
		Calc:       calc,
		Alerter:    notifier,
		StatusPath: *statusPath,
		TZ:         time.Local,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *once {
		runOnce(mon, cfg)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(dir, 30*time.Second, func() { mon.TriggerRefresh(ctx) })
	w.Start()
	defer w.Stop()

	go mon.Run(ctx)

	if *headless {
		logger.Info().
			Str("data_dir", dir).
			Int("interval_min", cfg.Refresh.IntervalMinutes).
			Msg("ccusagebar running")
		<-ctx.Done()
		return
	}

	p := tea.NewProgram(ui.NewApp(mon, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runOnce(mon *monitor.Monitor, cfg config.Config) {
	snap, err := mon.RefreshNow(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st := statusfile.Build(snap.Block, snap.HasBlock, snap.DailyCost, snap.WeeklyCost, cfg.Limits, snap.LastUpdated)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes structured events to stderr when running headless and
// stays quiet under the TUI so log lines cannot tear the screen.
func newLogger(headless bool) zerolog.Logger {
	if !headless {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
}

// newSender delivers alerts as a terminal bell plus a log event.
func newSender(cfg config.Config, logger zerolog.Logger) alert.Sender {
	return alert.SenderFunc(func(title, body string) {
		if cfg.Alerts.Bell {
			fmt.Fprint(os.Stderr, "\a")
		}
		logger.Info().Str("alert", title).Msg(body)
	})
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".claude", "projects")
	}
	return filepath.Join(home, ".claude", "projects")
}
