package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rubensayshi/ccusagebar/internal/config"
	"github.com/rubensayshi/ccusagebar/internal/monitor"
)

// snapshotMsg carries a fresh snapshot from the monitor.
type snapshotMsg monitor.Snapshot

// tickMsg redraws the countdown between refreshes.
type tickMsg time.Time

// App is a thin consumer of monitor snapshots: all computation happens in
// the coordinator, the view only formats the latest copy.
type App struct {
	mon  *monitor.Monitor
	cfg  config.Config
	sub  <-chan monitor.Snapshot
	snap monitor.Snapshot
	width int
}

func NewApp(mon *monitor.Monitor, cfg config.Config) App {
	return App{
		mon:   mon,
		cfg:   cfg,
		sub:   mon.Subscribe(),
		snap:  mon.Snapshot(),
		width: 60,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.waitSnapshot(), tick())
}

func (a App) waitSnapshot() tea.Cmd {
	sub := a.sub
	return func() tea.Msg {
		return snapshotMsg(<-sub)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "r":
			a.mon.TriggerRefresh(context.Background())
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width

	case snapshotMsg:
		a.snap = monitor.Snapshot(msg)
		return a, a.waitSnapshot()

	case tickMsg:
		return a, tick()
	}

	return a, nil
}
