// Package monitor owns the periodic refresh cycle: it re-derives the open
// billing session, daily and weekly totals from the full log history,
// publishes the snapshot, and feeds the alerter and the status file.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rubensayshi/ccusagebar/internal/alert"
	"github.com/rubensayshi/ccusagebar/internal/config"
	"github.com/rubensayshi/ccusagebar/internal/domain"
	"github.com/rubensayshi/ccusagebar/internal/pricing"
	"github.com/rubensayshi/ccusagebar/internal/statusfile"
)

// Snapshot is the fully-formed result of one refresh. Consumers always
// receive a value copy; partial computation is never visible.
type Snapshot struct {
	Block       domain.SessionBlock
	HasBlock    bool
	DailyCost   float64
	WeeklyCost  float64
	LastUpdated time.Time
	LastError   string
}

// Options wires the coordinator's collaborators.
type Options struct {
	Config     config.Config
	Scan       func() []domain.UsageEntry // ingestion collaborator
	Calc       *pricing.Calculator
	Alerter    *alert.Notifier
	StatusPath string // empty disables the status artifact
	TZ         *time.Location
	Logger     zerolog.Logger
	Now        func() time.Time // defaults to time.Now
}

// Monitor is the only stateful, scheduled component. It is the sole
// writer of the snapshot; everything downstream reads copies.
type Monitor struct {
	cfg        config.Config
	scan       func() []domain.UsageEntry
	calc       *pricing.Calculator
	alerter    *alert.Notifier
	statusPath string
	tz         *time.Location
	log        zerolog.Logger
	now        func() time.Time

	resetWeekday time.Weekday
	resetHour    int

	mu   sync.RWMutex
	snap Snapshot

	group       singleflight.Group
	reconfigure chan time.Duration

	subsMu sync.Mutex
	subs   []chan Snapshot
}

func New(opts Options) (*Monitor, error) {
	weekday, err := opts.Config.Week.Weekday()
	if err != nil {
		return nil, err
	}
	if opts.Scan == nil {
		return nil, fmt.Errorf("monitor: Scan is required")
	}
	if opts.Calc == nil {
		return nil, fmt.Errorf("monitor: Calc is required")
	}
	tz := opts.TZ
	if tz == nil {
		tz = time.Local
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Monitor{
		cfg:          opts.Config,
		scan:         opts.Scan,
		calc:         opts.Calc,
		alerter:      opts.Alerter,
		statusPath:   opts.StatusPath,
		tz:           tz,
		log:          opts.Logger,
		now:          now,
		resetWeekday: weekday,
		resetHour:    opts.Config.Week.ResetHour,
		reconfigure:  make(chan time.Duration, 1),
	}, nil
}

// Run performs an immediate refresh, then drives the periodic cycle until
// ctx is cancelled. Interval changes arrive via Reconfigure and swap the
// ticker in place, so two tickers can never fire concurrently.
func (m *Monitor) Run(ctx context.Context) {
	m.TriggerRefresh(ctx)

	ticker := time.NewTicker(m.cfg.Refresh.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.TriggerRefresh(ctx)
		case d := <-m.reconfigure:
			ticker.Reset(d)
		}
	}
}

// Reconfigure changes the refresh interval for the running loop.
func (m *Monitor) Reconfigure(minutes int) error {
	if !config.ValidInterval(minutes) {
		return fmt.Errorf("monitor: unsupported interval %d minutes", minutes)
	}
	d := time.Duration(minutes) * time.Minute
	// Replace any pending change rather than queueing behind it.
	select {
	case <-m.reconfigure:
	default:
	}
	m.reconfigure <- d
	return nil
}

// TriggerRefresh starts a refresh unless one is already in flight, in
// which case the trigger coalesces into it. It never blocks the caller.
func (m *Monitor) TriggerRefresh(ctx context.Context) {
	m.group.DoChan("refresh", func() (interface{}, error) {
		if err := m.refresh(ctx); err != nil {
			m.log.Warn().Err(err).Msg("refresh failed")
			return nil, err
		}
		return nil, nil
	})
}

// RefreshNow runs one refresh synchronously (still single-flight) and
// returns the resulting snapshot.
func (m *Monitor) RefreshNow(ctx context.Context) (Snapshot, error) {
	_, err, _ := m.group.Do("refresh", func() (interface{}, error) {
		return nil, m.refresh(ctx)
	})
	return m.Snapshot(), err
}

// refresh recomputes everything from the full record history. The scan is
// the expensive part and runs before any lock is taken; a cancelled
// context abandons the cycle without mutating shared state.
func (m *Monitor) refresh(ctx context.Context) error {
	started := m.now()

	entries := m.scan()
	if err := ctx.Err(); err != nil {
		return err
	}

	m.calc.ApplyAll(entries)

	now := m.now()
	block, hasBlock := domain.ActiveBlock(entries, now)
	daily := domain.DailyCost(entries, now, m.tz)
	weekly := domain.WeeklyCost(entries, now, m.resetWeekday, m.resetHour)

	snap := Snapshot{
		Block:       block,
		HasBlock:    hasBlock,
		DailyCost:   daily,
		WeeklyCost:  weekly,
		LastUpdated: now,
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if m.alerter != nil && hasBlock {
		m.alerter.Observe(block.ID, block.TotalCost, m.cfg.Limits.BlockUSD)
	}

	if m.statusPath != "" {
		st := statusfile.Build(block, hasBlock, daily, weekly, m.cfg.Limits, now)
		if err := statusfile.Write(m.statusPath, st); err != nil {
			snap.LastError = err.Error()
			m.log.Warn().Err(err).Str("path", m.statusPath).Msg("status write failed")
		}
	}

	m.mu.Lock()
	m.snap = snap
	m.mu.Unlock()

	m.publish(snap)

	m.log.Debug().
		Int("entries", len(entries)).
		Bool("active_block", hasBlock).
		Float64("daily_cost", daily).
		Float64("weekly_cost", weekly).
		Dur("took", m.now().Sub(started)).
		Msg("refresh complete")

	return nil
}

// Snapshot returns a copy of the latest fully-formed snapshot.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Subscribe returns a channel that receives a snapshot copy after every
// completed refresh. Slow consumers drop intermediate snapshots instead
// of blocking the coordinator.
func (m *Monitor) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	m.subsMu.Lock()
	m.subs = append(m.subs, ch)
	m.subsMu.Unlock()
	return ch
}

func (m *Monitor) publish(snap Snapshot) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- snap:
		default:
			// Drain the stale snapshot and replace it with the fresh one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
