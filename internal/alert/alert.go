// Package alert fires one-shot notifications when the active block's cost
// crosses configured percentage thresholds.
package alert

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rubensayshi/ccusagebar/internal/pace"
)

// Sender delivers a single alert to the user. Implementations decide the
// channel (terminal bell, log line, OS notification).
type Sender interface {
	Send(title, body string)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(title, body string)

func (f SenderFunc) Send(title, body string) { f(title, body) }

// Notifier tracks which thresholds have fired for the current block.
// Each enabled threshold fires at most once per block; the fired set is
// cleared whenever the block identity changes. All state lives here:
// there is no ambient global.
type Notifier struct {
	mu         sync.Mutex
	sender     Sender
	thresholds []int // ascending percentages
	fired      map[int]bool
	blockID    string
}

func New(sender Sender, thresholds []int) *Notifier {
	ts := make([]int, len(thresholds))
	copy(ts, thresholds)
	sort.Ints(ts)
	return &Notifier{
		sender:     sender,
		thresholds: ts,
		fired:      make(map[int]bool),
	}
}

// Observe receives the active block's identity and (cost, limit) once per
// refresh. A changed blockID starts a fresh session: the fired set resets
// before thresholds are evaluated.
func (n *Notifier) Observe(blockID string, cost, limit float64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if blockID != n.blockID {
		n.blockID = blockID
		n.fired = make(map[int]bool)
	}
	if limit <= 0 {
		return
	}

	pct := cost / limit * 100
	for _, threshold := range n.thresholds {
		if pct >= float64(threshold) && !n.fired[threshold] {
			n.fired[threshold] = true
			n.sender.Send("ccusagebar",
				fmt.Sprintf("Block usage at %d%%: %s / %s", threshold, pace.Currency(cost), pace.Currency(limit)))
		}
	}
}

// Reset clears the fired set without changing the tracked block.
func (n *Notifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fired = make(map[int]bool)
}
