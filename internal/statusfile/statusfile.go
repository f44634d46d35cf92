// Package statusfile renders the refresh snapshot into the JSON artifact
// consumed by status bars and scripts, and writes it atomically so
// external readers never observe a torn file.
package statusfile

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/rubensayshi/ccusagebar/internal/config"
	"github.com/rubensayshi/ccusagebar/internal/domain"
)

// Status is the machine-readable artifact written after every refresh.
// Currency fields carry 2 decimals, percentages 1 decimal in percentage
// points.
type Status struct {
	Daily   Daily  `json:"daily"`
	Weekly  Weekly `json:"weekly"`
	Updated string `json:"updated"`
	Block   Block  `json:"block"`
}

type Daily struct {
	Cost float64 `json:"cost"`
}

type Weekly struct {
	Cost  float64 `json:"cost"`
	Limit float64 `json:"limit"`
	Pct   float64 `json:"pct"`
}

// Block serializes as {"active": false} when no block is open, so
// consumers cannot mistake the sentinel for a zero-cost session.
type Block struct {
	Active       bool
	Cost         float64
	Limit        float64
	Pct          float64
	RemainingMin int
	BurnRate     float64
}

func (b Block) MarshalJSON() ([]byte, error) {
	if !b.Active {
		return json.Marshal(struct {
			Active bool `json:"active"`
		}{false})
	}
	return json.Marshal(struct {
		Active       bool    `json:"active"`
		Cost         float64 `json:"cost"`
		Limit        float64 `json:"limit"`
		Pct          float64 `json:"pct"`
		RemainingMin int     `json:"remaining_min"`
		BurnRate     float64 `json:"burn_rate"`
	}{true, b.Cost, b.Limit, b.Pct, b.RemainingMin, b.BurnRate})
}

// Build assembles the artifact from one refresh's results. block is only
// consulted when hasBlock is true.
func Build(block domain.SessionBlock, hasBlock bool, dailyCost, weeklyCost float64, limits config.LimitsConfig, updated time.Time) Status {
	st := Status{
		Daily: Daily{Cost: round2(dailyCost)},
		Weekly: Weekly{
			Cost:  round2(weeklyCost),
			Limit: limits.WeeklyUSD,
			Pct:   round1(pct(weeklyCost, limits.WeeklyUSD)),
		},
		Updated: updated.UTC().Format(time.RFC3339),
		Block:   Block{Active: false},
	}
	if hasBlock {
		st.Block = Block{
			Active:       true,
			Cost:         round2(block.TotalCost),
			Limit:        limits.BlockUSD,
			Pct:          round1(pct(block.TotalCost, limits.BlockUSD)),
			RemainingMin: block.Projection.RemainingMinutes,
			BurnRate:     round2(block.BurnRate.CostPerHour),
		}
	}
	return st
}

// Write replaces path with the rendered status in one rename, creating
// parent directories as needed.
func Write(path string, st Status) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create status dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".status-*.json")
	if err != nil {
		return fmt.Errorf("create temp status file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write status: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close status: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod status: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace status file: %w", err)
	}
	return nil
}

func pct(cost, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return cost / limit * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
