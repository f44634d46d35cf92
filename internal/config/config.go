package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Limits  LimitsConfig  `toml:"limits"`
	Week    WeekConfig    `toml:"week"`
	Refresh RefreshConfig `toml:"refresh"`
	Alerts  AlertsConfig  `toml:"alerts"`
}

type LimitsConfig struct {
	BlockUSD  float64 `toml:"block_usd"`
	WeeklyUSD float64 `toml:"weekly_usd"`
}

// WeekConfig anchors the billing week. Both fields are interpreted in UTC.
type WeekConfig struct {
	ResetWeekday string `toml:"reset_weekday"`
	ResetHour    int    `toml:"reset_hour"`
}

type RefreshConfig struct {
	IntervalMinutes int `toml:"interval_minutes"`
}

// AlertsConfig toggles the three one-shot block thresholds independently.
type AlertsConfig struct {
	At50 bool `toml:"at_50"`
	At75 bool `toml:"at_75"`
	At90 bool `toml:"at_90"`
	Bell bool `toml:"bell"`
}

// validIntervals are the supported refresh intervals in minutes.
var validIntervals = map[int]bool{1: true, 2: true, 5: true, 10: true, 15: true}

// ValidInterval reports whether minutes is a supported refresh interval.
func ValidInterval(minutes int) bool {
	return validIntervals[minutes]
}

func DefaultConfig() Config {
	return Config{
		Limits: LimitsConfig{
			BlockUSD:  43.50,
			WeeklyUSD: 717,
		},
		Week: WeekConfig{
			ResetWeekday: "Wednesday",
			ResetHour:    9,
		},
		Refresh: RefreshConfig{
			IntervalMinutes: 5,
		},
		Alerts: AlertsConfig{
			At50: true,
			At75: true,
			At90: true,
			Bell: true,
		},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "ccusagebar", "config.toml")
}

// DefaultStatusPath is where the machine-readable status artifact lands
// unless overridden.
func DefaultStatusPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "status.json"
	}
	return filepath.Join(home, ".config", "ccusagebar", "status.json")
}

func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // use defaults
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if !validIntervals[c.Refresh.IntervalMinutes] {
		return fmt.Errorf("refresh.interval_minutes must be one of 1, 2, 5, 10, 15; got %d", c.Refresh.IntervalMinutes)
	}
	if c.Week.ResetHour < 0 || c.Week.ResetHour > 23 {
		return fmt.Errorf("week.reset_hour must be 0-23, got %d", c.Week.ResetHour)
	}
	if _, err := c.Week.Weekday(); err != nil {
		return err
	}
	if c.Limits.BlockUSD <= 0 {
		return fmt.Errorf("limits.block_usd must be positive, got %f", c.Limits.BlockUSD)
	}
	if c.Limits.WeeklyUSD <= 0 {
		return fmt.Errorf("limits.weekly_usd must be positive, got %f", c.Limits.WeeklyUSD)
	}
	return nil
}

// Weekday parses the configured reset weekday name.
func (w WeekConfig) Weekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(w.ResetWeekday, d.String()) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("week.reset_weekday: unknown weekday %q", w.ResetWeekday)
}

// EnabledThresholds returns the enabled alert percentages in ascending order.
func (a AlertsConfig) EnabledThresholds() []int {
	var out []int
	if a.At50 {
		out = append(out, 50)
	}
	if a.At75 {
		out = append(out, 75)
	}
	if a.At90 {
		out = append(out, 90)
	}
	return out
}

// Interval returns the refresh interval as a duration.
func (r RefreshConfig) Interval() time.Duration {
	return time.Duration(r.IntervalMinutes) * time.Minute
}
