package statusfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubensayshi/ccusagebar/internal/config"
	"github.com/rubensayshi/ccusagebar/internal/domain"
)

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{BlockUSD: 50, WeeklyUSD: 717}
}

func TestBuild_ActiveBlock(t *testing.T) {
	block := domain.SessionBlock{
		TotalCost: 40.004,
		BurnRate:  domain.BurnRate{CostPerHour: 8.456},
		Projection: domain.Projection{
			RemainingMinutes: 123,
		},
	}
	updated := time.Date(2026, 2, 21, 12, 30, 0, 0, time.UTC)

	st := Build(block, true, 3.14159, 123.456, testLimits(), updated)

	assert.Equal(t, 3.14, st.Daily.Cost)
	assert.Equal(t, 123.46, st.Weekly.Cost)
	assert.Equal(t, 717.0, st.Weekly.Limit)
	assert.Equal(t, 17.2, st.Weekly.Pct) // 123.456/717 = 17.22%
	assert.Equal(t, "2026-02-21T12:30:00Z", st.Updated)

	assert.True(t, st.Block.Active)
	assert.Equal(t, 40.0, st.Block.Cost)
	assert.Equal(t, 80.0, st.Block.Pct)
	assert.Equal(t, 123, st.Block.RemainingMin)
	assert.Equal(t, 8.46, st.Block.BurnRate)
}

func TestBuild_NoActiveBlock(t *testing.T) {
	st := Build(domain.SessionBlock{}, false, 0, 0, testLimits(), time.Now())

	data, err := json.Marshal(st.Block)
	require.NoError(t, err)
	assert.JSONEq(t, `{"active": false}`, string(data),
		"inactive block must serialize without zeroed cost fields")
}

func TestStatus_JSONShape(t *testing.T) {
	block := domain.SessionBlock{
		TotalCost:  10,
		BurnRate:   domain.BurnRate{CostPerHour: 2},
		Projection: domain.Projection{RemainingMinutes: 200},
	}
	st := Build(block, true, 1, 2, testLimits(), time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(st)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{"daily", "weekly", "updated", "block"} {
		assert.Contains(t, decoded, key)
	}
	blk := decoded["block"].(map[string]any)
	for _, key := range []string{"active", "cost", "limit", "pct", "remaining_min", "burn_rate"} {
		assert.Contains(t, blk, key)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "status.json")
	st := Build(domain.SessionBlock{}, false, 5, 10, testLimits(), time.Now())

	require.NoError(t, Write(path, st))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Status
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 5.0, decoded.Daily.Cost)

	// No temp files left behind in the target directory.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")

	first := Build(domain.SessionBlock{}, false, 1, 1, testLimits(), time.Now())
	require.NoError(t, Write(path, first))

	second := Build(domain.SessionBlock{}, false, 2, 2, testLimits(), time.Now())
	require.NoError(t, Write(path, second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Status
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2.0, decoded.Daily.Cost)
}
