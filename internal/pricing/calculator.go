package pricing

import "github.com/rubensayshi/ccusagebar/internal/domain"

// Calculator prices usage entries from token counts. Cost is pure and
// linear in each token count: zero tokens of every kind is zero cost.
type Calculator struct {
	table    PricingTable
	fallback ModelPricing
}

func NewCalculator(table PricingTable) *Calculator {
	return &Calculator{table: table, fallback: Fallback}
}

// UpdateTable replaces the pricing table used for cost calculations.
func (c *Calculator) UpdateTable(table PricingTable) {
	c.table = table
}

// Cost returns the USD cost for a single entry. A model without a table
// entry degrades silently to fallback pricing.
func (c *Calculator) Cost(e *domain.UsageEntry) float64 {
	p, ok := c.table.Lookup(e.Model)
	if !ok {
		p = c.fallback
	}

	cost := float64(e.InputTokens) * p.Input / 1_000_000
	cost += float64(e.OutputTokens) * p.Output / 1_000_000
	cost += float64(e.CacheCreationTokens) * p.CacheCreation / 1_000_000
	cost += float64(e.CacheReadTokens) * p.CacheRead / 1_000_000

	return cost
}

// ApplyAll calculates and sets CostUSD on all entries.
func (c *Calculator) ApplyAll(entries []domain.UsageEntry) {
	for i := range entries {
		entries[i].CostUSD = c.Cost(&entries[i])
	}
}

// CacheSavings returns the cost saved by cache reads for a single entry:
// cache_read_tokens x (input_rate - cache_read_rate) / 1M.
func (c *Calculator) CacheSavings(e *domain.UsageEntry) float64 {
	if e.CacheReadTokens == 0 {
		return 0
	}
	p, ok := c.table.Lookup(e.Model)
	if !ok {
		p = c.fallback
	}
	return float64(e.CacheReadTokens) * (p.Input - p.CacheRead) / 1_000_000
}
