package pricing

import (
	_ "embed"
	"encoding/json"
	"strings"
)

//go:embed pricing.json
var defaultPricingJSON []byte

// ModelPricing holds USD rates per 1M tokens of each category.
type ModelPricing struct {
	Input         float64 `json:"input"`
	Output        float64 `json:"output"`
	CacheCreation float64 `json:"cache_creation"`
	CacheRead     float64 `json:"cache_read"`
}

type PricingTable map[string]ModelPricing

// Fallback applies when a model has no table entry. Unknown models are not
// an error; they silently price at Sonnet rates.
var Fallback = ModelPricing{Input: 3.00, Output: 15.00, CacheCreation: 3.75, CacheRead: 0.30}

// LoadDefault parses the embedded pricing table.
func LoadDefault() (PricingTable, error) {
	var table PricingTable
	if err := json.Unmarshal(defaultPricingJSON, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// Merge adds entries from other into pt. Existing keys are overwritten.
func (pt PricingTable) Merge(other PricingTable) {
	for k, v := range other {
		pt[k] = v
	}
}

// Lookup finds pricing for a model: exact match first, then the longest
// key that prefixes the model id (so "claude-opus-4-6" wins over
// "claude-opus" for dated releases).
func (pt PricingTable) Lookup(model string) (ModelPricing, bool) {
	if p, ok := pt[model]; ok {
		return p, true
	}
	var bestKey string
	var best ModelPricing
	for key, p := range pt {
		if strings.HasPrefix(model, key) && len(key) > len(bestKey) {
			bestKey = key
			best = p
		}
	}
	if bestKey != "" {
		return best, true
	}
	return ModelPricing{}, false
}
