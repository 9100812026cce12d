package oracle

import (
	"sync"
	"time"
)

// modelCost holds USD prices per million tokens.
type modelCost struct {
	Input  float64
	Output float64
}

var modelCosts = map[string]modelCost{
	"claude-opus-4-5-20250514":  {Input: 15.00, Output: 75.00},
	"claude-sonnet-4-20250514":  {Input: 3.00, Output: 15.00},
	"claude-3-5-haiku-20241022": {Input: 0.25, Output: 1.25},
	"gpt-4o":                    {Input: 2.50, Output: 10.00},
}

// Unknown models are priced at the most expensive tier so estimates never
// understate spend.
var defaultCost = modelCost{Input: 15.00, Output: 75.00}

// AnalysisCost records token usage for a single oracle consultation.
type AnalysisCost struct {
	InputTokens  int
	OutputTokens int
	Model        string
	AnalysisType string
	Timestamp    time.Time
}

// CostUSD returns the estimated cost of this consultation in USD.
func (a AnalysisCost) CostUSD() float64 {
	costs, ok := modelCosts[a.Model]
	if !ok {
		costs = defaultCost
	}
	return float64(a.InputTokens)/1_000_000*costs.Input +
		float64(a.OutputTokens)/1_000_000*costs.Output
}

// TypeBreakdown aggregates consultations of one analysis type.
type TypeBreakdown struct {
	Count        int
	InputTokens  int
	OutputTokens int
	CostUSD      float64
}

// CostTracker accumulates oracle usage for one scoring run. Safe for
// concurrent use by the consultation pool.
type CostTracker struct {
	mu       sync.Mutex
	analyses []AnalysisCost
}

// NewCostTracker creates an empty tracker.
func NewCostTracker() *CostTracker {
	return &CostTracker{}
}

// Log records a completed consultation.
func (t *CostTracker) Log(cost AnalysisCost) {
	if cost.Timestamp.IsZero() {
		cost.Timestamp = time.Now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.analyses = append(t.analyses, cost)
}

// TotalCost returns the estimated total spend in USD.
func (t *CostTracker) TotalCost() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total float64
	for _, a := range t.analyses {
		total += a.CostUSD()
	}
	return total
}

// TotalTokens returns the accumulated input and output token counts.
func (t *CostTracker) TotalTokens() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var in, out int
	for _, a := range t.analyses {
		in += a.InputTokens
		out += a.OutputTokens
	}
	return in, out
}

// Count returns the number of logged consultations.
func (t *CostTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.analyses)
}

// ByType returns the cost breakdown per analysis type.
func (t *CostTracker) ByType() map[string]TypeBreakdown {
	t.mu.Lock()
	defer t.mu.Unlock()
	result := make(map[string]TypeBreakdown)
	for _, a := range t.analyses {
		b := result[a.AnalysisType]
		b.Count++
		b.InputTokens += a.InputTokens
		b.OutputTokens += a.OutputTokens
		b.CostUSD += a.CostUSD()
		result[a.AnalysisType] = b
	}
	return result
}
