package model

import "time"

// DimensionName identifies one of the four scored relationship dimensions.
type DimensionName string

// Dimension name constants.
const (
	DimensionEmotionalConnection DimensionName = "emotional_connection"
	DimensionAffectionCommitment DimensionName = "affection_commitment"
	DimensionCommunicationHealth DimensionName = "communication_health"
	DimensionPartnershipEquity   DimensionName = "partnership_equity"
)

// DimensionWeights maps each dimension to its share of the overall score.
// The weights sum to exactly 1.0.
var DimensionWeights = map[DimensionName]float64{
	DimensionEmotionalConnection: 0.30,
	DimensionAffectionCommitment: 0.25,
	DimensionCommunicationHealth: 0.25,
	DimensionPartnershipEquity:   0.20,
}

// DimensionOrder lists the dimensions in reporting order.
var DimensionOrder = []DimensionName{
	DimensionEmotionalConnection,
	DimensionAffectionCommitment,
	DimensionCommunicationHealth,
	DimensionPartnershipEquity,
}

// ComponentResult is one scored component inside a dimension.
type ComponentResult struct {
	Name   string
	Score  float64 // 0-100
	Weight float64 // Share within the dimension, components sum to 1.0
	Detail string
}

// DimensionScore is the weighted roll-up of a dimension's components.
type DimensionScore struct {
	Name       DimensionName
	Label      string
	Score      float64 // Exact weighted sum of component scores
	Weight     float64 // Share of the overall score
	Components []ComponentResult
	Insights   []string
}

// WeightedScore returns the weighted sum of the component scores. The stored
// Score field is expected to equal this value.
func (d *DimensionScore) WeightedScore() float64 {
	var total float64
	for _, c := range d.Components {
		total += c.Score * c.Weight
	}
	return total
}

// ScoreLabel carries the bilingual label for a score bucket.
type ScoreLabel struct {
	PT string
	EN string
}

// Label buckets for the overall score, highest first.
var (
	LabelFlourishing  = ScoreLabel{PT: "Florescente", EN: "Flourishing"}
	LabelHealthy      = ScoreLabel{PT: "Saudável", EN: "Healthy"}
	LabelStable       = ScoreLabel{PT: "Estável", EN: "Stable"}
	LabelAttention    = ScoreLabel{PT: "Atenção", EN: "Attention"}
	LabelConcerning   = ScoreLabel{PT: "Preocupante", EN: "Concerning"}
	LabelCritical     = ScoreLabel{PT: "Crítico", EN: "Critical"}
	LabelInsufficient = ScoreLabel{PT: "Dados Insuficientes", EN: "Insufficient Data"}
)

// LabelForScore maps an overall score to its bucket label.
func LabelForScore(score float64) ScoreLabel {
	switch {
	case score >= 85:
		return LabelFlourishing
	case score >= 70:
		return LabelHealthy
	case score >= 55:
		return LabelStable
	case score >= 40:
		return LabelAttention
	case score >= 25:
		return LabelConcerning
	default:
		return LabelCritical
	}
}

// ConfidenceForMessageCount maps the number of analyzed messages to a
// confidence level for the result.
func ConfidenceForMessageCount(n int) float64 {
	switch {
	case n >= 500:
		return 0.95
	case n >= 200:
		return 0.85
	case n >= 100:
		return 0.75
	case n >= 30:
		return 0.60
	default:
		return 0.40
	}
}

// HealthScoreResult is the full output of a scoring run.
type HealthScoreResult struct {
	Overall       float64
	Label         ScoreLabel
	Confidence    float64
	Dimensions    []DimensionScore
	Strengths     []string
	Opportunities []string
	Alerts        []Alert
	Trend         string
	Summary       *PatternSummary
	WindowStart   time.Time
	WindowEnd     time.Time
	MessageCount  int
	GeneratedAt   time.Time
}

// InsufficientDataResult is the sentinel returned when the scoring window
// contains no messages.
func InsufficientDataResult(start, end time.Time) *HealthScoreResult {
	return &HealthScoreResult{
		Overall:     50,
		Label:       LabelInsufficient,
		Confidence:  0,
		WindowStart: start,
		WindowEnd:   end,
		GeneratedAt: time.Now(),
	}
}

// WeeklyScore is one entry of the weekly pulse series.
type WeeklyScore struct {
	WeekStart     time.Time
	Score         float64
	MessageCount  int
	PositiveCount int
	NegativeCount int
	HasConflict   bool
}
