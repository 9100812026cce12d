package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/navi-hq/navi/internal/common"
	"github.com/navi-hq/navi/internal/detect"
	"github.com/navi-hq/navi/internal/lexicon"
	"github.com/navi-hq/navi/internal/model"
	"github.com/navi-hq/navi/internal/oracle"
)

// Dimension display labels.
var dimensionLabels = map[model.DimensionName]string{
	model.DimensionEmotionalConnection: "Conexão Emocional",
	model.DimensionAffectionCommitment: "Afeto e Compromisso",
	model.DimensionCommunicationHealth: "Saúde da Comunicação",
	model.DimensionPartnershipEquity:   "Equidade na Parceria",
}

// Fixed remediation suggestions for low-scoring dimensions.
var dimensionRemediations = map[model.DimensionName]string{
	model.DimensionEmotionalConnection: "Quando o parceiro compartilha sentimentos, faça perguntas de acompanhamento",
	model.DimensionAffectionCommitment: "Expressar carinho e planos conjuntos com mais frequência",
	model.DimensionCommunicationHealth: "Construir cultura de apreciação com gratidão diária específica",
	model.DimensionPartnershipEquity:   "Redistribuir tarefas e revezar quem inicia as conversas",
}

// HealthScorer computes the four-dimension relationship health score over a
// trailing message window. The oracle is optional; without it every
// component falls back to its regex-only estimate.
type HealthScorer struct {
	registry   *lexicon.Registry
	aggregator *detect.Aggregator
	oracle     oracle.Oracle
	pool       *oracle.Pool
}

// NewHealthScorer builds a scorer around the given registry and optional
// oracle. Passing a nil oracle selects the pure-regex scoring path.
func NewHealthScorer(registry *lexicon.Registry, o oracle.Oracle) *HealthScorer {
	return &HealthScorer{
		registry:   registry,
		aggregator: detect.NewAggregator(detect.NewMatcher(registry, o)),
		oracle:     o,
		pool:       oracle.NewPool(oracle.DefaultPoolWorkers),
	}
}

// Score computes the overall health result for the trailing 30-day window
// ending at asOf. An empty window yields the insufficient-data sentinel, not
// an error.
func (s *HealthScorer) Score(ctx context.Context, messages []model.Message, asOf time.Time) *model.HealthScoreResult {
	window := TrailingWindow(asOf, WindowDays)
	inWindow := textMessagesIn(messages, window)
	if len(inWindow) == 0 {
		common.LogInfo("scoring window empty", common.Fields{
			"window_start": window.Start,
			"window_end":   window.End,
		})
		return model.InsufficientDataResult(window.Start, window.End)
	}

	summary := s.aggregator.AnalyzeConversation(ctx, inWindow)
	weeks := weeksSpanned(inWindow)

	dimensions := []model.DimensionScore{
		s.scoreEmotionalConnection(ctx, inWindow, summary, weeks),
		s.scoreAffectionCommitment(summary, weeks),
		s.scoreCommunicationHealth(inWindow, summary),
		s.scorePartnershipEquity(inWindow, summary),
	}

	var overall float64
	for _, d := range dimensions {
		overall += d.Score * d.Weight
	}

	result := &model.HealthScoreResult{
		Overall:      overall,
		Label:        model.LabelForScore(overall),
		Confidence:   model.ConfidenceForMessageCount(len(inWindow)),
		Dimensions:   dimensions,
		Alerts:       summary.Alerts,
		Trend:        s.trend(ctx, messages, window, overall),
		Summary:      summary,
		WindowStart:  window.Start,
		WindowEnd:    window.End,
		MessageCount: len(inWindow),
		GeneratedAt:  time.Now(),
	}
	result.Strengths, result.Opportunities = compileInsights(dimensions)

	common.LogInfo("scoring run complete", common.Fields{
		"overall":    fmt.Sprintf("%.1f", overall),
		"label":      result.Label.EN,
		"messages":   len(inWindow),
		"confidence": result.Confidence,
	})
	return result
}

// trend compares the window's overall score against the preceding window of
// equal length. The baseline pass is regex-only so a trend never doubles the
// oracle spend of a run.
func (s *HealthScorer) trend(ctx context.Context, messages []model.Message, window Window, overall float64) string {
	prior := textMessagesIn(messages, window.Prior())
	if len(prior) == 0 {
		return "Dados insuficientes para tendência"
	}

	baseline := NewHealthScorer(s.registry, nil)
	priorSummary := baseline.aggregator.AnalyzeConversation(ctx, prior)
	priorWeeks := weeksSpanned(prior)

	priorDimensions := []model.DimensionScore{
		baseline.scoreEmotionalConnection(ctx, prior, priorSummary, priorWeeks),
		baseline.scoreAffectionCommitment(priorSummary, priorWeeks),
		baseline.scoreCommunicationHealth(prior, priorSummary),
		baseline.scorePartnershipEquity(prior, priorSummary),
	}

	var priorOverall float64
	for _, d := range priorDimensions {
		priorOverall += d.Score * d.Weight
	}

	return fmt.Sprintf("%+.0f vs mês anterior", overall-priorOverall)
}

// compileInsights turns dimension scores into strength and opportunity
// entries: any dimension at 70 or above is a strength, any below 55 an
// opportunity with its fixed remediation.
func compileInsights(dimensions []model.DimensionScore) (strengths, opportunities []string) {
	for _, d := range dimensions {
		switch {
		case d.Score >= 70:
			entry := d.Label
			if len(d.Insights) > 0 {
				entry = fmt.Sprintf("%s: %s", d.Label, d.Insights[0])
			}
			strengths = append(strengths, entry)
		case d.Score < 55:
			opportunities = append(opportunities,
				fmt.Sprintf("%s: %s", d.Label, dimensionRemediations[d.Name]))
		}
	}
	return strengths, opportunities
}

// newDimension assembles a dimension score from its components, rolling up
// the weighted sum.
func newDimension(name model.DimensionName, components []model.ComponentResult, insights []string) model.DimensionScore {
	var score float64
	for _, c := range components {
		score += c.Score * c.Weight
	}
	return model.DimensionScore{
		Name:       name,
		Label:      dimensionLabels[name],
		Score:      score,
		Weight:     model.DimensionWeights[name],
		Components: components,
		Insights:   insights,
	}
}
