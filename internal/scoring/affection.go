package scoring

import (
	"fmt"

	"github.com/navi-hq/navi/internal/model"
)

// scoreAffectionCommitment computes the Affection & Commitment dimension:
// expressed affection, commitment signals, and appreciation, all rate-based.
func (s *HealthScorer) scoreAffectionCommitment(summary *model.PatternSummary, weeks float64) model.DimensionScore {
	affectionPW := float64(summary.PositiveCounts[model.FamilyAffection]) / weeks
	commitmentPW := float64(summary.PositiveCounts[model.FamilyAssurance]+
		summary.PositiveCounts[model.FamilyFuturePlanning]) / weeks
	gratitudePW := float64(summary.PositiveCounts[model.FamilyGratitude]) / weeks

	affection := model.ComponentResult{
		Name:   "expressed_affection",
		Score:  affectionCurve(affectionPW),
		Weight: 0.40,
		Detail: fmt.Sprintf("%.1f expressões de carinho/semana", affectionPW),
	}
	commitment := model.ComponentResult{
		Name:   "commitment_signals",
		Score:  commitmentCurve(commitmentPW),
		Weight: 0.35,
		Detail: fmt.Sprintf("%.1f sinais de compromisso/semana", commitmentPW),
	}
	appreciation := model.ComponentResult{
		Name:   "appreciation",
		Score:  appreciationCurve(gratitudePW),
		Weight: 0.25,
		Detail: fmt.Sprintf("%.1f expressões de gratidão/semana", gratitudePW),
	}

	var insights []string
	if affection.Score >= 80 {
		insights = append(insights, "Expressões frequentes de carinho")
	}
	if commitment.Score >= 70 {
		insights = append(insights, "Fortes expressões de compromisso")
	}
	if appreciation.Score >= 70 {
		insights = append(insights, "Gratidão presente no dia a dia")
	}

	return newDimension(model.DimensionAffectionCommitment, []model.ComponentResult{
		affection, commitment, appreciation,
	}, insights)
}
