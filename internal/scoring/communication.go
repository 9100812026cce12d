package scoring

import (
	"fmt"
	"math"

	"github.com/navi-hq/navi/internal/model"
)

// scoreCommunicationHealth computes the Communication Health dimension from
// the Four Horsemen counts (inverse), repair attempts, and supportive
// responses.
func (s *HealthScorer) scoreCommunicationHealth(msgs []model.Message, summary *model.PatternSummary) model.DimensionScore {
	dialogue := calcConstructiveDialogue(summary)
	repair := calcConflictRepair(summary)
	safety := calcEmotionalSafety(summary)
	supportive := calcSupportiveResponses(msgs, summary)

	var insights []string
	if safety.Score >= 80 {
		insights = append(insights, "Comunicação respeitosa")
	}
	if repair.Score >= 70 {
		insights = append(insights, "Bons padrões de reparação")
	}
	if dialogue.Score >= 80 {
		insights = append(insights, "Pedidos feitos de forma gentil")
	}

	return newDimension(model.DimensionCommunicationHealth, []model.ComponentResult{
		dialogue, repair, safety, supportive,
	}, insights)
}

// calcConstructiveDialogue penalizes criticism and defensiveness.
func calcConstructiveDialogue(summary *model.PatternSummary) model.ComponentResult {
	criticism := summary.HorsemenCounts[model.HorsemanCriticism]
	defensiveness := summary.HorsemenCounts[model.HorsemanDefensiveness]

	score := math.Max(20, 100-float64(criticism)*15-float64(defensiveness)*10)
	return model.ComponentResult{
		Name:   "constructive_dialogue",
		Score:  score,
		Weight: 0.30,
		Detail: fmt.Sprintf("%d críticas, %d respostas defensivas", criticism, defensiveness),
	}
}

// calcConflictRepair rewards the presence and volume of repair attempts.
func calcConflictRepair(summary *model.PatternSummary) model.ComponentResult {
	count := summary.PositiveCounts[model.FamilyRepair]

	var score float64
	switch {
	case count >= 5:
		score = math.Min(100, 70+float64(count)*3)
	case count >= 2:
		score = 60 + float64(count)*5
	case count == 1:
		score = 60
	default:
		score = 50
	}

	return model.ComponentResult{
		Name:   "conflict_repair",
		Score:  score,
		Weight: 0.30,
		Detail: fmt.Sprintf("%d tentativas de reparação", count),
	}
}

// calcEmotionalSafety penalizes contempt and stonewalling, the two most
// corrosive horsemen.
func calcEmotionalSafety(summary *model.PatternSummary) model.ComponentResult {
	contempt := summary.HorsemenCounts[model.HorsemanContempt]
	stonewalling := summary.HorsemenCounts[model.HorsemanStonewalling]

	score := math.Max(20, 100-float64(contempt)*20-float64(stonewalling)*10)
	return model.ComponentResult{
		Name:   "emotional_safety",
		Score:  score,
		Weight: 0.25,
		Detail: fmt.Sprintf("%d sinais de desprezo, %d de evasão", contempt, stonewalling),
	}
}

// calcSupportiveResponses scores the rate of support and understanding
// expressions across the window.
func calcSupportiveResponses(msgs []model.Message, summary *model.PatternSummary) model.ComponentResult {
	count := summary.PositiveCounts[model.FamilySupport] +
		summary.PositiveCounts[model.FamilyUnderstanding]
	rate := float64(count) / float64(len(msgs))

	score := math.Max(30, math.Min(100, (rate/0.05)*100))
	return model.ComponentResult{
		Name:   "supportive_responses",
		Score:  score,
		Weight: 0.15,
		Detail: fmt.Sprintf("%.1f%% de mensagens com validação", rate*100),
	}
}
