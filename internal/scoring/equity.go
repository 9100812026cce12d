package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/navi-hq/navi/internal/lexicon"
	"github.com/navi-hq/navi/internal/model"
)

// initiationGap is the silence that marks the next message as a new
// conversation start.
const initiationGap = 4 * time.Hour

// scorePartnershipEquity computes the Partnership Equity dimension:
// contribution balance, task coordination, and emotional reciprocity.
func (s *HealthScorer) scorePartnershipEquity(msgs []model.Message, summary *model.PatternSummary) model.DimensionScore {
	contribution := calcContributionBalance(msgs)
	coordination := calcCoordination(msgs)
	reciprocity := calcEmotionalReciprocity(summary)

	var insights []string
	if contribution.Score >= 70 {
		insights = append(insights, "Boa equidade na relação")
	}
	if coordination.Score >= 75 {
		insights = append(insights, "Boa coordenação de tarefas")
	}
	if reciprocity.Score >= 80 {
		insights = append(insights, "Troca emocional equilibrada")
	}

	return newDimension(model.DimensionPartnershipEquity, []model.ComponentResult{
		contribution, coordination, reciprocity,
	}, insights)
}

// calcContributionBalance blends three balances: who carries the tasks, who
// sends the messages, and who starts the conversations.
func calcContributionBalance(msgs []model.Message) model.ComponentResult {
	taskCounts := make(map[string]int)
	messageCounts := make(map[string]int)
	initCounts := make(map[string]int)

	for i, m := range msgs {
		messageCounts[m.Sender]++

		text := strings.ToLower(m.Text)
		for _, verb := range lexicon.TaskActionVerbs {
			if strings.Contains(text, verb) {
				taskCounts[m.Sender]++
				break
			}
		}

		if i == 0 || m.Timestamp.Sub(msgs[i-1].Timestamp) >= initiationGap {
			initCounts[m.Sender]++
		}
	}

	if len(messageCounts) < 2 {
		return model.ComponentResult{
			Name:   "contribution_balance",
			Score:  70,
			Weight: 0.40,
			Detail: "Dados insuficientes",
		}
	}

	taskBalance := 70.0
	if len(taskCounts) >= 2 {
		taskBalance = math.Max(30, 100-math.Abs(minSharePct(taskCounts)-50)*1.5)
	}
	messageBalance := 100 - math.Abs(minSharePct(messageCounts)-50)*2

	initBalance := 100.0
	if len(initCounts) >= 2 {
		initBalance = 100 - math.Abs(minSharePct(initCounts)-50)*2
	}

	score := taskBalance*0.5 + messageBalance*0.3 + initBalance*0.2
	return model.ComponentResult{
		Name:   "contribution_balance",
		Score:  score,
		Weight: 0.40,
		Detail: fmt.Sprintf("tarefas %.0f, mensagens %.0f, iniciativa %.0f", taskBalance, messageBalance, initBalance),
	}
}

// calcCoordination measures task follow-through: how many task mentions are
// answered by completion language.
func calcCoordination(msgs []model.Message) model.ComponentResult {
	var mentioned, completed int
	for _, m := range msgs {
		text := strings.ToLower(m.Text)
		for _, word := range lexicon.CoordinationTaskWords {
			if strings.Contains(text, word) {
				mentioned++
				break
			}
		}
		for _, marker := range lexicon.CompletionMarkers {
			if strings.Contains(text, marker) {
				completed++
				break
			}
		}
	}

	if mentioned == 0 {
		return model.ComponentResult{
			Name:   "coordination",
			Score:  70,
			Weight: 0.35,
			Detail: "Poucas tarefas detectadas",
		}
	}

	rate := float64(completed) / float64(mentioned)
	return model.ComponentResult{
		Name:   "coordination",
		Score:  math.Min(100, 50+rate*50),
		Weight: 0.35,
		Detail: fmt.Sprintf("%.0f%% de %d tarefas concluídas", rate*100, mentioned),
	}
}

// calcEmotionalReciprocity balances each person's positive expressions.
// Repairs are excluded so apologizing a lot does not read as warmth.
func calcEmotionalReciprocity(summary *model.PatternSummary) model.ComponentResult {
	counts := make(map[string]int)
	for _, match := range summary.Matches {
		if match.Kind != model.CategoryPositive || match.Family == model.FamilyRepair {
			continue
		}
		counts[match.Sender]++
	}

	if len(counts) < 2 {
		return model.ComponentResult{
			Name:   "emotional_reciprocity",
			Score:  50,
			Weight: 0.25,
			Detail: "Dados insuficientes",
		}
	}

	minCount, maxCount := math.MaxInt, 0
	for _, c := range counts {
		if c < minCount {
			minCount = c
		}
		if c > maxCount {
			maxCount = c
		}
	}

	balance := float64(minCount) / float64(maxCount) * 100
	return model.ComponentResult{
		Name:   "emotional_reciprocity",
		Score:  50 + balance/2,
		Weight: 0.25,
		Detail: fmt.Sprintf("equilíbrio de %.0f%% nas expressões positivas", balance),
	}
}

// minSharePct returns the smallest sender's share of the total, in percent.
func minSharePct(counts map[string]int) float64 {
	total := 0
	minCount := math.MaxInt
	for _, c := range counts {
		total += c
		if c < minCount {
			minCount = c
		}
	}
	if total == 0 {
		return 50
	}
	return float64(minCount) / float64(total) * 100
}
