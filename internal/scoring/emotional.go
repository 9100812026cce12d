package scoring

import (
	"context"
	"fmt"

	"github.com/navi-hq/navi/internal/detect"
	"github.com/navi-hq/navi/internal/model"
)

// vulnerabilitySampleLimit caps how many disclosure messages are sent to the
// oracle for depth assessment per run.
const vulnerabilitySampleLimit = 20

// scoreEmotionalConnection computes the Emotional Connection dimension:
// responsiveness to the partner, vulnerability depth, and attunement.
func (s *HealthScorer) scoreEmotionalConnection(ctx context.Context, msgs []model.Message, summary *model.PatternSummary, weeks float64) model.DimensionScore {
	responsiveness := s.calcResponsiveness(ctx, msgs)
	vulnerability := s.calcVulnerability(ctx, msgs, summary)
	attunement := calcAttunement(summary, weeks)

	var insights []string
	if responsiveness.Score >= 80 {
		insights = append(insights, "Respostas atenciosas e elaboradas")
	}
	if vulnerability.Score >= 70 {
		insights = append(insights, "Vulnerabilidade profunda e significativa")
	}
	if attunement.Score >= 70 {
		insights = append(insights, "Escuta ativa consistente")
	}

	return newDimension(model.DimensionEmotionalConnection, []model.ComponentResult{
		responsiveness, vulnerability, attunement,
	}, insights)
}

// calcResponsiveness averages the response quality over every reply in the
// window. Replies to emotional content are re-judged by the oracle when one
// is configured; its overall quality substitutes the word-count heuristic.
func (s *HealthScorer) calcResponsiveness(ctx context.Context, msgs []model.Message) model.ComponentResult {
	type reply struct {
		prev string
		text string
	}

	var replies []reply
	scores := make([]float64, 0, len(msgs))
	var emotional []int

	for i := 1; i < len(msgs); i++ {
		if msgs[i].Sender == msgs[i-1].Sender {
			continue
		}
		prev, cur := msgs[i-1], msgs[i]
		q := detect.CalculateResponseQuality(prev.Text, cur.Text, cur.Timestamp.Sub(prev.Timestamp))
		replies = append(replies, reply{prev: prev.Text, text: cur.Text})
		scores = append(scores, q.Score)
		if q.IsEmotionalContext {
			emotional = append(emotional, len(scores)-1)
		}
	}

	if len(scores) == 0 {
		return model.ComponentResult{
			Name:   "responsiveness",
			Score:  50,
			Weight: 0.40,
			Detail: "Dados insuficientes",
		}
	}

	if s.oracle != nil && len(emotional) > 0 {
		_ = s.pool.Run(ctx, len(emotional), func(ctx context.Context, i int) error {
			idx := emotional[i]
			j, err := s.oracle.JudgeResponseQuality(ctx, replies[idx].prev, replies[idx].text)
			if err == nil {
				scores[idx] = float64(j.OverallQuality)
			}
			return nil
		})
	}

	avg := mean(scores)
	return model.ComponentResult{
		Name:   "responsiveness",
		Score:  avg,
		Weight: 0.40,
		Detail: fmt.Sprintf("%d respostas, qualidade média %.0f", len(scores), avg),
	}
}

// calcVulnerability scores emotional disclosure: a rate-based baseline
// blended with the oracle's depth assessment of sampled disclosures.
func (s *HealthScorer) calcVulnerability(ctx context.Context, msgs []model.Message, summary *model.PatternSummary) model.ComponentResult {
	count := summary.PositiveCounts[model.FamilyDisclosure]
	rate := float64(count) / float64(len(msgs))

	// Five percent of messages carrying disclosure is a healthy baseline.
	score := clamp((rate/0.05)*70+30, 0, 100)
	detail := fmt.Sprintf("%.1f%% das mensagens com abertura emocional", rate*100)

	if s.oracle != nil && count > 0 {
		var samples []string
		for _, match := range summary.Matches {
			if match.Family != model.FamilyDisclosure {
				continue
			}
			samples = append(samples, match.MessageText)
			if len(samples) == vulnerabilitySampleLimit {
				break
			}
		}

		depths := make([]float64, len(samples))
		assessed := make([]bool, len(samples))
		_ = s.pool.Run(ctx, len(samples), func(ctx context.Context, i int) error {
			j, err := s.oracle.JudgeVulnerability(ctx, samples[i], "")
			if err == nil {
				depths[i] = float64(j.DepthScore)
				assessed[i] = true
			}
			return nil
		})

		var sum float64
		var n int
		for i, ok := range assessed {
			if ok {
				sum += depths[i]
				n++
			}
		}
		if n > 0 {
			avgDepth := sum / float64(n)
			score = score*0.4 + avgDepth*0.6
			detail = fmt.Sprintf("%s, profundidade média %.0f em %d amostras", detail, avgDepth, n)
		}
	}

	return model.ComponentResult{
		Name:   "vulnerability",
		Score:  score,
		Weight: 0.35,
		Detail: detail,
	}
}

// calcAttunement scores active-listening frequency per week.
func calcAttunement(summary *model.PatternSummary, weeks float64) model.ComponentResult {
	perWeek := float64(summary.PositiveCounts[model.FamilyActiveListening]) / weeks
	return model.ComponentResult{
		Name:   "attunement",
		Score:  commitmentCurve(perWeek),
		Weight: 0.25,
		Detail: fmt.Sprintf("%.1f sinais de escuta ativa/semana", perWeek),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
