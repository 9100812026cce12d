package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navi-hq/navi/internal/lexicon"
	"github.com/navi-hq/navi/internal/model"
	"github.com/navi-hq/navi/internal/oracle"
)

func newRegexScorer() *HealthScorer {
	return NewHealthScorer(lexicon.NewRegistry(), nil)
}

// conversation builds an alternating-sender message list with fixed gaps.
func conversation(start time.Time, gap time.Duration, texts []string) []model.Message {
	messages := make([]model.Message, 0, len(texts))
	senders := []string{"Ana", "Bruno"}
	for i, text := range texts {
		messages = append(messages, model.Message{
			Timestamp: start.Add(time.Duration(i) * gap),
			Sender:    senders[i%2],
			Text:      text,
			Kind:      model.KindText,
		})
	}
	return messages
}

func repeat(text string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = text
	}
	return out
}

// healthyFixture is a 100-message week with heavy positive signal and no
// negative patterns.
func healthyFixture(start time.Time) []model.Message {
	var texts []string
	texts = append(texts, repeat("te amo demais", 20)...)
	texts = append(texts, repeat("obrigada por cuidar de mim", 10)...)
	texts = append(texts, repeat("como foi seu dia no trabalho?", 10)...)
	texts = append(texts, repeat("estou feliz com a gente", 8)...)
	texts = append(texts, repeat("conte comigo para o que precisar", 8)...)
	texts = append(texts, repeat("vamos marcar a viagem", 6)...)
	texts = append(texts, repeat("pode contar comigo sempre", 6)...)
	texts = append(texts, repeat("faz sentido o que você disse", 4)...)
	texts = append(texts, repeat("feito, já paguei a conta", 4)...)
	texts = append(texts, repeat("o dia foi tranquilo por aqui", 24)...)
	return conversation(start, 5*time.Minute, texts)
}

func findDimension(t *testing.T, result *model.HealthScoreResult, name model.DimensionName) model.DimensionScore {
	t.Helper()
	for _, d := range result.Dimensions {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("dimension %s not found", name)
	return model.DimensionScore{}
}

func findComponent(t *testing.T, d model.DimensionScore, name string) model.ComponentResult {
	t.Helper()
	for _, c := range d.Components {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("component %s not found in %s", name, d.Name)
	return model.ComponentResult{}
}

func TestHealthyConversationScoresHealthy(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	messages := healthyFixture(start)
	asOf := messages[len(messages)-1].Timestamp

	result := newRegexScorer().Score(context.Background(), messages, asOf)

	affection := findDimension(t, result, model.DimensionAffectionCommitment)
	expressed := findComponent(t, affection, "expressed_affection")
	assert.Equal(t, 100.0, expressed.Score, "20 affection expressions in one week saturate the curve")

	assert.GreaterOrEqual(t, result.Overall, 70.0)
	assert.Contains(t, []string{"Healthy", "Flourishing"}, result.Label.EN)
	assert.Equal(t, 100, result.MessageCount)
	assert.Equal(t, 0.75, result.Confidence)
	assert.Empty(t, result.Alerts)
	assert.NotEmpty(t, result.Strengths)
}

func TestDimensionScoresMatchWeightedComponents(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	messages := healthyFixture(start)
	asOf := messages[len(messages)-1].Timestamp

	result := newRegexScorer().Score(context.Background(), messages, asOf)

	var overall float64
	for _, d := range result.Dimensions {
		assert.InDelta(t, d.WeightedScore(), d.Score, 1e-9, string(d.Name))

		var weightSum float64
		for _, c := range d.Components {
			weightSum += c.Weight
		}
		assert.InDelta(t, 1.0, weightSum, 1e-9, string(d.Name))

		overall += d.Score * d.Weight
	}
	assert.InDelta(t, overall, result.Overall, 1e-9)
}

func TestContemptDrivesEmotionalSafetyDown(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	texts := append(repeat("que piada isso", 3), repeat("o dia foi tranquilo por aqui", 17)...)
	messages := conversation(start, 5*time.Minute, texts)
	asOf := messages[len(messages)-1].Timestamp

	result := newRegexScorer().Score(context.Background(), messages, asOf)

	comm := findDimension(t, result, model.DimensionCommunicationHealth)
	safety := findComponent(t, comm, "emotional_safety")
	assert.LessOrEqual(t, safety.Score, 40.0)

	var critical bool
	for _, alert := range result.Alerts {
		if alert.Type == model.AlertCriticalWarning && alert.Horseman == model.HorsemanContempt {
			critical = true
		}
	}
	assert.True(t, critical, "three contempt hits must raise the critical alert")
}

func TestEmptyWindowReturnsSentinel(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	result := newRegexScorer().Score(context.Background(), nil, asOf)

	assert.Equal(t, 50.0, result.Overall)
	assert.Equal(t, "Dados Insuficientes", result.Label.PT)
	assert.Equal(t, "Insufficient Data", result.Label.EN)
	assert.Zero(t, result.Confidence)
	assert.Empty(t, result.Dimensions)
}

func TestOldMessagesFallOutsideWindow(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	old := conversation(asOf.AddDate(0, 0, -90), 5*time.Minute, repeat("te amo demais", 20))

	result := newRegexScorer().Score(context.Background(), old, asOf)
	assert.Equal(t, "Dados Insuficientes", result.Label.PT)
}

func TestTrendAgainstPriorWindow(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	// Prior month is mixed, current month is warm.
	prior := conversation(asOf.AddDate(0, 0, -45),
		5*time.Minute,
		append(repeat("você sempre chega atrasado", 3), repeat("o dia foi tranquilo por aqui", 17)...))
	current := healthyFixture(asOf.AddDate(0, 0, -7))

	all := append(prior, current...)
	result := newRegexScorer().Score(context.Background(), all, asOf)

	assert.Contains(t, result.Trend, "vs mês anterior")
	assert.Regexp(t, `^\+`, result.Trend, "a warm month after a tense one trends upward")
}

func TestTrendInsufficientWithoutPriorWindow(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	current := healthyFixture(asOf.AddDate(0, 0, -7))

	result := newRegexScorer().Score(context.Background(), current, asOf)
	assert.Equal(t, "Dados insuficientes para tendência", result.Trend)
}

// brokenOracle fails every judgment.
type brokenOracle struct{}

func (brokenOracle) JudgeContempt(context.Context, string, string) (oracle.ContemptJudgment, error) {
	return oracle.ContemptJudgment{}, errors.New("unreachable")
}
func (brokenOracle) JudgeResponseQuality(context.Context, string, string) (oracle.ResponseQualityJudgment, error) {
	return oracle.ResponseQualityJudgment{}, errors.New("unreachable")
}
func (brokenOracle) JudgeRepair(context.Context, string, string) (oracle.RepairJudgment, error) {
	return oracle.RepairJudgment{}, errors.New("unreachable")
}
func (brokenOracle) JudgeVulnerability(context.Context, string, string) (oracle.VulnerabilityJudgment, error) {
	return oracle.VulnerabilityJudgment{}, errors.New("unreachable")
}
func (brokenOracle) JudgeSharedMeaning(context.Context, string, string) (oracle.SharedMeaningJudgment, error) {
	return oracle.SharedMeaningJudgment{}, errors.New("unreachable")
}

func TestDeadOracleDegradesToRegexRun(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	messages := healthyFixture(start)
	asOf := messages[len(messages)-1].Timestamp

	regexRun := newRegexScorer().Score(context.Background(), messages, asOf)
	degradedRun := NewHealthScorer(lexicon.NewRegistry(), brokenOracle{}).
		Score(context.Background(), messages, asOf)

	assert.InDelta(t, regexRun.Overall, degradedRun.Overall, 1e-9)
	assert.Equal(t, regexRun.Label, degradedRun.Label)
	assert.Len(t, degradedRun.Dimensions, 4)
}

func TestWeeklyPulse(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	// Two full weeks of chatter, one quiet week with too few messages.
	warm := conversation(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		30*time.Minute, repeat("te amo demais", 20))
	tense := conversation(time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC),
		30*time.Minute,
		append(repeat("você sempre chega atrasado", 4), repeat("o dia foi tranquilo por aqui", 16)...))
	quiet := conversation(time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC),
		30*time.Minute, repeat("o dia foi tranquilo por aqui", 5))

	all := append(append(warm, tense...), quiet...)
	pulse := newRegexScorer().WeeklyPulse(context.Background(), all, asOf)

	require.Len(t, pulse, 2, "the quiet week is skipped")
	assert.True(t, pulse[0].WeekStart.Before(pulse[1].WeekStart))

	assert.Greater(t, pulse[0].Score, pulse[1].Score)
	assert.False(t, pulse[0].HasConflict)
	assert.True(t, pulse[1].HasConflict)
	assert.Equal(t, 4, pulse[1].NegativeCount)
}

func TestCurves(t *testing.T) {
	assert.Equal(t, 100.0, affectionCurve(15))
	assert.Equal(t, 100.0, affectionCurve(22))
	assert.InDelta(t, 70.0, affectionCurve(7), 1e-9)
	assert.InDelta(t, 40.0, affectionCurve(3), 1e-9)
	assert.InDelta(t, 26.0, affectionCurve(2), 1e-9)
	assert.Equal(t, 20.0, affectionCurve(0))

	assert.Equal(t, 100.0, commitmentCurve(8))
	assert.InDelta(t, 70.0, commitmentCurve(4), 1e-9)
	assert.InDelta(t, 40.0, commitmentCurve(2), 1e-9)
	assert.Equal(t, 20.0, commitmentCurve(0.5))

	assert.Equal(t, 100.0, appreciationCurve(10))
	assert.InDelta(t, 70.0, appreciationCurve(5), 1e-9)
	assert.InDelta(t, 40.0, appreciationCurve(2), 1e-9)
}

func TestWeeksSpanned(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	burst := conversation(start, time.Hour, repeat("oi, tudo certo por aí?", 10))
	assert.Equal(t, 1.0, weeksSpanned(burst))

	spread := []model.Message{
		{Timestamp: start, Kind: model.KindText, Text: "a", Sender: "Ana"},
		{Timestamp: start.AddDate(0, 0, 28), Kind: model.KindText, Text: "b", Sender: "Bruno"},
	}
	assert.InDelta(t, 4.0, weeksSpanned(spread), 1e-9)
}

func TestWindowPrior(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	w := TrailingWindow(end, 30)
	prior := w.Prior()

	assert.Equal(t, w.Start, prior.End)
	assert.Equal(t, end.AddDate(0, 0, -60), prior.Start)
	assert.True(t, w.Contains(end))
	assert.False(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.Start.Add(time.Second)))
}
