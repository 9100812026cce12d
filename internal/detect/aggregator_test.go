package detect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navi-hq/navi/internal/model"
	"github.com/navi-hq/navi/internal/oracle"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(newTestMatcher(nil))
}

// buildConversation turns (gap, sender, text) rows into an ordered message
// slice starting at a fixed morning timestamp.
func buildConversation(rows []struct {
	gap    time.Duration
	sender string
	text   string
}) []model.Message {
	ts := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	messages := make([]model.Message, 0, len(rows))
	for _, r := range rows {
		ts = ts.Add(r.gap)
		messages = append(messages, model.Message{
			Timestamp: ts,
			Sender:    r.sender,
			Text:      r.text,
			Kind:      model.KindText,
		})
	}
	return messages
}

// contextRecorder captures the conversation context handed to contempt
// judgments, keyed by message text.
type contextRecorder struct {
	oracle.Neutral
	contexts map[string]string
}

func (r *contextRecorder) JudgeContempt(ctx context.Context, text, convContext string) (oracle.ContemptJudgment, error) {
	r.contexts[text] = convContext
	return r.Neutral.JudgeContempt(ctx, text, convContext)
}

func TestOracleContextCarriesRecentMessages(t *testing.T) {
	rec := &contextRecorder{contexts: make(map[string]string)}
	aggregator := NewAggregator(newTestMatcher(rec))

	messages := buildConversation([]struct {
		gap    time.Duration
		sender string
		text   string
	}{
		{0, "Ana", "hoje o dia rendeu bastante"},
		{10 * time.Minute, "Bruno", "terminei o relatório mais cedo"},
		{10 * time.Minute, "Ana", "o ônibus passou no horário"},
		{10 * time.Minute, "Bruno", "a janta ficou pronta"},
		{10 * time.Minute, "Ana", "separei as roupas da viagem"},
		{10 * time.Minute, "Bruno", "deixei tudo na mala"},
		{10 * time.Minute, "Ana", "grande coisa, você limpou a casa"},
	})

	aggregator.AnalyzeConversation(context.Background(), messages)

	got := rec.contexts["grande coisa, você limpou a casa"]
	require.NotEmpty(t, got)
	assert.Contains(t, got, "Bruno: deixei tudo na mala")
	assert.Contains(t, got, "Bruno: terminei o relatório mais cedo")
	assert.NotContains(t, got, "hoje o dia rendeu bastante",
		"only the five most recent messages travel as context")
}

func TestConflictContextDecay(t *testing.T) {
	// A criticism opens a conflict window. The slow reply three hours later
	// lands inside it and counts as stonewalling, which renews the window;
	// after five more quiet messages the context expires, so the second
	// three-hour gap is just a slow day.
	messages := buildConversation([]struct {
		gap    time.Duration
		sender string
		text   string
	}{
		{0, "Ana", "o filme começa às oito"},
		{10 * time.Minute, "Bruno", "você sempre chega atrasado"},
		{10 * time.Minute, "Ana", "a reunião acabou tarde demais"},
		{10 * time.Minute, "Bruno", "amanhã o trânsito deve melhorar"},
		{10 * time.Minute, "Ana", "vou dormir cedo hoje"},
		{3 * time.Hour, "Bruno", "cheguei em casa agora"},
		{10 * time.Minute, "Ana", "o mercado estava cheio"},
		{10 * time.Minute, "Bruno", "comprei pão na padaria"},
		{10 * time.Minute, "Ana", "a chuva parou finalmente"},
		{10 * time.Minute, "Bruno", "o jogo terminou empatado"},
		{3 * time.Hour, "Ana", "almocei com minha irmã"},
	})

	summary := newTestAggregator().AnalyzeConversation(context.Background(), messages)
	require.NoError(t, summary.Validate())

	assert.Equal(t, 0, summary.TotalPositive)
	assert.Equal(t, 2, summary.TotalNegative)
	assert.Equal(t, 1, summary.HorsemenCounts[model.HorsemanCriticism])
	assert.Equal(t, 1, summary.HorsemenCounts[model.HorsemanStonewalling])
	assert.Equal(t, 0, summary.HorsemenCounts[model.HorsemanContempt])

	require.Len(t, summary.Matches, 2)
	assert.Equal(t, model.FamilyCriticism, summary.Matches[0].Family)
	assert.Equal(t, "Bruno", summary.Matches[0].Sender)
	assert.Equal(t, model.FamilyStonewalling, summary.Matches[1].Family)
	assert.Contains(t, summary.Matches[1].Evidence, "180min")
}

func TestSlowReplyWithoutConflictIsClean(t *testing.T) {
	messages := buildConversation([]struct {
		gap    time.Duration
		sender string
		text   string
	}{
		{0, "Ana", "o filme começa às oito"},
		{3 * time.Hour, "Bruno", "cheguei em casa agora"},
	})

	summary := newTestAggregator().AnalyzeConversation(context.Background(), messages)
	assert.Empty(t, summary.Matches)
	assert.Equal(t, model.DefaultPositiveRatio, summary.PositiveRatio)
	assert.Empty(t, summary.Alerts)
}

func TestPositiveConversationCounting(t *testing.T) {
	messages := buildConversation([]struct {
		gap    time.Duration
		sender string
		text   string
	}{
		{0, "Ana", "te amo muito"},
		{5 * time.Minute, "Bruno", "obrigada por me buscar hoje"},
		{5 * time.Minute, "Ana", "conte comigo amanhã de novo"},
		{5 * time.Minute, "Bruno", "vamos planejar a viagem de julho"},
	})
	// Media rows separate neighbors in time but never classify.
	messages = append(messages, model.Message{
		Timestamp: messages[len(messages)-1].Timestamp.Add(time.Minute),
		Sender:    "Ana",
		Kind:      model.KindImage,
	})

	summary := newTestAggregator().AnalyzeConversation(context.Background(), messages)
	require.NoError(t, summary.Validate())

	assert.Equal(t, 4, summary.TotalPositive)
	assert.Equal(t, 0, summary.TotalNegative)
	assert.Equal(t, 4.0, summary.PositiveRatio)
	assert.Equal(t, 1, summary.PositiveCounts[model.FamilyAffection])
	assert.Equal(t, 1, summary.PositiveCounts[model.FamilyGratitude])
	assert.Equal(t, 1, summary.PositiveCounts[model.FamilySupport])
	assert.Equal(t, 1, summary.PositiveCounts[model.FamilyFuturePlanning])
	assert.Empty(t, summary.Alerts)
}

func TestGenerateAlerts(t *testing.T) {
	a := newTestAggregator()

	t.Run("low ratio", func(t *testing.T) {
		summary := &model.PatternSummary{
			TotalPositive:  8,
			TotalNegative:  2,
			PositiveRatio:  4.0,
			HorsemenCounts: map[model.Horseman]int{},
		}
		alerts := a.generateAlerts(summary)
		require.Len(t, alerts, 1)
		assert.Equal(t, model.AlertRatioWarning, alerts[0].Type)
		assert.Equal(t, model.SeverityMedium, alerts[0].Severity)
		assert.Contains(t, alerts[0].Message, "4.0:1")
	})

	t.Run("very low ratio is high severity", func(t *testing.T) {
		summary := &model.PatternSummary{
			TotalPositive:  2,
			TotalNegative:  2,
			PositiveRatio:  1.0,
			HorsemenCounts: map[model.Horseman]int{},
		}
		alerts := a.generateAlerts(summary)
		require.Len(t, alerts, 1)
		assert.Equal(t, model.SeverityHigh, alerts[0].Severity)
	})

	t.Run("repeated horseman", func(t *testing.T) {
		summary := &model.PatternSummary{
			TotalPositive: 30,
			TotalNegative: 5,
			PositiveRatio: 6.0,
			HorsemenCounts: map[model.Horseman]int{
				model.HorsemanCriticism: 5,
			},
		}
		alerts := a.generateAlerts(summary)
		require.Len(t, alerts, 1)
		assert.Equal(t, model.AlertHorsemanWarning, alerts[0].Type)
		assert.Equal(t, model.SeverityHigh, alerts[0].Severity)
		assert.Equal(t, model.HorsemanCriticism, alerts[0].Horseman)
		assert.Equal(t, 5, alerts[0].Count)
		assert.Contains(t, alerts[0].Message, "Criticism detected 5 times")
		assert.Contains(t, alerts[0].Recommendation, "Gentle Startup")
	})

	t.Run("contempt is critical at two", func(t *testing.T) {
		summary := &model.PatternSummary{
			TotalPositive: 30,
			TotalNegative: 2,
			PositiveRatio: 15.0,
			HorsemenCounts: map[model.Horseman]int{
				model.HorsemanContempt: 2,
			},
		}
		alerts := a.generateAlerts(summary)
		require.Len(t, alerts, 1)
		assert.Equal(t, model.AlertCriticalWarning, alerts[0].Type)
		assert.Equal(t, model.SeverityCritical, alerts[0].Severity)
	})

	t.Run("quiet window", func(t *testing.T) {
		summary := &model.PatternSummary{
			TotalPositive:  10,
			PositiveRatio:  10.0,
			HorsemenCounts: map[model.Horseman]int{},
		}
		assert.Empty(t, a.generateAlerts(summary))
	})
}

func TestDismissiveResponseInConversation(t *testing.T) {
	messages := buildConversation([]struct {
		gap    time.Duration
		sender string
		text   string
	}{
		{0, "Ana", "estou triste com tudo isso"},
		{2 * time.Minute, "Bruno", "entendi"},
	})

	summary := newTestAggregator().AnalyzeConversation(context.Background(), messages)
	require.NoError(t, summary.Validate())

	assert.Equal(t, 1, summary.TotalPositive) // the disclosure itself
	assert.Equal(t, 1, summary.TotalNegative)

	var families []model.PatternFamily
	for _, m := range summary.Matches {
		families = append(families, m.Family)
	}
	assert.ElementsMatch(t, []model.PatternFamily{
		model.FamilyDisclosure,
		model.FamilyDismissiveResponse,
	}, families)
}
