package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navi-hq/navi/internal/model"
)

func TestLooksForwarded(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain message", "te amo muito", false},
		{"embedded export timestamp", "[6/1/25, 9:41:07 PM] Ana: te amo", true},
		{"embedded clock", "veja isso de 9:41 PM ontem", true},
		{"forward marker", "Mensagem encaminhada: olha que legal", true},
		{"encaminhei", "encaminhei pra você o que ela escreveu", true},
		{"fwd prefix", "fwd: proposta do apartamento", true},
		{"greeting plus name opener", "Oi Carla, tudo bem com vocês?", true},
		{"third party quote", "ele disse que não vem mais", true},
		{"ela falou", "ela falou que o evento mudou de data", true},
		{"omitted media text", "image omitted", true},
		{"very long pasted chain", strings.Repeat("bla ", 200), true},
		{"ordinary question", "que horas você chega hoje?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksForwarded(tt.text), tt.text)
		})
	}
}

func sampleSummary() *model.PatternSummary {
	ts := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	matches := []model.PatternMatch{
		{Kind: model.CategoryPositive, Family: model.FamilyAffection, ScoreImpact: 3,
			Sender: "Ana", Timestamp: ts, MessageText: "te amo demais", Evidence: "te amo"},
		{Kind: model.CategoryPositive, Family: model.FamilyAffection, ScoreImpact: 3,
			Sender: "Bruno", Timestamp: ts.Add(time.Minute), MessageText: "também te amo", Evidence: "te amo"},
		{Kind: model.CategoryPositive, Family: model.FamilyAffection, ScoreImpact: 3,
			Sender: "Ana", Timestamp: ts.Add(2 * time.Minute), MessageText: "ele disse que te ama, encaminhei", Evidence: "te am"},
		{Kind: model.CategoryPositive, Family: model.FamilyRepair, ScoreImpact: 5,
			Sender: "Bruno", Timestamp: ts.Add(3 * time.Minute), MessageText: "desculpa por ontem", Evidence: "desculpa"},
		{Kind: model.CategoryNegative, Family: model.FamilyCriticism, Horseman: model.HorsemanCriticism,
			ScoreImpact: -5, Sender: "Ana", Timestamp: ts.Add(4 * time.Minute),
			MessageText: "você sempre esquece", Evidence: "você sempre"},
	}
	return &model.PatternSummary{
		TotalPositive: 4,
		TotalNegative: 1,
		PositiveRatio: 4.0,
		HorsemenCounts: map[model.Horseman]int{
			model.HorsemanCriticism: 1,
		},
		PositiveCounts: map[model.PatternFamily]int{
			model.FamilyAffection: 3,
			model.FamilyRepair:    1,
		},
		Matches: matches,
	}
}

func TestExtractExamplesFiltersForwarded(t *testing.T) {
	examples := ExtractExamples(sampleSummary())

	affection := examples[model.FamilyAffection]
	require.Len(t, affection, 2, "the forwarded-looking match is dropped")
	assert.Equal(t, "te amo demais", affection[0].Text)
	assert.Equal(t, "também te amo", affection[1].Text)

	require.Len(t, examples[model.FamilyRepair], 1)
	require.Len(t, examples[model.FamilyCriticism], 1)
}

func TestExtractExamplesCapsPerCategory(t *testing.T) {
	summary := &model.PatternSummary{}
	ts := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		summary.Matches = append(summary.Matches, model.PatternMatch{
			Kind: model.CategoryPositive, Family: model.FamilyGratitude,
			Sender: "Ana", Timestamp: ts, MessageText: "obrigada por tudo",
		})
	}

	examples := ExtractExamples(summary)
	assert.Len(t, examples[model.FamilyGratitude], MaxExamplesPerCategory)
}

func TestBuildProfiles(t *testing.T) {
	profiles := BuildProfiles(sampleSummary())
	require.Len(t, profiles, 2)

	ana := profiles["Ana"]
	assert.Equal(t, 2, ana.Positive)
	assert.Equal(t, 1, ana.Negative)
	assert.Equal(t, 1, ana.Horsemen[model.HorsemanCriticism])
	assert.Equal(t, 0, ana.RepairsOffered)

	bruno := profiles["Bruno"]
	assert.Equal(t, 2, bruno.Positive)
	assert.Equal(t, 0, bruno.Negative)
	assert.Equal(t, 1, bruno.RepairsOffered)
}

func sampleResult() *model.HealthScoreResult {
	return &model.HealthScoreResult{
		Overall:    78.4,
		Label:      model.LabelHealthy,
		Confidence: 0.75,
		Trend:      "+4 vs mês anterior",
		Dimensions: []model.DimensionScore{
			{
				Name:   model.DimensionAffectionCommitment,
				Label:  "Afeto e Compromisso",
				Score:  85.0,
				Weight: 0.25,
				Components: []model.ComponentResult{
					{Name: "expressed_affection", Score: 100, Weight: 0.40, Detail: "16.0 expressões de carinho/semana"},
					{Name: "commitment_signals", Score: 70, Weight: 0.35},
					{Name: "appreciation", Score: 82, Weight: 0.25},
				},
				Insights: []string{"Expressões frequentes de carinho"},
			},
		},
		Strengths:    []string{"Afeto e Compromisso: Expressões frequentes de carinho"},
		Alerts:       []model.Alert{{Type: model.AlertRatioWarning, Severity: model.SeverityMedium, Message: "Positive to negative ratio of 4.0:1 (Gottman target: 5:1)"}},
		Summary:      sampleSummary(),
		WindowStart:  time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		WindowEnd:    time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		MessageCount: 120,
		GeneratedAt:  time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderJSONShape(t *testing.T) {
	data, err := RenderJSON(sampleResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, 78.4, decoded["overall"])
	assert.Equal(t, "Saudável", decoded["label"])
	assert.Equal(t, "Healthy", decoded["labelEn"])
	assert.Equal(t, 0.75, decoded["confidence"])

	dimensions := decoded["dimensions"].(map[string]any)
	affection := dimensions["affection_commitment"].(map[string]any)
	assert.Equal(t, 85.0, affection["score"])

	components := affection["components"].(map[string]any)
	expressed := components["expressed_affection"].(map[string]any)
	assert.Equal(t, 100.0, expressed["score"])
	assert.Equal(t, 0.40, expressed["weight"])

	insights := decoded["insights"].(map[string]any)
	assert.NotEmpty(t, insights["strengths"])
	assert.Empty(t, insights["opportunities"])

	alerts := decoded["alerts"].([]any)
	require.Len(t, alerts, 1)

	profiles := decoded["profiles"].(map[string]any)
	assert.Contains(t, profiles, "Ana")
	assert.Contains(t, profiles, "Bruno")
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(sampleResult(), []model.WeeklyScore{
		{WeekStart: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Score: 82, MessageCount: 40, PositiveCount: 9},
		{WeekStart: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), Score: 55, MessageCount: 35, PositiveCount: 4, NegativeCount: 3, HasConflict: true},
	})

	assert.Contains(t, out, "# Relatório de Saúde do Relacionamento")
	assert.Contains(t, out, "**78.4/100**")
	assert.Contains(t, out, "**Saudável** (Healthy)")
	assert.Contains(t, out, "+4 vs mês anterior")
	assert.Contains(t, out, "Afeto e Compromisso: 85.0/100 (peso 25%)")
	assert.Contains(t, out, "Carinho Expresso")
	assert.Contains(t, out, "## Pontos Fortes")
	assert.Contains(t, out, "## Alertas")
	assert.Contains(t, out, "## Pulso Semanal")
	assert.Contains(t, out, "## Perfil por Pessoa")
	assert.Contains(t, out, "## Exemplos")
	assert.NotContains(t, out, "encaminhei", "forwarded content stays out of examples")
}

func TestRenderMarkdownMinimalResult(t *testing.T) {
	result := model.InsufficientDataResult(
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC))

	out := RenderMarkdown(result, nil)
	assert.Contains(t, out, "Dados Insuficientes")
	assert.NotContains(t, out, "## Análise por Dimensão")
	assert.NotContains(t, out, "## Pulso Semanal")
}
