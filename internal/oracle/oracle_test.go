package oracle

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCompleter returns canned replies keyed by analysis type.
type scriptedCompleter struct {
	replies map[string]string
	err     error
	calls   int
}

func (s *scriptedCompleter) complete(_ context.Context, _, analysisType string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.replies[analysisType], nil
}

func TestJudgeContemptParsesReply(t *testing.T) {
	c := &scriptedCompleter{replies: map[string]string{
		TypeContempt: `{"is_contempt": true, "confidence": 0.85, "type": "sarcasm", "reasoning": "tom sarcástico", "severity": "moderate"}`,
	}}
	j := judger{c: c}

	got, err := j.JudgeContempt(context.Background(), "parabéns, só levou 3 horas", "")
	require.NoError(t, err)
	assert.True(t, got.IsContempt)
	assert.Equal(t, 0.85, got.Confidence)
	assert.Equal(t, "sarcasm", got.Type)
	assert.Equal(t, "moderate", got.Severity)
}

func TestJudgeRepairParsesMarkdownWrappedReply(t *testing.T) {
	c := &scriptedCompleter{replies: map[string]string{
		TypeRepair: "```json\n{\"is_genuine\": false, \"confidence\": 0.9, \"responsibility_level\": \"none\", \"has_blame_shifting\": true, \"reasoning\": \"culpa o parceiro\"}\n```",
	}}
	j := judger{c: c}

	got, err := j.JudgeRepair(context.Background(), "desculpa, mas você começou", "")
	require.NoError(t, err)
	assert.False(t, got.IsGenuine)
	assert.True(t, got.HasBlameShifting)
	assert.Equal(t, "none", got.ResponsibilityLevel)
}

func TestJudgeVulnerabilityRecoversJSONFromProse(t *testing.T) {
	c := &scriptedCompleter{replies: map[string]string{
		TypeVulnerability: `Here is my assessment: {"depth_level": "deep", "depth_score": 90, "invites_reciprocity": true, "topics": ["medo", "inseguranca"], "reasoning": "medo central"}`,
	}}
	j := judger{c: c}

	got, err := j.JudgeVulnerability(context.Background(), "tenho medo de não ser suficiente", "")
	require.NoError(t, err)
	assert.Equal(t, "deep", got.DepthLevel)
	assert.Equal(t, 90, got.DepthScore)
	assert.True(t, got.InvitesReciprocity)
	assert.Len(t, got.Topics, 2)
}

func TestJudgeResponseQualityInvalidReply(t *testing.T) {
	c := &scriptedCompleter{replies: map[string]string{
		TypeResponseQuality: "I cannot assess this message.",
	}}
	j := judger{c: c}

	_, err := j.JudgeResponseQuality(context.Background(), "estou triste", "ok")
	assert.Error(t, err)
}

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.in))
		})
	}
}

func TestNeutralDefaults(t *testing.T) {
	ctx := context.Background()
	n := Neutral{}

	contempt, err := n.JudgeContempt(ctx, "x", "")
	require.NoError(t, err)
	assert.False(t, contempt.IsContempt)
	assert.Zero(t, contempt.Confidence)

	quality, err := n.JudgeResponseQuality(ctx, "x", "y")
	require.NoError(t, err)
	assert.Equal(t, 50, quality.OverallQuality)
	assert.False(t, quality.IsDismissive)

	repair, err := n.JudgeRepair(ctx, "x", "")
	require.NoError(t, err)
	assert.True(t, repair.IsGenuine)
	assert.Equal(t, 0.5, repair.Confidence)
	assert.Equal(t, "partial", repair.ResponsibilityLevel)

	vuln, err := n.JudgeVulnerability(ctx, "x", "")
	require.NoError(t, err)
	assert.Equal(t, "surface", vuln.DepthLevel)
	assert.Equal(t, 30, vuln.DepthScore)

	shared, err := n.JudgeSharedMeaning(ctx, "x", "")
	require.NoError(t, err)
	assert.Equal(t, "casual", shared.CommitmentLevel)
	assert.Equal(t, 30, shared.CommitmentScore)
}

// failingOracle always errors, simulating a dead provider.
type failingOracle struct {
	mu    sync.Mutex
	calls int
}

func (f *failingOracle) bump() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("provider unreachable")
}

func (f *failingOracle) JudgeContempt(context.Context, string, string) (ContemptJudgment, error) {
	return ContemptJudgment{}, f.bump()
}
func (f *failingOracle) JudgeResponseQuality(context.Context, string, string) (ResponseQualityJudgment, error) {
	return ResponseQualityJudgment{}, f.bump()
}
func (f *failingOracle) JudgeRepair(context.Context, string, string) (RepairJudgment, error) {
	return RepairJudgment{}, f.bump()
}
func (f *failingOracle) JudgeVulnerability(context.Context, string, string) (VulnerabilityJudgment, error) {
	return VulnerabilityJudgment{}, f.bump()
}
func (f *failingOracle) JudgeSharedMeaning(context.Context, string, string) (SharedMeaningJudgment, error) {
	return SharedMeaningJudgment{}, f.bump()
}

func TestResilientDegradesToNeutral(t *testing.T) {
	ctx := context.Background()
	failing := &failingOracle{}
	r := NewResilient(failing)

	contempt, err := r.JudgeContempt(ctx, "tanto faz", "")
	require.NoError(t, err)
	assert.False(t, contempt.IsContempt)
	assert.Equal(t, 2, failing.calls, "two attempts before degrading")

	repair, err := r.JudgeRepair(ctx, "desculpa", "")
	require.NoError(t, err)
	assert.True(t, repair.IsGenuine)
	assert.Equal(t, 0.5, repair.Confidence)

	quality, err := r.JudgeResponseQuality(ctx, "estou triste", "ok")
	require.NoError(t, err)
	assert.Equal(t, 50, quality.OverallQuality)
}

func TestResilientPassesThroughSuccess(t *testing.T) {
	c := &scriptedCompleter{replies: map[string]string{
		TypeContempt: `{"is_contempt": true, "confidence": 0.9, "type": "mockery", "reasoning": "", "severity": "severe"}`,
	}}
	r := NewResilient(judger{c: c})

	got, err := r.JudgeContempt(context.Background(), "que piada", "")
	require.NoError(t, err)
	assert.True(t, got.IsContempt)
	assert.Equal(t, "severe", got.Severity)
	assert.Equal(t, 1, c.calls)
}

func TestCostTracker(t *testing.T) {
	tracker := NewCostTracker()
	tracker.Log(AnalysisCost{InputTokens: 1_000_000, OutputTokens: 0, Model: "claude-3-5-haiku-20241022", AnalysisType: TypeContempt})
	tracker.Log(AnalysisCost{InputTokens: 0, OutputTokens: 1_000_000, Model: "claude-3-5-haiku-20241022", AnalysisType: TypeRepair})

	assert.InDelta(t, 0.25+1.25, tracker.TotalCost(), 1e-9)
	in, out := tracker.TotalTokens()
	assert.Equal(t, 1_000_000, in)
	assert.Equal(t, 1_000_000, out)
	assert.Equal(t, 2, tracker.Count())

	byType := tracker.ByType()
	assert.Equal(t, 1, byType[TypeContempt].Count)
	assert.InDelta(t, 0.25, byType[TypeContempt].CostUSD, 1e-9)
}

func TestCostUnknownModelUsesOpusRate(t *testing.T) {
	c := AnalysisCost{InputTokens: 1_000_000, OutputTokens: 1_000_000, Model: "mystery-model"}
	assert.InDelta(t, 15.0+75.0, c.CostUSD(), 1e-9)
}

func TestCostKnownModels(t *testing.T) {
	tests := []struct {
		model string
		want  float64
	}{
		{"claude-opus-4-5-20250514", 90.0},
		{"claude-sonnet-4-20250514", 18.0},
		{"claude-3-5-haiku-20241022", 1.50},
		{"gpt-4o", 12.50},
	}
	for _, tt := range tests {
		c := AnalysisCost{InputTokens: 1_000_000, OutputTokens: 1_000_000, Model: tt.model}
		assert.InDelta(t, tt.want, c.CostUSD(), 1e-9, tt.model)
	}
}

func TestPoolPreservesOrder(t *testing.T) {
	p := NewPool(3)
	results := make([]int, 50)

	err := p.Run(context.Background(), len(results), func(_ context.Context, i int) error {
		results[i] = i * 2
		return nil
	})
	require.NoError(t, err)

	for i, got := range results {
		assert.Equal(t, i*2, got)
	}
}

func TestPoolReturnsWorkerError(t *testing.T) {
	p := NewPool(2)
	wantErr := errors.New("boom")

	err := p.Run(context.Background(), 10, func(_ context.Context, i int) error {
		if i == 5 {
			return wantErr
		}
		return nil
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestPoolCanceledContext(t *testing.T) {
	p := NewPool(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx, 100, func(context.Context, int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
