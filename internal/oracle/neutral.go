package oracle

import "context"

// Neutral is the no-signal Oracle. It returns judgments that neither reward
// nor penalize, and is the single place these defaults are encoded: the
// Resilient decorator degrades to it when a provider stays unreachable.
type Neutral struct{}

var _ Oracle = Neutral{}

func (Neutral) JudgeContempt(context.Context, string, string) (ContemptJudgment, error) {
	return ContemptJudgment{
		IsContempt: false,
		Confidence: 0.0,
		Type:       "none",
		Severity:   "mild",
	}, nil
}

func (Neutral) JudgeResponseQuality(context.Context, string, string) (ResponseQualityJudgment, error) {
	return ResponseQualityJudgment{
		UnderstandingScore: 50,
		ValidationScore:    50,
		CaringScore:        50,
		OverallQuality:     50,
		IsDismissive:       false,
	}, nil
}

func (Neutral) JudgeRepair(context.Context, string, string) (RepairJudgment, error) {
	return RepairJudgment{
		IsGenuine:           true,
		Confidence:          0.5,
		ResponsibilityLevel: "partial",
		HasBlameShifting:    false,
	}, nil
}

func (Neutral) JudgeVulnerability(context.Context, string, string) (VulnerabilityJudgment, error) {
	return VulnerabilityJudgment{
		DepthLevel:         "surface",
		DepthScore:         30,
		InvitesReciprocity: false,
		Topics:             nil,
	}, nil
}

func (Neutral) JudgeSharedMeaning(context.Context, string, string) (SharedMeaningJudgment, error) {
	return SharedMeaningJudgment{
		CommitmentLevel: "casual",
		CommitmentScore: 30,
		Timeframe:       "immediate",
		GoalAlignment:   false,
	}, nil
}
