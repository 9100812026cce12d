// Package oracle provides LLM-backed judgment calls for nuanced relationship
// signals that regex classification cannot settle: sarcasm, apology
// authenticity, response empathy, disclosure depth, and commitment strength.
package oracle

import "context"

// Analysis type identifiers, used for cost attribution.
const (
	TypeContempt        = "contempt_detection"
	TypeResponseQuality = "response_quality"
	TypeRepair          = "repair_validation"
	TypeVulnerability   = "vulnerability_depth"
	TypeSharedMeaning   = "shared_meaning"
)

// ContemptJudgment is the oracle's verdict on contempt/sarcasm.
type ContemptJudgment struct {
	IsContempt bool
	Confidence float64
	Type       string // sarcasm, mockery, dismissive, superiority, none
	Reasoning  string
	Severity   string // mild, moderate, severe
}

// ResponseQualityJudgment scores a response to emotional content, per Reis &
// Shaver's model: understanding + validation + caring.
type ResponseQualityJudgment struct {
	UnderstandingScore int // 0-100
	ValidationScore    int // 0-100
	CaringScore        int // 0-100
	OverallQuality     int // 0-100
	IsDismissive       bool
	Reasoning          string
}

// RepairJudgment is the oracle's verdict on apology authenticity.
type RepairJudgment struct {
	IsGenuine           bool
	Confidence          float64
	ResponsibilityLevel string // none, partial, full
	HasBlameShifting    bool
	Reasoning           string
}

// VulnerabilityJudgment grades the depth of an emotional disclosure.
type VulnerabilityJudgment struct {
	DepthLevel         string // surface, moderate, deep
	DepthScore         int    // 0-100
	InvitesReciprocity bool
	Topics             []string
	Reasoning          string
}

// SharedMeaningJudgment grades commitment and future-planning strength.
type SharedMeaningJudgment struct {
	CommitmentLevel string // casual, moderate, strong
	CommitmentScore int    // 0-100
	Timeframe       string // immediate, near_future, long_term
	GoalAlignment   bool
	Reasoning       string
}

// Oracle is the judgment interface consumed by the detection and scoring
// layers. Implementations must be safe for concurrent use.
type Oracle interface {
	// JudgeContempt decides whether a message carries contempt, using
	// recent conversation for context.
	JudgeContempt(ctx context.Context, text, convContext string) (ContemptJudgment, error)

	// JudgeResponseQuality evaluates a response to an emotional message.
	JudgeResponseQuality(ctx context.Context, original, response string) (ResponseQualityJudgment, error)

	// JudgeRepair decides whether an apology is genuine or blame-shifting.
	JudgeRepair(ctx context.Context, text, conflictContext string) (RepairJudgment, error)

	// JudgeVulnerability grades the depth of an emotional disclosure.
	JudgeVulnerability(ctx context.Context, text, convContext string) (VulnerabilityJudgment, error)

	// JudgeSharedMeaning grades commitment signals in future planning.
	JudgeSharedMeaning(ctx context.Context, text, convContext string) (SharedMeaningJudgment, error)
}
