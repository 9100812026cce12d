package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/navi-hq/navi/internal/common"
)

// completer sends one prompt to a provider and returns the raw text reply.
// Implemented by the Anthropic and OpenAI clients.
type completer interface {
	complete(ctx context.Context, prompt, analysisType string) (string, error)
}

// judger adapts a completer into an Oracle: it formats the research prompts
// and parses the strict-JSON replies. Both providers share this path.
type judger struct {
	c completer
}

func (j judger) JudgeContempt(ctx context.Context, text, convContext string) (ContemptJudgment, error) {
	reply, err := j.c.complete(ctx, fmt.Sprintf(contemptPrompt, text, convContext), TypeContempt)
	if err != nil {
		return ContemptJudgment{}, err
	}

	var raw struct {
		IsContempt bool    `json:"is_contempt"`
		Confidence float64 `json:"confidence"`
		Type       string  `json:"type"`
		Reasoning  string  `json:"reasoning"`
		Severity   string  `json:"severity"`
	}
	if err := parseReply(reply, &raw); err != nil {
		return ContemptJudgment{}, err
	}

	return ContemptJudgment{
		IsContempt: raw.IsContempt,
		Confidence: raw.Confidence,
		Type:       raw.Type,
		Reasoning:  raw.Reasoning,
		Severity:   raw.Severity,
	}, nil
}

func (j judger) JudgeResponseQuality(ctx context.Context, original, response string) (ResponseQualityJudgment, error) {
	reply, err := j.c.complete(ctx, fmt.Sprintf(responseQualityPrompt, original, response), TypeResponseQuality)
	if err != nil {
		return ResponseQualityJudgment{}, err
	}

	var raw struct {
		UnderstandingScore int    `json:"understanding_score"`
		ValidationScore    int    `json:"validation_score"`
		CaringScore        int    `json:"caring_score"`
		OverallQuality     int    `json:"overall_quality"`
		IsDismissive       bool   `json:"is_dismissive"`
		Reasoning          string `json:"reasoning"`
	}
	if err := parseReply(reply, &raw); err != nil {
		return ResponseQualityJudgment{}, err
	}

	return ResponseQualityJudgment{
		UnderstandingScore: raw.UnderstandingScore,
		ValidationScore:    raw.ValidationScore,
		CaringScore:        raw.CaringScore,
		OverallQuality:     raw.OverallQuality,
		IsDismissive:       raw.IsDismissive,
		Reasoning:          raw.Reasoning,
	}, nil
}

func (j judger) JudgeRepair(ctx context.Context, text, conflictContext string) (RepairJudgment, error) {
	reply, err := j.c.complete(ctx, fmt.Sprintf(repairPrompt, text, conflictContext), TypeRepair)
	if err != nil {
		return RepairJudgment{}, err
	}

	var raw struct {
		IsGenuine           bool    `json:"is_genuine"`
		Confidence          float64 `json:"confidence"`
		ResponsibilityLevel string  `json:"responsibility_level"`
		HasBlameShifting    bool    `json:"has_blame_shifting"`
		Reasoning           string  `json:"reasoning"`
	}
	if err := parseReply(reply, &raw); err != nil {
		return RepairJudgment{}, err
	}

	return RepairJudgment{
		IsGenuine:           raw.IsGenuine,
		Confidence:          raw.Confidence,
		ResponsibilityLevel: raw.ResponsibilityLevel,
		HasBlameShifting:    raw.HasBlameShifting,
		Reasoning:           raw.Reasoning,
	}, nil
}

func (j judger) JudgeVulnerability(ctx context.Context, text, convContext string) (VulnerabilityJudgment, error) {
	reply, err := j.c.complete(ctx, fmt.Sprintf(vulnerabilityPrompt, text, convContext), TypeVulnerability)
	if err != nil {
		return VulnerabilityJudgment{}, err
	}

	var raw struct {
		DepthLevel         string   `json:"depth_level"`
		DepthScore         int      `json:"depth_score"`
		InvitesReciprocity bool     `json:"invites_reciprocity"`
		Topics             []string `json:"topics"`
		Reasoning          string   `json:"reasoning"`
	}
	if err := parseReply(reply, &raw); err != nil {
		return VulnerabilityJudgment{}, err
	}

	return VulnerabilityJudgment{
		DepthLevel:         raw.DepthLevel,
		DepthScore:         raw.DepthScore,
		InvitesReciprocity: raw.InvitesReciprocity,
		Topics:             raw.Topics,
		Reasoning:          raw.Reasoning,
	}, nil
}

func (j judger) JudgeSharedMeaning(ctx context.Context, text, convContext string) (SharedMeaningJudgment, error) {
	reply, err := j.c.complete(ctx, fmt.Sprintf(sharedMeaningPrompt, text, convContext), TypeSharedMeaning)
	if err != nil {
		return SharedMeaningJudgment{}, err
	}

	var raw struct {
		CommitmentLevel string `json:"commitment_level"`
		CommitmentScore int    `json:"commitment_score"`
		Timeframe       string `json:"timeframe"`
		GoalAlignment   bool   `json:"goal_alignment"`
		Reasoning       string `json:"reasoning"`
	}
	if err := parseReply(reply, &raw); err != nil {
		return SharedMeaningJudgment{}, err
	}

	return SharedMeaningJudgment{
		CommitmentLevel: raw.CommitmentLevel,
		CommitmentScore: raw.CommitmentScore,
		Timeframe:       raw.Timeframe,
		GoalAlignment:   raw.GoalAlignment,
		Reasoning:       raw.Reasoning,
	}, nil
}

// parseReply unmarshals a model reply into out, tolerating markdown fences
// and prose around the JSON object.
func parseReply(reply string, out any) error {
	content := cleanMarkdownWrapper(reply)
	if err := json.Unmarshal([]byte(content), out); err == nil {
		return nil
	}

	// Fall back to the outermost brace pair.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(content[start:end+1]), out); err == nil {
			return nil
		}
	}

	return fmt.Errorf("%w: %.80s", common.ErrInvalidResponse, reply)
}

// cleanMarkdownWrapper strips a ```json fence if the model added one.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
