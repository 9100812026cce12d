// Package detect turns parsed messages into classified relationship
// patterns: per-message matching against the lexicon, oracle reconciliation
// for contempt and repair, and conversation-level aggregation.
package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/navi-hq/navi/internal/lexicon"
	"github.com/navi-hq/navi/internal/model"
	"github.com/navi-hq/navi/internal/oracle"
)

// Oracle reconciliation thresholds. The oracle's verdict overrides the regex
// result only when it is confident enough.
const (
	contemptAffirmThreshold   = 0.6
	contemptOverrideThreshold = 0.7
	repairGenuineThreshold    = 0.6
)

// Score impacts outside the regex registry.
const (
	fullResponsibilityImpact = 7
	uncertainRepairImpact    = 2
	fakeRepairImpact         = -2
	dismissiveImpact         = -2
	dismissiveSevereImpact   = -3
)

// contemptSeverityImpact maps oracle severity grades to score impacts.
var contemptSeverityImpact = map[string]int{
	"mild":     -5,
	"moderate": -8,
	"severe":   -10,
}

// recentContextWindow is how many preceding messages travel with a message
// as oracle context.
const recentContextWindow = 5

// MessageContext carries the conversational surroundings of one message.
type MessageContext struct {
	ResponseTime    time.Duration
	HasResponseTime bool
	AfterConflict   bool
	PreviousText    string
	Recent          []string
}

// Matcher classifies single messages against the pattern registry. When an
// oracle is attached, contempt and repair matches are reconciled with its
// judgment; a nil oracle means pure regex classification.
type Matcher struct {
	registry *lexicon.Registry
	oracle   oracle.Oracle
}

// NewMatcher creates a message matcher. The oracle may be nil.
func NewMatcher(registry *lexicon.Registry, o oracle.Oracle) *Matcher {
	return &Matcher{registry: registry, oracle: o}
}

// ClassifyMessage returns all pattern matches in one message: at most one
// per family, plus the dismissive-response check against the previous
// message. Matches come back stamped with the sender, timestamp, and text.
func (m *Matcher) ClassifyMessage(ctx context.Context, msg model.Message, mc MessageContext) []model.PatternMatch {
	var matches []model.PatternMatch

	if match := m.matchFamily(msg.Text, model.FamilyCriticism); match != nil {
		matches = append(matches, *match)
	}
	if match := m.detectContempt(ctx, msg.Text, joinContext(mc)); match != nil {
		matches = append(matches, *match)
	}
	if match := m.matchFamily(msg.Text, model.FamilyDefensiveness); match != nil {
		matches = append(matches, *match)
	}
	if match := m.detectStonewalling(msg.Text, mc); match != nil {
		matches = append(matches, *match)
	}

	if match := m.detectRepair(ctx, msg.Text, joinContext(mc)); match != nil {
		matches = append(matches, *match)
	}
	for _, family := range []model.PatternFamily{
		model.FamilyAffection,
		model.FamilyGratitude,
		model.FamilySupport,
		model.FamilyFuturePlanning,
		model.FamilyActiveListening,
		model.FamilyDisclosure,
		model.FamilyUnderstanding,
		model.FamilyAssurance,
	} {
		if match := m.matchFamily(msg.Text, family); match != nil {
			matches = append(matches, *match)
		}
	}

	if match := m.detectDismissiveResponse(ctx, msg.Text, mc.PreviousText); match != nil {
		matches = append(matches, *match)
	}

	for i := range matches {
		matches[i].Sender = msg.Sender
		matches[i].Timestamp = msg.Timestamp
		matches[i].MessageText = msg.Text
	}
	return matches
}

// matchFamily runs the plain regex path for one family.
func (m *Matcher) matchFamily(text string, family model.PatternFamily) *model.PatternMatch {
	entry := m.registry.Entry(family)
	evidence, ok := entry.Match(text)
	if !ok {
		return nil
	}
	return &model.PatternMatch{
		Kind:        entry.Kind,
		Family:      family,
		Horseman:    family.Horseman(),
		ScoreImpact: entry.Weight,
		Evidence:    evidence,
		Antidote:    entry.Antidote,
	}
}

// detectContempt reconciles the regex result with the oracle. The oracle is
// authoritative when confident: it can both confirm contempt the regex
// missed (sarcasm) and clear a regex false positive.
func (m *Matcher) detectContempt(ctx context.Context, text, convContext string) *model.PatternMatch {
	entry := m.registry.Entry(model.FamilyContempt)
	evidence, regexHit := entry.Match(text)

	if m.oracle != nil {
		j, err := m.oracle.JudgeContempt(ctx, text, convContext)
		if err == nil {
			switch {
			case j.IsContempt && j.Confidence >= contemptAffirmThreshold:
				impact, ok := contemptSeverityImpact[j.Severity]
				if !ok {
					impact = entry.Weight
				}
				if evidence == "" {
					evidence = truncate(text, 50)
				}
				return &model.PatternMatch{
					Kind:        model.CategoryNegative,
					Family:      model.FamilyContempt,
					Horseman:    model.HorsemanContempt,
					ScoreImpact: impact,
					Evidence:    fmt.Sprintf("[oracle: %s] %s", j.Type, evidence),
					Antidote:    entry.Antidote,
				}
			case regexHit && !j.IsContempt && j.Confidence >= contemptOverrideThreshold:
				// Confident false-positive call clears the regex hit.
				return nil
			}
		}
	}

	if regexHit {
		return &model.PatternMatch{
			Kind:        model.CategoryNegative,
			Family:      model.FamilyContempt,
			Horseman:    model.HorsemanContempt,
			ScoreImpact: entry.Weight,
			Evidence:    evidence,
			Antidote:    entry.Antidote,
		}
	}
	return nil
}

// detectStonewalling checks withdrawal phrases, then the delayed-response
// rule: more than two hours of silence while a conflict is active.
func (m *Matcher) detectStonewalling(text string, mc MessageContext) *model.PatternMatch {
	if match := m.matchFamily(text, model.FamilyStonewalling); match != nil {
		return match
	}

	if mc.AfterConflict && mc.HasResponseTime && mc.ResponseTime > 2*time.Hour {
		entry := m.registry.Entry(model.FamilyStonewalling)
		return &model.PatternMatch{
			Kind:        model.CategoryNegative,
			Family:      model.FamilyStonewalling,
			Horseman:    model.HorsemanStonewalling,
			ScoreImpact: entry.Weight,
			Evidence:    fmt.Sprintf("Resposta demorada após conflito (%.0fmin)", mc.ResponseTime.Minutes()),
			Antidote:    entry.Antidote,
		}
	}
	return nil
}

// detectRepair validates regex repair hits with the oracle: full
// responsibility earns extra credit, blame-shifting flips the match into a
// negative fake repair, and an unconfident verdict earns partial credit.
func (m *Matcher) detectRepair(ctx context.Context, text, convContext string) *model.PatternMatch {
	entry := m.registry.Entry(model.FamilyRepair)
	evidence, ok := entry.Match(text)
	if !ok {
		return nil
	}

	if m.oracle == nil {
		return &model.PatternMatch{
			Kind:        model.CategoryPositive,
			Family:      model.FamilyRepair,
			ScoreImpact: entry.Weight,
			Evidence:    evidence,
		}
	}

	j, err := m.oracle.JudgeRepair(ctx, text, convContext)
	if err != nil {
		return &model.PatternMatch{
			Kind:        model.CategoryPositive,
			Family:      model.FamilyRepair,
			ScoreImpact: entry.Weight,
			Evidence:    evidence,
		}
	}

	var impact int
	switch {
	case j.IsGenuine && j.Confidence >= repairGenuineThreshold:
		impact = entry.Weight
		if j.ResponsibilityLevel == "full" {
			impact = fullResponsibilityImpact
		}
	case j.HasBlameShifting:
		impact = fakeRepairImpact
	default:
		impact = uncertainRepairImpact
	}

	match := &model.PatternMatch{
		ScoreImpact: impact,
		Evidence:    fmt.Sprintf("[oracle: %s] %s", j.ResponsibilityLevel, evidence),
	}
	if impact > 0 {
		match.Kind = model.CategoryPositive
		match.Family = model.FamilyRepair
	} else {
		match.Kind = model.CategoryNegative
		match.Family = model.FamilyFakeRepair
	}
	return match
}

// detectDismissiveResponse flags a minimal reply to emotional content.
func (m *Matcher) detectDismissiveResponse(ctx context.Context, text, previous string) *model.PatternMatch {
	if previous == "" || !IsEmotionalMessage(previous) || !IsDismissiveResponse(text) {
		return nil
	}

	if m.oracle != nil {
		j, err := m.oracle.JudgeResponseQuality(ctx, previous, text)
		if err == nil {
			if !j.IsDismissive {
				return nil
			}
			impact := dismissiveImpact
			if j.OverallQuality < 30 {
				impact = dismissiveSevereImpact
			}
			evidence := "Resposta curta a conteúdo emocional"
			if j.Reasoning != "" {
				evidence = fmt.Sprintf("[oracle] %s", truncate(j.Reasoning, 50))
			}
			return &model.PatternMatch{
				Kind:        model.CategoryNegative,
				Family:      model.FamilyDismissiveResponse,
				ScoreImpact: impact,
				Evidence:    evidence,
			}
		}
	}

	return &model.PatternMatch{
		Kind:        model.CategoryNegative,
		Family:      model.FamilyDismissiveResponse,
		ScoreImpact: dismissiveImpact,
		Evidence:    "Resposta curta a conteúdo emocional",
	}
}

// joinContext flattens the recent-message window into the oracle context
// string, newest last, falling back to the previous message alone.
func joinContext(mc MessageContext) string {
	if len(mc.Recent) == 0 {
		return mc.PreviousText
	}
	recent := mc.Recent
	if len(recent) > recentContextWindow {
		recent = recent[len(recent)-recentContextWindow:]
	}
	out := ""
	for i, text := range recent {
		if i > 0 {
			out += "\n"
		}
		out += text
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
