package detect

import (
	"context"
	"fmt"
	"strings"

	"github.com/navi-hq/navi/internal/lexicon"
	"github.com/navi-hq/navi/internal/model"
)

// conflictDecay is how many messages a conflict context survives after the
// last horseman match.
const conflictDecay = 5

// Alert thresholds.
const (
	ratioTarget        = 5.0
	ratioHighThreshold = 3.0
	horsemanAlertCount = 3
	horsemanHighCount  = 5
	contemptAlertCount = 2
)

// Aggregator runs the matcher over an ordered conversation, tracking
// conflict state between messages and compiling the window summary.
type Aggregator struct {
	matcher *Matcher
}

// NewAggregator creates an aggregator over the given matcher.
func NewAggregator(matcher *Matcher) *Aggregator {
	return &Aggregator{matcher: matcher}
}

// AnalyzeConversation classifies every text message in timestamp order and
// returns the aggregated pattern summary. Non-text messages contribute
// nothing but still separate their neighbors in time.
func (a *Aggregator) AnalyzeConversation(ctx context.Context, messages []model.Message) *model.PatternSummary {
	summary := &model.PatternSummary{
		HorsemenCounts: make(map[model.Horseman]int),
		PositiveCounts: make(map[model.PatternFamily]int),
	}
	for _, h := range model.Horsemen {
		summary.HorsemenCounts[h] = 0
	}

	inConflict := false
	decay := 0
	var prevText string
	havePrev := false
	var prevIndex int
	var recent []string

	for i, msg := range messages {
		if !msg.IsText() {
			continue
		}

		mc := MessageContext{
			AfterConflict: inConflict,
			Recent:        recent,
		}
		if havePrev {
			mc.PreviousText = prevText
			mc.ResponseTime = msg.Timestamp.Sub(messages[prevIndex].Timestamp)
			mc.HasResponseTime = true
		}

		matches := a.matcher.ClassifyMessage(ctx, msg, mc)
		for _, match := range matches {
			summary.Matches = append(summary.Matches, match)

			if match.Kind == model.CategoryPositive {
				summary.TotalPositive++
				summary.PositiveCounts[match.Family]++
				continue
			}

			summary.TotalNegative++
			if match.Horseman != "" {
				summary.HorsemenCounts[match.Horseman]++
				inConflict = true
				decay = conflictDecay
			}
		}

		if decay > 0 {
			decay--
			if decay == 0 {
				inConflict = false
			}
		}

		prevText = msg.Text
		prevIndex = i
		havePrev = true

		recent = append(recent, msg.Sender+": "+msg.Text)
		if len(recent) > recentContextWindow {
			recent = recent[len(recent)-recentContextWindow:]
		}
	}

	summary.PositiveRatio = model.ComputeRatio(summary.TotalPositive, summary.TotalNegative)
	summary.Alerts = a.generateAlerts(summary)
	return summary
}

// generateAlerts compiles deterministic warnings from a finished summary.
func (a *Aggregator) generateAlerts(summary *model.PatternSummary) []model.Alert {
	var alerts []model.Alert

	if summary.PositiveRatio < ratioTarget && summary.TotalNegative > 0 {
		severity := model.SeverityMedium
		if summary.PositiveRatio < ratioHighThreshold {
			severity = model.SeverityHigh
		}
		alerts = append(alerts, model.Alert{
			Type:     model.AlertRatioWarning,
			Severity: severity,
			Message: fmt.Sprintf("Positive to negative ratio of %.1f:1 (Gottman target: 5:1)",
				summary.PositiveRatio),
			Recommendation: "Increase expressions of affection and gratitude",
		})
	}

	for _, h := range model.Horsemen {
		count := summary.HorsemenCounts[h]
		if count < horsemanAlertCount {
			continue
		}
		severity := model.SeverityMedium
		if count >= horsemanHighCount {
			severity = model.SeverityHigh
		}
		alerts = append(alerts, model.Alert{
			Type:           model.AlertHorsemanWarning,
			Severity:       severity,
			Horseman:       h,
			Count:          count,
			Message:        fmt.Sprintf("%s detected %d times", capitalize(string(h)), count),
			Recommendation: fmt.Sprintf("%s: %s", lexicon.AntidoteName(h), a.antidoteFor(h)),
		})
	}

	if summary.HorsemenCounts[model.HorsemanContempt] >= contemptAlertCount {
		alerts = append(alerts, model.Alert{
			Type:           model.AlertCriticalWarning,
			Severity:       model.SeverityCritical,
			Horseman:       model.HorsemanContempt,
			Count:          summary.HorsemenCounts[model.HorsemanContempt],
			Message:        "Contempt is the strongest predictor of relationship dissolution",
			Recommendation: "Prioritize building a culture of appreciation",
		})
	}

	return alerts
}

func (a *Aggregator) antidoteFor(h model.Horseman) string {
	if entry := a.matcher.registry.Entry(model.PatternFamily(h)); entry != nil {
		return entry.Antidote
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
