package scoring

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/navi-hq/navi/internal/detect"
	"github.com/navi-hq/navi/internal/model"
)

// Weekly pulse parameters.
const (
	PulseDays       = 90
	minWeekMessages = 10
	conflictWeekMin = 3
)

// WeeklyPulse produces one score per week over the trailing 90 days, skipping
// weeks too quiet to read. The pulse is a regex-only pass; oracle refinement
// is reserved for the full scoring run.
func (s *HealthScorer) WeeklyPulse(ctx context.Context, messages []model.Message, asOf time.Time) []model.WeeklyScore {
	window := TrailingWindow(asOf, PulseDays)
	inWindow := textMessagesIn(messages, window)
	if len(inWindow) == 0 {
		return nil
	}

	byWeek := make(map[time.Time][]model.Message)
	for _, m := range inWindow {
		ws := weekStart(m.Timestamp)
		byWeek[ws] = append(byWeek[ws], m)
	}

	aggregator := detect.NewAggregator(detect.NewMatcher(s.registry, nil))

	var pulse []model.WeeklyScore
	for ws, weekMsgs := range byWeek {
		if len(weekMsgs) < minWeekMessages {
			continue
		}

		summary := aggregator.AnalyzeConversation(ctx, weekMsgs)
		positiveRate := float64(summary.TotalPositive) / float64(len(weekMsgs))

		base := 50 + math.Min(50, positiveRate*500)
		score := math.Max(10, base-5*float64(summary.TotalNegative))

		pulse = append(pulse, model.WeeklyScore{
			WeekStart:     ws,
			Score:         score,
			MessageCount:  len(weekMsgs),
			PositiveCount: summary.TotalPositive,
			NegativeCount: summary.TotalNegative,
			HasConflict:   summary.TotalNegative >= conflictWeekMin,
		})
	}

	sort.Slice(pulse, func(i, j int) bool {
		return pulse[i].WeekStart.Before(pulse[j].WeekStart)
	})
	return pulse
}

// weekStart returns midnight on the Monday of t's week.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
