// Package scoring turns a classified conversation window into the four
// dimension scores and the overall relationship health result. Scores are
// computed over a trailing 30-day window so they track recent behavior
// instead of being diluted by years of history.
package scoring

import (
	"time"

	"github.com/navi-hq/navi/internal/model"
)

// WindowDays is the length of the trailing scoring window.
const WindowDays = 30

// Window is a half-open time range (Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// TrailingWindow returns the window of the given length ending at end.
func TrailingWindow(end time.Time, days int) Window {
	return Window{Start: end.AddDate(0, 0, -days), End: end}
}

// Prior returns the window of equal length immediately preceding w.
func (w Window) Prior() Window {
	return Window{Start: w.Start.Add(-w.End.Sub(w.Start)), End: w.Start}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return t.After(w.Start) && !t.After(w.End)
}

// textMessagesIn filters to text messages inside the window, preserving
// order.
func textMessagesIn(messages []model.Message, w Window) []model.Message {
	var out []model.Message
	for _, m := range messages {
		if m.IsText() && w.Contains(m.Timestamp) {
			out = append(out, m)
		}
	}
	return out
}

// weeksSpanned returns the message span in weeks, floored at one. Per-week
// rates divide by this, so a burst of messages over a few days is not
// diluted across the whole window.
func weeksSpanned(messages []model.Message) float64 {
	if len(messages) < 2 {
		return 1
	}
	span := messages[len(messages)-1].Timestamp.Sub(messages[0].Timestamp)
	weeks := span.Hours() / 24 / 7
	if weeks < 1 {
		return 1
	}
	return weeks
}
