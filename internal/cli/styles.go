// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/navi-hq/navi/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#C3A6FF") // Lavender
	// HealthyColor indicates scores in good standing.
	HealthyColor = lipgloss.Color("#4ECDC4") // Teal
	// AttentionColor indicates scores that need attention.
	AttentionColor = lipgloss.Color("#FFE66D") // Yellow
	// CriticalColor indicates critical scores and alerts.
	CriticalColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// HealthyStyle formats healthy scores and positive findings.
	HealthyStyle = lipgloss.NewStyle().
			Foreground(HealthyColor)

	// AttentionStyle formats scores and alerts that warrant attention.
	AttentionStyle = lipgloss.NewStyle().
			Foreground(AttentionColor)

	// CriticalStyle formats critical scores and alerts.
	CriticalStyle = lipgloss.NewStyle().
			Foreground(CriticalColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86"))
)

// Icons.
const (
	HeartIcon   = "💙"
	ChartIcon   = "📊"
	WarningIcon = "⚠️"
	AlertIcon   = "🚨"
	SparkIcon   = "✨"
)

// FormatTitle formats a section title with the theme icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(HeartIcon + "  " + title)
}

// FormatScore renders a 0-100 score colored by band.
func FormatScore(score float64) string {
	return scoreStyle(score).Render(fmt.Sprintf("%.1f/100", score))
}

// FormatLabel renders a score label in the same color band as its score.
func FormatLabel(label model.ScoreLabel, score float64) string {
	return scoreStyle(score).Bold(true).Render(label.PT + " (" + label.EN + ")")
}

// FormatAlert renders an alert message colored by severity.
func FormatAlert(alert model.Alert) string {
	switch alert.Severity {
	case model.SeverityCritical:
		return CriticalStyle.Render(AlertIcon + " " + alert.Message)
	case model.SeverityHigh:
		return CriticalStyle.Render(WarningIcon + " " + alert.Message)
	default:
		return AttentionStyle.Render(WarningIcon + " " + alert.Message)
	}
}

// FormatInfo formats an informational message.
func FormatInfo(message string) string {
	return InfoStyle.Render(message)
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return HealthyStyle
	case score >= 55:
		return AttentionStyle
	default:
		return CriticalStyle
	}
}
