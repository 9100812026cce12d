package detect

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/navi-hq/navi/internal/lexicon"
)

// Response depth grades.
const (
	DepthDeep     = "deep"
	DepthModerate = "moderate"
	DepthMinimal  = "minimal"
)

// IsEmotionalMessage reports whether the text carries emotional content.
func IsEmotionalMessage(text string) bool {
	for _, p := range lexicon.EmotionalMarkers {
		if _, ok := p.Match(text); ok {
			return true
		}
	}
	return false
}

// IsDismissiveResponse reports whether a reply is minimal: a known
// brush-off token or anything under five characters.
func IsDismissiveResponse(text string) bool {
	text = strings.TrimSpace(text)
	for _, p := range lexicon.DismissivePatterns {
		if _, ok := p.Match(text); ok {
			return true
		}
	}
	return utf8.RuneCountInString(text) < 5
}

// ResponseQuality is the word-count heuristic assessment of one reply.
type ResponseQuality struct {
	Score              float64 // 0-100
	IsEmotionalContext bool
	IsDismissive       bool
	Depth              string
	WordCount          int
	ResponseTime       time.Duration
}

// CalculateResponseQuality grades a reply to the preceding message. Depth
// comes from word count; replies to emotional content are held to a higher
// standard: dismissiveness floors the score and slow replies lose depth
// credit.
func CalculateResponseQuality(original, response string, responseTime time.Duration) ResponseQuality {
	isEmotional := IsEmotionalMessage(original)
	isDismissive := IsDismissiveResponse(response)

	wordCount := len(strings.Fields(response))
	var depth string
	var depthScore float64
	switch {
	case wordCount >= 15:
		depth = DepthDeep
		depthScore = 100
	case wordCount >= 8:
		depth = DepthModerate
		depthScore = 70
	case wordCount >= 3:
		depth = DepthMinimal
		depthScore = 40
	default:
		depth = DepthMinimal
		depthScore = 20
	}

	var score float64
	switch {
	case isEmotional && isDismissive:
		score = 20
	case isEmotional && responseTime > 30*time.Minute:
		score = depthScore - 30
		if score < 20 {
			score = 20
		}
	default:
		score = depthScore
	}

	return ResponseQuality{
		Score:              score,
		IsEmotionalContext: isEmotional,
		IsDismissive:       isDismissive,
		Depth:              depth,
		WordCount:          wordCount,
		ResponseTime:       responseTime,
	}
}
