// Package report renders scoring results into the JSON export shape and
// markdown reports, and extracts evidence examples from pattern matches.
package report

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/navi-hq/navi/internal/model"
)

// MaxExamplesPerCategory caps how many evidence examples each pattern family
// surfaces.
const MaxExamplesPerCategory = 3

// Example is one pattern match surfaced as user-visible evidence.
type Example struct {
	Family    model.PatternFamily `json:"family"`
	Kind      model.CategoryKind  `json:"kind"`
	Sender    string              `json:"sender"`
	Timestamp time.Time           `json:"timestamp"`
	Text      string              `json:"text"`
	Evidence  string              `json:"evidence"`
}

// Forwarded and quoted content masquerades as the sender's own words; these
// heuristics keep it out of the evidence examples.
var (
	embeddedTimestamp = regexp.MustCompile(
		`\[\d{1,2}/\d{1,2}/\d{2,4},|\b\d{1,2}:\d{2}(?::\d{2})?\s*[AP]M\b`)
	forwardMarker = regexp.MustCompile(
		`(?i)\bencaminh|^fwd:|\bforwarded\b|\bmensagem encaminhada\b`)
	greetingOpener = regexp.MustCompile(
		`^(?i:oi|olá|ola|bom dia|boa tarde|boa noite)\s+\p{Lu}\p{Ll}+[,!]`)
	thirdPartyQuote = regexp.MustCompile(
		`(?i)\b(?:el[ea]\s+(?:disse|falou|mandou|escreveu)|me\s+mandaram|recebi\s+(?:isso|essa))\b`)
)

// forwardedTextLimit marks very long messages as likely pasted chains.
const forwardedTextLimit = 500

// LooksForwarded reports whether a message text reads like forwarded or
// quoted third-party content rather than the sender's own words.
func LooksForwarded(text string) bool {
	if utf8.RuneCountInString(text) > forwardedTextLimit {
		return true
	}
	if strings.Contains(strings.ToLower(text), "omitted") {
		return true
	}
	return embeddedTimestamp.MatchString(text) ||
		forwardMarker.MatchString(text) ||
		greetingOpener.MatchString(text) ||
		thirdPartyQuote.MatchString(text)
}

// ExtractExamples filters a summary's matches down to presentable evidence:
// forwarded-looking messages are dropped and each family is capped.
func ExtractExamples(summary *model.PatternSummary) map[model.PatternFamily][]Example {
	out := make(map[model.PatternFamily][]Example)
	for _, match := range summary.Matches {
		if LooksForwarded(match.MessageText) {
			continue
		}
		if len(out[match.Family]) >= MaxExamplesPerCategory {
			continue
		}
		out[match.Family] = append(out[match.Family], Example{
			Family:    match.Family,
			Kind:      match.Kind,
			Sender:    match.Sender,
			Timestamp: match.Timestamp,
			Text:      match.MessageText,
			Evidence:  match.Evidence,
		})
	}
	return out
}
