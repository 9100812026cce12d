package model

import (
	"fmt"
	"time"
)

// CategoryKind indicates whether a pattern match counts for or against the
// relationship health score.
type CategoryKind string

// Category kind constants.
const (
	CategoryPositive CategoryKind = "positive"
	CategoryNegative CategoryKind = "negative"
)

// Horseman identifies one of Gottman's Four Horsemen. Only negative matches
// from the four horsemen families carry a Horseman tag.
type Horseman string

// Horseman constants.
const (
	HorsemanCriticism     Horseman = "criticism"
	HorsemanContempt      Horseman = "contempt"
	HorsemanDefensiveness Horseman = "defensiveness"
	HorsemanStonewalling  Horseman = "stonewalling"
)

// Horsemen lists the four horsemen in canonical order.
var Horsemen = []Horseman{
	HorsemanCriticism,
	HorsemanContempt,
	HorsemanDefensiveness,
	HorsemanStonewalling,
}

// PatternFamily is a closed enumeration of behavioral signal families. Each
// family is the exclusive owner of one signal; no two dimensions may consume
// overlapping families.
type PatternFamily string

// Pattern family constants.
const (
	// Negative families (Four Horsemen).
	FamilyCriticism     PatternFamily = "criticism"
	FamilyContempt      PatternFamily = "contempt"
	FamilyDefensiveness PatternFamily = "defensiveness"
	FamilyStonewalling  PatternFamily = "stonewalling"

	// Positive families.
	FamilyRepair          PatternFamily = "repair_attempt"
	FamilyAffection       PatternFamily = "affection"
	FamilyGratitude       PatternFamily = "gratitude"
	FamilySupport         PatternFamily = "support"
	FamilyFuturePlanning  PatternFamily = "future_planning"
	FamilyActiveListening PatternFamily = "active_listening"
	FamilyDisclosure      PatternFamily = "disclosure"
	FamilyUnderstanding   PatternFamily = "understanding"
	FamilyAssurance       PatternFamily = "assurance"

	// Derived names used by the matcher outside the regex registry.
	FamilyFakeRepair         PatternFamily = "fake_repair"
	FamilyDismissiveResponse PatternFamily = "dismissive_response"
)

// NegativeFamilies lists the regex-backed Four Horsemen families.
var NegativeFamilies = []PatternFamily{
	FamilyCriticism,
	FamilyContempt,
	FamilyDefensiveness,
	FamilyStonewalling,
}

// PositiveFamilies lists the regex-backed positive families.
var PositiveFamilies = []PatternFamily{
	FamilyRepair,
	FamilyAffection,
	FamilyGratitude,
	FamilySupport,
	FamilyFuturePlanning,
	FamilyActiveListening,
	FamilyDisclosure,
	FamilyUnderstanding,
	FamilyAssurance,
}

// Horseman returns the horseman tag for a negative family, or "" if the
// family is not one of the Four Horsemen.
func (f PatternFamily) Horseman() Horseman {
	switch f {
	case FamilyCriticism:
		return HorsemanCriticism
	case FamilyContempt:
		return HorsemanContempt
	case FamilyDefensiveness:
		return HorsemanDefensiveness
	case FamilyStonewalling:
		return HorsemanStonewalling
	default:
		return ""
	}
}

// PatternMatch is the atomic output of message classification. Never mutated
// after creation.
type PatternMatch struct {
	Timestamp   time.Time
	Kind        CategoryKind
	Family      PatternFamily
	Horseman    Horseman // Only set for Four Horsemen negatives
	ScoreImpact int
	Evidence    string // The matched substring
	Antidote    string // Research-backed suggestion, optional
	Sender      string
	MessageText string
}

// AlertSeverity orders alert urgency.
type AlertSeverity string

// Alert severity constants.
const (
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// AlertType classifies generated alerts.
type AlertType string

// Alert type constants.
const (
	AlertRatioWarning    AlertType = "ratio_warning"
	AlertHorsemanWarning AlertType = "horseman_warning"
	AlertCriticalWarning AlertType = "critical_warning"
)

// Alert is a deterministic warning generated from a finished PatternSummary.
type Alert struct {
	Type           AlertType
	Severity       AlertSeverity
	Horseman       Horseman // Only set for horseman warnings
	Count          int
	Message        string
	Recommendation string
}

// PatternSummary aggregates detected patterns over a conversation window.
// Created once per scoring call; read-only afterward.
type PatternSummary struct {
	TotalPositive  int
	TotalNegative  int
	PositiveRatio  float64
	HorsemenCounts map[Horseman]int
	PositiveCounts map[PatternFamily]int
	Alerts         []Alert
	Matches        []PatternMatch
}

// DefaultPositiveRatio is the "at goal" ratio reported when a window contains
// no matches at all (Gottman's 5:1 target).
const DefaultPositiveRatio = 5.0

// ComputeRatio applies the positive:negative ratio formula: positive/negative
// when negative > 0, the raw positive count when only positives exist, and
// the at-goal default when there is no data.
func ComputeRatio(positive, negative int) float64 {
	if negative > 0 {
		return float64(positive) / float64(negative)
	}
	if positive > 0 {
		return float64(positive)
	}
	return DefaultPositiveRatio
}

// Validate checks the summary's internal counting invariants.
func (s *PatternSummary) Validate() error {
	positives := 0
	for _, c := range s.PositiveCounts {
		positives += c
	}
	if positives != s.TotalPositive {
		return fmt.Errorf("positive counts sum to %d, total is %d", positives, s.TotalPositive)
	}

	negatives := 0
	for _, m := range s.Matches {
		if m.Kind == CategoryNegative && m.Horseman == "" {
			negatives++
		}
	}
	for _, c := range s.HorsemenCounts {
		negatives += c
	}
	if negatives != s.TotalNegative {
		return fmt.Errorf("negative counts sum to %d, total is %d", negatives, s.TotalNegative)
	}
	return nil
}
