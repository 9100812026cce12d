package report

import "github.com/navi-hq/navi/internal/model"

// SenderProfile aggregates one person's classified behavior in a window.
type SenderProfile struct {
	Sender         string                      `json:"sender"`
	Positive       int                         `json:"positive"`
	Negative       int                         `json:"negative"`
	Horsemen       map[model.Horseman]int      `json:"horsemen"`
	TopPositives   map[model.PatternFamily]int `json:"topPositives"`
	RepairsOffered int                         `json:"repairsOffered"`
}

// BuildProfiles splits the summary's matches by sender.
func BuildProfiles(summary *model.PatternSummary) map[string]*SenderProfile {
	profiles := make(map[string]*SenderProfile)

	get := func(sender string) *SenderProfile {
		p, ok := profiles[sender]
		if !ok {
			p = &SenderProfile{
				Sender:       sender,
				Horsemen:     make(map[model.Horseman]int),
				TopPositives: make(map[model.PatternFamily]int),
			}
			profiles[sender] = p
		}
		return p
	}

	for _, match := range summary.Matches {
		p := get(match.Sender)
		if match.Kind == model.CategoryPositive {
			p.Positive++
			p.TopPositives[match.Family]++
			if match.Family == model.FamilyRepair {
				p.RepairsOffered++
			}
			continue
		}
		p.Negative++
		if match.Horseman != "" {
			p.Horsemen[match.Horseman]++
		}
	}
	return profiles
}
