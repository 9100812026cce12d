package report

import (
	"encoding/json"
	"time"

	"github.com/navi-hq/navi/internal/model"
)

// JSON export shape. Report consumers read this as read-only data.
type jsonExport struct {
	Overall    float64                   `json:"overall"`
	Label      string                    `json:"label"`
	LabelEN    string                    `json:"labelEn"`
	Confidence float64                   `json:"confidence"`
	Trend      string                    `json:"trend,omitempty"`
	Dimensions map[string]jsonDimension  `json:"dimensions"`
	Insights   jsonInsights              `json:"insights"`
	Alerts     []jsonAlert               `json:"alerts"`
	Window     jsonWindow                `json:"window"`
	Profiles   map[string]*SenderProfile `json:"profiles,omitempty"`
	Generated  time.Time                 `json:"generated"`
}

type jsonDimension struct {
	Score      float64                  `json:"score"`
	Weight     float64                  `json:"weight"`
	Components map[string]jsonComponent `json:"components"`
	Insights   []string                 `json:"insights"`
}

type jsonComponent struct {
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Detail string  `json:"detail,omitempty"`
}

type jsonInsights struct {
	Strengths     []string `json:"strengths"`
	Opportunities []string `json:"opportunities"`
}

type jsonAlert struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Pattern        string `json:"pattern,omitempty"`
	Count          int    `json:"count,omitempty"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation,omitempty"`
}

type jsonWindow struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	MessageCount int       `json:"messageCount"`
}

// RenderJSON serializes a health score result to the export shape.
func RenderJSON(result *model.HealthScoreResult) ([]byte, error) {
	export := jsonExport{
		Overall:    result.Overall,
		Label:      result.Label.PT,
		LabelEN:    result.Label.EN,
		Confidence: result.Confidence,
		Trend:      result.Trend,
		Dimensions: make(map[string]jsonDimension, len(result.Dimensions)),
		Insights: jsonInsights{
			Strengths:     emptyIfNil(result.Strengths),
			Opportunities: emptyIfNil(result.Opportunities),
		},
		Alerts: make([]jsonAlert, 0, len(result.Alerts)),
		Window: jsonWindow{
			Start:        result.WindowStart,
			End:          result.WindowEnd,
			MessageCount: result.MessageCount,
		},
		Generated: result.GeneratedAt,
	}

	for _, d := range result.Dimensions {
		components := make(map[string]jsonComponent, len(d.Components))
		for _, c := range d.Components {
			components[c.Name] = jsonComponent{
				Score:  c.Score,
				Weight: c.Weight,
				Detail: c.Detail,
			}
		}
		export.Dimensions[string(d.Name)] = jsonDimension{
			Score:      d.Score,
			Weight:     d.Weight,
			Components: components,
			Insights:   emptyIfNil(d.Insights),
		}
	}

	for _, a := range result.Alerts {
		export.Alerts = append(export.Alerts, jsonAlert{
			Type:           string(a.Type),
			Severity:       string(a.Severity),
			Pattern:        string(a.Horseman),
			Count:          a.Count,
			Message:        a.Message,
			Recommendation: a.Recommendation,
		})
	}

	if result.Summary != nil {
		export.Profiles = BuildProfiles(result.Summary)
	}

	return json.MarshalIndent(export, "", "  ")
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
