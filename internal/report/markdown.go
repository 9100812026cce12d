package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/navi-hq/navi/internal/model"
)

// RenderMarkdown produces the human-readable health report. The weekly pulse
// and examples sections are omitted when their data is empty.
func RenderMarkdown(result *model.HealthScoreResult, pulse []model.WeeklyScore) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Relatório de Saúde do Relacionamento\n\n")
	fmt.Fprintf(&b, "**Gerado:** %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Janela:** %s a %s (%d mensagens)\n\n",
		result.WindowStart.Format("2006-01-02"),
		result.WindowEnd.Format("2006-01-02"),
		result.MessageCount)
	b.WriteString("---\n\n")

	b.WriteString("## Pontuação Geral\n\n")
	b.WriteString("| Métrica | Valor |\n|---------|-------|\n")
	fmt.Fprintf(&b, "| **Pontuação** | **%.1f/100** |\n", result.Overall)
	fmt.Fprintf(&b, "| **Status** | **%s** (%s) |\n", result.Label.PT, result.Label.EN)
	fmt.Fprintf(&b, "| **Confiança** | **%.0f%%** |\n", result.Confidence*100)
	if result.Trend != "" {
		fmt.Fprintf(&b, "| **Tendência** | **%s** |\n", result.Trend)
	}
	b.WriteString("\n")

	if len(result.Dimensions) > 0 {
		b.WriteString("## Análise por Dimensão\n\n")
		for i, d := range result.Dimensions {
			fmt.Fprintf(&b, "### %d. %s: %.1f/100 (peso %.0f%%)\n\n",
				i+1, d.Label, d.Score, d.Weight*100)
			for _, c := range d.Components {
				fmt.Fprintf(&b, "- **%s**: %.1f/100", componentLabel(c.Name), c.Score)
				if c.Detail != "" {
					fmt.Fprintf(&b, " — %s", c.Detail)
				}
				b.WriteString("\n")
			}
			for _, insight := range d.Insights {
				fmt.Fprintf(&b, "\n> %s\n", insight)
			}
			b.WriteString("\n")
		}
	}

	if len(result.Strengths) > 0 {
		b.WriteString("## Pontos Fortes\n\n")
		for _, s := range result.Strengths {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	if len(result.Opportunities) > 0 {
		b.WriteString("## Oportunidades\n\n")
		for _, o := range result.Opportunities {
			fmt.Fprintf(&b, "- %s\n", o)
		}
		b.WriteString("\n")
	}

	if len(result.Alerts) > 0 {
		b.WriteString("## Alertas\n\n")
		for _, a := range result.Alerts {
			fmt.Fprintf(&b, "- **[%s]** %s", strings.ToUpper(string(a.Severity)), a.Message)
			if a.Recommendation != "" {
				fmt.Fprintf(&b, "\n  - Antídoto: %s", a.Recommendation)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(pulse) > 0 {
		b.WriteString("## Pulso Semanal\n\n")
		b.WriteString("| Semana | Pontuação | Mensagens | Positivas | Negativas | Conflito |\n")
		b.WriteString("|--------|-----------|-----------|-----------|-----------|----------|\n")
		for _, w := range pulse {
			conflict := "—"
			if w.HasConflict {
				conflict = "sim"
			}
			fmt.Fprintf(&b, "| %s | %.0f | %d | %d | %d | %s |\n",
				w.WeekStart.Format("2006-01-02"), w.Score, w.MessageCount,
				w.PositiveCount, w.NegativeCount, conflict)
		}
		b.WriteString("\n")
	}

	if result.Summary != nil {
		writeProfiles(&b, result.Summary)
		writeExamples(&b, result.Summary)
	}

	return b.String()
}

func writeProfiles(b *strings.Builder, summary *model.PatternSummary) {
	profiles := BuildProfiles(summary)
	if len(profiles) == 0 {
		return
	}

	senders := make([]string, 0, len(profiles))
	for s := range profiles {
		senders = append(senders, s)
	}
	sort.Strings(senders)

	b.WriteString("## Perfil por Pessoa\n\n")
	b.WriteString("| Pessoa | Positivas | Negativas | Reparações |\n")
	b.WriteString("|--------|-----------|-----------|------------|\n")
	for _, s := range senders {
		p := profiles[s]
		fmt.Fprintf(b, "| %s | %d | %d | %d |\n", p.Sender, p.Positive, p.Negative, p.RepairsOffered)
	}
	b.WriteString("\n")
}

func writeExamples(b *strings.Builder, summary *model.PatternSummary) {
	examples := ExtractExamples(summary)
	if len(examples) == 0 {
		return
	}

	families := make([]string, 0, len(examples))
	for f := range examples {
		families = append(families, string(f))
	}
	sort.Strings(families)

	b.WriteString("## Exemplos\n\n")
	for _, f := range families {
		fmt.Fprintf(b, "### %s\n\n", f)
		for _, ex := range examples[model.PatternFamily(f)] {
			fmt.Fprintf(b, "- %s (%s): \"%s\"\n",
				ex.Sender, ex.Timestamp.Format("2006-01-02"), ex.Text)
		}
		b.WriteString("\n")
	}
}

// componentLabel maps internal component names to display names.
func componentLabel(name string) string {
	switch name {
	case "responsiveness":
		return "Responsividade"
	case "vulnerability":
		return "Vulnerabilidade"
	case "attunement":
		return "Sintonia"
	case "expressed_affection":
		return "Carinho Expresso"
	case "commitment_signals":
		return "Sinais de Compromisso"
	case "appreciation":
		return "Apreciação"
	case "constructive_dialogue":
		return "Diálogo Construtivo"
	case "conflict_repair":
		return "Reparação de Conflitos"
	case "emotional_safety":
		return "Segurança Emocional"
	case "supportive_responses":
		return "Respostas de Apoio"
	case "contribution_balance":
		return "Equilíbrio de Contribuições"
	case "coordination":
		return "Coordenação"
	case "emotional_reciprocity":
		return "Reciprocidade Emocional"
	default:
		return name
	}
}
