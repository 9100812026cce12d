// Package lexicon holds the compiled pattern registry for relationship
// signal detection. The pattern sets target the PT-BR conversational
// register and are grounded in Gottman's Four Horsemen research and the
// Stafford & Canary maintenance behavior taxonomy.
package lexicon

import (
	"regexp"

	"github.com/navi-hq/navi/internal/model"
)

// Pattern pairs a compiled expression with an optional exclusion. RE2 has no
// negative lookahead, so sarcasm guards ("parabéns" outside a birthday
// context) are expressed as a second regex that vetoes the match.
type Pattern struct {
	Re     *regexp.Regexp
	Unless *regexp.Regexp

	// submatch is set for expressions wrapped in explicit boundary
	// classes; evidence then comes from capture group 1.
	submatch bool
}

// Match reports whether the pattern matches text, returning the matched
// substring as evidence.
func (p Pattern) Match(text string) (string, bool) {
	var evidence string
	if p.submatch {
		m := p.Re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		evidence = m[1]
	} else {
		evidence = p.Re.FindString(text)
		if evidence == "" {
			return "", false
		}
	}
	if p.Unless != nil && p.Unless.MatchString(text) {
		return "", false
	}
	return evidence, true
}

// Entry is the registry record for one pattern family.
type Entry struct {
	Family   model.PatternFamily
	Kind     model.CategoryKind
	Weight   int
	Antidote string
	Patterns []Pattern
}

// Match returns the first pattern hit in the entry, or false. First match
// wins; at most one match per family per message.
func (e *Entry) Match(text string) (string, bool) {
	for _, p := range e.Patterns {
		if evidence, ok := p.Match(text); ok {
			return evidence, true
		}
	}
	return "", false
}

func compile(exprs ...string) []Pattern {
	patterns := make([]Pattern, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, Pattern{Re: regexp.MustCompile(`(?i)` + expr)})
	}
	return patterns
}

// bounded wraps an expression in unicode-aware word boundaries. RE2's \b is
// ASCII-only, so an expression beginning or ending with an accented letter
// can never satisfy it; these get explicit boundary classes instead, with
// the core in a capture group so evidence stays clean.
func bounded(expr string) Pattern {
	return Pattern{
		Re:       regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(` + expr + `)(?:[^\p{L}\p{N}_]|$)`),
		submatch: true,
	}
}

// boundedAt anchors the boundary-wrapped expression to the end of the text.
func boundedAt(expr string) Pattern {
	return Pattern{
		Re:       regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(` + expr + `)$`),
		submatch: true,
	}
}

func guarded(expr, unless string) Pattern {
	return Pattern{
		Re:     regexp.MustCompile(`(?i)` + expr),
		Unless: regexp.MustCompile(`(?i)` + unless),
	}
}

// Antidote descriptions surfaced alongside horseman matches.
const (
	antidoteCriticism     = `Use "Eu sinto..." em vez de "Você é..."`
	antidoteContempt      = "Expressar gratidão específica diariamente"
	antidoteDefensiveness = "Aceitar responsabilidade, mesmo que parcial"
	antidoteStonewalling  = "Fazer uma pausa de 20min e retornar à conversa"
)

// AntidoteName returns the research name for a horseman's antidote.
func AntidoteName(h model.Horseman) string {
	switch h {
	case model.HorsemanCriticism:
		return "Gentle Startup"
	case model.HorsemanContempt:
		return "Build Culture of Appreciation"
	case model.HorsemanDefensiveness:
		return "Take Responsibility"
	case model.HorsemanStonewalling:
		return "Self-Soothing"
	default:
		return ""
	}
}

// Registry is the immutable set of compiled family entries. Build it once at
// startup with NewRegistry and share it freely; it is safe for concurrent use.
type Registry struct {
	entries map[model.PatternFamily]*Entry
}

// NewRegistry compiles the full pattern registry.
func NewRegistry() *Registry {
	entries := map[model.PatternFamily]*Entry{
		model.FamilyCriticism: {
			Family:   model.FamilyCriticism,
			Kind:     model.CategoryNegative,
			Weight:   -5,
			Antidote: antidoteCriticism,
			Patterns: append(compile(
				`\bvocê sempre\b`,
				`\bvocê nunca\b`,
				`\bpor que você não\b`,
				`\bvocê é\s+(?:tão\s+)?(?:preguiçoso|incompetente|burro|idiota|irresponsável)\b`,
				`\bvocê só\s+(?:pensa|liga|quer)\b`,
				`\bvocê não\s+(?:faz|ajuda|colabora)\s+nada\b`,
				`\bsempre a mesma coisa\b`,
				`\bvocê não muda\b`,
				`\bvocê não se importa\b`,
				`\bvocê é impossível\b`,
			),
				bounded(`o problema é você`),
				bounded(`cansei de você`),
			),
		},
		model.FamilyContempt: {
			Family:   model.FamilyContempt,
			Kind:     model.CategoryNegative,
			Weight:   -8,
			Antidote: antidoteContempt,
			Patterns: append(compile(
				`\bgrande coisa\b`,
				`\btanto faz\b`,
				`\bque seja\b`,
				`\bfoda[-\s]?se\b`,
				`\bcomo quiser\b`,
				`\bclaro que\s+(?:não|sim)\b`,
				`\bque surpresa\b`,
				`\bvocê acha\s+(?:mesmo|que)\b.*\?`,
				`🙄`,
				`\bvocê é patético\b`,
				`\bque piada\b`,
				`\bai ai ai\b`,
			),
				bounded(`tá bom né`),
				// Sarcasm guards: these words are contempt only outside a
				// genuine context.
				guarded(`\bobviamente\b`, `obrigad`),
				guarded(`\bparabéns\b`, `aniversário|conquista`),
			),
		},
		model.FamilyDefensiveness: {
			Family:   model.FamilyDefensiveness,
			Kind:     model.CategoryNegative,
			Weight:   -4,
			Antidote: antidoteDefensiveness,
			Patterns: compile(
				`\bmas você também\b`,
				`\bnão é minha culpa\b`,
				`\beu não fiz nada\b`,
				`\bvocê que\b.*(?:começou|fez|disse)`,
				`\be você\??\s*$`,
				`\beu não tenho que\b`,
				`\bpor que eu\s+(?:tenho|deveria)\b`,
				`\bnão sou eu\b`,
				`\beu sempre\s+(?:faço|ajudo)\b`,
				`\bvocê está exagerando\b`,
				`\bnão foi isso que eu\b`,
				`\beu não disse isso\b`,
				`\bnão é bem assim\b`,
			),
		},
		model.FamilyStonewalling: {
			Family:   model.FamilyStonewalling,
			Kind:     model.CategoryNegative,
			Weight:   -6,
			Antidote: antidoteStonewalling,
			Patterns: append(compile(
				`\btanto faz\b`,
				`\bfaz o que você quiser\b`,
				`\bnão quero falar\b`,
				`\bme deixa\b`,
				`\besquece\b`,
				`\bchega\b$`,
				`\bok\b$`,
				`\bpreciso de um tempo\b`,
			),
				boundedAt(`tá`),
				bounded(`sei lá`),
			),
		},
		model.FamilyRepair: {
			Family: model.FamilyRepair,
			Kind:   model.CategoryPositive,
			Weight: 5,
			Patterns: compile(
				`\bdesculpa\b`,
				`\bperdão\b`,
				`\bme perdoa\b`,
				`\bnão quis\s+(?:dizer|fazer|magoar)\b`,
				`\bfoi mal\b`,
				`\beu errei\b`,
				`\bvocê tem razão\b`,
				`\beu exagerei\b`,
				`\bpodemos recomeçar\b`,
				`\bvamos tentar de novo\b`,
				`\bnão vamos brigar\b`,
				`\beu te amo\b.*(?:desculpa|perdão)`,
				`\bvamos resolver\b`,
				`😅.*(?:desculpa|perdão)`,
				`\bera brincadeira\b`,
			),
		},
		model.FamilyAffection: {
			Family: model.FamilyAffection,
			Kind:   model.CategoryPositive,
			Weight: 3,
			Patterns: compile(
				`\bte amo\b`,
				`\bamo você\b`,
				`\bsaudade\b`,
				`\bsaudades\b`,
				`\bte adoro\b`,
				`\bmeu amor\b`,
				`\bquerido\b`,
				`\bquerida\b`,
				`\bfofo\b`,
				`\bfofa\b`,
				`\blindo\b`,
				`\blinda\b`,
				`\bmaravilhoso\b`,
				`\bmaravilhosa\b`,
				`❤️`,
				`💕`,
				`😘`,
				`😍`,
				`🥰`,
				`\bte quero\b`,
				`\bpaixão\b`,
			),
		},
		model.FamilyGratitude: {
			Family: model.FamilyGratitude,
			Kind:   model.CategoryPositive,
			Weight: 3,
			Patterns: append(compile(
				`\bobrigad[oa]\s+por\b`,
				`\bmuito obrigad[oa]\b`,
				`\bagradeço\b`,
				`\bvaleu\s+(?:por|pela|pelo)\b`,
				`\bvocê é o melhor\b`,
				`\bvocê é a melhor\b`,
			),
				bounded(`que bom que você`),
				bounded(`não sei o que faria sem você`),
				bounded(`sorte de ter você`),
			),
		},
		model.FamilySupport: {
			Family: model.FamilySupport,
			Kind:   model.CategoryPositive,
			Weight: 4,
			Patterns: append(compile(
				`\bestou aqui\b`,
				`\bconte comigo\b`,
				`\bposso ajudar\b`,
				`\bo que você precisa\b`,
				`\bvai ficar tudo bem\b`,
				`\bvocê consegue\b`,
				`\bentendo\b`,
				`\bque difícil\b`,
				`\bsinto muito\b`,
				`\bdeve ser difícil\b`,
			),
				bounded(`estou com você`),
				bounded(`acredito em você`),
				bounded(`imagino como você`),
			),
		},
		model.FamilyFuturePlanning: {
			Family: model.FamilyFuturePlanning,
			Kind:   model.CategoryPositive,
			Weight: 3,
			Patterns: append(compile(
				`\bvamos\s+(?:fazer|planejar|marcar)\b`,
				`\bnosso\s+(?:plano|projeto|futuro)\b`,
				`\bquando a gente\b`,
				`\bno futuro\b`,
				`\bjuntos\b`,
				`\bnossa\s+(?:casa|família|vida)\b`,
			),
				bounded(`sonho\s+(?:nosso|com você)`),
				bounded(`quero\s+(?:envelhecer|ficar|estar)\s+com você`),
			),
		},
		model.FamilyActiveListening: {
			Family: model.FamilyActiveListening,
			Kind:   model.CategoryPositive,
			Weight: 4,
			Patterns: append(compile(
				`\bcomo foi\b`,
				`\bme conta\b`,
				`\bconte mais\b`,
				`\be aí\?`,
				`\bo que aconteceu\b`,
				`\bcomo você está\b`,
				`\btudo bem\?\s*$`,
				`\bquer conversar\b`,
				`\bestou ouvindo\b`,
			),
				bounded(`sério\?\s+(?:me conta|e aí)`),
			),
		},
		model.FamilyDisclosure: {
			Family: model.FamilyDisclosure,
			Kind:   model.CategoryPositive,
			Weight: 4,
			Patterns: compile(
				`\beu sinto\b`,
				`\bestou com medo\b`,
				`\btenho medo\b`,
				`\bestou preocupad[oa]\b`,
				`\bme sinto\b`,
				`\bestou ansios[oa]\b`,
				`\bestou triste\b`,
				`\bestou feliz\b`,
				`\bpreciso te contar\b`,
				`\bnunca contei\b`,
				`\bpra ser honest[oa]\b`,
				`\bna verdade\b.*(?:sinto|penso|acho)\b`,
			),
		},
		model.FamilyUnderstanding: {
			Family: model.FamilyUnderstanding,
			Kind:   model.CategoryPositive,
			Weight: 3,
			Patterns: append(compile(
				`\bfaz sentido\b`,
				`\bte entendo\b`,
				`\bvocê está cert[oa]\b`,
				`\bconcordo\b`,
				`\btem razão\b`,
				`\bisso é válido\b`,
				`\bnormal sentir\b`,
			),
				bounded(`entendo você`),
				bounded(`é compreensível`),
			),
		},
		model.FamilyAssurance: {
			Family: model.FamilyAssurance,
			Kind:   model.CategoryPositive,
			Weight: 4,
			Patterns: append(compile(
				`\bsempre vou\b`,
				`\bnunca vou te deixar\b`,
				`\bpode contar comigo\b`,
				`\bvou te apoiar\b`,
				`\bsomos um time\b`,
				`\bjuntos nisso\b`,
				`\bpra sempre\b`,
				`\bnão vou desistir\b`,
			),
				bounded(`estou aqui pra você`),
			),
		},
	}

	return &Registry{entries: entries}
}

// Entry returns the registry entry for a family, or nil if the family has no
// regex backing (derived families like dismissive_response).
func (r *Registry) Entry(family model.PatternFamily) *Entry {
	return r.entries[family]
}

// Emotional content markers used by the responsiveness analyzer.
var EmotionalMarkers = append(compile(
	`\bestou\s+(?:triste|feliz|ansios[oa]|preocupad[oa]|nervos[oa]|com medo)\b`,
	`\bme sinto\b`,
	`\bsinto\s+(?:falta|saudade|medo|raiva)\b`,
	`\bestou\s+(?:chorando|muito|tão)\b`,
	`\bnão aguento\b`,
	`\bestou mal\b`,
	`\bdia difícil\b`,
	`😢`,
	`😭`,
	`😔`,
	`😞`,
),
	bounded(`preciso\s+(?:de você|conversar|desabafar)`),
)

// Dismissive whole-message responses. Matched against the full trimmed text.
var DismissivePatterns = compile(
	`^ok$`,
	`^tá$`,
	`^hm+$`,
	`^ah$`,
	`^entendi$`,
	`^sei$`,
	`^blz$`,
)

// Task vocabulary for the partnership equity scorers. Matched as lowercase
// substrings, not word-bounded regexes.
var (
	// TaskActionVerbs marks a message as task-related for contribution
	// balance.
	TaskActionVerbs = []string{
		"pagar", "fazer", "comprar", "ligar", "marcar", "resolver",
		"buscar", "levar", "enviar", "agendar", "confirmar", "cuidar",
	}

	// CoordinationTaskWords marks a task mention for the coordination
	// completion rate.
	CoordinationTaskWords = []string{
		"pagar", "fazer", "comprar", "ligar", "marcar", "resolver",
	}

	// CompletionMarkers marks a task as done.
	CompletionMarkers = []string{
		"feito", "pago", "pronto", "resolvido", "ok feito",
		"já fiz", "combinado", "confirmado",
	}
)
