package oracle

// Prompts grounded in validated relationship research. Each demands a strict
// JSON reply so providers can share one parsing path.

const contemptPrompt = `You are an expert relationship therapist trained in Gottman's research.

Analyze this message for contempt - the most destructive relationship pattern.

Message: "%s"
Context (previous messages): "%s"

Contempt indicators include:
- Sarcasm or mockery
- Eye-rolling language or dismissive tone
- Superiority or disrespect
- Dismissiveness
- Character attacks disguised as humor

IMPORTANT: Be careful to distinguish:
- Genuine congratulations ("Parabéns pelo seu aniversário!") from sarcastic ones ("Parabéns, você só levou 3 horas")
- Playful teasing between close partners from hostile contempt
- Context-dependent emoji use (🙄 can be playful or contemptuous)

Respond with ONLY valid JSON (no markdown, no explanation outside JSON):
{
  "is_contempt": boolean,
  "confidence": 0.0-1.0,
  "type": "sarcasm" | "mockery" | "dismissive" | "superiority" | "none",
  "reasoning": "brief explanation in Portuguese",
  "severity": "mild" | "moderate" | "severe"
}`

const responseQualityPrompt = `You are an expert in interpersonal communication and attachment theory.

Evaluate this response to an emotional message.

Original message: "%s"
Response: "%s"

Based on Reis & Shaver's Interpersonal Process Model, assess:
1. Understanding - Does the responder grasp the emotional content?
2. Validation - Is the emotion acknowledged as legitimate?
3. Caring - Is support or concern expressed?

IMPORTANT: Quality is not about length. A short "Entendo, quer conversar?" can be high quality.
A long response like "Ah tá, e o que você quer que eu faça?" is dismissive despite length.

Respond with ONLY valid JSON (no markdown, no explanation outside JSON):
{
  "understanding_score": 0-100,
  "validation_score": 0-100,
  "caring_score": 0-100,
  "overall_quality": 0-100,
  "is_dismissive": boolean,
  "reasoning": "brief explanation in Portuguese"
}`

const repairPrompt = `You are an expert relationship therapist assessing repair attempts.

Analyze this potential repair attempt for authenticity.

Message: "%s"
Conflict context: "%s"

A genuine repair attempt:
- Takes responsibility (even partial)
- Shows remorse without defensiveness
- Does NOT shift blame to partner

A fake repair masks blame:
- "Você tem razão, MAS você também..." = blame-shifting
- "Desculpa, mas se você não tivesse..." = conditional apology
- "Ok, eu errei, feliz agora?" = sarcastic pseudo-repair

Respond with ONLY valid JSON (no markdown, no explanation outside JSON):
{
  "is_genuine": boolean,
  "confidence": 0.0-1.0,
  "responsibility_level": "none" | "partial" | "full",
  "has_blame_shifting": boolean,
  "reasoning": "brief explanation in Portuguese"
}`

const vulnerabilityPrompt = `You are an expert in intimacy and emotional disclosure.

Assess the depth of emotional vulnerability in this message.

Message: "%s"
Context: "%s"

Vulnerability levels:
- Surface: General statements ("estou cansado")
- Moderate: Specific emotions ("estou frustrado com o trabalho")
- Deep: Core fears, hopes, insecurities ("tenho medo de não ser suficiente")

Also assess if the disclosure invites reciprocity from partner.

Respond with ONLY valid JSON (no markdown, no explanation outside JSON):
{
  "depth_level": "surface" | "moderate" | "deep",
  "depth_score": 0-100,
  "invites_reciprocity": boolean,
  "topics": ["list", "of", "emotional", "topics"],
  "reasoning": "brief explanation in Portuguese"
}`

const sharedMeaningPrompt = `You are an expert in relationship commitment and shared goals.

Assess the shared meaning and future planning in this message.

Message: "%s"
Context: "%s"

Commitment levels:
- Casual: "Vamos jantar" (immediate, low commitment)
- Moderate: "Vamos viajar nas férias" (near future, moderate)
- Strong: "Quero construir nossa vida juntos" (long-term, high)

Also assess if there's evidence of aligned goals and values.

Respond with ONLY valid JSON (no markdown, no explanation outside JSON):
{
  "commitment_level": "casual" | "moderate" | "strong",
  "commitment_score": 0-100,
  "timeframe": "immediate" | "near_future" | "long_term",
  "goal_alignment": boolean,
  "reasoning": "brief explanation in Portuguese"
}`
