package claude

import "fmt"

// buildDetectPrompt asks for ranked language candidates of a query.
func buildDetectPrompt(text string, maxN int) string {
	return fmt.Sprintf(`You are a language identification engine for a German dictionary.

Identify which languages the input "%s" could be a word of. Consider real dictionary words only, not names or codes.

Output ONLY a valid JSON array matching this exact schema, ranked by confidence, at most %d elements:
[
  {"code": "<ISO 639-1 code>", "name": "<English language name>", "confidence": <0.0-1.0>}
]

Rules:
- Use lowercase ISO 639-1 codes (de, en, fr, ru, ...)
- confidence reflects how plausible the input is as a word of that language
- Include German ("de") whenever the input could be a German word or inflected form
- Output ONLY the JSON array, no markdown, no explanations`, text, maxN)
}

// buildTranslatePrompt asks for German translations of a word in one known
// source language. The reinforced variant is used for the single retry after
// a round whose candidates were all rejected as non-German.
func buildTranslatePrompt(text, sourceLang string, reinforced bool) string {
	prompt := fmt.Sprintf(`You are a professional dictionary translator into German.

Translate the %s word "%s" into German.

Output ONLY a valid JSON object matching this exact schema:
{
  "translations": [
    {"german_word": "<German word>", "context": "<short disambiguating gloss in English>", "pos": "<NOUN|VERB|ADJECTIVE|ADVERB|...>"}
  ],
  "is_ambiguous": <true if the source word has clearly distinct senses>
}

Rules:
- Give 1-3 distinct German translations, most common first
- german_word must be a single German dictionary word in its base form, nouns capitalized
- Never return English words, brand names, or loanwords written identically to the source
- Output ONLY the JSON, no markdown, no explanations`, sourceLang, text)

	if reinforced {
		prompt += `

IMPORTANT: your previous answer contained words that are not German. Every german_word MUST be a genuine German lexeme: prefer words with umlauts or typical German suffixes where they exist, and never echo the source word back.`
	}
	return prompt
}

// buildAnalyzePrompt asks for a verdict on a single candidate German word.
func buildAnalyzePrompt(text string) string {
	return fmt.Sprintf(`You are a German lexicographer.

Decide whether "%s" is a real German word (possibly a misspelling of one).

If it is a German word or an obvious misspelling of one, output ONLY:
{
  "found": true,
  "lemma": "<base form, nouns capitalized>",
  "pos": "<NOUN|VERB|ADJECTIVE|ADVERB|PRONOUN|PREPOSITION|CONJUNCTION|INTERJECTION|PHRASE|OTHER>",
  "translations": ["<English translation 1>", "<English translation 2>"],
  "example": "<one natural German example sentence>",
  "corrected_from": "<the misspelled input, or empty string if the input was correct>"
}

If it is not German at all, output ONLY:
{
  "found": false,
  "suggestions": [
    {"word": "<related German word>", "pos": "<POS>", "meaning": "<short English gloss>"}
  ]
}

Rules:
- Treat close misspellings (one or two letters off) as found with corrected_from set
- Give 2-4 suggestions for not-found inputs, similar-sounding or related German words
- Output ONLY the JSON, no markdown, no explanations`, text)
}
