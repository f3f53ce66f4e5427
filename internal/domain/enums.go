package domain

// PartOfSpeech represents the grammatical category of a lemma.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "NOUN"
	PartOfSpeechVerb         PartOfSpeech = "VERB"
	PartOfSpeechAdjective    PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb       PartOfSpeech = "ADVERB"
	PartOfSpeechPronoun      PartOfSpeech = "PRONOUN"
	PartOfSpeechPreposition  PartOfSpeech = "PREPOSITION"
	PartOfSpeechConjunction  PartOfSpeech = "CONJUNCTION"
	PartOfSpeechInterjection PartOfSpeech = "INTERJECTION"
	PartOfSpeechPhrase       PartOfSpeech = "PHRASE"
	PartOfSpeechOther        PartOfSpeech = "OTHER"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPronoun, PartOfSpeechPreposition, PartOfSpeechConjunction,
		PartOfSpeechInterjection, PartOfSpeechPhrase, PartOfSpeechOther:
		return true
	}
	return false
}

// ParsePartOfSpeech maps a free-form POS string (as returned by the Oracle
// or found in wordlists) to a PartOfSpeech, defaulting to PartOfSpeechOther.
func ParsePartOfSpeech(s string) PartOfSpeech {
	normalized := normalizePOS(s)

	// Common abbreviations.
	switch normalized {
	case "N", "SUBST":
		return PartOfSpeechNoun
	case "V", "VB":
		return PartOfSpeechVerb
	case "ADJ":
		return PartOfSpeechAdjective
	case "ADV":
		return PartOfSpeechAdverb
	case "PREP":
		return PartOfSpeechPreposition
	case "CONJ":
		return PartOfSpeechConjunction
	}

	switch PartOfSpeech(normalized) {
	case PartOfSpeechNoun:
		return PartOfSpeechNoun
	case PartOfSpeechVerb:
		return PartOfSpeechVerb
	case PartOfSpeechAdjective:
		return PartOfSpeechAdjective
	case PartOfSpeechAdverb:
		return PartOfSpeechAdverb
	case PartOfSpeechPronoun:
		return PartOfSpeechPronoun
	case PartOfSpeechPreposition:
		return PartOfSpeechPreposition
	case PartOfSpeechConjunction:
		return PartOfSpeechConjunction
	case PartOfSpeechInterjection:
		return PartOfSpeechInterjection
	case PartOfSpeechPhrase:
		return PartOfSpeechPhrase
	default:
		return PartOfSpeechOther
	}
}

func normalizePOS(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r-('a'-'A'))
		case r >= 'A' && r <= 'Z':
			out = append(out, r)
		}
	}
	return string(out)
}

// Scenario classifies the outcome of one disambiguation round over the
// filtered and capped language candidate set.
type Scenario string

const (
	// ScenarioNone means no candidate passed the confidence threshold.
	ScenarioNone Scenario = "NONE"
	// ScenarioA means exactly one non-German candidate and no German.
	ScenarioA Scenario = "A"
	// ScenarioB means two or three non-German candidates and no German.
	ScenarioB Scenario = "B"
	// ScenarioC means German plus at most one other candidate.
	ScenarioC Scenario = "C"
	// ScenarioD means German plus two or three other candidates.
	ScenarioD Scenario = "D"
)

func (s Scenario) String() string { return string(s) }

func (s Scenario) IsValid() bool {
	switch s {
	case ScenarioNone, ScenarioA, ScenarioB, ScenarioC, ScenarioD:
		return true
	}
	return false
}

// ChoiceKind identifies what the caller is being asked to choose between.
type ChoiceKind string

const (
	// ChoiceKindPOSSense selects among homograph lemmas sharing a surface form.
	ChoiceKindPOSSense ChoiceKind = "POS_SENSE"
	// ChoiceKindLanguage selects among detected source languages.
	ChoiceKindLanguage ChoiceKind = "LANGUAGE_SELECT"
	// ChoiceKindTranslation selects among German translation candidates.
	ChoiceKindTranslation ChoiceKind = "TRANSLATION_SELECT"
)

func (k ChoiceKind) String() string { return string(k) }

func (k ChoiceKind) IsValid() bool {
	switch k {
	case ChoiceKindPOSSense, ChoiceKindLanguage, ChoiceKindTranslation:
		return true
	}
	return false
}
