package claude

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/oracle"
)

// Wire DTOs. The core never sees these; parsing maps them onto the port
// types and applies structural validation.

type detectedLangDTO struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type translationDTO struct {
	GermanWord string `json:"german_word"`
	Context    string `json:"context"`
	POS        string `json:"pos"`
}

type translateResponseDTO struct {
	Translations []translationDTO `json:"translations"`
	IsAmbiguous  bool             `json:"is_ambiguous"`
}

type suggestionDTO struct {
	Word    string `json:"word"`
	POS     string `json:"pos"`
	Meaning string `json:"meaning"`
}

type analyzeResponseDTO struct {
	Found         bool            `json:"found"`
	Lemma         string          `json:"lemma"`
	POS           string          `json:"pos"`
	Translations  []string        `json:"translations"`
	Example       string          `json:"example"`
	CorrectedFrom string          `json:"corrected_from"`
	Suggestions   []suggestionDTO `json:"suggestions"`
}

func parseDetectResponse(raw string) ([]oracle.DetectedLanguage, error) {
	jsonStr, err := extractJSON(raw, '[', ']')
	if err != nil {
		return nil, err
	}

	var dtos []detectedLangDTO
	if err := json.Unmarshal([]byte(jsonStr), &dtos); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOracleMalformed, err)
	}

	detected := make([]oracle.DetectedLanguage, 0, len(dtos))
	for _, d := range dtos {
		code := strings.ToLower(strings.TrimSpace(d.Code))
		if code == "" {
			continue
		}
		detected = append(detected, oracle.DetectedLanguage{
			Code:       code,
			Name:       strings.TrimSpace(d.Name),
			Confidence: clamp01(d.Confidence),
			IsGerman:   code == domain.GermanLangCode,
		})
	}
	return detected, nil
}

func parseTranslateResponse(raw string) (*oracle.TranslationResult, error) {
	jsonStr, err := extractJSON(raw, '{', '}')
	if err != nil {
		return nil, err
	}

	var dto translateResponseDTO
	if err := json.Unmarshal([]byte(jsonStr), &dto); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOracleMalformed, err)
	}

	result := &oracle.TranslationResult{IsAmbiguous: dto.IsAmbiguous}
	for _, t := range dto.Translations {
		word := strings.TrimSpace(t.GermanWord)
		if word == "" {
			continue
		}
		result.Translations = append(result.Translations, oracle.Translation{
			GermanWord:   word,
			Context:      strings.TrimSpace(t.Context),
			PartOfSpeech: strings.TrimSpace(t.POS),
		})
	}
	return result, nil
}

func parseAnalyzeResponse(raw string) (*oracle.WordAnalysis, error) {
	jsonStr, err := extractJSON(raw, '{', '}')
	if err != nil {
		return nil, err
	}

	var dto analyzeResponseDTO
	if err := json.Unmarshal([]byte(jsonStr), &dto); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOracleMalformed, err)
	}

	if dto.Found && strings.TrimSpace(dto.Lemma) == "" {
		return nil, fmt.Errorf("%w: found word without lemma", domain.ErrOracleMalformed)
	}

	analysis := &oracle.WordAnalysis{
		Found:         dto.Found,
		Lemma:         strings.TrimSpace(dto.Lemma),
		POS:           strings.TrimSpace(dto.POS),
		Example:       strings.TrimSpace(dto.Example),
		CorrectedFrom: strings.TrimSpace(dto.CorrectedFrom),
	}
	for _, tr := range dto.Translations {
		if tr = strings.TrimSpace(tr); tr != "" {
			analysis.Translations = append(analysis.Translations, tr)
		}
	}
	for _, s := range dto.Suggestions {
		if strings.TrimSpace(s.Word) == "" {
			continue
		}
		analysis.Suggestions = append(analysis.Suggestions, oracle.Suggestion{
			Word:    strings.TrimSpace(s.Word),
			POS:     strings.TrimSpace(s.POS),
			Meaning: strings.TrimSpace(s.Meaning),
		})
	}
	return analysis, nil
}

// extractJSON finds the first complete JSON payload between the given
// delimiters and verifies it parses.
func extractJSON(s string, open, shut byte) (string, error) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, shut)
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON payload in response", domain.ErrOracleMalformed)
	}
	jsonStr := s[start : end+1]
	if !json.Valid([]byte(jsonStr)) {
		return "", fmt.Errorf("%w: response is not valid JSON", domain.ErrOracleMalformed)
	}
	return jsonStr, nil
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
