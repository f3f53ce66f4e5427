// Package wordlist parses tab-separated lexicon wordlists used for offline
// seeding. One line per lemma:
//
//	lemma <TAB> pos <TAB> translations <TAB> [example] <TAB> [forms]
//
// translations are semicolon-separated English glosses. forms are
// semicolon-separated "surface|feature=value" pairs. Empty lines and lines
// starting with '#' are skipped.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
)

// Record is one parsed wordlist line.
type Record struct {
	Lemma        string
	PartOfSpeech domain.PartOfSpeech
	Translations []string
	Example      string
	Forms        []domain.InflectedForm
}

// ParseError reports a bad line without aborting the whole file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse reads a whole wordlist. Malformed lines are collected as ParseErrors
// and do not stop parsing.
func Parse(r io.Reader) ([]Record, []*ParseError, error) {
	var records []Record
	var errs []*ParseError

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := parseLine(line)
		if err != nil {
			errs = append(errs, &ParseError{Line: lineNo, Msg: err.Error()})
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read wordlist: %w", err)
	}

	return records, errs, nil
}

func parseLine(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return Record{}, fmt.Errorf("expected at least 3 tab-separated fields, got %d", len(fields))
	}

	lemma := strings.TrimSpace(fields[0])
	if lemma == "" {
		return Record{}, fmt.Errorf("empty lemma")
	}

	pos := domain.ParsePartOfSpeech(fields[1])

	var translations []string
	for _, t := range strings.Split(fields[2], ";") {
		if t = strings.TrimSpace(t); t != "" {
			translations = append(translations, t)
		}
	}
	if len(translations) == 0 {
		return Record{}, fmt.Errorf("lemma %q has no translations", lemma)
	}

	rec := Record{
		Lemma:        lemma,
		PartOfSpeech: pos,
		Translations: translations,
	}

	if len(fields) > 3 {
		rec.Example = strings.TrimSpace(fields[3])
	}

	if len(fields) > 4 && strings.TrimSpace(fields[4]) != "" {
		forms, err := parseForms(fields[4])
		if err != nil {
			return Record{}, fmt.Errorf("lemma %q: %w", lemma, err)
		}
		rec.Forms = forms
	}

	return rec, nil
}

// parseForms parses "Äpfel|number=plural;Apfels|case=genitiv".
func parseForms(s string) ([]domain.InflectedForm, error) {
	var forms []domain.InflectedForm
	for i, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		surface, feature, _ := strings.Cut(part, "|")
		surface = strings.TrimSpace(surface)
		if surface == "" {
			return nil, fmt.Errorf("form %d has no surface text", i+1)
		}

		form := domain.InflectedForm{Form: surface, Position: i}
		if feature != "" {
			key, value, ok := strings.Cut(feature, "=")
			if !ok {
				return nil, fmt.Errorf("form %q: feature %q is not key=value", surface, feature)
			}
			form.FeatureKey = strings.TrimSpace(key)
			form.FeatureValue = strings.TrimSpace(value)
		}
		forms = append(forms, form)
	}
	return forms, nil
}
