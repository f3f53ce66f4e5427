package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/service/resolver"
)

// resolverService is the part of the resolution facade the transport needs.
type resolverService interface {
	Resolve(ctx context.Context, query string, germanConfirmed bool) (*resolver.Outcome, error)
	ResolveWithSelection(ctx context.Context, originalQuery, selected, sourceLang string, entryID uuid.UUID) (*resolver.Outcome, error)
}

// ResolveHandler serves the resolution endpoints.
type ResolveHandler struct {
	log *slog.Logger
	svc resolverService
}

// NewResolveHandler creates a ResolveHandler.
func NewResolveHandler(logger *slog.Logger, svc resolverService) *ResolveHandler {
	return &ResolveHandler{
		log: logger.With("handler", "resolve"),
		svc: svc,
	}
}

// ---------------------------------------------------------------------------
// Wire types
// ---------------------------------------------------------------------------

type resolveRequest struct {
	Query           string `json:"query"`
	GermanConfirmed bool   `json:"german_confirmed"`
}

type selectionRequest struct {
	OriginalQuery string `json:"original_query"`
	Selected      string `json:"selected"`
	SourceLang    string `json:"source_lang"`
	// EntryID pins a pos-sense pick to one homograph. Optional.
	EntryID string `json:"entry_id,omitempty"`
}

type outcomeResponse struct {
	Kind        string               `json:"kind"`
	Scenario    string               `json:"scenario,omitempty"`
	Entry       *entryResponse       `json:"entry,omitempty"`
	ChoiceKind  string               `json:"choice_kind,omitempty"`
	Options     []optionResponse     `json:"options,omitempty"`
	Suggestions []suggestionResponse `json:"suggestions,omitempty"`
	Message     string               `json:"message,omitempty"`
}

type entryResponse struct {
	ID           string                `json:"id"`
	Lemma        string                `json:"lemma"`
	PartOfSpeech string                `json:"part_of_speech"`
	CEFRLevel    *string               `json:"cefr_level,omitempty"`
	Translations []translationResponse `json:"translations,omitempty"`
	Examples     []exampleResponse     `json:"examples,omitempty"`
	Forms        []formResponse        `json:"forms,omitempty"`
}

type translationResponse struct {
	LangCode string `json:"lang_code"`
	Text     string `json:"text"`
}

type exampleResponse struct {
	Sentence    string  `json:"sentence"`
	Translation *string `json:"translation,omitempty"`
}

type formResponse struct {
	Form         string `json:"form"`
	FeatureKey   string `json:"feature_key,omitempty"`
	FeatureValue string `json:"feature_value,omitempty"`
}

type optionResponse struct {
	Word         string `json:"word"`
	SourceLang   string `json:"source_lang,omitempty"`
	LanguageName string `json:"language_name,omitempty"`
	PartOfSpeech string `json:"part_of_speech,omitempty"`
	Meaning      string `json:"meaning,omitempty"`
	EntryID      string `json:"entry_id,omitempty"`
}

type suggestionResponse struct {
	Word    string  `json:"word"`
	POS     string  `json:"pos,omitempty"`
	Meaning string  `json:"meaning,omitempty"`
	Score   float64 `json:"score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// Resolve handles POST /v1/resolve.
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	out, err := h.svc.Resolve(r.Context(), req.Query, req.GermanConfirmed)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOutcomeResponse(out))
}

// Selection handles POST /v1/resolve/selection, the round-trip after a
// choice outcome.
func (h *ResolveHandler) Selection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	entryID := uuid.Nil
	if req.EntryID != "" {
		var err error
		if entryID, err = uuid.Parse(req.EntryID); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "entry_id is not a valid UUID"})
			return
		}
	}

	out, err := h.svc.ResolveWithSelection(r.Context(), req.OriginalQuery, req.Selected, req.SourceLang, entryID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOutcomeResponse(out))
}

func (h *ResolveHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	h.log.ErrorContext(r.Context(), "resolution failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func toOutcomeResponse(out *resolver.Outcome) outcomeResponse {
	resp := outcomeResponse{
		Kind:    string(out.Kind),
		Message: out.Message,
	}
	if out.Scenario != domain.ScenarioNone {
		resp.Scenario = out.Scenario.String()
	}

	if out.Entry != nil {
		resp.Entry = toEntryResponse(out.Entry)
	}

	if out.Kind == resolver.KindChoice {
		resp.ChoiceKind = out.ChoiceKind.String()
		for _, o := range out.Options {
			opt := optionResponse{
				Word:         o.Word,
				SourceLang:   o.SourceLang,
				LanguageName: o.LanguageName,
				PartOfSpeech: o.PartOfSpeech.String(),
				Meaning:      o.Meaning,
			}
			if o.EntryID != uuid.Nil {
				opt.EntryID = o.EntryID.String()
			}
			resp.Options = append(resp.Options, opt)
		}
	}

	for _, s := range out.Suggestions {
		resp.Suggestions = append(resp.Suggestions, suggestionResponse{
			Word:    s.Word,
			POS:     s.POS,
			Meaning: s.Meaning,
			Score:   s.Score,
		})
	}

	return resp
}

func toEntryResponse(e *domain.LexiconEntry) *entryResponse {
	resp := &entryResponse{
		ID:           e.ID.String(),
		Lemma:        e.Lemma,
		PartOfSpeech: e.PartOfSpeech.String(),
		CEFRLevel:    e.CEFRLevel,
	}
	for _, t := range e.Translations {
		resp.Translations = append(resp.Translations, translationResponse{LangCode: t.LangCode, Text: t.Text})
	}
	for _, ex := range e.Examples {
		resp.Examples = append(resp.Examples, exampleResponse{Sentence: ex.Sentence, Translation: ex.Translation})
	}
	for _, f := range e.Forms {
		resp.Forms = append(resp.Forms, formResponse{Form: f.Form, FeatureKey: f.FeatureKey, FeatureValue: f.FeatureValue})
	}
	return resp
}
