// Package claude implements the language Oracle against the Anthropic API.
// Every call follows the same shape: build a prompt, request one message,
// extract the JSON payload from the response text, validate it structurally,
// and map it to the port types in internal/oracle.
package claude

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/config"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/oracle"
)

// Client is the Anthropic-backed language Oracle.
type Client struct {
	log       *slog.Logger
	api       anthropic.Client
	model     anthropic.Model
	maxTokens int64
	timeout   time.Duration
}

// New creates an Oracle client from config.
func New(logger *slog.Logger, cfg config.OracleConfig) *Client {
	return &Client{
		log:       logger.With("service", "oracle"),
		api:       anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     anthropic.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.RequestTimeout,
	}
}

// DetectLanguages returns up to maxN ranked language candidates for a text.
func (c *Client) DetectLanguages(ctx context.Context, text string, maxN int) ([]oracle.DetectedLanguage, error) {
	raw, err := c.complete(ctx, buildDetectPrompt(text, maxN))
	if err != nil {
		return nil, fmt.Errorf("detect languages: %w", err)
	}

	detected, err := parseDetectResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("detect languages: %w", err)
	}

	if len(detected) > maxN {
		detected = detected[:maxN]
	}
	return detected, nil
}

// TranslateToGerman returns German translation candidates for a word in one
// source language. The reinforced variant restates the German-only rules for
// a retry after every candidate of a plain call was rejected.
func (c *Client) TranslateToGerman(ctx context.Context, text, sourceLang string, reinforced bool) (*oracle.TranslationResult, error) {
	raw, err := c.complete(ctx, buildTranslatePrompt(text, sourceLang, reinforced))
	if err != nil {
		return nil, fmt.Errorf("translate to german: %w", err)
	}

	result, err := parseTranslateResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("translate to german: %w", err)
	}
	return result, nil
}

// AnalyzeWord asks the Oracle whether a text is a real German word and
// returns either a structured entry or suggestions.
func (c *Client) AnalyzeWord(ctx context.Context, text string) (*oracle.WordAnalysis, error) {
	raw, err := c.complete(ctx, buildAnalyzePrompt(text))
	if err != nil {
		return nil, fmt.Errorf("analyze word: %w", err)
	}

	analysis, err := parseAnalyzeResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("analyze word: %w", err)
	}
	return analysis, nil
}

// complete sends one prompt and returns the raw response text.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		c.log.WarnContext(ctx, "oracle call failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %s", domain.ErrOracleUnavailable, err)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("%w: empty response", domain.ErrOracleMalformed)
	}
	return msg.Content[0].Text, nil
}
