// Package languagetranslation is a client for the language translation service
package languagetranslation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/phildougherty/watsonassist/internal/watson"
)

// TranslateRequest is the body of POST /v2/translate
type TranslateRequest struct {
	Text   []string `json:"text"`
	Source string   `json:"source"`
	Target string   `json:"target"`
}

// Translation is one translated segment
type Translation struct {
	Translation string `json:"translation"`
}

// TranslationResult is the response of POST /v2/translate
type TranslationResult struct {
	Translations   []Translation `json:"translations"`
	WordCount      int           `json:"word_count"`
	CharacterCount int           `json:"character_count"`
}

// FirstTranslation returns the first translated segment, or "" when there is none
func (r *TranslationResult) FirstTranslation() string {
	if r == nil || len(r.Translations) == 0 {
		return ""
	}
	return r.Translations[0].Translation
}

// Service translates text
type Service struct {
	client *watson.Client
}

// New creates a translation service on top of an authenticated client
func New(client *watson.Client) *Service {
	return &Service{client: client}
}

// Translate translates text from source to target, both given as language codes
func (s *Service) Translate(ctx context.Context, text, source, target string) (*TranslationResult, error) {
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("target language is required")
	}

	req, err := s.client.NewJSONRequest(ctx, http.MethodPost, "/v2/translate", nil, TranslateRequest{
		Text:   []string{text},
		Source: source,
		Target: target,
	})
	if err != nil {
		return nil, err
	}

	var result TranslationResult
	if err := s.client.DoJSON(req, &result); err != nil {
		return nil, err
	}

	s.client.Logger().V(1).Info("Translated text", "source", source, "target", target,
		"words", result.WordCount, "characters", result.CharacterCount)
	return &result, nil
}
