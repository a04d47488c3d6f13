// Package texttospeech is a client for the text-to-speech service
package texttospeech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/phildougherty/watsonassist/internal/watson"
)

// Voice names a synthesis voice
type Voice string

// Voices known to the service. Any other name is passed through unchanged.
const (
	VoiceEnUSLisa      Voice = "en-US_LisaVoice"
	VoiceEnUSAllison   Voice = "en-US_AllisonVoice"
	VoiceEnUSMichael   Voice = "en-US_MichaelVoice"
	VoiceEsESEnrique   Voice = "es-ES_EnriqueVoice"
	VoiceFrFRRenee     Voice = "fr-FR_ReneeVoice"
	VoiceItITFrancesca Voice = "it-IT_FrancescaVoice"
)

// DefaultAccept is the audio format requested when none is configured
const DefaultAccept = "audio/wav"

type synthesizeRequest struct {
	Text string `json:"text"`
}

// Service synthesizes speech
type Service struct {
	client *watson.Client
	accept string
}

// New creates a synthesis service. An empty accept selects audio/wav.
func New(client *watson.Client, accept string) *Service {
	if accept == "" {
		accept = DefaultAccept
	}
	return &Service{client: client, accept: accept}
}

// Synthesize returns the audio stream for text. The caller must close it.
func (s *Service) Synthesize(ctx context.Context, text string, voice Voice) (io.ReadCloser, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text to synthesize is empty")
	}
	if voice == "" {
		voice = VoiceEnUSLisa
	}

	query := url.Values{"voice": {string(voice)}}
	req, err := s.client.NewJSONRequest(ctx, http.MethodPost, "/v1/synthesize", query, synthesizeRequest{Text: text})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", s.accept)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	s.client.Logger().V(1).Info("Synthesis started", "voice", voice,
		"contentType", resp.Header.Get("Content-Type"), "characters", len(text))
	return resp.Body, nil
}
