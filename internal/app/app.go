package app

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/phildougherty/watsonassist/internal/assistant"
	"github.com/phildougherty/watsonassist/internal/audio"
	"github.com/phildougherty/watsonassist/internal/capture"
	"github.com/phildougherty/watsonassist/internal/config"
	"github.com/phildougherty/watsonassist/internal/watson"
	"github.com/phildougherty/watsonassist/internal/watson/languagetranslation"
	"github.com/phildougherty/watsonassist/internal/watson/speechtotext"
	"github.com/phildougherty/watsonassist/internal/watson/texttospeech"
	"github.com/phildougherty/watsonassist/internal/watson/visualrecognition"
)

// App represents the main application state
type App struct {
	Config      *config.Config
	Target      assistant.Language
	Recognizer  *speechtotext.Service
	Synthesizer *texttospeech.Service
	Translator  *languagetranslation.Service
	Faces       *visualrecognition.Service
	Microphone  audio.Opener
	Player      *audio.Player
	Camera      *capture.Camera
	Gallery     capture.Gallery
	Controller  *assistant.Controller
	Logger      logr.Logger
}

// New creates a new App instance with all necessary components
func New(cfg *config.Config, logger logr.Logger) (*App, error) {
	target, err := assistant.ParseLanguage(cfg.TargetLanguage)
	if err != nil {
		return nil, fmt.Errorf("invalid target_language: %w", err)
	}

	timeout := cfg.Timeouts.GetRequestTimeout()
	newClient := func(service string, sc config.ServiceConfig, auth watson.AuthScheme) (*watson.Client, error) {
		return watson.NewClient(watson.Config{
			Service:  service,
			Endpoint: sc.Endpoint,
			Credentials: watson.Credentials{
				Username: sc.Username,
				Password: sc.Password,
				APIKey:   sc.APIKey,
			},
			Auth:    auth,
			Timeout: timeout,
		}, logger)
	}

	sttClient, err := newClient(watson.ServiceSpeechToText, cfg.SpeechToText, watson.BasicAuth)
	if err != nil {
		return nil, err
	}
	ttsClient, err := newClient(watson.ServiceTextToSpeech, cfg.TextToSpeech, watson.BasicAuth)
	if err != nil {
		return nil, err
	}
	ltClient, err := newClient(watson.ServiceLanguageTranslation, cfg.LanguageTranslation, watson.BasicAuth)
	if err != nil {
		return nil, err
	}
	vrClient, err := newClient(watson.ServiceVisualRecognition, cfg.VisualRecognition, watson.APIKeyQuery)
	if err != nil {
		return nil, err
	}

	audioCfg := audio.Config{
		SampleRate:      cfg.Audio.SampleRate,
		FramesPerBuffer: cfg.Audio.FramesPerBuffer,
	}

	a := &App{
		Config:      cfg,
		Target:      target,
		Recognizer:  speechtotext.New(sttClient, cfg.Timeouts.GetConnectTimeout()),
		Synthesizer: texttospeech.New(ttsClient, cfg.Synthesis.Accept),
		Translator:  languagetranslation.New(ltClient),
		Faces:       visualrecognition.New(vrClient),
		Microphone:  audio.Opener{Config: audioCfg},
		Player:      audio.NewPlayer(audioCfg, logger),
		Camera:      capture.NewCamera(cfg.Camera.Command, cfg.Camera.Dir, logger),
		Logger:      logger,
	}

	a.Controller = assistant.NewController(assistant.Dependencies{
		Recognizer:   a.Recognizer,
		Synthesizer:  a.Synthesizer,
		Translator:   a.Translator,
		FaceDetector: a.Faces,
		Microphone:   a.Microphone,
		Player:       a.Player,
		Camera:       a.Camera,
		Gallery:      a.Gallery,
	}, assistant.Options{
		Voice:             texttospeech.Voice(cfg.Synthesis.Voice),
		Model:             cfg.Recognition.Model,
		Continuous:        cfg.Recognition.Continuous,
		InterimResults:    cfg.Recognition.InterimResults,
		InactivityTimeout: cfg.Recognition.InactivityTimeout,
	}, logger)

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		logger.Info("Some service credentials are not configured", "missing", missing)
	}
	return a, nil
}
