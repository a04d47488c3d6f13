package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/phildougherty/watsonassist/internal/audio"
	"github.com/phildougherty/watsonassist/internal/capture"
	"github.com/phildougherty/watsonassist/internal/watson/languagetranslation"
	"github.com/phildougherty/watsonassist/internal/watson/speechtotext"
	"github.com/phildougherty/watsonassist/internal/watson/texttospeech"
	"github.com/phildougherty/watsonassist/internal/watson/visualrecognition"
)

// Recognizer streams audio to a speech recognition service
type Recognizer interface {
	Recognize(ctx context.Context, audio io.Reader, opts speechtotext.RecognizeOptions, cb speechtotext.RecognizeCallback) error
}

// Synthesizer turns text into an audio stream
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice texttospeech.Voice) (io.ReadCloser, error)
}

// Translator translates text between two language codes
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (*languagetranslation.TranslationResult, error)
}

// FaceDetector finds faces in an image
type FaceDetector interface {
	DetectFaces(ctx context.Context, opts visualrecognition.DetectFacesOptions) (*visualrecognition.DetectedFaces, error)
}

// MicrophoneOpener opens a live audio input
type MicrophoneOpener interface {
	OpenMicrophone() (audio.Capture, error)
}

// Player plays an audio stream
type Player interface {
	Play(ctx context.Context, r io.Reader) error
}

// ImageSource takes a photo
type ImageSource interface {
	Capture(ctx context.Context) (capture.Image, error)
}

// ImagePicker loads an image chosen by the user
type ImagePicker interface {
	Pick(path string) (capture.Image, error)
}

// Dependencies are the collaborators of a Controller
type Dependencies struct {
	Recognizer   Recognizer
	Synthesizer  Synthesizer
	Translator   Translator
	FaceDetector FaceDetector
	Microphone   MicrophoneOpener
	Player       Player
	Camera       ImageSource
	Gallery      ImagePicker
}

// Options tune the remote calls
type Options struct {
	Voice             texttospeech.Voice
	Model             string
	Continuous        bool
	InterimResults    bool
	InactivityTimeout int
}

// DefaultOptions match the service defaults the assistant was designed around
func DefaultOptions() Options {
	return Options{
		Voice:             texttospeech.VoiceEnUSLisa,
		Model:             speechtotext.DefaultModel,
		Continuous:        true,
		InterimResults:    true,
		InactivityTimeout: 2000,
	}
}

// RecognitionEventType identifies a recognition session event
type RecognitionEventType int

const (
	EventConnected RecognitionEventType = iota
	EventTranscription
	EventError
	EventDisconnected
)

func (t RecognitionEventType) String() string {
	switch t {
	case EventConnected:
		return "connected"
	case EventTranscription:
		return "transcription"
	case EventError:
		return "error"
	case EventDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// RecognitionEvent is one callback of a recognition session
type RecognitionEvent struct {
	Type  RecognitionEventType
	Text  string
	Final bool
	Err   error
}

// Controller runs the assistant's flows. Each flow calls one remote service.
type Controller struct {
	deps   Dependencies
	opts   Options
	logger logr.Logger
}

// NewController creates a controller
func NewController(deps Dependencies, opts Options, logger logr.Logger) *Controller {
	return &Controller{deps: deps, opts: opts, logger: logger.WithName("controller")}
}

var errNotConfigured = errors.New("not configured")

// Translate translates English text into target and returns the first translation
func (c *Controller) Translate(ctx context.Context, text string, target Language) (string, error) {
	if c.deps.Translator == nil {
		return "", fmt.Errorf("translation: %w", errNotConfigured)
	}
	result, err := c.deps.Translator.Translate(ctx, text, SourceLanguage, target.Code())
	if err != nil {
		c.logger.Error(err, "Translation failed", "target", target.Code())
		return "", err
	}
	return result.FirstTranslation(), nil
}

// Speak synthesizes text and plays it
func (c *Controller) Speak(ctx context.Context, text string) error {
	if c.deps.Synthesizer == nil || c.deps.Player == nil {
		return fmt.Errorf("speech playback: %w", errNotConfigured)
	}
	stream, err := c.deps.Synthesizer.Synthesize(ctx, text, c.opts.Voice)
	if err != nil {
		c.logger.Error(err, "Synthesis failed", "voice", c.opts.Voice)
		return err
	}
	defer stream.Close()

	if err := c.deps.Player.Play(ctx, stream); err != nil {
		c.logger.Error(err, "Playback failed")
		return fmt.Errorf("failed to play speech: %w", err)
	}
	return nil
}

// Listen opens the microphone and starts a recognition session. Events are
// delivered on the returned channel, which is closed after EventDisconnected.
func (c *Controller) Listen(ctx context.Context) (<-chan RecognitionEvent, error) {
	if c.deps.Recognizer == nil || c.deps.Microphone == nil {
		return nil, fmt.Errorf("speech recognition: %w", errNotConfigured)
	}
	mic, err := c.deps.Microphone.OpenMicrophone()
	if err != nil {
		c.logger.Error(err, "Failed to open microphone")
		return nil, err
	}

	events := make(chan RecognitionEvent, 16)
	opts := speechtotext.RecognizeOptions{
		ContentType:       mic.ContentType(),
		Model:             c.opts.Model,
		Continuous:        c.opts.Continuous,
		InterimResults:    c.opts.InterimResults,
		InactivityTimeout: c.opts.InactivityTimeout,
	}

	go func() {
		defer close(events)
		defer mic.Close()
		sink := &eventSink{ctx: ctx, events: events}
		if err := c.deps.Recognizer.Recognize(ctx, mic, opts, sink); err != nil {
			c.logger.Error(err, "Recognition failed")
		}
	}()
	return events, nil
}

// CaptureSelfie takes a photo with the camera
func (c *Controller) CaptureSelfie(ctx context.Context) (capture.Image, error) {
	if c.deps.Camera == nil {
		return capture.Image{}, fmt.Errorf("camera: %w", errNotConfigured)
	}
	img, err := c.deps.Camera.Capture(ctx)
	if err != nil {
		c.logger.Error(err, "Camera capture failed")
		return capture.Image{}, err
	}
	return img, nil
}

// DetectFaces sends the image to face detection
func (c *Controller) DetectFaces(ctx context.Context, img capture.Image) (Faces, error) {
	if c.deps.FaceDetector == nil {
		return Faces{}, fmt.Errorf("face detection: %w", errNotConfigured)
	}
	result, err := c.deps.FaceDetector.DetectFaces(ctx, visualrecognition.DetectFacesOptions{ImagesFile: img.Path})
	if err != nil {
		c.logger.Error(err, "Face detection failed", "image", img.Path)
		return Faces{}, err
	}
	return FacesFrom(result), nil
}

// PickImage loads an image chosen from the gallery
func (c *Controller) PickImage(path string) (capture.Image, error) {
	if c.deps.Gallery == nil {
		return capture.Image{}, fmt.Errorf("gallery: %w", errNotConfigured)
	}
	return c.deps.Gallery.Pick(path)
}

// eventSink adapts recognition callbacks onto a channel
type eventSink struct {
	ctx    context.Context
	events chan<- RecognitionEvent
}

func (s *eventSink) send(ev RecognitionEvent) {
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

func (s *eventSink) OnConnected() {
	s.send(RecognitionEvent{Type: EventConnected})
}

func (s *eventSink) OnTranscription(results *speechtotext.SpeechResults) {
	s.send(RecognitionEvent{Type: EventTranscription, Text: results.FirstTranscript(), Final: results.IsFinal()})
}

func (s *eventSink) OnError(err error) {
	s.send(RecognitionEvent{Type: EventError, Err: err})
}

func (s *eventSink) OnDisconnected() {
	s.send(RecognitionEvent{Type: EventDisconnected})
}
