// Package ui renders the assistant screen as a Bubble Tea program
package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/phildougherty/watsonassist/internal/assistant"
)

// Options configure the screen
type Options struct {
	Target        assistant.Language
	ToastDuration time.Duration
	Logger        logr.Logger
}

// Model is the Bubble Tea model of the assistant screen
type Model struct {
	ctx        context.Context
	controller *assistant.Controller
	screen     *assistant.Screen
	logger     logr.Logger

	input      textinput.Model
	pathPrompt textinput.Model
	prompting  bool
	showHelp   bool
	help       string

	recognition <-chan assistant.RecognitionEvent

	status        string
	toastDuration time.Duration
	width         int
	height        int
}

// New creates the model. ctx bounds every background call.
func New(ctx context.Context, controller *assistant.Controller, opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Type or say something in English"
	input.Prompt = "› "
	input.CharLimit = 2000
	input.Focus()

	path := textinput.New()
	path.Placeholder = "/path/to/photo.jpg"
	path.Prompt = "Image: "

	toast := opts.ToastDuration
	if toast <= 0 {
		toast = 2 * time.Second
	}

	return &Model{
		ctx:           ctx,
		controller:    controller,
		screen:        assistant.NewScreen(opts.Target),
		logger:        opts.Logger.WithName("ui"),
		input:         input,
		pathPrompt:    path,
		toastDuration: toast,
		width:         80,
	}
}

// Screen exposes the current screen state
func (m *Model) Screen() *assistant.Screen {
	return m.screen
}

// Init starts the cursor blink
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		m.pathPrompt.Width = max(msg.Width-12, 10)
		m.help = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case translatedMsg:
		m.status = ""
		m.screen.SetTranslation(msg.text)
		return m, nil

	case spokenMsg:
		m.status = ""
		return m, nil

	case listenStartedMsg:
		m.recognition = msg.events
		return m, waitForRecognition(msg.events)

	case listenFailedMsg:
		m.screen.EndListening()
		m.status = ""
		return m.showError(msg.err)

	case recognitionMsg:
		return m.handleRecognition(msg.event)

	case recognitionClosedMsg:
		m.recognition = nil
		m.screen.EndListening()
		if m.status == statusListening {
			m.status = ""
		}
		return m, nil

	case imageMsg:
		m.screen.SetImage(msg.image)
		if msg.detect {
			m.status = "Detecting faces..."
			return m, detectCmd(m.ctx, m.controller, msg.image)
		}
		m.status = ""
		return m, nil

	case facesMsg:
		m.status = ""
		m.screen.ShowFaces(msg.faces)
		if msg.faces.Count == 0 {
			m.status = "No faces found"
		}
		return m, nil

	case errMsg:
		m.status = ""
		return m.showError(msg.err)

	case toastExpiredMsg:
		m.screen.ClearToast(msg.seq)
		return m, nil
	}

	return m, nil
}

const statusListening = "Listening..."

func (m *Model) handleRecognition(ev assistant.RecognitionEvent) (tea.Model, tea.Cmd) {
	events := m.pendingEvents()
	switch ev.Type {
	case assistant.EventConnected:
		m.status = statusListening
	case assistant.EventTranscription:
		captureSelfie := m.screen.ApplyTranscript(ev.Text)
		m.input.SetValue(ev.Text)
		m.input.CursorEnd()
		if captureSelfie {
			m.logger.Info("Selfie requested by voice")
			m.status = "Taking a selfie..."
			return m, tea.Batch(captureCmd(m.ctx, m.controller), events)
		}
	case assistant.EventError:
		m.screen.EndListening()
		model, toast := m.showError(ev.Err)
		return model, tea.Batch(toast, events)
	case assistant.EventDisconnected:
		m.screen.EndListening()
		if m.status == statusListening {
			m.status = ""
		}
	}
	return m, events
}

// pendingEvents re-arms the recognition reader while a session is open
func (m *Model) pendingEvents() tea.Cmd {
	if m.recognition == nil {
		return nil
	}
	return waitForRecognition(m.recognition)
}

func (m *Model) showError(err error) (tea.Model, tea.Cmd) {
	if err == nil || errors.Is(err, context.Canceled) {
		return m, nil
	}
	m.logger.Error(err, "Operation failed")
	seq := m.screen.ShowError(err)
	return m, toastExpiry(seq, m.toastDuration)
}
