package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phildougherty/watsonassist/internal/assistant"
	"github.com/phildougherty/watsonassist/internal/capture"
)

// Message types for the Bubble Tea program. Every background flow reports
// back through exactly one of these.
type translatedMsg struct {
	text string
}

type spokenMsg struct{}

type listenStartedMsg struct {
	events <-chan assistant.RecognitionEvent
}

type listenFailedMsg struct {
	err error
}

type recognitionMsg struct {
	event assistant.RecognitionEvent
}

type recognitionClosedMsg struct{}

type imageMsg struct {
	image  capture.Image
	detect bool
}

type facesMsg struct {
	faces assistant.Faces
}

type errMsg struct {
	err error
}

type toastExpiredMsg struct {
	seq int
}

func translateCmd(ctx context.Context, c *assistant.Controller, text string, target assistant.Language) tea.Cmd {
	return func() tea.Msg {
		translated, err := c.Translate(ctx, text, target)
		if err != nil {
			return errMsg{err}
		}
		return translatedMsg{translated}
	}
}

func speakCmd(ctx context.Context, c *assistant.Controller, text string) tea.Cmd {
	return func() tea.Msg {
		if err := c.Speak(ctx, text); err != nil {
			return errMsg{err}
		}
		return spokenMsg{}
	}
}

func listenCmd(ctx context.Context, c *assistant.Controller) tea.Cmd {
	return func() tea.Msg {
		events, err := c.Listen(ctx)
		if err != nil {
			return listenFailedMsg{err}
		}
		return listenStartedMsg{events}
	}
}

// waitForRecognition reads the next session event. The handler re-arms it
// until the channel closes.
func waitForRecognition(events <-chan assistant.RecognitionEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return recognitionClosedMsg{}
		}
		return recognitionMsg{ev}
	}
}

func captureCmd(ctx context.Context, c *assistant.Controller) tea.Cmd {
	return func() tea.Msg {
		img, err := c.CaptureSelfie(ctx)
		if err != nil {
			return errMsg{err}
		}
		return imageMsg{image: img, detect: true}
	}
}

func detectCmd(ctx context.Context, c *assistant.Controller, img capture.Image) tea.Cmd {
	return func() tea.Msg {
		faces, err := c.DetectFaces(ctx, img)
		if err != nil {
			return errMsg{err}
		}
		return facesMsg{faces}
	}
}

func pickCmd(c *assistant.Controller, path string) tea.Cmd {
	return func() tea.Msg {
		img, err := c.PickImage(path)
		if err != nil {
			return errMsg{err}
		}
		return imageMsg{image: img}
	}
}

func toastExpiry(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq}
	})
}
