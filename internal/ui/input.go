package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress routes key presses. Keys of disabled actions are ignored.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		switch msg.String() {
		case "f1", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "f1":
		m.showHelp = true
		return m, nil
	case "enter":
		return m.handleTranslate()
	case "ctrl+r":
		return m.handleMic()
	case "ctrl+p":
		return m.handlePlay()
	case "ctrl+t":
		return m.handleCamera()
	case "ctrl+o":
		m.prompting = true
		m.pathPrompt.SetValue("")
		m.input.Blur()
		return m, m.pathPrompt.Focus()
	case "tab":
		m.screen.SelectLanguage(m.screen.Target.Next())
		return m, nil
	case "shift+tab":
		m.screen.SelectLanguage(m.screen.Target.Prev())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.screen.Input {
		m.screen.SetInput(value)
	}
	return m, cmd
}

func (m *Model) handleTranslate() (tea.Model, tea.Cmd) {
	if !m.screen.TranslateEnabled {
		return m, nil
	}
	m.status = "Translating to " + m.screen.Target.String() + "..."
	return m, translateCmd(m.ctx, m.controller, m.screen.Input, m.screen.Target)
}

func (m *Model) handleMic() (tea.Model, tea.Cmd) {
	if !m.screen.MicEnabled {
		return m, nil
	}
	m.screen.BeginListening()
	m.status = "Connecting..."
	return m, listenCmd(m.ctx, m.controller)
}

func (m *Model) handlePlay() (tea.Model, tea.Cmd) {
	if !m.screen.PlayEnabled {
		return m, nil
	}
	m.status = "Speaking..."
	return m, speakCmd(m.ctx, m.controller, m.screen.TranslatedText)
}

func (m *Model) handleCamera() (tea.Model, tea.Cmd) {
	m.status = "Taking a photo..."
	return m, captureCmd(m.ctx, m.controller)
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.pathPrompt.Value())
		m.closePrompt()
		if path == "" {
			return m, nil
		}
		m.status = "Loading image..."
		return m, pickCmd(m.controller, path)
	}

	var cmd tea.Cmd
	m.pathPrompt, cmd = m.pathPrompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.pathPrompt.Blur()
	m.input.Focus()
}
