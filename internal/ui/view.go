package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phildougherty/watsonassist/internal/assistant"
)

// View renders the screen
func (m *Model) View() string {
	if m.showHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Watson Assistant"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Text"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Translate to  "))
	radios := make([]string, 0, len(assistant.Languages))
	for _, lang := range assistant.Languages {
		radios = append(radios, radio(lang.String(), lang == m.screen.Target))
	}
	b.WriteString(strings.Join(radios, "  "))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		button("Translate", "⏎", m.screen.TranslateEnabled), " ",
		button("Mic", "^R", m.screen.MicEnabled), " ",
		button("Play", "^P", m.screen.PlayEnabled), " ",
		button("Camera", "^T", true), " ",
		button("Gallery", "^O", true),
	))
	b.WriteString("\n\n")

	translated := m.screen.TranslatedText
	if translated == "" {
		translated = mutedStyle.Render("Translation appears here")
	} else {
		translated = valueStyle.Render(translated)
	}
	width := max(m.width-4, 20)
	b.WriteString(panelStyle.Width(width).Render(translated))
	b.WriteString("\n\n")

	b.WriteString(m.facesView())
	b.WriteString("\n")

	if m.prompting {
		b.WriteString("\n")
		b.WriteString(m.pathPrompt.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.screen.Toast != "" {
		b.WriteString(toastStyle.Render(m.screen.Toast))
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter translate • ^R mic • ^P play • ^T camera • ^O gallery • tab language • F1 help • esc quit"))
	return b.String()
}

func (m *Model) facesView() string {
	image := mutedStyle.Render("no image")
	if m.screen.Image != nil {
		image = valueStyle.Render(m.screen.Image.String())
	}
	lines := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("Image: "), image),
		fmt.Sprintf("%s %s", labelStyle.Render("Age:   "), orDash(m.screen.AgeMin)+" - "+orDash(m.screen.AgeMax)),
		fmt.Sprintf("%s %s", labelStyle.Render("Gender:"), orDash(m.screen.Gender)),
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return mutedStyle.Render("-")
	}
	return valueStyle.Render(s)
}
