package ui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Watson Assistant

Type English text, or press **Ctrl+R** and speak. Saying *"take a selfie"*
takes a photo and estimates the age and gender of the first face.

| Key | Action |
|---|---|
| Enter | Translate the text into the selected language |
| Ctrl+R | Listen on the microphone until you stop speaking |
| Ctrl+P | Speak the translation |
| Ctrl+T | Take a photo and detect faces |
| Ctrl+O | Load an image file |
| Tab / Shift+Tab | Change the target language |
| F1 | Toggle this help |
| Esc / Ctrl+C | Quit |

Translate is available once there is text, and Play once there is a translation.
`

// helpView renders the help screen, caching it until the window is resized
func (m *Model) helpView() string {
	if m.help == "" {
		m.help = renderMarkdown(helpMarkdown, m.width)
	}
	return m.help
}

func renderMarkdown(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
