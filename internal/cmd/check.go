package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/phildougherty/watsonassist/internal/audio"
	"github.com/phildougherty/watsonassist/internal/config"
)

func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check credentials, audio support and camera tools",
		Long: `Report which service credentials are configured, whether the binary was
built with microphone support, which external audio players are installed
and whether the camera command can be found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return renderMarkdown(cmd.OutOrStdout(), checkReport(cfg))
		},
	}
	return cmd
}

func checkReport(cfg *config.Config) string {
	var b strings.Builder

	b.WriteString("# watsonassist check\n\n")

	b.WriteString("## Credentials\n\n")
	missing := cfg.MissingCredentials()
	if len(missing) == 0 {
		b.WriteString("All service credentials are configured.\n\n")
	} else {
		b.WriteString("Not set:\n\n")
		for _, name := range missing {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Endpoints\n\n")
	fmt.Fprintf(&b, "- Speech to text: %s\n", cfg.SpeechToText.Endpoint)
	fmt.Fprintf(&b, "- Text to speech: %s\n", cfg.TextToSpeech.Endpoint)
	fmt.Fprintf(&b, "- Language translation: %s\n", cfg.LanguageTranslation.Endpoint)
	fmt.Fprintf(&b, "- Visual recognition: %s\n\n", cfg.VisualRecognition.Endpoint)

	b.WriteString("## Audio\n\n```\n")
	b.WriteString(audio.CheckSystem(audio.Config{
		SampleRate:      cfg.Audio.SampleRate,
		FramesPerBuffer: cfg.Audio.FramesPerBuffer,
	}))
	b.WriteString("```\n\n")

	b.WriteString("## Camera\n\n")
	fields := strings.Fields(cfg.Camera.Command)
	if len(fields) == 0 {
		b.WriteString("No camera command configured.\n")
		return b.String()
	}
	for _, tool := range audio.LookupTools(fields[0]) {
		if tool.Available {
			fmt.Fprintf(&b, "`%s` found at %s\n", tool.Name, tool.Path)
		} else {
			fmt.Fprintf(&b, "`%s` not found, selfies will fail until it is installed or `camera.command` is changed\n", tool.Name)
		}
	}
	return b.String()
}

// renderMarkdown styles markdown for a terminal and writes it raw otherwise
func renderMarkdown(w io.Writer, markdown string) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := io.WriteString(w, markdown)
		return err
	}

	width := 80
	if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
		width = tw
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		_, err = io.WriteString(w, markdown)
		return err
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		_, err = io.WriteString(w, markdown)
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
