package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phildougherty/watsonassist/internal/watson/texttospeech"
)

func NewSynthesizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "synthesize TEXT...",
		Aliases: []string{"say"},
		Short:   "Speak text aloud or save it as audio",
		Long: `Synthesize speech for the given text.

Without --output the audio is played on the default output device.`,
		Example: `  watsonassist say "hola"
  watsonassist synthesize --voice fr-FR_ReneeVoice -o bonjour.wav bonjour`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			voice, _ := cmd.Flags().GetString("voice")
			return runSynthesize(cmd, strings.Join(args, " "), voice, output)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Write audio to this file instead of playing it")
	cmd.Flags().String("voice", "", "Voice name, defaults to the configured voice")
	return cmd
}

func runSynthesize(cmd *cobra.Command, text, voice, output string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	if voice == "" {
		voice = s.cfg.Synthesis.Voice
	}

	ctx := cmd.Context()
	body, err := s.app.Synthesizer.Synthesize(ctx, text, texttospeech.Voice(voice))
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}
	defer body.Close()

	if output == "" {
		return s.app.Player.Play(ctx, body)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", n, output)
	return nil
}
