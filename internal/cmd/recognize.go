package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/phildougherty/watsonassist/internal/audio"
	"github.com/phildougherty/watsonassist/internal/watson/speechtotext"
)

func NewRecognizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recognize",
		Aliases: []string{"listen"},
		Short:   "Transcribe speech from the microphone or a WAV file",
		Long: `Stream audio to the speech service and print final transcripts.

Without --file the default microphone is used until the service ends the
session after a pause, or until Ctrl+C.`,
		Example: `  watsonassist listen
  watsonassist recognize --file hello.wav --interim`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			interim, _ := cmd.Flags().GetBool("interim")
			return runRecognize(cmd, file, interim)
		},
	}

	cmd.Flags().StringP("file", "f", "", "Transcribe this WAV file instead of the microphone")
	cmd.Flags().Bool("interim", false, "Print interim transcripts as well as final ones")
	return cmd
}

// transcriptPrinter writes recognition results as they arrive
type transcriptPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	interim bool
	err     error
}

func (p *transcriptPrinter) OnConnected() {}

func (p *transcriptPrinter) OnTranscription(results *speechtotext.SpeechResults) {
	text := results.FirstTranscript()
	if text == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case results.IsFinal():
		fmt.Fprintln(p.out, text)
	case p.interim:
		fmt.Fprintf(p.out, "... %s\n", text)
	}
}

func (p *transcriptPrinter) OnError(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

func (p *transcriptPrinter) OnDisconnected() {}

func runRecognize(cmd *cobra.Command, file string, interim bool) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	var (
		source      io.Reader
		contentType string
	)
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", file, err)
		}
		defer f.Close()
		if _, _, err := audio.DecodeWAV(f); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return err
		}
		source, contentType = f, "audio/wav"
	} else {
		mic, err := s.app.Microphone.OpenMicrophone()
		if err != nil {
			return fmt.Errorf("failed to open microphone: %w", err)
		}
		source, contentType = mic, mic.ContentType()
		fmt.Fprintln(cmd.ErrOrStderr(), "Listening... press Ctrl+C to stop")
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	printer := &transcriptPrinter{out: cmd.OutOrStdout(), interim: interim}
	rec := s.cfg.Recognition
	return s.app.Recognizer.Recognize(ctx, source, speechtotext.RecognizeOptions{
		ContentType:       contentType,
		Model:             rec.Model,
		Continuous:        rec.Continuous,
		InterimResults:    rec.InterimResults || interim,
		InactivityTimeout: rec.InactivityTimeout,
	}, printer)
}
