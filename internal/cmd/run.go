package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phildougherty/watsonassist/internal/audio"
	"github.com/phildougherty/watsonassist/internal/config"
	"github.com/phildougherty/watsonassist/internal/ui"
)

func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive assistant screen",
		Long: `Open the interactive assistant screen.

Type or dictate English text, translate it into the selected language,
listen to the translation and take a selfie for face analysis.
Logs are written to the configured log file while the screen is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}
	return cmd
}

func runTUI(cmd *cobra.Command) error {
	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	if !audio.VoiceEnabled {
		s.logger.Warning("Built without voice support, microphone input is disabled")
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	s.logger.Info("Starting assistant screen")
	err = ui.Run(ctx, s.app.Controller, ui.Options{
		Target:        s.app.Target,
		ToastDuration: config.DefaultToastDuration,
		Logger:        s.app.Logger,
	})
	if err != nil {
		return fmt.Errorf("assistant screen failed: %w", err)
	}
	s.logger.Info("Assistant screen closed")
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
