package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phildougherty/watsonassist/internal/assistant"
)

func NewTranslateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate TEXT...",
		Short: "Translate English text",
		Long: `Translate English text into Spanish, French or Italian.

The target defaults to target_language from the configuration.`,
		Example: `  watsonassist translate "good morning"
  watsonassist translate --target fr where is the station`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _ := cmd.Flags().GetString("target")
			return runTranslate(cmd, strings.Join(args, " "), target)
		},
	}

	cmd.Flags().StringP("target", "t", "", "Target language (es, fr, it or its English name)")
	return cmd
}

func runTranslate(cmd *cobra.Command, text, targetFlag string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	target := s.app.Target
	if targetFlag != "" {
		if target, err = assistant.ParseLanguage(targetFlag); err != nil {
			return err
		}
	}

	translated, err := s.app.Controller.Translate(cmd.Context(), text, target)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), translated)
	return nil
}
