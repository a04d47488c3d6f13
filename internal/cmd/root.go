package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phildougherty/watsonassist/internal/config"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "watsonassist",
		Short: "Terminal assistant for speech, translation and face detection",
		Long: `watsonassist translates English text or speech into Spanish, French or Italian,
speaks the translation, and estimates the age and gender of faces in photos.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigFile, "Specify configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file")

	// Interactive screen
	rootCmd.AddCommand(NewRunCommand())

	// Single service calls
	rootCmd.AddCommand(NewTranslateCommand())
	rootCmd.AddCommand(NewSynthesizeCommand())
	rootCmd.AddCommand(NewRecognizeCommand())
	rootCmd.AddCommand(NewDetectFacesCommand())

	// Utility commands
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}
