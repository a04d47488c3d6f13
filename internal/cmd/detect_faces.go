package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phildougherty/watsonassist/internal/assistant"
	"github.com/phildougherty/watsonassist/internal/capture"
	"github.com/phildougherty/watsonassist/internal/watson/visualrecognition"
)

func NewDetectFacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect-faces IMAGE",
		Short: "Estimate age and gender of the faces in an image",
		Long: `Send an image file or URL to the face detection service and print the
estimated age range and gender of the first face.

With --selfie a photo is taken with the configured camera command first.`,
		Example: `  watsonassist detect-faces ./me.jpg
  watsonassist detect-faces https://example.com/photo.png
  watsonassist detect-faces --selfie`,
		Args: func(cmd *cobra.Command, args []string) error {
			if selfie, _ := cmd.Flags().GetBool("selfie"); selfie {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			selfie, _ := cmd.Flags().GetBool("selfie")
			source := ""
			if len(args) > 0 {
				source = args[0]
			}
			return runDetectFaces(cmd, source, selfie)
		},
	}

	cmd.Flags().Bool("selfie", false, "Take a photo with the camera command and analyse it")
	return cmd
}

func runDetectFaces(cmd *cobra.Command, source string, selfie bool) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var faces assistant.Faces
	switch {
	case selfie:
		img, err := s.app.Controller.CaptureSelfie(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Captured %s\n", img)
		if faces, err = s.app.Controller.DetectFaces(ctx, img); err != nil {
			return err
		}
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		result, err := s.app.Faces.DetectFaces(ctx, visualrecognition.DetectFacesOptions{URL: source})
		if err != nil {
			return err
		}
		faces = assistant.FacesFrom(result)
	default:
		img, err := capture.Load(source)
		if err != nil {
			return err
		}
		if faces, err = s.app.Controller.DetectFaces(ctx, img); err != nil {
			return err
		}
	}

	printFaces(out, faces)
	return nil
}
