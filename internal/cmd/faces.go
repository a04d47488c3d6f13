package cmd

import (
	"fmt"
	"io"

	"github.com/phildougherty/watsonassist/internal/assistant"
)

func printFaces(w io.Writer, faces assistant.Faces) {
	if faces.Count == 0 {
		fmt.Fprintln(w, "No faces found")
		return
	}
	fmt.Fprintf(w, "Faces:  %d\n", faces.Count)
	fmt.Fprintf(w, "Age:    %d-%d\n", faces.AgeMin, faces.AgeMax)
	gender := faces.Gender
	if gender == "" {
		gender = "unknown"
	}
	fmt.Fprintf(w, "Gender: %s\n", gender)
}
