package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Gallery loads images picked by the user
type Gallery struct{}

// Pick resolves a user supplied path, expanding a leading ~, and loads the image
func (Gallery) Pick(path string) (Image, error) {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, `"'`)
	if path == "" {
		return Image{}, fmt.Errorf("no image selected")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return Image{}, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Image{}, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return Load(abs)
}
