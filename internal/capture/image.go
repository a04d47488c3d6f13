// Package capture produces the images analyzed for faces: photos taken with
// an external camera command and files picked by the user.
package capture

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Image is an image file on disk
type Image struct {
	Path   string
	MIME   string
	Width  int
	Height int
	Size   int64
}

// String describes the image for display
func (i Image) String() string {
	return fmt.Sprintf("%s (%s, %dx%d, %d KB)", i.Path, i.MIME, i.Width, i.Height, (i.Size+1023)/1024)
}

// Load validates that path is a decodable image and reads its dimensions
func Load(path string) (Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to open image: %w", err)
	}
	if info.IsDir() {
		return Image{}, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return Image{}, fmt.Errorf("image %s is empty", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to detect image type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return Image{}, fmt.Errorf("%s is not an image (%s)", path, mtype.String())
	}

	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode %s image: %w", mtype.String(), err)
	}

	return Image{
		Path:   path,
		MIME:   mtype.String(),
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   info.Size(),
	}, nil
}
