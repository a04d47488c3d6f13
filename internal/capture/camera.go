package capture

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// FilePlaceholder is replaced by the output path in the camera command
const FilePlaceholder = "{file}"

// Camera takes photos by running an external capture command
type Camera struct {
	command string
	dir     string
	logger  logr.Logger
}

// NewCamera creates a camera. Photos are written to dir, or the system temp dir when empty.
func NewCamera(command, dir string, logger logr.Logger) *Camera {
	return &Camera{command: command, dir: dir, logger: logger.WithName("camera")}
}

// Command returns the capture command's program name
func (c *Camera) Command() string {
	fields := strings.Fields(c.command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Capture takes a photo and returns the resulting image
func (c *Camera) Capture(ctx context.Context) (Image, error) {
	fields := strings.Fields(c.command)
	if len(fields) == 0 {
		return Image{}, fmt.Errorf("no camera command configured")
	}

	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Image{}, fmt.Errorf("failed to create capture directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("selfie-%s.jpg", uuid.NewString()))

	args := make([]string, 0, len(fields))
	placed := false
	for _, f := range fields[1:] {
		if strings.Contains(f, FilePlaceholder) {
			f = strings.ReplaceAll(f, FilePlaceholder, path)
			placed = true
		}
		args = append(args, f)
	}
	if !placed {
		args = append(args, path)
	}

	c.logger.V(1).Info("Capturing photo", "command", fields[0], "path", path)
	cmd := exec.CommandContext(ctx, fields[0], args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		os.Remove(path)
		msg := strings.TrimSpace(string(output))
		if msg != "" {
			return Image{}, fmt.Errorf("camera command %s failed: %w: %s", fields[0], err, msg)
		}
		return Image{}, fmt.Errorf("camera command %s failed: %w", fields[0], err)
	}

	img, err := Load(path)
	if err != nil {
		return Image{}, fmt.Errorf("camera produced no usable image: %w", err)
	}
	c.logger.Info("Photo captured", "path", img.Path, "width", img.Width, "height", img.Height)
	return img, nil
}
