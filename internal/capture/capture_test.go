package capture

import (
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if strings.HasSuffix(name, ".png") {
		require.NoError(t, png.Encode(f, img))
	} else {
		require.NoError(t, jpeg.Encode(f, img, nil))
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	img, err := Load(writeImage(t, dir, "face.jpg", 64, 48))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIME)
	assert.Equal(t, 64, img.Width)
	assert.Equal(t, 48, img.Height)
	assert.Positive(t, img.Size)
	assert.Contains(t, img.String(), "64x48")

	img, err = Load(writeImage(t, dir, "face.png", 10, 20))
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIME)
	assert.Equal(t, 20, img.Height)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.jpg"))
	assert.ErrorContains(t, err, "failed to open image")

	_, err = Load(dir)
	assert.ErrorContains(t, err, "is a directory")

	empty := filepath.Join(dir, "empty.jpg")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	_, err = Load(empty)
	assert.ErrorContains(t, err, "is empty")

	text := filepath.Join(dir, "note.jpg")
	require.NoError(t, os.WriteFile(text, []byte("hello there"), 0600))
	_, err = Load(text)
	assert.ErrorContains(t, err, "is not an image")
}

func TestGallery_Pick(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "pick.png", 3, 3)

	img, err := Gallery{}.Pick("  '" + path + "'  ")
	require.NoError(t, err)
	assert.Equal(t, path, img.Path)

	_, err = Gallery{}.Pick("   ")
	assert.ErrorContains(t, err, "no image selected")

	home := t.TempDir()
	t.Setenv("HOME", home)
	writeImage(t, home, "home.jpg", 2, 2)
	img, err = Gallery{}.Pick("~/home.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "home.jpg"), img.Path)
}

func TestCamera_Capture(t *testing.T) {
	src := writeImage(t, t.TempDir(), "source.jpg", 8, 6)
	out := t.TempDir()

	cam := NewCamera("cp "+src+" {file}", out, logr.Discard())
	assert.Equal(t, "cp", cam.Command())

	img, err := cam.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, out, filepath.Dir(img.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(img.Path), "selfie-"))
	assert.Equal(t, 8, img.Width)
}

func TestCamera_CaptureAppendsPathWithoutPlaceholder(t *testing.T) {
	src := writeImage(t, t.TempDir(), "source.png", 4, 4)
	cam := NewCamera("cp "+src, t.TempDir(), logr.Discard())

	img, err := cam.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIME)
}

func TestCamera_CaptureErrors(t *testing.T) {
	_, err := NewCamera("", "", logr.Discard()).Capture(context.Background())
	assert.ErrorContains(t, err, "no camera command")

	_, err = NewCamera("false {file}", t.TempDir(), logr.Discard()).Capture(context.Background())
	assert.ErrorContains(t, err, "camera command false failed")

	_, err = NewCamera("true {file}", t.TempDir(), logr.Discard()).Capture(context.Background())
	assert.ErrorContains(t, err, "no usable image")

	_, err = NewCamera("definitely-not-a-camera-tool {file}", t.TempDir(), logr.Discard()).Capture(context.Background())
	assert.Error(t, err)
}
