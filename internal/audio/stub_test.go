//go:build !voice

package audio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMicrophone_Disabled(t *testing.T) {
	_, err := OpenMicrophone(Config{SampleRate: 16000, FramesPerBuffer: 1024})
	require.ErrorIs(t, err, ErrVoiceDisabled)
	assert.Contains(t, err.Error(), "-tags voice")

	_, err = Opener{Config: Config{SampleRate: 16000}}.OpenMicrophone()
	assert.ErrorIs(t, err, ErrVoiceDisabled)
}

func TestPlayer_NoExternalPlayer(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	p := NewPlayer(Config{}, logr.Discard())
	err := p.Play(context.Background(), bytes.NewReader([]byte("RIFF")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no suitable audio player found")
}

func TestPlayer_ExternalFallback(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "played")
	// fake aplay copies its last argument so the test can check what was played
	script := "#!/bin/sh\nfor last; do :; done\ncp \"$last\" " + out + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aplay"), []byte(script), 0755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	p := NewPlayer(Config{}, logr.Discard())
	require.NoError(t, p.Play(context.Background(), bytes.NewReader([]byte("RIFF-audio"))))

	played, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "RIFF-audio", string(played))
}

func TestCheckSystem_Stub(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	report := CheckSystem(Config{SampleRate: 16000, FramesPerBuffer: 512})
	assert.Contains(t, report, "audio/l16;rate=16000")
	assert.Contains(t, report, "Voice features not compiled in")
	assert.Contains(t, report, "aplay: Not found")
	assert.Contains(t, report, "Install aplay")
	assert.False(t, VoiceEnabled)
}
