// Package audio provides the microphone source and the speech player.
// Device access through PortAudio is only compiled in with the voice build
// tag; without it the microphone is unavailable and playback falls back to
// external players.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrVoiceDisabled is returned by device operations in builds without PortAudio
var ErrVoiceDisabled = errors.New("voice features not compiled in - build with -tags voice")

// Config describes the PCM format used for capture
type Config struct {
	SampleRate      int
	FramesPerBuffer int
}

// ContentType is the MIME type of the raw samples produced by the microphone
func (c Config) ContentType() string {
	return fmt.Sprintf("audio/l16;rate=%d;endianness=little-endian", c.SampleRate)
}

// Capture is a live audio input
type Capture interface {
	io.ReadCloser
	ContentType() string
}

// Opener opens the default microphone with a fixed configuration
type Opener struct {
	Config Config
}

// OpenMicrophone opens and starts the default input device
func (o Opener) OpenMicrophone() (Capture, error) {
	m, err := OpenMicrophone(o.Config)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// int16ToBytes appends samples to dst as little-endian 16-bit PCM
func int16ToBytes(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(s))
	}
	return dst
}

// bytesToInt16 decodes little-endian 16-bit PCM into dst and returns the number of samples
func bytesToInt16(dst []int16, src []byte) int {
	n := len(src) / 2
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = int16(binary.LittleEndian.Uint16(src[2*i:]))
	}
	return n
}
