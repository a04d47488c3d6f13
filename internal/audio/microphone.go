//go:build voice

package audio

import (
	"fmt"
	"io"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Microphone streams 16-bit mono PCM from the default input device
type Microphone struct {
	cfg     Config
	mu      sync.Mutex
	stream  *portaudio.Stream
	buf     []int16
	pending []byte
	closed  bool
}

// OpenMicrophone initializes PortAudio and starts capturing
func OpenMicrophone(cfg Config) (*Microphone, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	m := &Microphone{
		cfg: cfg,
		buf: make([]int16, cfg.FramesPerBuffer),
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(cfg.SampleRate), cfg.FramesPerBuffer, m.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open recording stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to start recording: %w", err)
	}
	m.stream = stream
	return m, nil
}

// ContentType is the MIME type of the samples returned by Read
func (m *Microphone) ContentType() string {
	return m.cfg.ContentType()
}

// Read returns captured samples as little-endian bytes. It returns io.EOF once closed.
func (m *Microphone) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) == 0 {
		if m.closed {
			return 0, io.EOF
		}
		if err := m.stream.Read(); err != nil && err != portaudio.InputOverflowed {
			return 0, fmt.Errorf("failed to read from microphone: %w", err)
		}
		m.pending = int16ToBytes(m.pending[:0], m.buf)
	}

	n := copy(p, m.pending)
	m.pending = m.pending[n:]
	return n, nil
}

// Close stops capture and releases the device
func (m *Microphone) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	m.pending = nil

	var firstErr error
	if err := m.stream.Stop(); err != nil {
		firstErr = fmt.Errorf("failed to stop recording: %w", err)
	}
	if err := m.stream.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close recording stream: %w", err)
	}
	portaudio.Terminate()
	return firstErr
}
