//go:build !voice

package audio

// Microphone is unavailable without the voice build tag
type Microphone struct {
	cfg Config
}

// OpenMicrophone always fails without the voice build tag
func OpenMicrophone(cfg Config) (*Microphone, error) {
	return nil, ErrVoiceDisabled
}

// ContentType is the MIME type the microphone would produce
func (m *Microphone) ContentType() string {
	return m.cfg.ContentType()
}

// Read always fails
func (m *Microphone) Read(p []byte) (int, error) {
	return 0, ErrVoiceDisabled
}

// Close is a no-op
func (m *Microphone) Close() error {
	return nil
}
