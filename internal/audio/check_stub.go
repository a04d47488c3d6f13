//go:build !voice

package audio

// VoiceEnabled reports whether PortAudio support is compiled in
const VoiceEnabled = false

func deviceReport() string {
	return "  Voice features not compiled in - build with -tags voice\n"
}
