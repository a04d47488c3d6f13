//go:build voice

package audio

import (
	"fmt"
	"strings"

	"github.com/gordonklaus/portaudio"
)

// VoiceEnabled reports whether PortAudio support is compiled in
const VoiceEnabled = true

func deviceReport() string {
	var report strings.Builder

	if err := portaudio.Initialize(); err != nil {
		report.WriteString(fmt.Sprintf("  PortAudio: failed to initialize: %v\n", err))
		return report.String()
	}
	defer portaudio.Terminate()

	report.WriteString(fmt.Sprintf("  PortAudio: %s\n", portaudio.VersionText()))

	if in, err := portaudio.DefaultInputDevice(); err == nil {
		report.WriteString(fmt.Sprintf("  Input: %s (%d channels, %.0f Hz)\n", in.Name, in.MaxInputChannels, in.DefaultSampleRate))
	} else {
		report.WriteString(fmt.Sprintf("  Input: not available (%v)\n", err))
	}
	if out, err := portaudio.DefaultOutputDevice(); err == nil {
		report.WriteString(fmt.Sprintf("  Output: %s (%d channels, %.0f Hz)\n", out.Name, out.MaxOutputChannels, out.DefaultSampleRate))
	} else {
		report.WriteString(fmt.Sprintf("  Output: not available (%v)\n", err))
	}
	return report.String()
}
