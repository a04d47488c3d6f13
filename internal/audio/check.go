package audio

import (
	"fmt"
	"os/exec"
	"strings"
)

// ToolStatus reports whether an external command is on PATH
type ToolStatus struct {
	Name      string
	Path      string
	Available bool
}

// LookupTools checks each command name against PATH
func LookupTools(names ...string) []ToolStatus {
	statuses := make([]ToolStatus, 0, len(names))
	for _, name := range names {
		path, err := exec.LookPath(name)
		statuses = append(statuses, ToolStatus{Name: name, Path: path, Available: err == nil})
	}
	return statuses
}

// PlayerNames lists the external players tried when PortAudio playback is unavailable
func PlayerNames() []string {
	names := make([]string, 0, len(externalPlayers))
	for _, p := range externalPlayers {
		names = append(names, p.Name)
	}
	return names
}

// CheckSystem reports on audio support and the external tools the assistant can use
func CheckSystem(cfg Config) string {
	var report strings.Builder

	report.WriteString("Audio System Check\n")
	report.WriteString("==================\n\n")

	report.WriteString("Capture:\n")
	report.WriteString(fmt.Sprintf("  Content type: %s\n", cfg.ContentType()))
	report.WriteString(fmt.Sprintf("  Frames per buffer: %d\n", cfg.FramesPerBuffer))
	report.WriteString("\n")

	report.WriteString("Devices:\n")
	report.WriteString(deviceReport())
	report.WriteString("\n")

	report.WriteString("External Players:\n")
	playerFound := false
	for _, tool := range LookupTools(PlayerNames()...) {
		if tool.Available {
			playerFound = true
			report.WriteString(fmt.Sprintf("  %s: Available (%s)\n", tool.Name, tool.Path))
		} else {
			report.WriteString(fmt.Sprintf("  %s: Not found\n", tool.Name))
		}
	}
	report.WriteString("\n")

	report.WriteString("Recommendations:\n")
	if !VoiceEnabled {
		report.WriteString("  • Build with -tags voice for microphone input (requires portaudio19-dev or brew install portaudio)\n")
	}
	if !VoiceEnabled && !playerFound {
		report.WriteString("  • Install aplay (alsa-utils) or ffplay (ffmpeg) for speech playback\n")
	}
	if VoiceEnabled {
		report.WriteString("  • Grant microphone permission to the terminal if recognition hears nothing\n")
	}

	return report.String()
}
