package assistant

import (
	"strconv"

	"github.com/phildougherty/watsonassist/internal/capture"
	"github.com/phildougherty/watsonassist/internal/watson/visualrecognition"
)

// SelfiePhrase is the transcript that starts a camera capture. The service
// ends a final transcript with a space.
const SelfiePhrase = "take a selfie "

// Faces summarizes the first face found in the first image
type Faces struct {
	Count  int
	AgeMin int
	AgeMax int
	Gender string
}

// FacesFrom summarizes a face detection result
func FacesFrom(d *visualrecognition.DetectedFaces) Faces {
	if d == nil || len(d.Images) == 0 {
		return Faces{}
	}
	faces := Faces{Count: len(d.Images[0].Faces)}
	if face := d.FirstFace(); face != nil {
		if face.Age != nil {
			faces.AgeMin = face.Age.Min
			faces.AgeMax = face.Age.Max
		}
		if face.Gender != nil {
			faces.Gender = face.Gender.Gender
		}
	}
	return faces
}

// Screen is the state of the assistant's single screen. It is owned by the
// event loop and must not be shared between goroutines.
type Screen struct {
	Input          string
	TranslatedText string
	Target         Language

	MicEnabled       bool
	TranslateEnabled bool
	PlayEnabled      bool
	Listening        bool

	AgeMin string
	AgeMax string
	Gender string
	Image  *capture.Image

	Toast string

	toastSeq           int
	inputWatcher       *EmptyWatcher
	translationWatcher *EmptyWatcher
}

// NewScreen returns the initial screen: microphone on, translate and play off
func NewScreen(target Language) *Screen {
	s := &Screen{
		Target:     target,
		MicEnabled: true,
	}
	s.inputWatcher = NewEmptyWatcher(func(empty bool) {
		s.TranslateEnabled = !empty
	})
	s.translationWatcher = NewEmptyWatcher(func(empty bool) {
		s.PlayEnabled = !empty
	})
	return s
}

// SetInput replaces the input text
func (s *Screen) SetInput(text string) {
	s.Input = text
	s.inputWatcher.Changed(text)
}

// SetTranslation replaces the translated text
func (s *Screen) SetTranslation(text string) {
	s.TranslatedText = text
	s.translationWatcher.Changed(text)
}

// SelectLanguage changes the target of the next translation
func (s *Screen) SelectLanguage(lang Language) {
	s.Target = lang
}

// ApplyTranscript shows a transcript in the input field. It reports whether
// the transcript asks for a selfie that was not already requested.
func (s *Screen) ApplyTranscript(text string) bool {
	captureSelfie := text == SelfiePhrase && s.Input != SelfiePhrase
	s.SetInput(text)
	return captureSelfie
}

// BeginListening disables the microphone while a session runs
func (s *Screen) BeginListening() {
	s.Listening = true
	s.MicEnabled = false
}

// EndListening re-enables the microphone
func (s *Screen) EndListening() {
	s.Listening = false
	s.MicEnabled = true
}

// ShowFaces shows the first face. Previous values stay when no face was found.
func (s *Screen) ShowFaces(faces Faces) {
	if faces.Count == 0 {
		return
	}
	s.AgeMin = strconv.Itoa(faces.AgeMin)
	s.AgeMax = strconv.Itoa(faces.AgeMax)
	s.Gender = faces.Gender
}

// SetImage shows a captured or picked image
func (s *Screen) SetImage(img capture.Image) {
	s.Image = &img
}

// ShowError sets the toast and returns its sequence number for ClearToast
func (s *Screen) ShowError(err error) int {
	s.toastSeq++
	s.Toast = err.Error()
	return s.toastSeq
}

// ClearToast drops the toast if it is still the one identified by seq
func (s *Screen) ClearToast(seq int) {
	if seq == s.toastSeq {
		s.Toast = ""
	}
}
