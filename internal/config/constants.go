package config

import "time"

// Service endpoint defaults
const (
	// DefaultSpeechToTextEndpoint is the streaming speech-to-text API root
	DefaultSpeechToTextEndpoint = "https://stream.watsonplatform.net/speech-to-text/api"

	// DefaultTextToSpeechEndpoint is the text-to-speech API root
	DefaultTextToSpeechEndpoint = "https://stream.watsonplatform.net/text-to-speech/api"

	// DefaultLanguageTranslationEndpoint is the language translation API root
	DefaultLanguageTranslationEndpoint = "https://gateway.watsonplatform.net/language-translation/api"

	// DefaultVisualRecognitionEndpoint is the visual recognition API root
	DefaultVisualRecognitionEndpoint = "https://gateway-a.watsonplatform.net/visual-recognition/api"
)

// Recognition defaults
const (
	// DefaultRecognitionModel is the model used for microphone recognition
	DefaultRecognitionModel = "en-US_BroadbandModel"

	// DefaultInactivityTimeout is the silence, in seconds, after which the service ends a session
	DefaultInactivityTimeout = 2000
)

// Synthesis defaults
const (
	DefaultVoice        = "en-US_LisaVoice"
	DefaultAudioAccept  = "audio/wav"
	DefaultSourceLocale = "en"
	DefaultTargetLocale = "es"
)

// Audio device defaults
const (
	// DefaultSampleRate is the microphone sample rate in Hz
	DefaultSampleRate = 16000

	// DefaultFramesPerBuffer is the number of frames read per microphone chunk
	DefaultFramesPerBuffer = 1024
)

// Timeouts
const (
	// DefaultRequestTimeout bounds a single REST call
	DefaultRequestTimeout = 60 * time.Second

	// DefaultConnectTimeout bounds the speech-to-text WebSocket handshake
	DefaultConnectTimeout = 15 * time.Second

	// DefaultToastDuration is how long an error stays on screen
	DefaultToastDuration = 2 * time.Second
)

// Files
const (
	DefaultConfigFile = "watsonassist.yaml"
	DefaultLogFile    = "watsonassist.log"
)
