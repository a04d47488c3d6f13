package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	SpeechToText        ServiceConfig     `yaml:"speech_to_text"`
	TextToSpeech        ServiceConfig     `yaml:"text_to_speech"`
	LanguageTranslation ServiceConfig     `yaml:"language_translation"`
	VisualRecognition   ServiceConfig     `yaml:"visual_recognition"`
	Recognition         RecognitionConfig `yaml:"recognition"`
	Synthesis           SynthesisConfig   `yaml:"synthesis"`
	Audio               AudioConfig       `yaml:"audio"`
	Camera              CameraConfig      `yaml:"camera"`
	Log                 LogConfig         `yaml:"log"`
	Timeouts            TimeoutConfig     `yaml:"timeouts"`
	TargetLanguage      string            `yaml:"target_language"`
}

// ServiceConfig holds the endpoint and credentials of one cloud service
type ServiceConfig struct {
	Endpoint string `yaml:"endpoint"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// RecognitionConfig controls microphone recognition sessions
type RecognitionConfig struct {
	Model             string `yaml:"model"`
	Continuous        bool   `yaml:"continuous"`
	InterimResults    bool   `yaml:"interim_results"`
	InactivityTimeout int    `yaml:"inactivity_timeout"`
}

// SynthesisConfig controls text-to-speech requests
type SynthesisConfig struct {
	Voice  string `yaml:"voice"`
	Accept string `yaml:"accept"`
}

// AudioConfig controls the microphone and player
type AudioConfig struct {
	SampleRate      int `yaml:"sample_rate"`
	FramesPerBuffer int `yaml:"frames_per_buffer"`
}

// CameraConfig controls the capture command. {file} is replaced by the output path.
type CameraConfig struct {
	Command string `yaml:"command"`
	Dir     string `yaml:"dir,omitempty"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	JSON  bool   `yaml:"json"`
}

// TimeoutConfig holds duration strings such as "30s"
type TimeoutConfig struct {
	Request string `yaml:"request,omitempty"`
	Connect string `yaml:"connect,omitempty"`
}

// GetRequestTimeout returns the REST timeout, falling back to the default on bad input
func (t TimeoutConfig) GetRequestTimeout() time.Duration {
	return parseDuration(t.Request, DefaultRequestTimeout)
}

// GetConnectTimeout returns the WebSocket handshake timeout
func (t TimeoutConfig) GetConnectTimeout() time.Duration {
	return parseDuration(t.Connect, DefaultConnectTimeout)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		SpeechToText:        ServiceConfig{Endpoint: DefaultSpeechToTextEndpoint},
		TextToSpeech:        ServiceConfig{Endpoint: DefaultTextToSpeechEndpoint},
		LanguageTranslation: ServiceConfig{Endpoint: DefaultLanguageTranslationEndpoint},
		VisualRecognition:   ServiceConfig{Endpoint: DefaultVisualRecognitionEndpoint},
		Recognition: RecognitionConfig{
			Model:             DefaultRecognitionModel,
			Continuous:        true,
			InterimResults:    true,
			InactivityTimeout: DefaultInactivityTimeout,
		},
		Synthesis: SynthesisConfig{
			Voice:  DefaultVoice,
			Accept: DefaultAudioAccept,
		},
		Audio: AudioConfig{
			SampleRate:      DefaultSampleRate,
			FramesPerBuffer: DefaultFramesPerBuffer,
		},
		Camera: CameraConfig{
			Command: defaultCameraCommand(),
		},
		Log: LogConfig{
			Level: "INFO",
			File:  DefaultLogFile,
		},
		TargetLanguage: DefaultTargetLocale,
	}
}

func defaultCameraCommand() string {
	if runtime.GOOS == "darwin" {
		return "imagesnap -q {file}"
	}
	return "fswebcam -q --no-banner -r 640x480 --jpeg 85 {file}"
}

// Load builds the configuration from defaults, an optional YAML file and the environment.
// A missing file at path is not an error.
func Load(path string) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.SpeechToText.Username = getEnv("SPEECH_TEXT_USERNAME", c.SpeechToText.Username)
	c.SpeechToText.Password = getEnv("SPEECH_TEXT_PASSWORD", c.SpeechToText.Password)
	c.SpeechToText.Endpoint = getEnv("SPEECH_TEXT_ENDPOINT", c.SpeechToText.Endpoint)

	c.TextToSpeech.Username = getEnv("TEXT_SPEECH_USERNAME", c.TextToSpeech.Username)
	c.TextToSpeech.Password = getEnv("TEXT_SPEECH_PASSWORD", c.TextToSpeech.Password)
	c.TextToSpeech.Endpoint = getEnv("TEXT_SPEECH_ENDPOINT", c.TextToSpeech.Endpoint)

	c.LanguageTranslation.Username = getEnv("LANGUAGE_TRANSLATION_USERNAME", c.LanguageTranslation.Username)
	c.LanguageTranslation.Password = getEnv("LANGUAGE_TRANSLATION_PASSWORD", c.LanguageTranslation.Password)
	c.LanguageTranslation.Endpoint = getEnv("LANGUAGE_TRANSLATION_ENDPOINT", c.LanguageTranslation.Endpoint)

	c.VisualRecognition.APIKey = getEnv("VISUAL_RECOGNITION_API_KEY", c.VisualRecognition.APIKey)
	c.VisualRecognition.Endpoint = getEnv("VISUAL_RECOGNITION_ENDPOINT", c.VisualRecognition.Endpoint)

	c.TargetLanguage = getEnv("WATSON_TARGET_LANGUAGE", c.TargetLanguage)
	c.Synthesis.Voice = getEnv("WATSON_VOICE", c.Synthesis.Voice)
	c.Recognition.Model = getEnv("WATSON_RECOGNITION_MODEL", c.Recognition.Model)
	c.Camera.Command = getEnv("WATSON_CAMERA_COMMAND", c.Camera.Command)
	c.Log.Level = getEnv("WATSON_LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("WATSON_LOG_FILE", c.Log.File)

	c.Audio.SampleRate = getEnvInt("VOICE_SAMPLE_RATE", c.Audio.SampleRate)
	c.Audio.FramesPerBuffer = getEnvInt("VOICE_FRAME_LENGTH", c.Audio.FramesPerBuffer)
}

// Validate rejects malformed values. Missing credentials are reported by MissingCredentials.
func (c *Config) Validate() error {
	endpoints := map[string]string{
		"speech_to_text":       c.SpeechToText.Endpoint,
		"text_to_speech":       c.TextToSpeech.Endpoint,
		"language_translation": c.LanguageTranslation.Endpoint,
		"visual_recognition":   c.VisualRecognition.Endpoint,
	}
	for _, name := range []string{"speech_to_text", "text_to_speech", "language_translation", "visual_recognition"} {
		if err := validateEndpoint(endpoints[name]); err != nil {
			return fmt.Errorf("%s endpoint: %w", name, err)
		}
	}

	if c.Recognition.Model == "" {
		return fmt.Errorf("recognition model is required")
	}
	if c.Recognition.InactivityTimeout < -1 {
		return fmt.Errorf("inactivity_timeout must be -1 or greater, got %d", c.Recognition.InactivityTimeout)
	}
	if c.Synthesis.Voice == "" {
		return fmt.Errorf("synthesis voice is required")
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.FramesPerBuffer <= 0 {
		return fmt.Errorf("frames_per_buffer must be positive, got %d", c.Audio.FramesPerBuffer)
	}
	if strings.TrimSpace(c.TargetLanguage) == "" {
		return fmt.Errorf("target_language is required")
	}
	return nil
}

func validateEndpoint(raw string) error {
	if raw == "" {
		return fmt.Errorf("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// MissingCredentials lists the environment variables whose credentials are not set
func (c *Config) MissingCredentials() []string {
	var missing []string
	check := func(value, name string) {
		if value == "" {
			missing = append(missing, name)
		}
	}
	check(c.SpeechToText.Username, "SPEECH_TEXT_USERNAME")
	check(c.SpeechToText.Password, "SPEECH_TEXT_PASSWORD")
	check(c.TextToSpeech.Username, "TEXT_SPEECH_USERNAME")
	check(c.TextToSpeech.Password, "TEXT_SPEECH_PASSWORD")
	check(c.LanguageTranslation.Username, "LANGUAGE_TRANSLATION_USERNAME")
	check(c.LanguageTranslation.Password, "LANGUAGE_TRANSLATION_PASSWORD")
	check(c.VisualRecognition.APIKey, "VISUAL_RECOGNITION_API_KEY")
	return missing
}

// ToYAML renders the configuration as YAML
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Redacted returns a copy with secrets masked, for display
func (c *Config) Redacted() *Config {
	out := *c
	for _, svc := range []*ServiceConfig{&out.SpeechToText, &out.TextToSpeech, &out.LanguageTranslation, &out.VisualRecognition} {
		if svc.Password != "" {
			svc.Password = "****"
		}
		if svc.APIKey != "" {
			svc.APIKey = "****"
		}
	}
	return &out
}

// Save writes the configuration to path, refusing to overwrite unless force is set
func (c *Config) Save(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := c.ToYAML()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
