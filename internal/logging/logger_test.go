package logging

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARNING, "WARNING"},
		{ERROR, "ERROR"},
		{FATAL, "FATAL"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String())
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level    string
		expected LogLevel
	}{
		{"DEBUG", DEBUG},
		{"debug", DEBUG},
		{"INFO", INFO},
		{"info", INFO},
		{"WARNING", WARNING},
		{"warn", WARNING},
		{"ERROR", ERROR},
		{"error", ERROR},
		{"FATAL", FATAL},
		{"invalid", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		logger := NewLogger(tt.level)
		assert.Equal(t, tt.expected, logger.Level(), "NewLogger(%q)", tt.level)
	}
}

func TestLogger_SetOutput(t *testing.T) {
	logger := NewLogger("INFO")
	buf := &bytes.Buffer{}

	logger.SetOutput(buf)
	logger.Info("test message")

	assert.Contains(t, buf.String(), "test message")
}

func TestLogger_SetJSONFormat(t *testing.T) {
	logger := NewLogger("INFO")
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)

	logger.Info("test message")
	assert.NotContains(t, buf.String(), `"message"`)

	buf.Reset()
	logger.SetJSONFormat(true)
	logger.Info("test message")
	assert.Contains(t, buf.String(), `"message":"test message"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestLogger_ShouldLog(t *testing.T) {
	logger := NewLogger("WARNING")

	tests := []struct {
		level    LogLevel
		expected bool
	}{
		{DEBUG, false},
		{INFO, false},
		{WARNING, true},
		{ERROR, true},
		{FATAL, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, logger.shouldLog(tt.level), "shouldLog(%v)", tt.level)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger := NewLogger("WARNING")
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)

	logger.Info("hidden")
	logger.Debug("hidden too")
	assert.Empty(t, buf.String())

	logger.Warning("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_LogMethods(t *testing.T) {
	logger := NewLogger("DEBUG")
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)

	tests := []struct {
		method  func(string, ...interface{})
		level   string
		message string
	}{
		{logger.Debug, "DEBUG", "debug message"},
		{logger.Info, "INFO", "info message"},
		{logger.Warning, "WARNING", "warning message"},
		{logger.Error, "ERROR", "error message"},
	}

	for _, tt := range tests {
		buf.Reset()
		tt.method(tt.message)

		output := buf.String()
		assert.Contains(t, output, tt.level)
		assert.Contains(t, output, tt.message)
	}
}

func TestLogger_LogWithFormat(t *testing.T) {
	logger := NewLogger("INFO")
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)

	logger.Info("Translated %d words into %s", 5, "es")
	assert.Contains(t, buf.String(), "Translated 5 words into es")
}

func TestLogger_PercentWithoutArgs(t *testing.T) {
	logger := NewLogger("INFO")
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)

	logger.Info("100% done")
	assert.Contains(t, buf.String(), "100% done")
}

func TestLogger_WithFields(t *testing.T) {
	logger := NewLogger("INFO")
	logger.SetJSONFormat(true)
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)

	fieldLogger := logger.WithFields(map[string]interface{}{
		"service": "speech_to_text",
		"count":   42,
	})
	require.NotNil(t, fieldLogger)

	fieldLogger.Info("Recognition finished")

	output := buf.String()
	assert.Contains(t, output, `"service":"speech_to_text"`)
	assert.Contains(t, output, `"count":42`)
	assert.Contains(t, output, `"message":"Recognition finished"`)
}

func TestFieldLogger_LogLevels(t *testing.T) {
	logger := NewLogger("DEBUG")
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)

	fieldLogger := logger.WithFields(map[string]interface{}{"test": "value"})

	tests := []struct {
		method func(string, ...interface{})
		level  string
	}{
		{fieldLogger.Debug, "DEBUG"},
		{fieldLogger.Info, "INFO"},
		{fieldLogger.Warning, "WARNING"},
		{fieldLogger.Error, "ERROR"},
	}

	for _, tt := range tests {
		buf.Reset()
		tt.method("test message")

		output := buf.String()
		assert.Contains(t, output, tt.level)
		assert.Contains(t, output, `"test": "value"`)
	}
}

func TestLogr_Enabled(t *testing.T) {
	assert.True(t, NewLogger("INFO").GetLogr().Enabled())
	assert.False(t, NewLogger("INFO").GetLogr().V(1).Enabled())
	assert.True(t, NewLogger("DEBUG").GetLogr().V(1).Enabled())
}

func TestLogr_InfoAndError(t *testing.T) {
	logger := NewLogger("DEBUG")
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)

	log := logger.GetLogr().WithName("translator").WithValues("target", "fr")
	log.Info("translation requested")

	output := buf.String()
	assert.Contains(t, output, "translation requested")
	assert.Contains(t, output, "INFO")
	assert.Contains(t, output, "translator")
	assert.Contains(t, output, `"target": "fr"`)

	buf.Reset()
	log.Error(errors.New("boom"), "translation failed")
	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "boom")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watsonassist.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	logger := NewLogger("INFO")
	logger.SetOutput(f)
	logger.Info("to file")
	require.NoError(t, f.Sync())

	_, err = OpenFile(filepath.Join(path, "nested", "x.log"))
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to open log file"))
}
