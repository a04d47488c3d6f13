package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel is the severity of a log entry
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	FATAL
)

// String returns the upper-case name of the level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARNING:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func levelFromZap(l zapcore.Level) LogLevel {
	switch {
	case l <= zapcore.DebugLevel:
		return DEBUG
	case l == zapcore.InfoLevel:
		return INFO
	case l == zapcore.WarnLevel:
		return WARNING
	case l == zapcore.ErrorLevel:
		return ERROR
	default:
		return FATAL
	}
}

// ParseLevel maps a level name to a LogLevel, defaulting to INFO
func ParseLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "WARNING", "WARN":
		return WARNING
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

// Logger is a leveled logger with text or JSON output backed by zap
type Logger struct {
	mu         sync.Mutex
	level      LogLevel
	jsonFormat bool
	out        io.Writer
	zl         *zap.Logger
}

// FieldLogger is a Logger with a fixed set of fields attached to every entry
type FieldLogger struct {
	zl *zap.Logger
}

// NewLogger creates a logger writing to stderr at the given level
func NewLogger(level string) *Logger {
	l := &Logger{
		level: ParseLevel(level),
		out:   os.Stderr,
	}
	l.rebuild()
	return l
}

// SetOutput redirects log output
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.rebuild()
}

// SetJSONFormat switches between console and JSON encoding
func (l *Logger) SetJSONFormat(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jsonFormat = enabled
	l.rebuild()
}

// Level returns the minimum level that is written
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) rebuild() {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	var enc zapcore.Encoder
	if l.jsonFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(l.out)), l.level.zapLevel())
	l.zl = zap.New(core)
}

func encodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(levelFromZap(level).String())
}

func (l *Logger) current() *zap.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zl
}

func (l *Logger) shouldLog(level LogLevel) bool {
	return level >= l.level
}

// Debug logs a formatted message at DEBUG
func (l *Logger) Debug(format string, args ...interface{}) {
	l.current().Debug(formatMessage(format, args))
}

// Info logs a formatted message at INFO
func (l *Logger) Info(format string, args ...interface{}) {
	l.current().Info(formatMessage(format, args))
}

// Warning logs a formatted message at WARNING
func (l *Logger) Warning(format string, args ...interface{}) {
	l.current().Warn(formatMessage(format, args))
}

// Error logs a formatted message at ERROR
func (l *Logger) Error(format string, args ...interface{}) {
	l.current().Error(formatMessage(format, args))
}

// Fatal logs a formatted message at FATAL and exits the process
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.current().Fatal(formatMessage(format, args))
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.current().Sync()
}

// WithFields returns a logger that attaches fields to every entry
func (l *Logger) WithFields(fields map[string]interface{}) *FieldLogger {
	return &FieldLogger{zl: l.current().With(zapFields(fields)...)}
}

// GetLogr exposes the logger through the logr interface used by components
func (l *Logger) GetLogr() logr.Logger {
	return zapr.NewLogger(l.current())
}

func (f *FieldLogger) Debug(format string, args ...interface{}) {
	f.zl.Debug(formatMessage(format, args))
}

func (f *FieldLogger) Info(format string, args ...interface{}) {
	f.zl.Info(formatMessage(format, args))
}

func (f *FieldLogger) Warning(format string, args ...interface{}) {
	f.zl.Warn(formatMessage(format, args))
}

func (f *FieldLogger) Error(format string, args ...interface{}) {
	f.zl.Error(formatMessage(format, args))
}

func formatMessage(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// zapFields converts a field map into zap fields with a stable order
func zapFields(fields map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

// OpenFile opens (or creates) a log file for appending
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
