package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var zapLevels = map[Level]zapcore.Level{
	DEBUG: zapcore.DebugLevel,
	INFO:  zapcore.InfoLevel,
	WARN:  zapcore.WarnLevel,
	ERROR: zapcore.ErrorLevel,
}

// ParseLevel maps a config string ("debug", "info", "warn", "error") to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger provides structured logging with optional redaction of agent names.
type Logger struct {
	mu        sync.RWMutex
	level     zap.AtomicLevel
	sugar     *zap.SugaredLogger
	redactPII bool
}

var defaultLogger = newDefault()

func newDefault() *Logger {
	l := &Logger{level: zap.NewAtomicLevelAt(zapcore.InfoLevel), redactPII: true}
	cfg := zap.NewProductionConfig()
	cfg.Level = l.level
	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}
	l.sugar = z.Sugar()
	return l
}

// Init rebuilds the default logger. format is "json" (default) or "console".
func Init(level, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case "", "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = defaultLogger.level
	defaultLogger.level.SetLevel(zapLevels[lvl])

	z, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defaultLogger.setCore(z)
	return nil
}

func (l *Logger) setCore(z *zap.Logger) {
	l.mu.Lock()
	l.sugar = z.Sugar()
	l.mu.Unlock()
}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(l Level) { defaultLogger.level.SetLevel(zapLevels[l]) }

// SetRedactPII enables or disables agent-name redaction for the default logger.
func SetRedactPII(r bool) {
	defaultLogger.mu.Lock()
	defaultLogger.redactPII = r
	defaultLogger.mu.Unlock()
}

// Sync flushes buffered entries.
func Sync() error {
	defaultLogger.mu.RLock()
	defer defaultLogger.mu.RUnlock()
	return defaultLogger.sugar.Sync()
}

// Debug emits a DEBUG-level structured log entry.
func Debug(msg string, fields ...interface{}) { defaultLogger.log(DEBUG, msg, fields...) }

// Info emits an INFO-level structured log entry.
func Info(msg string, fields ...interface{}) { defaultLogger.log(INFO, msg, fields...) }

// Warn emits a WARN-level structured log entry.
func Warn(msg string, fields ...interface{}) { defaultLogger.log(WARN, msg, fields...) }

// Error emits an ERROR-level structured log entry.
func Error(msg string, fields ...interface{}) { defaultLogger.log(ERROR, msg, fields...) }

func (l *Logger) log(level Level, msg string, fields ...interface{}) {
	l.mu.RLock()
	sugar, redact := l.sugar, l.redactPII
	l.mu.RUnlock()

	if redact {
		fields = redactFields(fields)
	}

	switch level {
	case DEBUG:
		sugar.Debugw(msg, fields...)
	case INFO:
		sugar.Infow(msg, fields...)
	case WARN:
		sugar.Warnw(msg, fields...)
	default:
		sugar.Errorw(msg, fields...)
	}
}

// redactFields masks values whose key names an agent. Fields are key/value
// pairs; a trailing key without a value is passed through for zap to report.
func redactFields(fields []interface{}) []interface{} {
	out := make([]interface{}, len(fields))
	copy(out, fields)
	for i := 0; i < len(out)-1; i += 2 {
		key := strings.ToLower(fmt.Sprintf("%v", out[i]))
		if strings.Contains(key, "agent") {
			out[i+1] = RedactName(fmt.Sprintf("%v", out[i+1]))
		}
	}
	return out
}
