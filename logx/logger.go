package logx

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// OutputFormat defines the log output format
type OutputFormat string

const (
	FormatConsole    OutputFormat = "console"
	FormatCloudWatch OutputFormat = "cloudwatch"
	FormatJSON       OutputFormat = "json"
)

// ParseFormat maps a LOG_FORMAT value to an OutputFormat, defaulting to console
func ParseFormat(s string) OutputFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "cloudwatch":
		return FormatCloudWatch
	default:
		return FormatConsole
	}
}

// Logger represents a logger instance
type Logger struct {
	mu         *sync.Mutex
	level      Level
	out        io.Writer
	prefix     string
	showCaller bool
	colored    bool
	format     OutputFormat
	now        func() time.Time
}

// New creates a new logger with default settings
func New() *Logger {
	return &Logger{
		mu:         &sync.Mutex{},
		level:      InfoLevel,
		out:        os.Stdout,
		showCaller: true,
		colored:    true,
		format:     FormatConsole,
		now:        time.Now,
	}
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// SetOutput sets the output destination
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// SetPrefix sets a prefix for all log messages
func (l *Logger) SetPrefix(prefix string) {
	l.prefix = prefix
}

// SetShowCaller enables or disables showing caller information
func (l *Logger) SetShowCaller(show bool) {
	l.showCaller = show
}

// SetColored enables or disables colored output
func (l *Logger) SetColored(colored bool) {
	l.colored = colored
}

// SetFormat sets the output format. CloudWatch and JSON never carry colors.
func (l *Logger) SetFormat(format OutputFormat) {
	l.format = format
	if format == FormatCloudWatch || format == FormatJSON {
		l.colored = false
	}
}

// WithPrefix returns a copy of the logger writing to the same output with a
// different prefix
func (l *Logger) WithPrefix(prefix string) *Logger {
	cp := *l
	cp.prefix = prefix
	return &cp
}

// IsLevelEnabled checks if a level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level >= l.level && l.level != OffLevel
}

// findCaller finds the first caller outside of the logx package
func (l *Logger) findCaller() string {
	for i := 2; i < 15; i++ {
		_, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if filepath.Base(filepath.Dir(file)) == "logx" && !strings.HasSuffix(file, "_test.go") {
			continue
		}
		return fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	return ""
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if !l.IsLevelEnabled(level) {
		return
	}

	message := msg
	if len(args) > 0 {
		message = fmt.Sprintf(msg, args...)
	}

	var caller string
	if l.showCaller {
		caller = l.findCaller()
	}

	var line string
	switch l.format {
	case FormatJSON:
		line = l.formatJSON(level, caller, message)
	case FormatCloudWatch:
		line = l.formatText(level, caller, message, "2006-01-02T15:04:05.000Z", level.String())
	default:
		levelStr := level.String()
		if l.colored {
			levelStr = level.colorize()
		}
		line = l.formatText(level, caller, message, "2006-01-02 15:04:05", levelStr)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

func (l *Logger) formatText(level Level, caller, message, layout, levelStr string) string {
	timestamp := l.now().UTC().Format(layout)
	if l.format == FormatConsole {
		timestamp = l.now().Format(layout)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", timestamp)
	if l.prefix != "" {
		fmt.Fprintf(&b, " %s", l.prefix)
	}
	fmt.Fprintf(&b, " [%s]", levelStr)
	if caller != "" {
		fmt.Fprintf(&b, " %s", caller)
	}
	fmt.Fprintf(&b, ": %s", message)
	return b.String()
}

func (l *Logger) formatJSON(level Level, caller, message string) string {
	entry := map[string]any{
		"timestamp": l.now().UTC().Format(time.RFC3339),
		"level":     level.String(),
		"message":   message,
	}
	if l.prefix != "" {
		entry["prefix"] = l.prefix
	}
	if caller != "" {
		entry["caller"] = caller
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"level":"ERROR","message":%q}`, err.Error())
	}
	return string(data)
}

// Trace logs a message at trace level
func (l *Logger) Trace(msg string, args ...any) {
	l.log(TraceLevel, msg, args...)
}

// Debug logs a message at debug level
func (l *Logger) Debug(msg string, args ...any) {
	l.log(DebugLevel, msg, args...)
}

// Info logs a message at info level
func (l *Logger) Info(msg string, args ...any) {
	l.log(InfoLevel, msg, args...)
}

// Warn logs a message at warn level
func (l *Logger) Warn(msg string, args ...any) {
	l.log(WarnLevel, msg, args...)
}

// Error logs a message at error level
func (l *Logger) Error(msg string, args ...any) {
	l.log(ErrorLevel, msg, args...)
}

// Fatal logs a message at error level and exits
func (l *Logger) Fatal(msg string, args ...any) {
	l.log(ErrorLevel, msg, args...)
	os.Exit(1)
}
