package logging

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Buffer is a mutex-guarded byte buffer. Deferred-deletion timers log from
// their own goroutines, so test capture has to be safe for concurrent use.
type Buffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write appends p to the buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns the buffered output.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Reset clears the buffered output.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// Logger is a wrapper around the log.Logger from the charmbracelet/log package.
// Buffer is non-nil only for loggers created by the test constructors. FatalFn
// is invoked by Fatal and Fatalf after logging; tests replace it to keep fatal
// paths from exiting the process.
type Logger struct {
	*log.Logger
	Buffer  *Buffer
	FatalFn func(int)
}

var (
	logger *Logger
	once   sync.Once
)

// CreateLogger sets up the logger. It must be called before using the logger.
func CreateLogger() {
	once.Do(func() {
		// Create a logger with default settings
		baseLogger := log.New(os.Stderr)

		// Check if DEBUG environment variable is set to 1
		if os.Getenv("DEBUG") == "1" {
			// Set log options only when DEBUG is enabled
			baseLogger = log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    true,
				ReportTimestamp: true,
				Prefix:          "tmpstash",
			})

			baseLogger.SetLevel(log.DebugLevel)
		} else {
			// Use InfoLevel for normal operation without special logging options
			baseLogger.SetLevel(log.InfoLevel)
		}

		// Wrap the base logger in the custom Logger type
		logger = &Logger{Logger: baseLogger, FatalFn: os.Exit}
	})
}

// NewTestLogger returns a logger that writes into an in-memory buffer so tests
// can assert on emitted output. Fatal still exits, for subprocess-style tests.
func NewTestLogger() *Logger {
	buf := &Buffer{}
	baseLogger := log.NewWithOptions(buf, log.Options{
		ReportTimestamp: false,
	})
	baseLogger.SetLevel(log.DebugLevel)

	return &Logger{Logger: baseLogger, Buffer: buf, FatalFn: os.Exit}
}

// NewTestSafeLogger is NewTestLogger with a no-op FatalFn so fatal paths can be
// exercised in-process.
func NewTestSafeLogger() *Logger {
	l := NewTestLogger()
	l.FatalFn = func(int) {}
	return l
}

// GetOutput returns everything the test logger has written so far.
func (l *Logger) GetOutput() string {
	if l.Buffer == nil {
		return ""
	}
	return l.Buffer.String()
}

// Fatal logs at error level and then invokes FatalFn.
func (l *Logger) Fatal(msg interface{}, keyvals ...interface{}) {
	l.Logger.Error(msg, keyvals...)
	if l.FatalFn != nil {
		l.FatalFn(1)
	}
}

// Fatalf logs a formatted message at error level and then invokes FatalFn.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, args...))
	if l.FatalFn != nil {
		l.FatalFn(1)
	}
}

// With returns a child logger carrying the given key-value pairs. The test
// buffer, when present, is shared with the parent so captured output stays in
// one place.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...), Buffer: l.Buffer, FatalFn: l.FatalFn}
}

// Debug logs debug messages if debug logging is enabled.
func Debug(msg interface{}, keyvals ...interface{}) {
	ensureInitialized()
	logger.Debug(msg, keyvals...)
}

// Info logs informational messages.
func Info(msg interface{}, keyvals ...interface{}) {
	ensureInitialized()
	logger.Info(msg, keyvals...)
}

// Warn logs warning messages.
func Warn(msg interface{}, keyvals ...interface{}) {
	ensureInitialized()
	logger.Warn(msg, keyvals...)
}

// Error logs error messages.
func Error(msg interface{}, keyvals ...interface{}) {
	ensureInitialized()
	logger.Error(msg, keyvals...)
}

// Fatal logs a fatal message and exits the program.
func Fatal(msg interface{}, keyvals ...interface{}) {
	ensureInitialized()
	logger.Fatal(msg, keyvals...)
}

// GetLogger returns the Logger instance.
func GetLogger() *Logger {
	ensureInitialized()
	return logger
}

// SetTestLogger swaps the package-level logger for a test logger and keeps the
// sync.Once consumed so CreateLogger will not overwrite it.
func SetTestLogger(l *Logger) {
	once.Do(func() {})
	logger = l
}

// ResetForTest clears the package-level logger so the next CreateLogger call
// rebuilds it from scratch.
func ResetForTest() {
	logger = nil
	once = sync.Once{}
}

// EnsureInitialized exposes initialization for callers that need the package
// logger ready before first use.
func EnsureInitialized() {
	ensureInitialized()
}

// BaseLogger returns the underlying *log.Logger from the custom Logger.
func (l *Logger) BaseLogger() *log.Logger {
	return l.Logger
}

// ensureInitialized ensures the logger is initialized before use.
func ensureInitialized() {
	if logger == nil {
		CreateLogger()
	}
}
