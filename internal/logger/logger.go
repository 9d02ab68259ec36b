// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the name of the rotated log file inside the log directory.
const FileName = "studyplan.log"

var (
	// Logger is the global logger instance. It stays nil until Init or
	// SetOutput is called, and the helpers below are no-ops until then.
	Logger *log.Logger

	closer io.Closer
)

// Config holds logger configuration.
type Config struct {
	Debug bool
	// Dir holds the log file.
	Dir string
}

// Init points the global logger at a rotating file under cfg.Dir.
// With Debug set, records are mirrored to stderr at debug level.
func Init(cfg Config) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, FileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	var writer io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Close()
	closer = fileWriter
	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "studyplan",
	})
	return nil
}

// SetOutput replaces the global logger with one writing to w.
func SetOutput(w io.Writer, level log.Level) {
	Close()
	Logger = log.NewWithOptions(w, log.Options{Level: level, Prefix: "studyplan"})
}

// Close releases the log file, if any.
func Close() {
	if closer != nil {
		closer.Close()
		closer = nil
	}
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message.
func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message.
func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
