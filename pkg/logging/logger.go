/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Logging system for alfbridge. Structured logrus output to the console and
to a timestamped file per run, with learning-specific helpers for runs, equivalence
checks and statistics.
*/

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warn"
	LogLevelError   LogLevel = "error"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON    LogFormat = "json"
	LogFormatText    LogFormat = "text"
	LogFormatCustom  LogFormat = "custom"
	LogFormatLearner LogFormat = "learner"
)

const filePrefix = "alfbridge_"

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level     LogLevel  `json:"level" mapstructure:"level"`
	Format    LogFormat `json:"format" mapstructure:"format"`
	OutputDir string    `json:"output_dir" mapstructure:"output_dir"` // empty disables file output
	MaxFiles  int       `json:"max_files" mapstructure:"max_files"`
	Timestamp bool      `json:"timestamp" mapstructure:"timestamp"`
	Caller    bool      `json:"caller" mapstructure:"caller"`
	Colors    bool      `json:"colors" mapstructure:"colors"`

	// Console overrides stdout, mostly for tests
	Console io.Writer `json:"-" mapstructure:"-"`
}

// DefaultLoggerConfig returns console-only text logging at info level
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:     LogLevelInfo,
		Format:    LogFormatText,
		MaxFiles:  10,
		Timestamp: true,
		Colors:    true,
	}
}

// Validate checks the LoggerConfig for invalid values
func (c *LoggerConfig) Validate() error {
	if c.OutputDir != "" && c.MaxFiles <= 0 {
		return fmt.Errorf("max_files must be positive")
	}
	switch c.Format {
	case LogFormatJSON, LogFormatText, LogFormatCustom, LogFormatLearner:
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	switch c.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
	default:
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

type queued struct {
	level  logrus.Level
	msg    string
	fields logrus.Fields
}

// Logger wraps a logrus logger. The map-style helpers go through a buffered
// queue that Close drains.
type Logger struct {
	config  *LoggerConfig
	logger  *logrus.Logger
	console io.Writer
	file    *os.File
	logPath string
	started time.Time

	queue     chan queued
	drained   chan struct{}
	closeOnce sync.Once
	qmu       sync.RWMutex
	closed    bool
}

// NewLogger creates a new logger instance. A nil config uses DefaultLoggerConfig.
func NewLogger(config *LoggerConfig) (*Logger, error) {
	if config == nil {
		config = DefaultLoggerConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	l := &Logger{
		config:  config,
		logger:  logrus.New(),
		started: time.Now(),
		queue:   make(chan queued, 1024),
		drained: make(chan struct{}),
	}

	level, err := logrus.ParseLevel(string(config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.logger.SetLevel(level)
	l.logger.SetReportCaller(config.Caller)
	l.logger.SetFormatter(newFormatter(config))

	console := config.Console
	if console == nil {
		console = os.Stdout
	}
	l.console = console
	l.logger.SetOutput(console)
	if err := l.openLogFile(console); err != nil {
		return nil, err
	}

	go l.drain()
	return l, nil
}

func newFormatter(config *LoggerConfig) logrus.Formatter {
	callerName := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}
	custom := CustomFormatter{
		Timestamp: config.Timestamp,
		Caller:    config.Caller,
		Colors:    config.Colors,
	}

	switch config.Format {
	case LogFormatJSON:
		return &logrus.JSONFormatter{TimestampFormat: time.RFC3339, CallerPrettyfier: callerName}
	case LogFormatCustom:
		return &custom
	case LogFormatLearner:
		return &LearnerFormatter{CustomFormatter: custom}
	default:
		return &logrus.TextFormatter{
			FullTimestamp:    config.Timestamp,
			TimestampFormat:  time.RFC3339,
			ForceColors:      config.Colors,
			DisableColors:    !config.Colors,
			CallerPrettyfier: callerName,
		}
	}
}

// openLogFile tees output into <OutputDir>/alfbridge_<start>.log
func (l *Logger) openLogFile(console io.Writer) error {
	dir := l.config.OutputDir
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	name := filePrefix + l.started.Format("2006-01-02_15-04-05") + ".log"
	l.logPath = filepath.Join(dir, name)
	file, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.file = file
	l.logger.SetOutput(io.MultiWriter(console, file))

	l.logger.WithFields(logrus.Fields{
		"log_file": l.logPath,
		"level":    l.config.Level,
		"format":   l.config.Format,
	}).Debug("File logging enabled")
	return nil
}

// prune removes the oldest log files beyond MaxFiles
func (l *Logger) prune() error {
	if l.config.OutputDir == "" {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(l.config.OutputDir, filePrefix+"*.log"))
	if err != nil || len(files) <= l.config.MaxFiles {
		return err
	}

	// File names embed the start time, so lexical order is age order.
	sort.Strings(files)
	for _, f := range files[:len(files)-l.config.MaxFiles] {
		if err := os.Remove(f); err != nil {
			return err
		}
	}
	return nil
}

func (l *Logger) drain() {
	defer close(l.drained)
	for e := range l.queue {
		l.logger.WithFields(e.fields).Log(e.level, e.msg)
	}
}

// with merges extra into fields without modifying the caller's map
func with(fields map[string]interface{}, extra logrus.Fields) logrus.Fields {
	out := make(logrus.Fields, len(fields)+len(extra))
	for k, v := range fields {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// LogRun logs the start of a learning run
func (l *Logger) LogRun(runID, algorithm string, alphabetSize int, fields map[string]interface{}) {
	l.logger.WithFields(with(fields, logrus.Fields{
		"run_id":        runID,
		"algorithm":     algorithm,
		"alphabet_size": alphabetSize,
	})).Info("Learning run started")
}

// LogEquivalence logs the outcome of one equivalence check. An empty
// counterexample means the hypothesis held.
func (l *Logger) LogEquivalence(runID string, hypothesisSize int, counterexample string, fields map[string]interface{}) {
	entry := l.logger.WithFields(with(fields, logrus.Fields{
		"run_id":          runID,
		"hypothesis_size": hypothesisSize,
	}))
	if counterexample == "" {
		entry.Info("Hypothesis passed equivalence check")
		return
	}
	entry.WithField("counterexample", counterexample).Info("Counterexample found")
}

// LogStats logs query and round counters for a run
func (l *Logger) LogStats(queries, batches int64, rounds int, fields map[string]interface{}) {
	l.logger.WithFields(with(fields, logrus.Fields{
		"queries": queries,
		"batches": batches,
		"rounds":  rounds,
		"uptime":  time.Since(l.started),
	})).Info("Statistics update")
}

// Close drains queued entries, closes the log file and prunes old files.
// Repeated calls are no-ops.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.qmu.Lock()
		l.closed = true
		close(l.queue)
		l.qmu.Unlock()
		<-l.drained
		if l.file != nil {
			l.logger.SetOutput(l.console)
			l.file.Close()
		}
		if perr := l.prune(); perr != nil {
			err = fmt.Errorf("failed to prune log files: %w", perr)
		}
	})
	return err
}

// GetLogger returns the underlying logrus logger
func (l *Logger) GetLogger() *logrus.Logger {
	return l.logger
}

// LogPath returns the current log file, or "" when file output is disabled
func (l *Logger) LogPath() string {
	return l.logPath
}

// enqueue logs directly once the queue is closed
func (l *Logger) enqueue(level logrus.Level, msg string, fields map[string]interface{}) {
	l.qmu.RLock()
	defer l.qmu.RUnlock()
	if l.closed {
		l.logger.WithFields(fields).Log(level, msg)
		return
	}
	l.queue <- queued{level: level, msg: msg, fields: fields}
}

// Debug queues a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.enqueue(logrus.DebugLevel, msg, fields)
}

// Info queues an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.enqueue(logrus.InfoLevel, msg, fields)
}

// Warning queues a warning message
func (l *Logger) Warning(msg string, fields map[string]interface{}) {
	l.enqueue(logrus.WarnLevel, msg, fields)
}

// Error queues an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.enqueue(logrus.ErrorLevel, msg, fields)
}
