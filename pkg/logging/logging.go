package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	appDirName  = "dfm"
	logFileName = "dfm.log"
)

// console is where progress logging goes, kept off stdout so the run
// summary stays parseable. Tests replace it.
var console io.Writer = os.Stderr

// openLogFile is the file SetupLogger writes to, closed on reconfiguration
var openLogFile io.Closer

// SetupLogger configures the global logger based on the debug level.
// Output goes to the console and, when logFile is not empty, to that file.
func SetupLogger(verbosity int, logFile string) {
	_ = CloseLogFile()
	zerolog.SetGlobalLevel(LevelFor(verbosity))

	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    false,
	}

	writers := []io.Writer{consoleWriter}

	var fileErr error
	if logFile != "" {
		var logFileHandle *os.File
		logFileHandle, fileErr = setupLogFile(logFile)
		if fileErr == nil {
			writers = append(writers, logFileHandle)
			openLogFile = logFileHandle
		}
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	// Report the file problem with the new logger so it reaches the console
	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// CloseLogFile closes the log file opened by SetupLogger, if any. Later log
// lines go to the console only.
func CloseLogFile() error {
	if openLogFile == nil {
		return nil
	}
	err := openLogFile.Close()
	openLogFile = nil
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	return err
}

// LevelFor maps the repeated --debug count to a log level
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// DefaultLogFilePath returns $XDG_STATE_HOME/dfm/dfm.log
func DefaultLogFilePath() string {
	return filepath.Join(xdg.StateHome, appDirName, logFileName)
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
