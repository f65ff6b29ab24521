package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultLogDir is the directory under $HOME for log files
	DefaultLogDir = ".local/state/etherwm"
	// DefaultLogFile is the log file name
	DefaultLogFile = "etherwm.log"
)

var (
	// Logger is silent until Init or SetOutput is called
	Logger  = zerolog.Nop()
	logFile *os.File
)

// timestampHook adds timestamp at the end of each log event
type timestampHook struct{}

func (h timestampHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Time("ts", time.Now())
}

// Init opens the log file under ~/.local/state/etherwm and routes Logger to it
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return InitFile(filepath.Join(home, DefaultLogDir, DefaultLogFile))
}

// InitFile routes Logger to an explicit file path
func InitFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	Close()
	logFile = f

	SetOutput(logFile)
	return nil
}

// SetOutput routes Logger to w (tests, console mode)
func SetOutput(w io.Writer) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.MessageFieldName = "msg"
	Logger = zerolog.New(w).Hook(timestampHook{})
}

// SetConsole routes Logger to stderr in human-readable form
func SetConsole() {
	SetOutput(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// SetDebug toggles debug-level output
func SetDebug(enabled bool) {
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Close closes the log file
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Debug returns a debug level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info returns an info level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn returns a warn level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error returns an error level event
func Error() *zerolog.Event {
	return Logger.Error()
}
