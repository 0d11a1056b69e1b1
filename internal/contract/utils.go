package contract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color variables for stderr diagnostics.
var (
	FatalColor = color.New(color.FgRed, color.Bold) // FatalColor marks unrecoverable errors.
	WarnColor  = color.New(color.FgYellow)          // WarnColor marks recoverable problems.
	InfoColor  = color.New(color.FgCyan)            // InfoColor marks progress messages.
)

// SetColorEnabled toggles colored diagnostics. Colors stay off when stderr is not a terminal.
func SetColorEnabled(enabled bool) {
	color.NoColor = !enabled || !term.IsTerminal(int(os.Stderr.Fd()))
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = FatalColor.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err == nil {
		_, _ = WarnColor.Fprintf(os.Stderr, "Warn %s\n", msg)
		return
	}
	_, _ = WarnColor.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogInfo logs a progress message to stderr.
// Stdout is reserved for report output and the MCP stdio channel.
func LogInfo(format string, args ...any) {
	_, _ = InfoColor.Fprintf(os.Stderr, format+"\n", args...)
}

// NewLogger creates the structured JSON logger used by the HTTP transport.
func NewLogger(level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for invocation history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".launchpad_history.db"
	}
	return filepath.Join(homeDir, ".launchpad_history.db")
}
