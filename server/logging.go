package server

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// SetupLogging sends slog output to stdout and to <dir>/app.log. The
// returned file must be closed by the caller.
func SetupLogging(dir, level string) (*slog.Logger, *os.File, error) {
	// Create logs directory if it doesn't exist
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, nil, err
	}

	logFileName := filepath.Join(dir, "app.log")
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = io.MultiWriter(os.Stdout, logFile)
	// Running under air already captures stdout
	if os.Getenv("AIR_RESTART_COUNT") != "" {
		out = logFile
	}

	lvl, err := parseLevel(level)
	if err != nil {
		logFile.Close()
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}))
	slog.SetDefault(logger)
	return logger, logFile, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", level)
}
