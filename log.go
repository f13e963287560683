package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
)

// logFileEnv overrides where the CLI writes its log.
const logFileEnv = "POSTFMT_LOG_FILE"

func getLogFilePath() (string, error) {
	if p := os.Getenv(logFileEnv); p != "" {
		return p, nil
	}
	dir, err := gap.NewScope(gap.User, "postfmt").CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "postfmt.log"), nil
}

// setupLog sends log output to a file so it never mixes with rendered posts.
// Logging is silently disabled when the file cannot be opened.
func setupLog() (func() error, error) {
	logFile, err := getLogFilePath()
	if err != nil {
		return nil, err
	}
	noop := func() error { return nil }
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return noop, nil
	}
	f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return noop, nil
	}
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	log.SetPrefix("postfmt")
	return f.Close, nil
}
