package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
)

// setupLog configures logging. By default everything below warnings is
// discarded so log lines never bleed into the prompt; set SAYLINE_LOGFILE
// (and DEBUG for stage-by-stage detail) to capture a session.
func setupLog() (func() error, error) {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)

	logFile := os.Getenv("SAYLINE_LOGFILE")
	if logFile == "" {
		if os.Getenv("DEBUG") != "" {
			log.SetLevel(log.DebugLevel)
		}
		return func() error { return nil }, nil
	}

	path, err := homedir.Expand(logFile)
	if err != nil {
		return nil, fmt.Errorf("unable to expand log file path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}

	log.SetOutput(io.Writer(f))
	log.SetLevel(log.DebugLevel)
	log.SetReportTimestamp(true)
	return f.Close, nil
}
