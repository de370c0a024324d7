package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the updater configuration for a single invocation. Fields are
// immutable once main has merged flags, environment, and config file.
type Config struct {
	Processes   []string      // Executable names to terminate before copying
	Input       string        // Staged update payload directory
	Output      string        // Application resource directory
	App         string        // Application executable to relaunch
	LogFile     string        // Log file path; empty means alongside the updater binary
	Ignore      []string      // Ignore patterns, relative to Input
	KillTimeout time.Duration // How long to wait for terminated processes to exit
	LogLevel    string        // Logging level: debug, info, warn, error
	DryRun      bool          // If true, log planned actions without doing them
	Notify      bool          // If true, send a desktop notification when done
	Detach      bool          // If true, re-fork so the spawning app can exit
}

// SplitList splits a comma-separated flag value into trimmed, non-empty
// entries.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MergeLists flattens slice-flag values that may themselves be
// comma-separated.
func MergeLists(values []string) []string {
	var merged []string
	for _, v := range values {
		merged = append(merged, SplitList(v)...)
	}
	return merged
}

// Validate checks everything that must hold before any side effect happens.
// An empty process list is allowed; the terminate phase is skipped then.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input directory is required")
	}
	info, err := os.Stat(c.Input)
	if err != nil {
		return fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %s is not a directory", c.Input)
	}
	if c.Output == "" {
		return errors.New("output directory is required")
	}
	if c.App == "" {
		return errors.New("application executable path is required")
	}
	return nil
}
