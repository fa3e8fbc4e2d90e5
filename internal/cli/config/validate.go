package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

var validOutputs = []string{"auto", "text", "markdown", "md", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(validOutputs, strings.ToLower(c.OutputFormat)) {
		return fmt.Errorf("invalid output format %q (use auto, text, markdown or json)", c.OutputFormat)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if strings.TrimSpace(c.BOMOutput) == "" {
		return fmt.Errorf("bom_output must not be empty")
	}
	if strings.TrimSpace(c.POSOutput) == "" {
		return fmt.Errorf("pos_output must not be empty")
	}
	return nil
}

// SlogLevel returns the effective log level. Verbose forces debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", s)
	}
}
