package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Environment variables read by EnvironmentConfig.
const (
	EnvLevel      = "YTEXTRACT_LOG_LEVEL"
	EnvFormat     = "YTEXTRACT_LOG_FORMAT"
	EnvOutput     = "YTEXTRACT_LOG_OUTPUT"
	EnvComponents = "YTEXTRACT_LOG_COMPONENTS"
	EnvTimestamp  = "YTEXTRACT_LOG_TIMESTAMP"
)

// EnvironmentConfig builds a Config from defaults overridden by environment
// variables. Invalid values are ignored.
func EnvironmentConfig() *Config {
	config := DefaultConfig()

	if v := os.Getenv(EnvLevel); v != "" {
		if level, err := ParseLevel(v); err == nil {
			config.Level = level
		}
	}
	if v := os.Getenv(EnvFormat); v != "" {
		if format, err := ParseFormat(v); err == nil {
			config.Format = format
		}
	}
	if v := os.Getenv(EnvOutput); v != "" {
		if w, err := ParseOutput(v); err == nil {
			config.Output = w
		}
	}
	if v := os.Getenv(EnvTimestamp); v != "" {
		config.Timestamp = v == "true" || v == "1"
	}
	if v := os.Getenv(EnvComponents); v != "" {
		config.Components = make(map[Component]bool)
		for _, comp := range strings.Split(v, ",") {
			comp = strings.TrimSpace(comp)
			if comp != "" {
				config.Components[Component(comp)] = true
			}
		}
	}

	return config
}

// ParseLevel parses level names such as "debug" or "WARN".
func ParseLevel(levelStr string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(levelStr))
	if s == "warning" {
		s = "warn"
	}
	if s == "" {
		return INFO, fmt.Errorf("empty level")
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return INFO, fmt.Errorf("unknown level: %s", levelStr)
	}
	return level, nil
}

// ParseFormat parses format string to Format enum
func ParseFormat(formatStr string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(formatStr)) {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "color", "colored":
		return FormatColor, nil
	default:
		return FormatText, fmt.Errorf("unknown format: %s", formatStr)
	}
}

// ParseOutput parses output string to io.Writer
func ParseOutput(outputStr string) (io.Writer, error) {
	switch strings.ToLower(outputStr) {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "null", "none":
		return io.Discard, nil
	}
	if strings.HasPrefix(outputStr, "file:") {
		filePath := strings.TrimPrefix(outputStr, "file:")
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return file, nil
	}
	return nil, fmt.Errorf("unknown output: %s", outputStr)
}
