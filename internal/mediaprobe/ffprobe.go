// Package mediaprobe extracts media metadata by shelling out to ffprobe.
package mediaprobe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Config holds configuration for the ffprobe wrapper.
type Config struct {
	// FFprobePath is the path to the ffprobe binary.
	// If empty, "ffprobe" will be used (assumes it's in PATH).
	FFprobePath string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		FFprobePath: "ffprobe",
	}
}

// FFprobe reads container-level metadata from local media files.
type FFprobe struct {
	config Config
}

// New creates a new ffprobe wrapper.
func New(cfg Config) *FFprobe {
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = "ffprobe"
	}
	return &FFprobe{config: cfg}
}

// Duration returns the media duration of the file at inputPath in seconds.
func (p *FFprobe) Duration(ctx context.Context, inputPath string) (float64, error) {
	if err := validateInput(inputPath); err != nil {
		return 0, err
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	}

	cmd := exec.CommandContext(ctx, p.config.FFprobePath, args...)
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("probe cancelled: %w", ctx.Err())
		}
		return 0, fmt.Errorf("ffprobe execution failed: %w", err)
	}

	return ParseDuration(string(out))
}

// ParseDuration parses ffprobe's duration output.
func ParseDuration(out string) (float64, error) {
	trimmed := strings.TrimSpace(out)
	if trimmed == "" || trimmed == "N/A" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}

	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", trimmed, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("ffprobe reported negative duration %f", seconds)
	}

	return seconds, nil
}

// validateInput checks if the input file exists and is readable.
func validateInput(inputPath string) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", inputPath)
		}
		return fmt.Errorf("failed to access input file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("input path is a directory, expected a file: %s", inputPath)
	}

	return nil
}
