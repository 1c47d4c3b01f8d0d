package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadStdin reads a secret value piped on stdin.
// A single trailing newline (as produced by echo) is stripped.
// Returns an error if stdin is a terminal (no piped data), empty, or cannot be read.
func ReadStdin() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat stdin: %w", err)
	}

	// If ModeCharDevice is set, stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no data provided on stdin (hint: pipe the key value to this command)")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}

	value := strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
	if value == "" {
		return "", fmt.Errorf("stdin is empty")
	}

	return value, nil
}
