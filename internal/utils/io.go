package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadStdin reads all data from standard input.
func ReadStdin() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading from stdin: %w", err)
	}
	return data, nil
}

// ReadStdinLine reads a single line from standard input, trimming the
// trailing newline. Used for piped passphrases.
func ReadStdinLine() (string, error) {
	data, err := ReadStdin()
	if err != nil {
		return "", err
	}
	line := strings.TrimRight(string(data), "\r\n")
	return line, nil
}
