package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// readText returns the annotation text given inline or through a file.
// A file name of "-" reads standard input.
func readText(text, file string, stdin io.Reader) (string, error) {
	switch {
	case text != "" && file != "":
		return "", errors.New("--text and --text-file are mutually exclusive")
	case text != "":
		return text, nil
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	default:
		return "", errors.New("no annotation text: use --text or --text-file")
	}
}
