// Package knowledge holds the static reference text about the breeder that is included in
// every directive payload.
package knowledge

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed knowledge.md
var defaultText string

// Default returns the built-in reference text.
func Default() string {
	return defaultText
}

// Load returns the contents of path, or the built-in text when path is empty.
func Load(path string) (string, error) {
	if path == "" {
		return defaultText, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read knowledge file: %w", err)
	}
	return string(data), nil
}
