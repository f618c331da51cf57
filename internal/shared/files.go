package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ImportExtensions lists the file extensions accepted for hymn imports.
var ImportExtensions = []string{".hymn", ".json"}

// ReadHymnFile verifies that path names a regular .hymn or .json file and returns its contents.
//
// A leading ~ is expanded to the user's home directory.
func ReadHymnFile(path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: file path is required", ErrMissingArgument)
	}

	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, rest)
	}

	if ext := strings.ToLower(filepath.Ext(path)); !slices.Contains(ImportExtensions, ext) {
		return nil, fmt.Errorf("%w: %s is not a .hymn or .json file", ErrImportFormat, filepath.Base(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidArgument, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
