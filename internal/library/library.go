// Package library provides the built-in hymns loaded once at startup.
//
// The default set is embedded as YAML. An alternate library can be read from a YAML or JSON file;
// JSON files use the same field names as exported .hymn files.
package library

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/hymns/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed hymns.yaml
var embedded []byte

// Default returns the embedded built-in hymns.
func Default() []models.Hymn {
	hymns, err := decodeYAML(embedded)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded hymn library: %v", err))
	}
	return hymns
}

// Load reads a library file, choosing the decoder by extension (.json, otherwise YAML).
//
// An empty path returns [Default].
func Load(path string) ([]models.Hymn, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	var hymns []models.Hymn
	if strings.EqualFold(filepath.Ext(path), ".json") {
		hymns, err = decodeJSON(data)
	} else {
		hymns, err = decodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse library %s: %w", path, err)
	}
	return hymns, nil
}

func decodeYAML(data []byte) ([]models.Hymn, error) {
	var hymns []models.Hymn
	if err := yaml.Unmarshal(data, &hymns); err != nil {
		return nil, err
	}
	return withFirstLines(hymns), nil
}

func decodeJSON(data []byte) ([]models.Hymn, error) {
	var hymns []models.Hymn
	if err := json.Unmarshal(data, &hymns); err != nil {
		return nil, err
	}
	for i := range hymns {
		hymns[i].AddedAt = nil
	}
	return withFirstLines(hymns), nil
}

func withFirstLines(hymns []models.Hymn) []models.Hymn {
	for i := range hymns {
		if hymns[i].FirstLine == "" {
			hymns[i].FirstLine = models.FirstLineOf(hymns[i].Lyrics)
		}
	}
	return hymns
}
