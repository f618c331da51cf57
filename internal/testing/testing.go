// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/hymns/internal/models"
)

// SampleHymns returns a small built-in set: two hymns with distinct categories, one with a sheet.
func SampleHymns() []models.Hymn {
	return []models.Hymn{
		{
			ID:       1,
			Title:    "Amazing Grace",
			Author:   "John Newton",
			Category: "Grace",
			Tune:     "New Britain",
			Lyrics: []string{
				"Amazing grace, how sweet the sound\nThat saved a wretch like me",
				"'Twas grace that taught my heart to fear\nAnd grace my fears relieved",
			},
			MusicSheetURL: "https://example.com/sheets/amazing-grace.png",
		},
		{
			ID:       3,
			Title:    "Holy, Holy, Holy",
			Author:   "Reginald Heber",
			Category: "Worship",
			Lyrics:   []string{"Holy, holy, holy! Lord God Almighty!\nEarly in the morning our song shall rise to Thee"},
		},
	}
}

// RecordingNotifier collects every notice it receives.
type RecordingNotifier struct {
	Notices []models.Notice
}

func (r *RecordingNotifier) Notify(n models.Notice) {
	r.Notices = append(r.Notices, n)
}

// Titles returns the titles of the recorded notices in order.
func (r *RecordingNotifier) Titles() []string {
	titles := make([]string, len(r.Notices))
	for i, n := range r.Notices {
		titles[i] = n.Title
	}
	return titles
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MustWriteFile writes content to name inside dir and returns the full path.
func MustWriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
