package shared

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestSheetURL(t *testing.T) {
	tc := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{name: "https url", ref: "https://example.com/sheets/amazing-grace.png", want: "https://example.com/sheets/amazing-grace.png"},
		{name: "surrounding whitespace", ref: "  http://example.com/a.png ", want: "http://example.com/a.png"},
		{name: "empty reference", ref: "   ", wantErr: ErrNoMusicSheet},
		{name: "unsupported scheme", ref: "ftp://example.com/a.png", wantErr: ErrInvalidArgument},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SheetURL(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("SheetURL() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("local path becomes file url", func(t *testing.T) {
		got, err := SheetURL("sheets/slane.png")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, "sheets/slane.png") {
			t.Errorf("expected file url, got %s", got)
		}
	})
}

func TestOpenSheet(t *testing.T) {
	origRuntime, origStart := getRuntime, startCommand
	t.Cleanup(func() { getRuntime, startCommand = origRuntime, origStart })

	var started *exec.Cmd
	startCommand = func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}

	t.Run("linux uses xdg-open", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		if err := OpenSheet("https://example.com/a.png"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if started == nil || started.Args[0] != "xdg-open" {
			t.Errorf("expected xdg-open to be started, got %v", started)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenSheet("https://example.com/a.png"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})

	t.Run("missing sheet", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		if err := OpenSheet(""); !errors.Is(err, ErrNoMusicSheet) {
			t.Errorf("expected ErrNoMusicSheet, got %v", err)
		}
	})

	t.Run("start failure is wrapped", func(t *testing.T) {
		getRuntime = func() string { return "darwin" }
		startCommand = func(*exec.Cmd) error { return errors.New("boom") }
		if err := OpenSheet("https://example.com/a.png"); err == nil || !strings.Contains(err.Error(), "failed to open browser") {
			t.Errorf("expected wrapped start error, got %v", err)
		}
	})
}

func TestCopyToClipboard(t *testing.T) {
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	var copied string
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}

	if err := CopyToClipboard("Amazing Grace"); err != nil {
		// Headless environments report clipboard.Unsupported.
		if errors.Is(err, ErrClipboard) {
			t.Skip("clipboard unsupported on this platform")
		}
		t.Fatalf("expected no error, got %v", err)
	}
	if copied != "Amazing Grace" {
		t.Errorf("expected clipboard text to be copied, got %q", copied)
	}

	writeClipboard = func(string) error { return errors.New("no display") }
	if err := CopyToClipboard("x"); !errors.Is(err, ErrClipboard) {
		t.Errorf("expected ErrClipboard, got %v", err)
	}
}
