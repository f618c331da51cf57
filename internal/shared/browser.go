package shared

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var getRuntime = func() string { return runtime.GOOS }

// startCommand is swapped out in tests.
var startCommand = func(cmd *exec.Cmd) error { return cmd.Start() }

// SheetURL resolves a music sheet reference into something a browser can open.
//
// Remote references must use http or https. Anything without a scheme is treated as a local file path.
func SheetURL(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNoMusicSheet
	}

	u, err := url.Parse(ref)
	if err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		switch u.Scheme {
		case "http", "https", "file":
			return u.String(), nil
		default:
			return "", fmt.Errorf("%w: unsupported sheet scheme %q", ErrInvalidArgument, u.Scheme)
		}
	}

	abs, err := filepath.Abs(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// OpenSheet opens a music sheet reference in the default system browser.
//
// Supports macOS, Linux, and Windows platforms.
func OpenSheet(ref string) error {
	target, err := SheetURL(ref)
	if err != nil {
		return err
	}

	var cmd *exec.Cmd
	rt := getRuntime()
	switch rt {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", target)
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := startCommand(cmd); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
