package shared

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// writeClipboard is swapped out in tests; the system clipboard is not available in CI.
var writeClipboard = clipboard.WriteAll

// CopyToClipboard places text on the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return ErrClipboard
	}
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}
