package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Hymn collection errors
	ErrValidation   = fmt.Errorf("validation failed")
	ErrImmutable    = fmt.Errorf("built-in hymns cannot be changed")
	ErrNotFound     = fmt.Errorf("hymn not found")
	ErrImportFormat = fmt.Errorf("invalid hymn file format")

	// Collaborator errors
	ErrNoMusicSheet = fmt.Errorf("no music sheet available")
	ErrClipboard    = fmt.Errorf("clipboard unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
