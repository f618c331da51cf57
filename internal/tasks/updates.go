package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	PrepareExport Phase = iota
	ExportHymns
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case PrepareExport:
		return "prepare_export"
	case ExportHymns:
		return "export_hymns"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func prepareExportUpdate(total int, dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PrepareExport,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Exporting %d hymns to %s...", total, dir),
	}
}

func exportCompletedUpdate(step, total int, res HymnExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportHymns,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, res.Title),
		Data:    res,
	}
}

func exportFailedUpdate(step, total int, res HymnExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportHymns,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Title, res.Err),
		Data:    res,
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest %s...", path),
	}
}
