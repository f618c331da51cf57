package tasks

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/hymns/internal/formatter"
	"github.com/desertthunder/hymns/internal/shared"
)

// HymnExportResult is the outcome of exporting a single hymn.
type HymnExportResult struct {
	ID      int64  `json:"id"`
	Number  int    `json:"number"`
	Title   string `json:"title"`
	File    string `json:"file,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"error,omitempty"` // Error text kept for the manifest
	Err     error  `json:"-"`
}

// BulkExportResult summarizes a bulk export and doubles as the manifest contents.
type BulkExportResult struct {
	Format            formatter.Format   `json:"format"`
	TotalHymns        int                `json:"total_hymns"`
	SuccessfulExports int                `json:"successful_exports"`
	FailedExports     int                `json:"failed_exports"`
	OutputDirectory   string             `json:"output_directory"`
	ManifestPath      string             `json:"-"`
	Results           []HymnExportResult `json:"results"`
}

// Exporter writes hymns to disk and reports progress while doing so.
type Exporter struct {
	logger *log.Logger
}

// NewExporter creates an Exporter. A nil logger uses the default stderr logger.
func NewExporter(logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Exporter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full, skip this update
	}
}
