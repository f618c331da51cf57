package tasks

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/hymns/internal/formatter"
	"github.com/desertthunder/hymns/internal/models"
	"github.com/desertthunder/hymns/internal/shared"
)

// ManifestName is the file written next to the exported hymns.
const ManifestName = "export_manifest.json"

// BulkExportOpts contains configuration for bulk hymn exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format: hymn, md, text
	Extension  string           // Extension for the hymn format (default: .hymn)
	OutputDir  string           // Output directory (default: hymns_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 4, max: 8)
}

// BulkExport exports every record to its own file with a pool of workers.
//
// A hymn that fails to export is reported in the result and the run continues. The manifest is written
// once all workers are done, sorted by hymn number.
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	records []models.ExportRecord,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no hymns to export", shared.ErrInvalidArgument)
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatHymn
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("hymns_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		Format:          opts.Format,
		TotalHymns:      len(records),
		OutputDirectory: opts.OutputDir,
		Results:         make([]HymnExportResult, 0, len(records)),
	}

	e.sendProgress(prog, prepareExportUpdate(len(records), opts.OutputDir))

	jobs := make(chan models.ExportRecord, len(records))
	results := make(chan HymnExportResult, len(records))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for _, r := range records {
			select {
			case <-ctx.Done():
				return
			case jobs <- r:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(records), res))
		} else {
			result.FailedExports++
			e.logger.Warn("hymn export failed", "id", res.ID, "title", res.Title, "error", res.Err)
			e.sendProgress(prog, exportFailedUpdate(completed, len(records), res))
		}
	}

	slices.SortFunc(result.Results, func(a, b HymnExportResult) int {
		return cmp.Or(cmp.Compare(a.Number, b.Number), cmp.Compare(a.ID, b.ID))
	})

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export cancelled after %d of %d hymns: %w", completed, len(records), err)
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestName)
	e.sendProgress(prog, manifestUpdate(manifestPath))
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.logger.Info("bulk export finished",
		"dir", opts.OutputDir, "format", opts.Format,
		"exported", result.SuccessfulExports, "failed", result.FailedExports)
	return result, nil
}

// exportWorker is a worker goroutine that exports hymns from the jobs channel.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan models.ExportRecord,
	results chan<- HymnExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSingleHymn(job, opts)
	}
}

// exportSingleHymn writes one hymn. The number prefix keeps names unique across hymns sharing a title.
func (e *Exporter) exportSingleHymn(r models.ExportRecord, opts BulkExportOpts) HymnExportResult {
	result := HymnExportResult{ID: r.ID, Number: r.Number, Title: r.Title}

	name := fmt.Sprintf("%03d_%s", r.Number, formatter.Filename(r.Title, formatter.Extension(opts.Format, opts.Extension)))
	path, err := formatter.WriteExportAs(r, opts.OutputDir, name, opts.Format)
	if err != nil {
		result.Err = err
		result.Message = err.Error()
		return result
	}

	e.logger.Debug("hymn exported", "id", r.ID, "path", path)
	result.File = path
	result.Success = true
	return result
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
