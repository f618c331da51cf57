// Package tasks runs long operations over the hymn collection with real-time progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] writes every given hymn to its own file using a worker pool:
//   - Files are named "NNN_Title.ext" so the directory listing follows hymnal order
//   - Failed hymns are recorded in the result and do not stop the remaining exports
//   - An export_manifest.json summarizing the run is written last
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel.
// Updates use select with default so a slow or absent reader never blocks an export.
package tasks
