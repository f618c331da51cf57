// Package store owns the session's hymn collection: the immutable built-in hymns, the hymns added during
// the session and the favorites relation between them.
//
// # Operations
//
// Every mutation validates first and commits second, so a rejected call never leaves partial state:
//
//  1. [Store.Add] : validate a [models.Candidate], assign a fresh id, append to the user hymns
//  2. [Store.Edit] : merge a [models.Patch] into a user hymn (built-in hymns are rejected)
//  3. [Store.Delete] : remove a user hymn and its favorite membership
//  4. [Store.ToggleFavorite] : flip favorite membership for any id
//  5. [Store.Import] / [Store.Export] : JSON hand-off with other devices
//
// Reads go through [Store.Query], which applies the favorites tab, the category and the search text in
// that order over the combined, alphabetically renumbered collection (see [Renumber]).
//
// # Notices
//
// Each mutation, successful or not, emits a [models.Notice] through the configured [Notifier]. The CLI logs
// them; the TUI shows the latest one in its status line.
//
// # Errors
//
// Failures wrap the sentinel errors from the shared package and can be matched with [errors.Is]:
//   - [shared.ErrValidation] : missing title, author or category, unknown category, no verses
//   - [shared.ErrImmutable] : edit or delete of a built-in hymn
//   - [shared.ErrNotFound] : the id is neither built-in nor user added
//   - [shared.ErrImportFormat] : malformed import payload
//
// A Store is not safe for concurrent use.
package store
