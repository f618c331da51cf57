// Package models defines the domain entities shared by the hymn store, the formatters and the UI layers.
//
// The package contains three categories of types:
//
// 1. Entities:
//   - [Hymn] : a hymn with verses, derived first line and display number
//
// 2. Write-side inputs:
//   - [Candidate] : fields supplied when adding a hymn
//   - [Patch] : partial changes applied when editing a user hymn
//
// 3. Read-side projections & hand-offs:
//   - [Listing] : a hymn paired with its favorite membership
//   - [Filters] : view state (tab, category, search text) passed into queries
//   - [ExportRecord] : the serializable snapshot used for .hymn files
//   - [Notice] : a user-facing message emitted after every store operation
//
// Favorites are deliberately not a field of [Hymn]; membership is owned by the store.
package models
