// Package ui implements an interactive terminal hymnal using bubbletea's Elm architecture.
//
// The TUI is organised in tabs (home, browse, favorites, add, settings) and views:
//  1. [ListView] : Recently added hymns, or the browse/favorites list filtered by category and search
//  2. [DetailView] : Lyrics, or the music sheet reference, of one hymn
//  3. [ConfirmDeleteView] : Confirm removal of a user hymn
//  4. [ImportView] : Prompt for a .hymn or .json file to import
//  5. [FormView] : Add a hymn or edit one added this session
//
// All collection changes go through [store.Store] from Update; its notices are read back from a
// [store.NoticeLog] and rendered in the status line. Clipboard, file and browser work runs in tea.Cmds
// whose results come back through the Msg union type.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
