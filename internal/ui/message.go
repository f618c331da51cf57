package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents the results of side effects run outside Update (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgImportRead MsgKind = iota
	MsgExported
	MsgCopied
	MsgSheetOpened
)

type importRead struct {
	data []byte
	err  error
}

type exported struct {
	title string
	path  string
	err   error
}

type copied struct {
	title string
	err   error
}

// importReadMsg is the constructor for [MsgImportRead]
func importReadMsg(data []byte, err error) Msg {
	return Msg{kind: MsgImportRead, data: importRead{data: data, err: err}}
}

// exportedMsg is the constructor for [MsgExported]
func exportedMsg(title, path string, err error) Msg {
	return Msg{kind: MsgExported, data: exported{title: title, path: path, err: err}}
}

// copiedMsg is the constructor for [MsgCopied]
func copiedMsg(title string, err error) Msg {
	return Msg{kind: MsgCopied, data: copied{title: title, err: err}}
}

// sheetOpenedMsg is the constructor for [MsgSheetOpened]
func sheetOpenedMsg(err error) Msg {
	return Msg{kind: MsgSheetOpened, data: err}
}
