package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	yes      key.Binding
	no       key.Binding
	nextTab  key.Binding
	prevTab  key.Binding
	category key.Binding
	search   key.Binding
	favorite key.Binding
	add      key.Binding
	edit     key.Binding
	remove   key.Binding
	importer key.Binding
	copy     key.Binding
	export   key.Binding
	sheet    key.Binding
	open     key.Binding
	nextFld  key.Binding
	prevFld  key.Binding
	save     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		nextTab:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		prevTab:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
		category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		remove:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		importer: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		export:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		sheet:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "lyrics/sheet")),
		open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open sheet")),
		nextFld:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		prevFld:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.nextTab, k.prevTab, k.category, k.search},
		{k.favorite, k.add, k.edit, k.remove, k.importer},
		{k.copy, k.export, k.sheet, k.open, k.quit},
	}
}
