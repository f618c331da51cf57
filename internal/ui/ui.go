package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/hymns/internal/formatter"
	"github.com/desertthunder/hymns/internal/models"
	"github.com/desertthunder/hymns/internal/shared"
	"github.com/desertthunder/hymns/internal/store"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	DetailView
	ConfirmDeleteView
	ImportView
	FormView
)

// Model represents the TUI application state.
type Model struct {
	store      *store.Store
	notices    *store.NoticeLog
	config     *shared.Config
	view       ViewState
	returnTo   ViewState
	tab        models.Tab
	category   int
	search     textinput.Model
	searching  bool
	hymns      list.Model
	selected   int64
	detail     viewport.Model
	showSheet  bool
	form       hymnForm
	importPath textinput.Model
	width      int
	height     int
	help       help.Model
	keys       keyMap
	copyText   func(string) error
	openSheet  func(string) error
}

// NewModel creates a new TUI model over s. Notices emitted by s should be routed into notices so they
// appear in the status line.
func NewModel(s *store.Store, notices *store.NoticeLog, config *shared.Config) *Model {
	if config == nil {
		config = shared.DefaultConfig()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search title, author, first line or category"

	importPath := textinput.New()
	importPath.Prompt = "File: "
	importPath.Placeholder = "path/to/hymn.hymn"

	hymns := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	hymns.SetFilteringEnabled(false)
	hymns.SetShowHelp(false)
	hymns.DisableQuitKeybindings()

	m := &Model{
		store:      s,
		notices:    notices,
		config:     config,
		view:       ListView,
		tab:        models.TabHome,
		search:     search,
		hymns:      hymns,
		detail:     viewport.New(0, 0),
		form:       newHymnForm(),
		importPath: importPath,
		help:       help.New(),
		keys:       newKeyMap(),
		copyText:   shared.CopyToClipboard,
		openSheet:  shared.OpenSheet,
	}
	m.switchTab(config.StartTab())
	return m
}

// Init implements [tea.Model]. All data is already in memory.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.hymns.SetSize(msg.Width-4, max(msg.Height-10, 5))
		m.detail.Width = msg.Width - 4
		m.detail.Height = max(msg.Height-12, 5)
		m.form.setWidth(msg.Width)
		m.search.Width = max(msg.Width-8, 20)
		m.renderDetail()
		return m, nil

	case Msg:
		return m.handleResult(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		case ImportView:
			return m.handleImportKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		}
	}

	return m.updateComponents(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case ListView:
		body = m.renderList()
	case DetailView:
		body = m.renderDetailView()
	case ConfirmDeleteView:
		body = m.renderConfirm()
	case ImportView:
		body = m.renderImport()
	case FormView:
		body = m.renderForm()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), "", body, "", m.renderStatus())
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.refresh()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.refresh()
		return m, cmd
	}

	filterable := m.tab == models.TabBrowse || m.tab == models.TabFavorites

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.nextTab):
		return m, m.switchTab(m.stepTab(1))
	case key.Matches(msg, m.keys.prevTab):
		return m, m.switchTab(m.stepTab(-1))
	case key.Matches(msg, m.keys.add):
		return m, m.switchTab(models.TabAdd)
	case key.Matches(msg, m.keys.importer):
		return m, m.startImport()
	case m.tab == models.TabSettings:
		return m, nil
	case filterable && key.Matches(msg, m.keys.category):
		m.category = (m.category + 1) % len(models.FilterCategories())
		m.refresh()
		return m, nil
	case filterable && key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.enter):
		if id, ok := m.selectedID(); ok {
			m.openDetail(id)
		}
		return m, nil
	case key.Matches(msg, m.keys.favorite):
		if id, ok := m.selectedID(); ok {
			m.store.ToggleFavorite(id)
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.edit):
		if id, ok := m.selectedID(); ok {
			return m, m.startEdit(id)
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if id, ok := m.selectedID(); ok {
			m.confirmDelete(id)
		}
		return m, nil
	case key.Matches(msg, m.keys.copy):
		if id, ok := m.selectedID(); ok {
			return m, m.copyHymn(id)
		}
		return m, nil
	case key.Matches(msg, m.keys.export):
		if id, ok := m.selectedID(); ok {
			return m, m.exportHymn(id)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.hymns, cmd = m.hymns.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ListView
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.favorite):
		m.store.ToggleFavorite(m.selected)
		m.renderDetail()
		return m, nil
	case key.Matches(msg, m.keys.sheet):
		m.showSheet = !m.showSheet
		m.renderDetail()
		return m, nil
	case key.Matches(msg, m.keys.open):
		return m, m.openSheetCmd(m.selected)
	case key.Matches(msg, m.keys.copy):
		return m, m.copyHymn(m.selected)
	case key.Matches(msg, m.keys.export):
		return m, m.exportHymn(m.selected)
	case key.Matches(msg, m.keys.edit):
		return m, m.startEdit(m.selected)
	case key.Matches(msg, m.keys.remove):
		m.confirmDelete(m.selected)
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		if err := m.store.Delete(m.selected); err != nil {
			m.view = m.returnTo
			return m, nil
		}
		m.selected = 0
		m.view = ListView
		m.refresh()
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.view = m.returnTo
	}
	return m, nil
}

func (m *Model) handleImportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.importPath.Blur()
		m.view = m.returnTo
		return m, nil
	case "enter":
		path := m.importPath.Value()
		m.importPath.Blur()
		m.view = m.returnTo
		return m, readImport(path)
	}

	var cmd tea.Cmd
	m.importPath, cmd = m.importPath.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		return m, m.closeForm()
	case key.Matches(msg, m.keys.save):
		return m, m.submitForm()
	case key.Matches(msg, m.keys.nextFld):
		return m, m.form.focusField(m.form.focus + 1)
	case key.Matches(msg, m.keys.prevFld):
		return m, m.form.focusField(m.form.focus - 1)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// handleResult applies the outcome of a side effect started from a key handler.
func (m *Model) handleResult(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgImportRead:
		res := msg.data.(importRead)
		if res.err != nil {
			m.notify(models.NoticeError, "Import failed", res.err.Error())
			return m, nil
		}
		h, err := m.store.Import(res.data)
		if err != nil {
			return m, nil
		}
		m.switchTab(models.TabBrowse)
		m.openDetail(h.ID)

	case MsgExported:
		res := msg.data.(exported)
		if res.err != nil {
			m.notify(models.NoticeError, "Export failed", res.err.Error())
			return m, nil
		}
		m.notify(models.NoticeInfo, "Hymn exported successfully", fmt.Sprintf("%q saved to %s", res.title, res.path))

	case MsgCopied:
		res := msg.data.(copied)
		if res.err != nil {
			m.notify(models.NoticeError, "Failed to copy", "Could not copy to clipboard.")
			return m, nil
		}
		m.notify(models.NoticeInfo, "Copied to clipboard", fmt.Sprintf("%q is ready to paste.", res.title))

	case MsgSheetOpened:
		if err, _ := msg.data.(error); err != nil {
			title := "Could not open music sheet"
			if errors.Is(err, shared.ErrNoMusicSheet) {
				title = "No music sheet available"
			}
			m.notify(models.NoticeError, title, err.Error())
		}
	}
	return m, nil
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ListView:
		if m.searching {
			m.search, cmd = m.search.Update(msg)
		} else {
			m.hymns, cmd = m.hymns.Update(msg)
		}
	case DetailView:
		m.detail, cmd = m.detail.Update(msg)
	case ImportView:
		m.importPath, cmd = m.importPath.Update(msg)
	case FormView:
		m.form, cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m *Model) stepTab(step int) models.Tab {
	i := slices.Index(models.Tabs, m.tab)
	n := len(models.Tabs)
	return models.Tabs[((i+step)%n+n)%n]
}

func (m *Model) switchTab(tab models.Tab) tea.Cmd {
	m.tab = tab
	m.searching = false
	m.search.Blur()

	if tab == models.TabAdd {
		m.form = newHymnForm()
		m.form.setWidth(m.width)
		m.view = FormView
		return m.form.focusField(fieldTitle)
	}

	m.view = ListView
	m.refresh()
	return nil
}

func (m *Model) filters() models.Filters {
	return models.Filters{
		Tab:      m.tab,
		Category: models.FilterCategories()[m.category],
		Search:   m.search.Value(),
	}
}

// refresh reloads the list for the active tab, keeping the selection on the same hymn when it is still visible.
func (m *Model) refresh() {
	var listings []models.Listing
	switch m.tab {
	case models.TabHome:
		listings = m.store.Recent(m.config.UI.RecentLimit)
		m.hymns.Title = "Recently Added"
	case models.TabBrowse, models.TabFavorites:
		listings = m.store.Query(m.filters())
		m.hymns.Title = fmt.Sprintf("%s • %s", titleCase(string(m.tab)), models.FilterCategories()[m.category])
	default:
		return
	}

	current, _ := m.selectedID()
	m.hymns.SetItems(toItems(listings, m.store.IsBuiltin))
	for i, l := range listings {
		if l.ID == current {
			m.hymns.Select(i)
			return
		}
	}
	m.hymns.ResetSelected()
}

func (m *Model) selectedID() (int64, bool) {
	item, ok := m.hymns.SelectedItem().(hymnItem)
	if !ok {
		return 0, false
	}
	return item.listing.ID, true
}

func (m *Model) openDetail(id int64) {
	if _, err := m.store.Get(id); err != nil {
		m.notify(models.NoticeError, "Hymn Not Found", "The selected hymn no longer exists.")
		return
	}
	m.selected = id
	m.showSheet = false
	m.view = DetailView
	m.renderDetail()
	m.detail.GotoTop()
}

func (m *Model) renderDetail() {
	if m.selected == 0 {
		return
	}
	h, err := m.store.Get(m.selected)
	if err != nil {
		return
	}

	if !m.showSheet {
		verses := make([]string, len(h.Lyrics))
		for i, v := range h.Lyrics {
			verses[i] = styles.verse.Render(v)
		}
		m.detail.SetContent(strings.Join(verses, "\n"))
		return
	}

	if !h.HasSheet() {
		m.detail.SetContent(styles.help.Render("No music sheet available for this hymn."))
		return
	}
	m.detail.SetContent(fmt.Sprintf("Music sheet: %s\n\n%s", h.MusicSheetURL, styles.help.Render("Press o to open it in your browser.")))
}

func (m *Model) startEdit(id int64) tea.Cmd {
	if m.store.IsBuiltin(id) {
		// the store rejects the edit and reports why
		_, _ = m.store.Edit(id, models.Patch{})
		return nil
	}

	h, err := m.store.Get(id)
	if err != nil {
		m.notify(models.NoticeError, "Hymn Not Found", "The selected hymn no longer exists.")
		return nil
	}

	m.selected = id
	m.returnTo = m.view
	m.form = editForm(h)
	m.form.setWidth(m.width)
	m.view = FormView
	return m.form.focusField(fieldTitle)
}

func (m *Model) confirmDelete(id int64) {
	if m.store.IsBuiltin(id) {
		_ = m.store.Delete(id)
		return
	}
	m.selected = id
	m.returnTo = m.view
	m.view = ConfirmDeleteView
}

func (m *Model) startImport() tea.Cmd {
	m.returnTo = m.view
	m.view = ImportView
	m.importPath.SetValue("")
	return m.importPath.Focus()
}

func (m *Model) closeForm() tea.Cmd {
	if m.form.editing != 0 {
		m.view = m.returnTo
		if m.view == DetailView {
			m.renderDetail()
		}
		return nil
	}
	return m.switchTab(models.TabHome)
}

func (m *Model) submitForm() tea.Cmd {
	if m.form.editing != 0 {
		if _, err := m.store.Edit(m.form.editing, m.form.patch()); err != nil {
			return nil
		}
		id := m.form.editing
		m.switchTab(m.listTab())
		m.openDetail(id)
		return nil
	}

	h, err := m.store.Add(m.form.candidate())
	if err != nil {
		return nil
	}
	m.switchTab(models.TabBrowse)
	m.openDetail(h.ID)
	return nil
}

// listTab returns the tab to fall back to when leaving a form.
func (m *Model) listTab() models.Tab {
	if m.tab == models.TabAdd || m.tab == models.TabSettings {
		return models.TabBrowse
	}
	return m.tab
}

func (m *Model) copyHymn(id int64) tea.Cmd {
	h, err := m.store.Get(id)
	if err != nil {
		return nil
	}
	text, copyText := formatter.ToText(h), m.copyText
	return func() tea.Msg {
		return copiedMsg(h.Title, copyText(text))
	}
}

func (m *Model) exportHymn(id int64) tea.Cmd {
	record, err := m.store.Record(id)
	if err != nil {
		return nil
	}
	dir, ext := m.config.Export.Dir, m.config.Export.Extension
	return func() tea.Msg {
		path, err := formatter.WriteExport(record, dir, formatter.FormatHymn, ext)
		return exportedMsg(record.Title, path, err)
	}
}

func (m *Model) openSheetCmd(id int64) tea.Cmd {
	h, err := m.store.Get(id)
	if err != nil {
		return nil
	}
	open := m.openSheet
	return func() tea.Msg {
		return sheetOpenedMsg(open(h.MusicSheetURL))
	}
}

func readImport(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := shared.ReadHymnFile(path)
		return importReadMsg(data, err)
	}
}

// notify reports collaborator outcomes (clipboard, files, browser) in the status line.
func (m *Model) notify(level models.NoticeLevel, title, description string) {
	if m.notices == nil {
		return
	}
	m.notices.Notify(models.Notice{ID: shared.GenerateID(), Level: level, Title: title, Description: description, At: time.Now()})
}

func (m *Model) renderTabs() string {
	tabs := make([]string, len(models.Tabs))
	for i, t := range models.Tabs {
		label := titleCase(string(t))
		if t == models.TabFavorites {
			label = fmt.Sprintf("%s (%d)", label, m.store.FavoriteCount())
		}
		if t == m.tab {
			tabs[i] = styles.activeTab.Render(label)
		} else {
			tabs[i] = styles.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderStatus() string {
	if m.notices == nil {
		return ""
	}
	n, ok := m.notices.Latest()
	if !ok {
		return ""
	}
	if n.Level == models.NoticeError {
		return styles.err.Render("✗ "+n.Title) + " " + styles.help.Render(n.Description)
	}
	return styles.ok.Render("✓ "+n.Title) + " " + styles.help.Render(n.Description)
}

func (m *Model) renderList() string {
	switch m.tab {
	case models.TabSettings:
		return m.renderSettings()
	case models.TabHome:
		welcome := styles.title.Render("Hymns")
		stats := fmt.Sprintf("%d hymns in your collection • %d favorites", m.store.Count(), m.store.FavoriteCount())
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.nextTab, m.keys.add, m.keys.importer, m.keys.quit})
		return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", welcome, stats, m.hymns.View(), helpView)
	}

	var search string
	if m.searching || m.search.Value() != "" {
		search = m.search.View() + "\n"
	}

	var body string
	if len(m.hymns.Items()) == 0 {
		if m.tab == models.TabFavorites && m.store.FavoriteCount() == 0 {
			body = styles.help.Render("No favorites yet. Press f on a hymn to add it.")
		} else {
			body = styles.help.Render("No hymns match the current filters.")
		}
	} else {
		body = m.hymns.View()
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.enter, m.keys.search, m.keys.category, m.keys.favorite, m.keys.copy, m.keys.export, m.keys.quit,
	})
	return fmt.Sprintf("%s%s\n\n%s", search, body, helpView)
}

func (m *Model) renderDetailView() string {
	h, err := m.store.Get(m.selected)
	if err != nil {
		return styles.err.Render("This hymn no longer exists. Press esc to go back.")
	}

	title := fmt.Sprintf("%d. %s", h.Number, h.Title)
	if m.store.IsFavorite(h.ID) {
		title += " ★"
	}

	meta := []string{"By " + h.Author, h.Category}
	if ctx := h.MusicalContext(); ctx != "" {
		meta = append(meta, ctx)
	}
	if !m.store.IsBuiltin(h.ID) {
		meta = append(meta, "added by you")
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.favorite, m.keys.sheet, m.keys.open, m.keys.copy, m.keys.export}
	if !m.store.IsBuiltin(h.ID) {
		helpKeys = append(helpKeys, m.keys.edit, m.keys.remove)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s",
		styles.title.Render(title),
		styles.help.Render(strings.Join(meta, " • ")),
		m.detail.View(),
		m.help.ShortHelpView(helpKeys),
	)
}

func (m *Model) renderConfirm() string {
	h, err := m.store.Get(m.selected)
	if err != nil {
		return styles.err.Render("This hymn no longer exists. Press esc to go back.")
	}

	title := styles.warn.Render(fmt.Sprintf("Delete %q?", h.Title))
	info := "This removes it from your collection and favorites."
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, info, helpView)
}

func (m *Model) renderImport() string {
	title := styles.title.Render("Import Hymn")
	info := fmt.Sprintf("Accepted files: %s", strings.Join(shared.ImportExtensions, ", "))
	helpView := m.help.ShortHelpView([]key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "import")),
		m.keys.back,
	})
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, info, m.importPath.View(), helpView)
}

func (m *Model) renderForm() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.nextFld, m.keys.prevFld, m.keys.save, m.keys.back})
	return fmt.Sprintf("%s\n\n%s", m.form.view(), helpView)
}

func (m *Model) renderSettings() string {
	c := m.config
	numbering := "alphabetical"
	if !c.Library.AlphabeticalNumbering {
		numbering = "insertion order"
	}
	library := c.Library.Path
	if library == "" {
		library = "built-in"
	}
	exportDir, _ := filepath.Abs(c.Export.Dir)

	rows := [][2]string{
		{"Library", library},
		{"Locale", c.Library.Locale},
		{"Numbering", numbering},
		{"Export dir", exportDir},
		{"Extension", c.Export.Extension},
		{"Log file", c.Logging.File},
		{"Hymns", fmt.Sprintf("%d", m.store.Count())},
		{"Favorites", fmt.Sprintf("%d", m.store.FavoriteCount())},
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("Settings") + "\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", styles.label.Render(fmt.Sprintf("%-11s", r[0])), r[1]))
	}
	b.WriteString("\n" + styles.help.Render("Edit config.toml to change these values."))
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
