package ui

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/hymns/internal/models"
)

// form field indexes, in focus order
const (
	fieldTitle = iota
	fieldAuthor
	fieldCategory
	fieldKey
	fieldSheet
	fieldLyrics
	fieldCount
)

var verseBreak = regexp.MustCompile(`\n[ \t]*\n`)

// hymnForm edits the fields of a new or existing user hymn. Verses are separated by blank lines.
type hymnForm struct {
	editing  int64
	focus    int
	category int
	inputs   []textinput.Model
	lyrics   textarea.Model
}

func newHymnForm() hymnForm {
	placeholders := map[int]string{
		fieldTitle:  "Hymn title",
		fieldAuthor: "Author",
		fieldKey:    "Key signature (optional)",
		fieldSheet:  "Music sheet URL or path (optional)",
	}

	f := hymnForm{inputs: make([]textinput.Model, fieldCount)}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		f.inputs[i] = ti
	}

	f.lyrics = textarea.New()
	f.lyrics.Placeholder = "Verse one...\n\nVerse two..."
	f.lyrics.ShowLineNumbers = false
	f.lyrics.SetHeight(8)
	f.lyrics.CharLimit = 0
	return f
}

// editForm prefills a form from an existing hymn.
func editForm(h models.Hymn) hymnForm {
	f := newHymnForm()
	f.editing = h.ID
	f.inputs[fieldTitle].SetValue(h.Title)
	f.inputs[fieldAuthor].SetValue(h.Author)
	f.inputs[fieldKey].SetValue(h.KeySignature)
	f.inputs[fieldSheet].SetValue(h.MusicSheetURL)
	f.lyrics.SetValue(strings.Join(h.Lyrics, "\n\n"))
	if i := slices.Index(models.Categories, h.Category); i >= 0 {
		f.category = i
	}
	return f
}

func (f *hymnForm) setWidth(w int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(w-16, 20)
	}
	f.lyrics.SetWidth(max(w-4, 20))
}

func (f *hymnForm) focusField(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.lyrics.Blur()

	switch f.focus {
	case fieldCategory:
		return nil
	case fieldLyrics:
		return f.lyrics.Focus()
	default:
		return f.inputs[f.focus].Focus()
	}
}

func (f *hymnForm) cycleCategory(step int) {
	n := len(models.Categories)
	f.category = ((f.category+step)%n + n) % n
}

func (f hymnForm) categoryName() string {
	return models.Categories[f.category]
}

// verses splits the lyrics field on blank lines.
func (f hymnForm) verses() []string {
	text := strings.ReplaceAll(f.lyrics.Value(), "\r\n", "\n")
	return verseBreak.Split(text, -1)
}

func (f hymnForm) candidate() models.Candidate {
	return models.Candidate{
		Title:         f.inputs[fieldTitle].Value(),
		Author:        f.inputs[fieldAuthor].Value(),
		Category:      f.categoryName(),
		Lyrics:        f.verses(),
		KeySignature:  f.inputs[fieldKey].Value(),
		MusicSheetURL: f.inputs[fieldSheet].Value(),
	}
}

func (f hymnForm) patch() models.Patch {
	c := f.candidate()
	return models.Patch{
		Title:         &c.Title,
		Author:        &c.Author,
		Category:      &c.Category,
		Lyrics:        c.Lyrics,
		KeySignature:  &c.KeySignature,
		MusicSheetURL: &c.MusicSheetURL,
	}
}

func (f hymnForm) update(msg tea.Msg) (hymnForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldCategory:
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.String() {
			case "left", "h":
				f.cycleCategory(-1)
			case "right", "l", " ":
				f.cycleCategory(1)
			}
		}
	case fieldLyrics:
		f.lyrics, cmd = f.lyrics.Update(msg)
	default:
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return f, cmd
}

func (f hymnForm) view() string {
	var b strings.Builder

	heading := "Add a Hymn"
	if f.editing != 0 {
		heading = "Edit Hymn"
	}
	b.WriteString(styles.title.Render(heading) + "\n")

	row := func(i int, label, value string) {
		marker := "  "
		if f.focus == i {
			marker = styles.ok.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, styles.label.Render(fmt.Sprintf("%-9s", label)), value))
	}

	row(fieldTitle, "Title*", f.inputs[fieldTitle].View())
	row(fieldAuthor, "Author*", f.inputs[fieldAuthor].View())
	row(fieldCategory, "Category", fmt.Sprintf("‹ %s ›", f.categoryName()))
	row(fieldKey, "Key", f.inputs[fieldKey].View())
	row(fieldSheet, "Sheet", f.inputs[fieldSheet].View())
	row(fieldLyrics, "Lyrics*", "")
	b.WriteString(f.lyrics.View())
	return b.String()
}
