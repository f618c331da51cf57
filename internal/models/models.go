// package models defines the data model for the hymnal
package models

import (
	"slices"
	"strings"
	"time"
)

const (
	CategoryAll      = "All"      // CategoryAll disables category filtering
	CategoryImported = "Imported" // CategoryImported is assigned to imported hymns without a known category
)

// Categories lists the categories a hymn may be filed under, in display order.
var Categories = []string{"Grace", "Praise", "Worship", "Guidance", "Peace", "Faithfulness", "Assurance", "Salvation"}

// IsCategory reports whether c is an assignable category (any of [Categories] or [CategoryImported]).
func IsCategory(c string) bool {
	return c == CategoryImported || slices.Contains(Categories, c)
}

// FilterCategories returns the category choices for filtering, starting with [CategoryAll].
func FilterCategories() []string {
	return append([]string{CategoryAll}, Categories...)
}

// Tab identifies the active top-level screen.
type Tab string

const (
	TabHome      Tab = "home"
	TabBrowse    Tab = "browse"
	TabFavorites Tab = "favorites"
	TabAdd       Tab = "add"
	TabSettings  Tab = "settings"
)

// Tabs lists all tabs in navigation order.
var Tabs = []Tab{TabHome, TabBrowse, TabFavorites, TabAdd, TabSettings}

// ParseTab converts s into a [Tab], reporting whether it was recognized.
func ParseTab(s string) (Tab, bool) {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	return t, slices.Contains(Tabs, t)
}

// Hymn is a single hymn. Built-in hymns come from the library; user hymns carry AddedAt.
type Hymn struct {
	ID            int64      `json:"id" yaml:"id"`
	Number        int        `json:"number" yaml:"number"`
	Title         string     `json:"title" yaml:"title"`
	Author        string     `json:"author" yaml:"author"`
	FirstLine     string     `json:"firstLine" yaml:"first_line"`
	Category      string     `json:"category" yaml:"category"`
	Lyrics        []string   `json:"lyrics" yaml:"lyrics"`
	KeySignature  string     `json:"keySignature,omitempty" yaml:"key_signature,omitempty"`
	Tune          string     `json:"tune,omitempty" yaml:"tune,omitempty"`
	MusicSheetURL string     `json:"musicSheetUrl,omitempty" yaml:"music_sheet_url,omitempty"`
	AddedAt       *time.Time `json:"addedAt,omitempty" yaml:"-"`
}

// Clone returns a deep copy of h.
func (h Hymn) Clone() Hymn {
	c := h
	c.Lyrics = slices.Clone(h.Lyrics)
	if h.AddedAt != nil {
		at := *h.AddedAt
		c.AddedAt = &at
	}
	return c
}

// HasSheet reports whether a music sheet reference is attached.
func (h Hymn) HasSheet() bool {
	return strings.TrimSpace(h.MusicSheetURL) != ""
}

// MusicalContext returns the key signature, falling back to the tune name.
func (h Hymn) MusicalContext() string {
	if h.KeySignature != "" {
		return h.KeySignature
	}
	return h.Tune
}

// FirstLineOf returns the first line of the first verse in lyrics.
func FirstLineOf(lyrics []string) string {
	if len(lyrics) == 0 {
		return ""
	}
	line, _, _ := strings.Cut(lyrics[0], "\n")
	return strings.TrimSpace(line)
}

// Candidate holds the user supplied fields for a new hymn.
type Candidate struct {
	Title         string
	Author        string
	Category      string
	Lyrics        []string
	KeySignature  string
	Tune          string
	MusicSheetURL string
}

// Patch describes changes to a user hymn. Nil fields are left untouched; a nil Lyrics keeps the verses.
type Patch struct {
	Title         *string
	Author        *string
	Category      *string
	Lyrics        []string
	KeySignature  *string
	Tune          *string
	MusicSheetURL *string
}

// Apply returns the candidate produced by applying p on top of h.
func (p Patch) Apply(h Hymn) Candidate {
	c := Candidate{
		Title:         h.Title,
		Author:        h.Author,
		Category:      h.Category,
		Lyrics:        slices.Clone(h.Lyrics),
		KeySignature:  h.KeySignature,
		Tune:          h.Tune,
		MusicSheetURL: h.MusicSheetURL,
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Author != nil {
		c.Author = *p.Author
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Lyrics != nil {
		c.Lyrics = slices.Clone(p.Lyrics)
	}
	if p.KeySignature != nil {
		c.KeySignature = *p.KeySignature
	}
	if p.Tune != nil {
		c.Tune = *p.Tune
	}
	if p.MusicSheetURL != nil {
		c.MusicSheetURL = *p.MusicSheetURL
	}
	return c
}

// Listing is a hymn as seen by a view, with its favorite membership resolved.
type Listing struct {
	Hymn
	IsFavorite bool `json:"isFavorite"`
}

// Filters is the externally owned view state passed into queries.
type Filters struct {
	Tab      Tab
	Category string
	Search   string
}

// ExportRecord is the persisted subset of a [Hymn] handed to other devices.
type ExportRecord struct {
	ID            int64    `json:"id"`
	Number        int      `json:"number"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	FirstLine     string   `json:"firstLine"`
	Category      string   `json:"category"`
	Lyrics        []string `json:"lyrics"`
	KeySignature  string   `json:"keySignature,omitempty"`
	Tune          string   `json:"tune,omitempty"`
	MusicSheetURL string   `json:"musicSheetUrl,omitempty"`
}

// NewExportRecord strips session-only state from h.
func NewExportRecord(h Hymn) ExportRecord {
	return ExportRecord{
		ID:            h.ID,
		Number:        h.Number,
		Title:         h.Title,
		Author:        h.Author,
		FirstLine:     h.FirstLine,
		Category:      h.Category,
		Lyrics:        slices.Clone(h.Lyrics),
		KeySignature:  h.KeySignature,
		Tune:          h.Tune,
		MusicSheetURL: h.MusicSheetURL,
	}
}

// Hymn converts the record back into a hymn without session state.
func (r ExportRecord) Hymn() Hymn {
	return Hymn{
		ID:            r.ID,
		Number:        r.Number,
		Title:         r.Title,
		Author:        r.Author,
		FirstLine:     r.FirstLine,
		Category:      r.Category,
		Lyrics:        slices.Clone(r.Lyrics),
		KeySignature:  r.KeySignature,
		Tune:          r.Tune,
		MusicSheetURL: r.MusicSheetURL,
	}
}

// NoticeLevel classifies a [Notice].
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

func (l NoticeLevel) String() string {
	if l == NoticeError {
		return "error"
	}
	return "info"
}

// Notice is a user-facing message describing the outcome of an operation.
type Notice struct {
	ID          string
	Level       NoticeLevel
	Title       string
	Description string
	At          time.Time
}
