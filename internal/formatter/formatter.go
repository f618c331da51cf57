// package formatter renders hymns for sharing: clipboard text, Markdown, and the JSON .hymn file format
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/desertthunder/hymns/internal/models"
	"github.com/desertthunder/hymns/internal/shared"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultExtension is appended to exported .hymn files when no extension is configured.
const DefaultExtension = ".hymn"

// Format selects the file layout written by [WriteExport].
type Format string

const (
	FormatHymn     Format = "hymn"
	FormatMarkdown Format = "md"
	FormatText     Format = "text"
)

// ParseFormat converts s into a [Format]. "markdown" and "txt" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hymn", "json":
		return FormatHymn, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q (use hymn, md or text)", shared.ErrInvalidArgument, s)
	}
}

// ToText renders h the way it is copied to the clipboard:
//
//	Title
//	By: Author
//	Category: Category
//
//	verse
//
//	verse
func ToText(h models.Hymn) string {
	var buf strings.Builder

	buf.WriteString(h.Title + "\n")
	buf.WriteString(fmt.Sprintf("By: %s\n", h.Author))
	if h.Category != "" {
		buf.WriteString(fmt.Sprintf("Category: %s\n", h.Category))
	}
	buf.WriteString("\n")
	buf.WriteString(strings.Join(h.Lyrics, "\n\n"))

	return buf.String()
}

// ToMarkdown renders h as a Markdown document with its number, author, musical context and verses.
func ToMarkdown(h models.Hymn) []byte {
	var buf bytes.Buffer

	if h.Number > 0 {
		buf.WriteString(fmt.Sprintf("# %d. %s\n\n", h.Number, h.Title))
	} else {
		buf.WriteString(fmt.Sprintf("# %s\n\n", h.Title))
	}

	buf.WriteString(fmt.Sprintf("**Author**: %s\n", h.Author))
	if h.Category != "" {
		buf.WriteString(fmt.Sprintf("**Category**: %s\n", h.Category))
	}
	if h.KeySignature != "" {
		buf.WriteString(fmt.Sprintf("**Key**: %s\n", h.KeySignature))
	}
	if h.Tune != "" {
		buf.WriteString(fmt.Sprintf("**Tune**: %s\n", h.Tune))
	}
	if h.HasSheet() {
		buf.WriteString(fmt.Sprintf("**Music sheet**: [%s](%s)\n", h.Title, h.MusicSheetURL))
	}

	buf.WriteString("\n## Lyrics\n")
	for i, verse := range h.Lyrics {
		buf.WriteString(fmt.Sprintf("\n### Verse %d\n\n", i+1))
		for line := range strings.SplitSeq(verse, "\n") {
			buf.WriteString(line + "  \n")
		}
	}

	return buf.Bytes()
}

// ToJSON generates the pretty-printed .hymn payload for r.
func ToJSON(r models.ExportRecord) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hymn: %w", err)
	}
	return data, nil
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Filename builds a safe file name from title.
//
// Accents are folded to their base letters, characters other than ASCII letters, digits and whitespace
// are dropped, and whitespace runs become a single underscore. An empty result falls back to "hymn".
// ext defaults to [DefaultExtension].
func Filename(title, ext string) string {
	if ext == "" {
		ext = DefaultExtension
	}

	folded, _, err := transform.String(foldAccents, title)
	if err != nil {
		folded = title
	}

	var buf strings.Builder
	for field := range strings.FieldsSeq(folded) {
		var word strings.Builder
		for _, r := range field {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				word.WriteRune(r)
			}
		}
		if word.Len() == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('_')
		}
		buf.WriteString(word.String())
	}

	if buf.Len() == 0 {
		return "hymn" + ext
	}
	return buf.String() + ext
}

// Render produces the file contents for r in the given format.
func Render(r models.ExportRecord, format Format) ([]byte, error) {
	switch format {
	case FormatHymn:
		return ToJSON(r)
	case FormatMarkdown:
		return ToMarkdown(r.Hymn()), nil
	case FormatText:
		return []byte(ToText(r.Hymn()) + "\n"), nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport writes r into dir in the given format and returns the written path.
//
// The file name comes from [Filename]; ext applies to [FormatHymn] only, Markdown and text exports use
// .md and .txt. dir is created when missing and defaults to the working directory.
func WriteExport(r models.ExportRecord, dir string, format Format, ext string) (string, error) {
	return WriteExportAs(r, dir, Filename(r.Title, Extension(format, ext)), format)
}

// Extension returns the file extension for format. ext only applies to [FormatHymn].
func Extension(format Format, ext string) string {
	switch format {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	}
	if ext == "" {
		return DefaultExtension
	}
	return ext
}

// WriteExportAs renders r and writes it to dir/name, creating dir when needed.
func WriteExportAs(r models.ExportRecord, dir, name string, format Format) (string, error) {
	data, err := Render(r, format)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
