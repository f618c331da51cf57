package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/hymns/internal/models"
	"github.com/desertthunder/hymns/internal/shared"
)

// importPayload mirrors the .hymn file layout. Pointers distinguish absent fields from empty ones;
// any incoming id or number is ignored.
type importPayload struct {
	Title         *string   `json:"title"`
	Author        *string   `json:"author"`
	Category      *string   `json:"category"`
	Lyrics        *[]string `json:"lyrics"`
	KeySignature  *string   `json:"keySignature"`
	Tune          *string   `json:"tune"`
	MusicSheetURL *string   `json:"musicSheetUrl"`
}

// Import adds a hymn from a JSON payload produced by [Store.Export] or another device.
//
// title, author and lyrics are required; a missing or unknown category becomes "Imported".
// Nothing is added unless the whole payload is valid.
func (s *Store) Import(payload []byte) (models.Hymn, error) {
	c, err := decodeImport(payload)
	if err != nil {
		return models.Hymn{}, s.fail(importFailed(err))
	}

	h, err := s.add(c)
	if err != nil {
		return models.Hymn{}, s.fail(importFailed(err))
	}

	s.notify(models.NoticeInfo, "Hymn imported successfully", fmt.Sprintf("%q has been added to your collection.", h.Title))
	return s.numbered(h), nil
}

// Record returns the export snapshot of the hymn with the given id.
func (s *Store) Record(id int64) (models.ExportRecord, error) {
	h, err := s.Get(id)
	if err != nil {
		return models.ExportRecord{}, err
	}
	return models.NewExportRecord(h), nil
}

// Export returns the pretty-printed JSON snapshot of the hymn with the given id.
func (s *Store) Export(id int64) ([]byte, error) {
	record, err := s.Record(id)
	if err != nil {
		return nil, s.fail(err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to marshal hymn %d: %w", id, err))
	}

	s.notify(models.NoticeInfo, "Hymn exported successfully", fmt.Sprintf("%q is ready to share.", record.Title))
	return data, nil
}

func decodeImport(payload []byte) (models.Candidate, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.Candidate{}, fmt.Errorf("%w: expected a JSON object", shared.ErrImportFormat)
	}

	var p importPayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return models.Candidate{}, fmt.Errorf("%w: %v", shared.ErrImportFormat, err)
	}

	switch {
	case p.Title == nil || strings.TrimSpace(*p.Title) == "":
		return models.Candidate{}, fmt.Errorf("%w: missing title", shared.ErrImportFormat)
	case p.Author == nil || strings.TrimSpace(*p.Author) == "":
		return models.Candidate{}, fmt.Errorf("%w: missing author", shared.ErrImportFormat)
	case p.Lyrics == nil:
		return models.Candidate{}, fmt.Errorf("%w: lyrics must be a list of verses", shared.ErrImportFormat)
	}

	c := models.Candidate{
		Title:         *p.Title,
		Author:        *p.Author,
		Category:      models.CategoryImported,
		Lyrics:        *p.Lyrics,
		KeySignature:  deref(p.KeySignature),
		Tune:          deref(p.Tune),
		MusicSheetURL: deref(p.MusicSheetURL),
	}
	if cat := strings.TrimSpace(deref(p.Category)); models.IsCategory(cat) {
		c.Category = cat
	}
	return c, nil
}

// importFailed keeps the underlying error matchable while presenting the import notice text.
func importFailed(err error) error {
	if !errors.Is(err, shared.ErrImportFormat) {
		err = fmt.Errorf("%w: %w", shared.ErrImportFormat, err)
	}
	return reject("Import failed", "The file format is invalid or the file is corrupted.", err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
