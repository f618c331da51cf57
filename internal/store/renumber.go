package store

import (
	"slices"

	"github.com/desertthunder/hymns/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Renumber returns a copy of hymns sorted by title in English collation order and numbered from 1.
func Renumber(hymns []models.Hymn) []models.Hymn {
	return RenumberLocale(language.English, hymns)
}

// RenumberLocale returns a copy of hymns sorted by title using the collation rules of tag,
// ignoring case, with Number reassigned to the 1-based position.
//
// Hymns with equal titles keep their input order. The input slice is never modified.
func RenumberLocale(tag language.Tag, hymns []models.Hymn) []models.Hymn {
	out := make([]models.Hymn, len(hymns))
	for i, h := range hymns {
		out[i] = h.Clone()
	}

	c := collate.New(tag, collate.IgnoreCase)
	slices.SortStableFunc(out, func(a, b models.Hymn) int {
		return c.CompareString(a.Title, b.Title)
	})

	for i := range out {
		out[i].Number = i + 1
	}
	return out
}
