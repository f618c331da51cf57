package store

import (
	"cmp"
	"slices"
	"strings"

	"github.com/desertthunder/hymns/internal/models"
)

// Query returns the hymns visible under f, in display order.
//
// Filters apply in order: the favorites tab keeps favorites only, a category other than "All" keeps
// exact matches, and non-blank search text keeps hymns whose title, author, first line or category
// contains it, ignoring case.
func (s *Store) Query(f models.Filters) []models.Listing {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []models.Listing{}

	for _, h := range s.view() {
		fav := s.IsFavorite(h.ID)
		if f.Tab == models.TabFavorites && !fav {
			continue
		}
		if f.Category != "" && f.Category != models.CategoryAll && h.Category != f.Category {
			continue
		}
		if search != "" && !matches(h, search) {
			continue
		}
		out = append(out, models.Listing{Hymn: h, IsFavorite: fav})
	}
	return out
}

// Recent returns up to n user hymns, newest first. When no hymns were added this session it returns the
// first n hymns of the collection instead.
func (s *Store) Recent(n int) []models.Listing {
	if n <= 0 {
		return []models.Listing{}
	}

	all := s.view()
	added := slices.DeleteFunc(slices.Clone(all), func(h models.Hymn) bool { return h.AddedAt == nil })
	if len(added) == 0 {
		added = all
	} else {
		slices.SortStableFunc(added, func(a, b models.Hymn) int {
			return cmp.Compare(b.AddedAt.UnixNano(), a.AddedAt.UnixNano())
		})
	}

	out := make([]models.Listing, 0, min(n, len(added)))
	for _, h := range added[:min(n, len(added))] {
		out = append(out, models.Listing{Hymn: h, IsFavorite: s.IsFavorite(h.ID)})
	}
	return out
}

func matches(h models.Hymn, needle string) bool {
	for _, field := range []string{h.Title, h.Author, h.FirstLine, h.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
