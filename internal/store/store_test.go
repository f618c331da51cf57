package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/desertthunder/hymns/internal/models"
	"github.com/desertthunder/hymns/internal/shared"
	th "github.com/desertthunder/hymns/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtins() []models.Hymn {
	return []models.Hymn{
		{ID: 1, Title: "Amazing Grace", Author: "John Newton", Category: "Grace",
			Lyrics: []string{"Amazing grace, how sweet the sound\nThat saved a wretch like me"}, Tune: "New Britain"},
		{ID: 3, Title: "Holy, Holy, Holy", Author: "Reginald Heber", Category: "Worship",
			Lyrics: []string{"Holy, holy, holy! Lord God Almighty!\nEarly in the morning"}},
	}
}

// fixedClock returns a clock that advances one second per call.
func fixedClock() func() time.Time {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		at = at.Add(time.Second)
		return at
	}
}

func newStore(t *testing.T, opts ...Option) (*Store, *NoticeLog) {
	t.Helper()
	notices := NewNoticeLog(50)
	opts = append([]Option{WithNotifier(notices), WithClock(fixedClock())}, opts...)
	s, err := New(builtins(), opts...)
	require.NoError(t, err)
	return s, notices
}

func vision() models.Candidate {
	return models.Candidate{Title: "Be Thou My Vision", Author: "Ancient Irish", Category: "Guidance", Lyrics: []string{"line one"}}
}

func titles(hymns []models.Hymn) []string {
	out := make([]string, len(hymns))
	for i, h := range hymns {
		out[i] = h.Title
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("derives missing first lines", func(t *testing.T) {
		s, _ := newStore(t)
		h, err := s.Get(1)
		require.NoError(t, err)
		assert.Equal(t, "Amazing grace, how sweet the sound", h.FirstLine)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		hymns := append(builtins(), builtins()[0])
		_, err := New(hymns)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects incomplete hymns", func(t *testing.T) {
		_, err := New([]models.Hymn{{ID: 1, Title: "No Lyrics", Author: "Anon", Lyrics: []string{"  "}}})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = New([]models.Hymn{{Title: "No Id", Author: "Anon", Lyrics: []string{"x"}}})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("does not alias caller slices", func(t *testing.T) {
		hymns := builtins()
		s, err := New(hymns)
		require.NoError(t, err)

		hymns[0].Lyrics[0] = "changed"
		h, err := s.Get(1)
		require.NoError(t, err)
		assert.NotEqual(t, "changed", h.Lyrics[0])
	})
}

func TestAdd(t *testing.T) {
	t.Run("scenario: add then renumber", func(t *testing.T) {
		s, notices := newStore(t)

		h, err := s.Add(vision())
		require.NoError(t, err)
		assert.Equal(t, "line one", h.FirstLine)
		assert.NotNil(t, h.AddedAt)
		assert.False(t, s.IsBuiltin(h.ID))

		all := Renumber(s.All())
		assert.Equal(t, []string{"Amazing Grace", "Be Thou My Vision", "Holy, Holy, Holy"}, titles(all))
		for i, hymn := range all {
			assert.Equal(t, i+1, hymn.Number)
		}

		latest, ok := notices.Latest()
		require.True(t, ok)
		assert.Equal(t, models.NoticeInfo, latest.Level)
		assert.Equal(t, "Hymn Added", latest.Title)
	})

	t.Run("first line comes from the first surviving verse", func(t *testing.T) {
		s, _ := newStore(t)
		c := vision()
		c.Lyrics = []string{"   ", "\n  Morning has broken\nLike the first morning", ""}

		h, err := s.Add(c)
		require.NoError(t, err)
		assert.Equal(t, "Morning has broken", h.FirstLine)
		assert.Equal(t, []string{"Morning has broken\nLike the first morning"}, h.Lyrics)
	})

	t.Run("ids are unique", func(t *testing.T) {
		s, _ := newStore(t, WithClock(func() time.Time { return time.UnixMilli(1) }))
		seen := map[int64]bool{1: true, 3: true}
		for range 20 {
			h, err := s.Add(vision())
			require.NoError(t, err)
			assert.False(t, seen[h.ID], "id %d reused", h.ID)
			seen[h.ID] = true
		}
	})

	t.Run("trims fields", func(t *testing.T) {
		s, _ := newStore(t)
		c := vision()
		c.Title = "  Be Thou My Vision  "
		c.KeySignature = " E♭ "

		h, err := s.Add(c)
		require.NoError(t, err)
		assert.Equal(t, "Be Thou My Vision", h.Title)
		assert.Equal(t, "E♭", h.KeySignature)
	})

	tc := []struct {
		name   string
		mutate func(*models.Candidate)
		notice string
	}{
		{name: "empty title", mutate: func(c *models.Candidate) { c.Title = "  " }, notice: "Missing Information"},
		{name: "empty author", mutate: func(c *models.Candidate) { c.Author = "" }, notice: "Missing Information"},
		{name: "empty category", mutate: func(c *models.Candidate) { c.Category = "" }, notice: "Missing Information"},
		{name: "unknown category", mutate: func(c *models.Candidate) { c.Category = "Christmas" }, notice: "Invalid Category"},
		{name: "category All is not assignable", mutate: func(c *models.Candidate) { c.Category = models.CategoryAll }, notice: "Invalid Category"},
		{name: "blank verses only", mutate: func(c *models.Candidate) { c.Lyrics = []string{"", "  \n "} }, notice: "Missing Lyrics"},
		{name: "no verses", mutate: func(c *models.Candidate) { c.Lyrics = nil }, notice: "Missing Lyrics"},
	}

	for _, tt := range tc {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			s, notices := newStore(t)
			before := s.All()

			c := vision()
			tt.mutate(&c)
			_, err := s.Add(c)

			assert.ErrorIs(t, err, shared.ErrValidation)
			assert.Equal(t, before, s.All())

			latest, ok := notices.Latest()
			require.True(t, ok)
			assert.Equal(t, models.NoticeError, latest.Level)
			assert.Equal(t, tt.notice, latest.Title)
		})
	}

	t.Run("accepts the imported category", func(t *testing.T) {
		s, _ := newStore(t)
		c := vision()
		c.Category = models.CategoryImported
		_, err := s.Add(c)
		assert.NoError(t, err)
	})
}

func TestEdit(t *testing.T) {
	t.Run("scenario: edit keeps favorite membership", func(t *testing.T) {
		s, _ := newStore(t)
		h, err := s.Add(vision())
		require.NoError(t, err)
		require.True(t, s.ToggleFavorite(h.ID))

		updated, err := s.Edit(h.ID, models.Patch{Lyrics: []string{"a", "b"}})
		require.NoError(t, err)
		assert.Equal(t, "a", updated.FirstLine)
		assert.Equal(t, []string{"a", "b"}, updated.Lyrics)
		assert.Equal(t, h.ID, updated.ID)
		assert.Equal(t, h.AddedAt, updated.AddedAt)
		assert.Equal(t, h.Title, updated.Title)
		assert.True(t, s.IsFavorite(h.ID))
	})

	t.Run("replaces in place", func(t *testing.T) {
		s, _ := newStore(t, WithAlphabeticalNumbering(false))
		first, err := s.Add(vision())
		require.NoError(t, err)
		second, err := s.Add(models.Candidate{Title: "Abide With Me", Author: "Henry F. Lyte", Category: "Peace", Lyrics: []string{"x"}})
		require.NoError(t, err)

		title := "Zion's Vision"
		_, err = s.Edit(first.ID, models.Patch{Title: &title})
		require.NoError(t, err)

		all := s.All()
		require.Len(t, all, 4)
		assert.Equal(t, title, all[2].Title)
		assert.Equal(t, second.ID, all[3].ID)
	})

	t.Run("built-in hymns are immutable", func(t *testing.T) {
		s, notices := newStore(t)
		before := s.All()

		title := "Changed"
		for _, h := range builtins() {
			_, err := s.Edit(h.ID, models.Patch{Title: &title})
			assert.ErrorIs(t, err, shared.ErrImmutable)
		}
		assert.Equal(t, before, s.All())

		latest, _ := notices.Latest()
		assert.Equal(t, "Cannot Edit", latest.Title)
		assert.Equal(t, models.NoticeError, latest.Level)
	})

	t.Run("unknown id", func(t *testing.T) {
		s, _ := newStore(t)
		_, err := s.Edit(999, models.Patch{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("validation failure leaves hymn unchanged", func(t *testing.T) {
		s, _ := newStore(t)
		h, err := s.Add(vision())
		require.NoError(t, err)

		empty := ""
		_, err = s.Edit(h.ID, models.Patch{Author: &empty})
		assert.ErrorIs(t, err, shared.ErrValidation)

		_, err = s.Edit(h.ID, models.Patch{Lyrics: []string{" "}})
		assert.ErrorIs(t, err, shared.ErrValidation)

		got, err := s.Get(h.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ancient Irish", got.Author)
		assert.Equal(t, []string{"line one"}, got.Lyrics)
	})
}

func TestDelete(t *testing.T) {
	t.Run("scenario: built-in delete is rejected", func(t *testing.T) {
		s, notices := newStore(t)
		s.ToggleFavorite(1)
		before := s.All()

		err := s.Delete(1)
		assert.ErrorIs(t, err, shared.ErrImmutable)
		assert.Equal(t, before, s.All())
		assert.Equal(t, []int64{1}, s.Favorites())

		latest, _ := notices.Latest()
		assert.Equal(t, "Cannot Delete", latest.Title)
	})

	t.Run("removes the hymn and its favorite membership", func(t *testing.T) {
		s, notices := newStore(t)
		h, err := s.Add(vision())
		require.NoError(t, err)
		s.ToggleFavorite(h.ID)

		require.NoError(t, s.Delete(h.ID))
		assert.Equal(t, 2, s.Count())
		assert.False(t, s.IsFavorite(h.ID))

		_, err = s.Get(h.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		latest, _ := notices.Latest()
		assert.Equal(t, "Hymn Deleted", latest.Title)
	})

	t.Run("deleting twice is a no-op failure", func(t *testing.T) {
		s, _ := newStore(t)
		h, err := s.Add(vision())
		require.NoError(t, err)

		require.NoError(t, s.Delete(h.ID))
		err = s.Delete(h.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, 2, s.Count())
	})
}

func TestToggleFavorite(t *testing.T) {
	s, notices := newStore(t)
	h, err := s.Add(vision())
	require.NoError(t, err)

	for _, id := range []int64{1, h.ID, 4242} {
		before := s.Favorites()
		assert.True(t, s.ToggleFavorite(id))
		assert.True(t, s.IsFavorite(id))
		assert.False(t, s.ToggleFavorite(id))
		assert.Equal(t, before, s.Favorites())
	}

	latest, _ := notices.Latest()
	assert.Equal(t, "Removed from favorites", latest.Title)
	assert.Equal(t, 0, s.FavoriteCount())
}

func TestImport(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		s, notices := newStore(t)
		payload := `{"id": 1, "number": 7, "title": "Abide With Me", "author": "Henry F. Lyte",
			"category": "Peace", "lyrics": ["Abide with me\nFast falls the eventide"], "keySignature": "E♭",
			"musicSheetUrl": "https://example.com/abide.png"}`

		h, err := s.Import([]byte(payload))
		require.NoError(t, err)
		assert.NotEqual(t, int64(1), h.ID)
		assert.False(t, s.IsBuiltin(h.ID))
		assert.Equal(t, "Peace", h.Category)
		assert.Equal(t, "Abide with me", h.FirstLine)
		assert.Equal(t, "E♭", h.KeySignature)
		assert.True(t, h.HasSheet())
		assert.Equal(t, 3, s.Count())

		latest, _ := notices.Latest()
		assert.Equal(t, "Hymn imported successfully", latest.Title)
	})

	t.Run("category defaults to Imported", func(t *testing.T) {
		s, _ := newStore(t)

		h, err := s.Import([]byte(`{"title": "X", "author": "Y", "lyrics": ["z"]}`))
		require.NoError(t, err)
		assert.Equal(t, models.CategoryImported, h.Category)

		h, err = s.Import([]byte(`{"title": "X", "author": "Y", "category": "Christmas", "lyrics": ["z"]}`))
		require.NoError(t, err)
		assert.Equal(t, models.CategoryImported, h.Category)
	})

	t.Run("scenario: empty lyrics are rejected", func(t *testing.T) {
		s, notices := newStore(t)
		before := s.All()

		_, err := s.Import([]byte(`{"title": "X", "author": "Y", "lyrics": []}`))
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.ErrorIs(t, err, shared.ErrImportFormat)
		assert.Equal(t, before, s.All())

		latest, _ := notices.Latest()
		assert.Equal(t, "Import failed", latest.Title)
	})

	tc := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `title: X`},
		{name: "truncated json", payload: `{"title": "X", "author": `},
		{name: "array payload", payload: `[{"title": "X"}]`},
		{name: "empty payload", payload: ``},
		{name: "missing title", payload: `{"author": "Y", "lyrics": ["z"]}`},
		{name: "blank title", payload: `{"title": " ", "author": "Y", "lyrics": ["z"]}`},
		{name: "missing author", payload: `{"title": "X", "lyrics": ["z"]}`},
		{name: "missing lyrics", payload: `{"title": "X", "author": "Y"}`},
		{name: "lyrics not a list", payload: `{"title": "X", "author": "Y", "lyrics": "z"}`},
		{name: "lyrics not strings", payload: `{"title": "X", "author": "Y", "lyrics": [1, 2]}`},
		{name: "title not a string", payload: `{"title": 5, "author": "Y", "lyrics": ["z"]}`},
	}

	for _, tt := range tc {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			s, _ := newStore(t)
			_, err := s.Import([]byte(tt.payload))
			assert.ErrorIs(t, err, shared.ErrImportFormat)
			assert.Equal(t, 2, s.Count())
		})
	}
}

func TestExport(t *testing.T) {
	t.Run("round trips through import", func(t *testing.T) {
		s, _ := newStore(t)
		h, err := s.Add(vision())
		require.NoError(t, err)
		s.ToggleFavorite(h.ID)

		data, err := s.Export(h.ID)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  \"title\": \"Be Thou My Vision\"")
		assert.NotContains(t, string(data), "addedAt")
		assert.NotContains(t, string(data), "isFavorite")

		var record models.ExportRecord
		require.NoError(t, json.Unmarshal(data, &record))
		assert.Equal(t, h.ID, record.ID)
		assert.Equal(t, 2, record.Number)
		assert.Equal(t, "line one", record.FirstLine)

		imported, err := s.Import(data)
		require.NoError(t, err)
		assert.NotEqual(t, h.ID, imported.ID)
		assert.Equal(t, h.Lyrics, imported.Lyrics)
		assert.Equal(t, h.Category, imported.Category)
	})

	t.Run("built-in hymn", func(t *testing.T) {
		s, _ := newStore(t)
		record, err := s.Record(1)
		require.NoError(t, err)
		assert.Equal(t, "New Britain", record.Tune)
		assert.Equal(t, 1, record.Number)
	})

	t.Run("unknown id", func(t *testing.T) {
		s, notices := newStore(t)
		_, err := s.Export(77)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		latest, _ := notices.Latest()
		assert.Equal(t, models.NoticeError, latest.Level)
	})
}

func TestNoticeIDs(t *testing.T) {
	s, notices := newStore(t)
	s.ToggleFavorite(1)
	s.ToggleFavorite(1)
	_ = s.Delete(1)

	all := notices.All()
	require.Len(t, all, 3)
	assert.NotEqual(t, all[0].ID, all[1].ID)
	assert.Equal(t, models.NoticeError, all[2].Level)
	assert.Equal(t, "Cannot Delete", all[2].Title)
}

func TestReturnedHymnsAreNumbered(t *testing.T) {
	tests := []struct {
		name         string
		alphabetical bool
		run          func(t *testing.T, s *Store) models.Hymn
		expected     int
	}{
		{
			name:         "add",
			alphabetical: true,
			run: func(t *testing.T, s *Store) models.Hymn {
				h, err := s.Add(vision())
				require.NoError(t, err)
				return h
			},
			expected: 2,
		},
		{
			name:         "import",
			alphabetical: true,
			run: func(t *testing.T, s *Store) models.Hymn {
				h, err := s.Import([]byte(`{"title": "Abide With Me", "author": "Henry F. Lyte", "lyrics": ["Abide with me"]}`))
				require.NoError(t, err)
				return h
			},
			expected: 1,
		},
		{
			name:         "edit renames into a new position",
			alphabetical: true,
			run: func(t *testing.T, s *Store) models.Hymn {
				h, err := s.Add(vision())
				require.NoError(t, err)
				title := "Zion's Hill"
				h, err = s.Edit(h.ID, models.Patch{Title: &title})
				require.NoError(t, err)
				return h
			},
			expected: 3,
		},
		{
			name:         "insertion order numbering",
			alphabetical: false,
			run: func(t *testing.T, s *Store) models.Hymn {
				h, err := s.Add(models.Candidate{Title: "Abide With Me", Author: "Henry F. Lyte", Category: "Peace", Lyrics: []string{"x"}})
				require.NoError(t, err)
				return h
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newStore(t, WithAlphabeticalNumbering(tt.alphabetical))
			h := tt.run(t, s)

			assert.Equal(t, tt.expected, h.Number)
			stored, err := s.Get(h.ID)
			require.NoError(t, err)
			assert.Equal(t, stored.Number, h.Number)
		})
	}
}

func TestNoticeSequence(t *testing.T) {
	recorder := &th.RecordingNotifier{}
	s, err := New(builtins(), WithNotifier(recorder), WithClock(fixedClock()))
	require.NoError(t, err)

	h, err := s.Add(vision())
	require.NoError(t, err)

	title := "Be Thou My Light"
	_, err = s.Edit(h.ID, models.Patch{Title: &title})
	require.NoError(t, err)

	s.ToggleFavorite(h.ID)
	require.NoError(t, s.Delete(h.ID))
	assert.ErrorIs(t, s.Delete(h.ID), shared.ErrNotFound)
	assert.ErrorIs(t, s.Delete(1), shared.ErrImmutable)

	assert.Equal(t, []string{
		"Hymn Added",
		"Hymn Updated",
		"Added to favorites",
		"Hymn Deleted",
		"Hymn Not Found",
		"Cannot Delete",
	}, recorder.Titles())

	levels := make([]models.NoticeLevel, len(recorder.Notices))
	for i, n := range recorder.Notices {
		levels[i] = n.Level
	}
	assert.Equal(t, []models.NoticeLevel{
		models.NoticeInfo, models.NoticeInfo, models.NoticeInfo, models.NoticeInfo,
		models.NoticeError, models.NoticeError,
	}, levels)
}

func TestFavoriteCount(t *testing.T) {
	s, _ := newStore(t)
	h, err := s.Add(vision())
	require.NoError(t, err)

	s.ToggleFavorite(1)
	s.ToggleFavorite(h.ID)
	s.ToggleFavorite(999)

	assert.True(t, s.IsFavorite(999))
	assert.Equal(t, 2, s.FavoriteCount())
	assert.Len(t, s.Query(models.Filters{Tab: models.TabFavorites}), s.FavoriteCount())

	require.NoError(t, s.Delete(h.ID))
	assert.Equal(t, 1, s.FavoriteCount())
	assert.Len(t, s.Query(models.Filters{Tab: models.TabFavorites}), s.FavoriteCount())
}
