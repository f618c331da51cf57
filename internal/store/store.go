package store

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/hymns/internal/models"
	"github.com/desertthunder/hymns/internal/shared"
	"golang.org/x/text/language"
)

// Store holds the built-in hymns, the hymns added this session and the favorites set.
type Store struct {
	builtin      []models.Hymn
	builtinIDs   map[int64]struct{}
	custom       []models.Hymn
	favorites    map[int64]struct{}
	notifier     Notifier
	logger       *log.Logger
	now          func() time.Time
	locale       language.Tag
	alphabetical bool
	lastID       int64
}

// Option configures a [Store].
type Option func(*Store)

// WithNotifier sets the [Notifier] receiving operation notices.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source used for ids and AddedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocale sets the collation locale used when renumbering.
func WithLocale(tag language.Tag) Option {
	return func(s *Store) { s.locale = tag }
}

// WithAlphabeticalNumbering toggles renumbering by title on reads. When disabled, numbers follow
// insertion order (built-in hymns first).
func WithAlphabeticalNumbering(enabled bool) Option {
	return func(s *Store) { s.alphabetical = enabled }
}

// New creates a Store seeded with the built-in hymns.
//
// Built-in hymns must have positive, unique ids, a title, an author and at least one verse.
// Missing first lines are derived from the lyrics.
func New(builtin []models.Hymn, opts ...Option) (*Store, error) {
	s := &Store{
		builtinIDs:   make(map[int64]struct{}, len(builtin)),
		favorites:    map[int64]struct{}{},
		notifier:     Discard,
		logger:       log.New(io.Discard),
		now:          time.Now,
		locale:       language.English,
		alphabetical: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.builtin = make([]models.Hymn, 0, len(builtin))
	for _, h := range builtin {
		if h.ID <= 0 {
			return nil, fmt.Errorf("%w: built-in hymn %q has no id", shared.ErrInvalidInput, h.Title)
		}
		if _, dup := s.builtinIDs[h.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate built-in hymn id %d", shared.ErrInvalidInput, h.ID)
		}
		if strings.TrimSpace(h.Title) == "" || strings.TrimSpace(h.Author) == "" || len(cleanVerses(h.Lyrics)) == 0 {
			return nil, fmt.Errorf("%w: built-in hymn %d is incomplete", shared.ErrInvalidInput, h.ID)
		}

		h = h.Clone()
		h.AddedAt = nil
		if h.FirstLine == "" {
			h.FirstLine = models.FirstLineOf(h.Lyrics)
		}
		s.builtinIDs[h.ID] = struct{}{}
		s.builtin = append(s.builtin, h)
		s.lastID = max(s.lastID, h.ID)
	}

	return s, nil
}

// Add validates c and appends it to the user hymns.
func (s *Store) Add(c models.Candidate) (models.Hymn, error) {
	h, err := s.add(c)
	if err != nil {
		return models.Hymn{}, s.fail(err)
	}

	s.notify(models.NoticeInfo, "Hymn Added", fmt.Sprintf("%q has been added to your collection.", h.Title))
	return s.numbered(h), nil
}

// Edit applies p to the user hymn with the given id, keeping its id, AddedAt and favorite membership.
func (s *Store) Edit(id int64, p models.Patch) (models.Hymn, error) {
	if s.IsBuiltin(id) {
		return models.Hymn{}, s.fail(reject("Cannot Edit",
			"Original hymns cannot be edited. You can only edit custom hymns you've added.",
			fmt.Errorf("%w: hymn %d", shared.ErrImmutable, id)))
	}

	i := s.customIndex(id)
	if i < 0 {
		return models.Hymn{}, s.fail(notFound(id))
	}

	current := s.custom[i]
	c, err := validate(p.Apply(current))
	if err != nil {
		return models.Hymn{}, s.fail(err)
	}

	updated := build(c)
	updated.ID = current.ID
	updated.AddedAt = current.AddedAt
	s.custom[i] = updated

	s.logger.Debug("hymn updated", "id", id, "title", updated.Title)
	s.notify(models.NoticeInfo, "Hymn Updated", fmt.Sprintf("%q has been updated.", updated.Title))
	return s.numbered(updated), nil
}

// Delete removes the user hymn with the given id along with its favorite membership.
func (s *Store) Delete(id int64) error {
	if s.IsBuiltin(id) {
		return s.fail(reject("Cannot Delete",
			"Original hymns cannot be deleted. You can only delete custom hymns you've added.",
			fmt.Errorf("%w: hymn %d", shared.ErrImmutable, id)))
	}

	i := s.customIndex(id)
	if i < 0 {
		return s.fail(notFound(id))
	}

	removed := s.custom[i]
	s.custom = slices.Delete(s.custom, i, i+1)
	delete(s.favorites, id)

	s.logger.Debug("hymn deleted", "id", id, "title", removed.Title)
	s.notify(models.NoticeInfo, "Hymn Deleted", fmt.Sprintf("%q has been removed from your collection.", removed.Title))
	return nil
}

// ToggleFavorite flips favorite membership for id and returns the new membership.
func (s *Store) ToggleFavorite(id int64) bool {
	if _, ok := s.favorites[id]; ok {
		delete(s.favorites, id)
		s.notify(models.NoticeInfo, "Removed from favorites", "Your collection has been updated.")
		return false
	}

	s.favorites[id] = struct{}{}
	s.notify(models.NoticeInfo, "Added to favorites", "Your collection has been updated.")
	return true
}

// Get returns the hymn with the given id, numbered as it would be displayed.
func (s *Store) Get(id int64) (models.Hymn, error) {
	for _, h := range s.view() {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Hymn{}, notFound(id)
}

// All returns the combined collection, numbered as it would be displayed.
func (s *Store) All() []models.Hymn {
	return s.view()
}

// IsBuiltin reports whether id belongs to the built-in set.
func (s *Store) IsBuiltin(id int64) bool {
	_, ok := s.builtinIDs[id]
	return ok
}

// IsFavorite reports whether id is in the favorites set.
func (s *Store) IsFavorite(id int64) bool {
	_, ok := s.favorites[id]
	return ok
}

// Favorites returns the favorite ids in ascending order.
func (s *Store) Favorites() []int64 {
	ids := make([]int64, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Count returns the size of the combined collection.
func (s *Store) Count() int {
	return len(s.builtin) + len(s.custom)
}

// FavoriteCount returns the number of favorites that refer to a hymn in the collection.
// Ids toggled without a hymn behind them are not counted, so the count matches the favorites tab.
func (s *Store) FavoriteCount() int {
	n := 0
	for id := range s.favorites {
		if s.IsBuiltin(id) || s.customIndex(id) >= 0 {
			n++
		}
	}
	return n
}

func (s *Store) add(c models.Candidate) (models.Hymn, error) {
	c, err := validate(c)
	if err != nil {
		return models.Hymn{}, err
	}

	h := build(c)
	h.ID = s.nextID()
	at := s.now()
	h.AddedAt = &at
	s.custom = append(s.custom, h)

	s.logger.Debug("hymn added", "id", h.ID, "title", h.Title)
	return h, nil
}

// nextID issues a time based id, bumped past the last one issued.
func (s *Store) nextID() int64 {
	id := max(s.now().UnixMilli(), s.lastID+1)
	for s.IsBuiltin(id) || s.customIndex(id) >= 0 {
		id++
	}
	s.lastID = id
	return id
}

// numbered returns h as it appears in the collection, carrying its display number.
func (s *Store) numbered(h models.Hymn) models.Hymn {
	if v, err := s.Get(h.ID); err == nil {
		return v
	}
	return h.Clone()
}

func (s *Store) customIndex(id int64) int {
	return slices.IndexFunc(s.custom, func(h models.Hymn) bool { return h.ID == id })
}

// view returns copies of built-in hymns followed by user hymns, numbered for display.
func (s *Store) view() []models.Hymn {
	combined := make([]models.Hymn, 0, s.Count())
	combined = append(combined, s.builtin...)
	combined = append(combined, s.custom...)

	if s.alphabetical {
		return RenumberLocale(s.locale, combined)
	}

	out := make([]models.Hymn, len(combined))
	for i, h := range combined {
		out[i] = h.Clone()
		out[i].Number = i + 1
	}
	return out
}

func (s *Store) notify(level models.NoticeLevel, title, description string) {
	s.notifier.Notify(models.Notice{
		ID:          shared.GenerateID(),
		Level:       level,
		Title:       title,
		Description: description,
		At:          s.now(),
	})
}

// fail emits an error notice for err and returns it unchanged.
func (s *Store) fail(err error) error {
	title, description := "Error", err.Error()
	var r *rejection
	if errors.As(err, &r) {
		title, description = r.title, r.description
	}
	s.logger.Debug("operation rejected", "error", err)
	s.notify(models.NoticeError, title, description)
	return err
}

// rejection carries the notice text for a failed operation alongside the wrapped error.
type rejection struct {
	title       string
	description string
	err         error
}

func reject(title, description string, err error) error {
	return &rejection{title: title, description: description, err: err}
}

func (r *rejection) Error() string { return r.err.Error() }
func (r *rejection) Unwrap() error { return r.err }

func notFound(id int64) error {
	return reject("Hymn Not Found", "The selected hymn no longer exists.",
		fmt.Errorf("%w: %d", shared.ErrNotFound, id))
}

// validate normalizes c and checks the required fields.
func validate(c models.Candidate) (models.Candidate, error) {
	c.Title = strings.TrimSpace(c.Title)
	c.Author = strings.TrimSpace(c.Author)
	c.Category = strings.TrimSpace(c.Category)
	c.KeySignature = strings.TrimSpace(c.KeySignature)
	c.Tune = strings.TrimSpace(c.Tune)
	c.MusicSheetURL = strings.TrimSpace(c.MusicSheetURL)
	c.Lyrics = cleanVerses(c.Lyrics)

	if c.Title == "" || c.Author == "" || c.Category == "" {
		return c, reject("Missing Information", "Please fill in all required fields.",
			fmt.Errorf("%w: title, author and category are required", shared.ErrValidation))
	}
	if !models.IsCategory(c.Category) {
		return c, reject("Invalid Category", fmt.Sprintf("%q is not a known category.", c.Category),
			fmt.Errorf("%w: unknown category %q", shared.ErrValidation, c.Category))
	}
	if len(c.Lyrics) == 0 {
		return c, reject("Missing Lyrics", "Please add at least one verse.",
			fmt.Errorf("%w: at least one verse is required", shared.ErrValidation))
	}
	return c, nil
}

// cleanVerses trims each verse and drops the blank ones, keeping verse order.
func cleanVerses(lyrics []string) []string {
	out := make([]string, 0, len(lyrics))
	for _, verse := range lyrics {
		if v := strings.TrimSpace(verse); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func build(c models.Candidate) models.Hymn {
	return models.Hymn{
		Title:         c.Title,
		Author:        c.Author,
		Category:      c.Category,
		Lyrics:        c.Lyrics,
		FirstLine:     models.FirstLineOf(c.Lyrics),
		KeySignature:  c.KeySignature,
		Tune:          c.Tune,
		MusicSheetURL: c.MusicSheetURL,
	}
}
