package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/hymns/internal/models"
)

var (
	_ list.Item = hymnItem{}
)

// hymnItem wraps [models.Listing] to implement [list.Item].
type hymnItem struct {
	listing models.Listing
	builtin bool
}

func (i hymnItem) FilterValue() string { return i.listing.Title }
func (i hymnItem) Title() string {
	title := fmt.Sprintf("%d. %s", i.listing.Number, i.listing.Title)
	if i.listing.IsFavorite {
		title += " ★"
	}
	return title
}
func (i hymnItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.listing.Author, i.listing.Category)
	if !i.builtin {
		desc += " • added"
	}
	return desc
}

func toItems(listings []models.Listing, builtin func(int64) bool) []list.Item {
	items := make([]list.Item, len(listings))
	for i, l := range listings {
		items[i] = hymnItem{listing: l, builtin: builtin(l.ID)}
	}
	return items
}
