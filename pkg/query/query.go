// Package query derives the filtered, searched and sorted view of a catalog.
//
// Apply is a pure function of its inputs: the same catalog, favorites and
// query always yield the same ordered result, and equal sort keys keep their
// catalog order.
package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/errors"
)

// Reserved category filters.
const (
	CategoryAll       = "all"
	CategoryFavorites = "favorites"
)

// Sort selects the result order.
type Sort string

// Sort modes. An unknown mode behaves as SortNewest.
const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortAZ     Sort = "az"
	SortZA     Sort = "za"
)

// Sorts lists the sort modes in display order.
var Sorts = []Sort{SortNewest, SortOldest, SortAZ, SortZA}

// String returns the sort name.
func (s Sort) String() string { return string(s) }

// Label returns a human-readable sort name.
func (s Sort) Label() string {
	switch s {
	case SortOldest:
		return "Oldest first"
	case SortAZ:
		return "A → Z"
	case SortZA:
		return "Z → A"
	default:
		return "Newest first"
	}
}

// ParseSort validates a sort name. The empty string is SortNewest.
func ParseSort(s string) (Sort, error) {
	switch v := Sort(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortAZ, SortZA:
		return v, nil
	}
	return "", errors.NewValidationError("sort", s, "must be one of newest, oldest, az, za")
}

// Query holds the view parameters.
type Query struct {
	// Category is "all", "favorites", or an exact category label. Empty means all.
	Category string `json:"category,omitempty"`
	// Search is matched case-insensitively against title, category and tags.
	Search string `json:"search,omitempty"`
	// Sort is the result order.
	Sort Sort `json:"sort,omitempty"`
	// Language drives title collation for az and za. Zero means English.
	Language language.Tag `json:"-"`
}

// Favorites answers favorite membership.
type Favorites interface {
	Has(id string) bool
}

// Set is a Favorites backed by a map.
type Set map[string]bool

// Has implements Favorites.
func (s Set) Has(id string) bool { return s[id] }

// Apply returns the videos matching q in q's order. The input slice is not modified.
func Apply(videos []*catalogs.Video, favorites Favorites, q Query) []*catalogs.Video {
	if favorites == nil {
		favorites = Set(nil)
	}

	list := make([]*catalogs.Video, 0, len(videos))
	for _, v := range videos {
		if matchCategory(v, favorites, q.Category) && matchSearch(v, q.Search) {
			list = append(list, v)
		}
	}

	slices.SortStableFunc(list, comparator(q))
	return list
}

func matchCategory(v *catalogs.Video, favorites Favorites, category string) bool {
	switch category {
	case "", CategoryAll:
		return true
	case CategoryFavorites:
		return favorites.Has(v.ID)
	default:
		return v.Category == category
	}
}

func matchSearch(v *catalogs.Video, search string) bool {
	if strings.TrimSpace(search) == "" {
		return true
	}
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(v.Title), q) || strings.Contains(strings.ToLower(v.Category), q) {
		return true
	}
	for _, t := range v.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func comparator(q Query) func(a, b *catalogs.Video) int {
	switch q.Sort {
	case SortOldest:
		return func(a, b *catalogs.Video) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) }
	case SortAZ, SortZA:
		tag := q.Language
		if tag == language.Und {
			tag = language.English
		}
		// A collator keeps scratch buffers, so each Apply gets its own.
		col := collate.New(tag)
		if q.Sort == SortZA {
			return func(a, b *catalogs.Video) int { return col.CompareString(b.Title, a.Title) }
		}
		return func(a, b *catalogs.Video) int { return col.CompareString(a.Title, b.Title) }
	default:
		return func(a, b *catalogs.Video) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) }
	}
}

