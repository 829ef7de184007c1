package query

import (
	"cmp"
	"slices"

	"github.com/agentstation/signlib/pkg/catalogs"
)

// CategoryCount is one sidebar entry.
type CategoryCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Summary holds the sidebar counts.
type Summary struct {
	Total      int             `json:"total" yaml:"total"`
	Favorites  int             `json:"favorites" yaml:"favorites"`
	Categories []CategoryCount `json:"categories" yaml:"categories"`
}

// Count returns the total, the favorites count, and the distinct non-empty
// categories sorted by name with their record counts.
//
// Only favorites naming a record in videos are counted; orphaned ids never
// show up. A nil favorites counts none.
func Count(videos []*catalogs.Video, favorites Favorites) Summary {
	counts := make(map[string]int)
	favs := 0
	for _, v := range videos {
		if favorites != nil && favorites.Has(v.ID) {
			favs++
		}
		if v.Category != "" {
			counts[v.Category]++
		}
	}

	cats := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		cats = append(cats, CategoryCount{Name: name, Count: n})
	}
	slices.SortFunc(cats, func(a, b CategoryCount) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return Summary{
		Total:      len(videos),
		Favorites:  favs,
		Categories: cats,
	}
}

// Title returns the page heading for a category filter.
func Title(category string) string {
	switch category {
	case "", CategoryAll:
		return "All Videos"
	case CategoryFavorites:
		return "♥ Favorites"
	default:
		return category
	}
}
