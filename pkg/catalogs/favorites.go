package catalogs

import (
	"slices"
	"sync"
)

// Favorites is a concurrent safe set of video ids.
// Insertion order is kept so the persisted array is deterministic.
// Ids are not checked against the catalog; an orphaned id is simply never displayed.
type Favorites struct {
	mu    sync.RWMutex
	order []string
	set   map[string]struct{}
}

// NewFavorites creates a favorites set holding ids.
func NewFavorites(ids ...string) *Favorites {
	f := &Favorites{}
	f.replace(ids)
	return f
}

// Has reports whether id is a favorite.
func (f *Favorites) Has(id string) bool {
	f.mu.RLock()
	_, ok := f.set[id]
	f.mu.RUnlock()
	return ok
}

// Toggle flips membership of id and reports whether it is now a favorite.
func (f *Favorites) Toggle(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.set[id]; ok {
		f.remove(id)
		return false
	}
	f.set[id] = struct{}{}
	f.order = append(f.order, id)
	return true
}

// Remove drops id and reports whether it was present.
func (f *Favorites) Remove(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.set[id]; !ok {
		return false
	}
	f.remove(id)
	return true
}

// Len returns the number of favorites, orphans included.
func (f *Favorites) Len() int {
	f.mu.RLock()
	n := len(f.order)
	f.mu.RUnlock()
	return n
}

// List returns the ids in insertion order.
func (f *Favorites) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.order)
}

// Set returns a point-in-time copy of the membership set.
func (f *Favorites) Set() map[string]bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	m := make(map[string]bool, len(f.set))
	for id := range f.set {
		m[id] = true
	}
	return m
}

// Replace swaps the whole set.
func (f *Favorites) Replace(ids []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replace(ids)
}

// Clear removes all favorites.
func (f *Favorites) Clear() {
	f.Replace(nil)
}

func (f *Favorites) remove(id string) {
	delete(f.set, id)
	if i := slices.Index(f.order, id); i >= 0 {
		f.order = slices.Delete(f.order, i, i+1)
	}
}

func (f *Favorites) replace(ids []string) {
	f.order = make([]string, 0, len(ids))
	f.set = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := f.set[id]; dup || id == "" {
			continue
		}
		f.set[id] = struct{}{}
		f.order = append(f.order, id)
	}
}
