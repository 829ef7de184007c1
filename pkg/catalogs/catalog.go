// Package catalogs provides the catalog store for signlib: the ordered video
// collection, the favorites set, and the session-scoped folder file registry.
//
// The store is the sole mutator of library state. It knows nothing about
// persistence or presentation; the signlib package wraps it with both.
//
// Example usage:
//
//	cat := catalogs.New(catalogs.WithVideos(catalogs.DemoSeed(time.Now())))
//	_ = cat.AddVideos(catalogs.Prepend, &catalogs.Video{ID: "v_1", Title: "Hello"})
//	cat.ToggleFavorite("v_1")
//	for _, v := range cat.Videos().List() {
//	    fmt.Println(v.Title)
//	}
package catalogs

import (
	"sync/atomic"

	"github.com/agentstation/signlib/pkg/errors"
)

// Placement selects where new records enter the catalog.
type Placement int

const (
	// Prepend places records at the front, newest first.
	Prepend Placement = iota
	// Append places records at the end.
	Append
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ Store  = (*Catalog)(nil)
	_ Reader = (*Catalog)(nil)
	_ Writer = (*Catalog)(nil)
)

// Catalog is the in-memory catalog store.
type Catalog struct {
	videos    *Videos
	favorites *Favorites
	folder    *FolderFiles
	revision  atomic.Uint64
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithVideos initializes the catalog with videos in order.
func WithVideos(videos []*Video) Option {
	return func(c *Catalog) {
		c.videos.Replace(videos)
	}
}

// WithFavorites initializes the favorites set.
func WithFavorites(ids []string) Option {
	return func(c *Catalog) {
		c.favorites.Replace(ids)
	}
}

// New creates a catalog store.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		videos:    NewVideos(),
		favorites: NewFavorites(),
		folder:    NewFolderFiles(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Videos returns the video collection.
func (c *Catalog) Videos() *Videos { return c.videos }

// Favorites returns the favorites set.
func (c *Catalog) Favorites() *Favorites { return c.favorites }

// FolderFiles returns the folder file registry.
func (c *Catalog) FolderFiles() *FolderFiles { return c.folder }

// Revision returns a counter bumped on every mutation.
func (c *Catalog) Revision() uint64 { return c.revision.Load() }

// Video returns a video by id.
func (c *Catalog) Video(id string) (*Video, error) {
	v, ok := c.videos.Get(id)
	if !ok {
		return nil, errors.NewNotFoundError("video", id)
	}
	return v, nil
}

// IsFavorite reports whether id is a favorite.
func (c *Catalog) IsFavorite(id string) bool {
	return c.favorites.Has(id)
}

// AddVideos commits new records at the given placement.
func (c *Catalog) AddVideos(at Placement, videos ...*Video) error {
	if len(videos) == 0 {
		return nil
	}
	var err error
	if at == Append {
		err = c.videos.Append(videos...)
	} else {
		err = c.videos.Prepend(videos...)
	}
	if err != nil {
		return err
	}
	c.revision.Add(1)
	return nil
}

// ReplaceFolder drops every folder-sourced record, binds the registry to
// files, and appends videos. It returns the dropped records.
func (c *Catalog) ReplaceFolder(folder string, files []FileHandle, videos []*Video) ([]*Video, error) {
	dropped := c.videos.DeleteFunc(func(v *Video) bool { return v.IsFolder() })
	c.folder.Link(folder, files)
	if err := c.videos.Append(videos...); err != nil {
		c.revision.Add(1)
		return dropped, err
	}
	c.revision.Add(1)
	return dropped, nil
}

// DeleteVideo removes a record, its favorite entry, and for folder records
// its registry entry. An absent id yields a NotFoundError.
func (c *Catalog) DeleteVideo(id string) (*Video, error) {
	v, err := c.videos.Delete(id)
	if err != nil {
		return nil, err
	}
	c.favorites.Remove(id)
	if v.IsFolder() && v.FileName != "" {
		c.folder.Remove(v.FileName)
	}
	c.revision.Add(1)
	return v, nil
}

// Clear empties the catalog, the favorites, and the folder registry.
func (c *Catalog) Clear() int {
	n := c.videos.Len()
	c.videos.Clear()
	c.favorites.Clear()
	c.folder.Clear()
	c.revision.Add(1)
	return n
}

// ToggleFavorite flips favorite membership of id and reports the new state.
// The id is not required to be a live record.
func (c *Catalog) ToggleFavorite(id string) bool {
	on := c.favorites.Toggle(id)
	c.revision.Add(1)
	return on
}

// Reset replaces catalog and favorites wholesale, e.g. after a load.
// The folder registry is left untouched.
func (c *Catalog) Reset(videos []*Video, favorites []string) {
	c.videos.Replace(videos)
	c.favorites.Replace(favorites)
	c.revision.Add(1)
}

// Snapshot returns the persisted view: records in order and favorite ids.
func (c *Catalog) Snapshot() ([]*Video, []string) {
	return c.videos.List(), c.favorites.List()
}
