package catalogs

import (
	"slices"
	"sync"

	"github.com/agentstation/signlib/pkg/errors"
)

// Videos is a concurrent safe, ordered collection of videos.
// Order is the catalog array order and is significant for display and
// for stable sorting.
type Videos struct {
	mu     sync.RWMutex
	videos []*Video
	index  map[string]int
}

// VideosOption defines a function that configures a Videos instance.
type VideosOption func(*Videos)

// WithVideosCapacity sets the initial capacity of the collection.
func WithVideosCapacity(capacity int) VideosOption {
	return func(v *Videos) {
		v.videos = make([]*Video, 0, capacity)
		v.index = make(map[string]int, capacity)
	}
}

// WithVideosList initializes the collection with existing videos.
// Later duplicates of an id are dropped.
func WithVideosList(videos []*Video) VideosOption {
	return func(v *Videos) {
		v.replace(videos)
	}
}

// NewVideos creates a new Videos collection with optional configuration.
func NewVideos(opts ...VideosOption) *Videos {
	v := &Videos{
		videos: []*Video{},
		index:  make(map[string]int),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Get returns a video by id and whether it exists.
func (v *Videos) Get(id string) (*Video, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	i, ok := v.index[id]
	if !ok {
		return nil, false
	}
	return v.videos[i], true
}

// Exists checks if a video exists without returning it.
func (v *Videos) Exists(id string) bool {
	v.mu.RLock()
	_, ok := v.index[id]
	v.mu.RUnlock()
	return ok
}

// Len returns the number of videos.
func (v *Videos) Len() int {
	v.mu.RLock()
	n := len(v.videos)
	v.mu.RUnlock()
	return n
}

// List returns the videos in catalog order.
// The slice is a copy; the records are shared and must not be modified.
func (v *Videos) List() []*Video {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.videos)
}

// Prepend inserts videos at the front, keeping their relative order.
func (v *Videos) Prepend(videos ...*Video) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.checkNew(videos); err != nil {
		return err
	}
	v.rebuild(append(slices.Clone(videos), v.videos...))
	return nil
}

// Append inserts videos at the end, keeping their relative order.
func (v *Videos) Append(videos ...*Video) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.checkNew(videos); err != nil {
		return err
	}
	v.rebuild(append(slices.Clone(v.videos), videos...))
	return nil
}

// Delete removes a video by id. Returns a NotFoundError if it doesn't exist.
func (v *Videos) Delete(id string) (*Video, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	i, ok := v.index[id]
	if !ok {
		return nil, errors.NewNotFoundError("video", id)
	}
	removed := v.videos[i]
	v.rebuild(slices.Delete(slices.Clone(v.videos), i, i+1))
	return removed, nil
}

// DeleteFunc removes every video for which fn returns true and returns them.
func (v *Videos) DeleteFunc(fn func(*Video) bool) []*Video {
	v.mu.Lock()
	defer v.mu.Unlock()

	var removed []*Video
	kept := make([]*Video, 0, len(v.videos))
	for _, video := range v.videos {
		if fn(video) {
			removed = append(removed, video)
			continue
		}
		kept = append(kept, video)
	}
	if len(removed) > 0 {
		v.rebuild(kept)
	}
	return removed
}

// Replace swaps the whole collection.
func (v *Videos) Replace(videos []*Video) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.replace(videos)
}

// Clear removes all videos.
func (v *Videos) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rebuild(nil)
}

// ForEach applies a function to each video in order.
// If the function returns false, iteration stops early.
func (v *Videos) ForEach(fn func(video *Video) bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, video := range v.videos {
		if !fn(video) {
			break
		}
	}
}

func (v *Videos) checkNew(videos []*Video) error {
	seen := make(map[string]struct{}, len(videos))
	for _, video := range videos {
		if video == nil {
			return errors.NewValidationError("video", nil, "video cannot be nil")
		}
		if video.ID == "" {
			return errors.NewValidationError("id", video.ID, "video id cannot be empty")
		}
		if _, ok := v.index[video.ID]; ok {
			return errors.WrapResource("add", "video", video.ID, errors.ErrAlreadyExists)
		}
		if _, ok := seen[video.ID]; ok {
			return errors.WrapResource("add", "video", video.ID, errors.ErrAlreadyExists)
		}
		seen[video.ID] = struct{}{}
	}
	return nil
}

func (v *Videos) replace(videos []*Video) {
	list := make([]*Video, 0, len(videos))
	seen := make(map[string]struct{}, len(videos))
	for _, video := range videos {
		if video == nil || video.ID == "" {
			continue
		}
		if _, dup := seen[video.ID]; dup {
			continue
		}
		seen[video.ID] = struct{}{}
		list = append(list, video)
	}
	v.rebuild(list)
}

func (v *Videos) rebuild(list []*Video) {
	if list == nil {
		list = []*Video{}
	}
	v.videos = list
	v.index = make(map[string]int, len(list))
	for i, video := range list {
		video.normalize()
		v.index[video.ID] = i
	}
}
