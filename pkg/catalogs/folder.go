package catalogs

import (
	"io"
	"maps"
	"slices"
	"sync"
)

// FileHandle is a live reference to a user-granted file.
// Handles are never persisted; they only exist for the session that granted them.
type FileHandle interface {
	// Name is the base file name, the join key for folder records.
	Name() string
	// MediaType is the declared media type, e.g. "video/mp4".
	MediaType() string
	// Size is the file size in bytes, or -1 when unknown.
	Size() int64
	// Open returns a reader over the whole file.
	Open() (io.ReadCloser, error)
}

// FolderFiles is the session-scoped registry of linked folder files keyed by
// file name. It is rebuilt on every link and cleared on clear-all.
type FolderFiles struct {
	mu     sync.RWMutex
	folder string
	files  map[string]FileHandle
}

// NewFolderFiles creates an empty registry.
func NewFolderFiles() *FolderFiles {
	return &FolderFiles{files: make(map[string]FileHandle)}
}

// Link replaces the registry contents with files from folder.
// When two files share a name the later one wins.
func (r *FolderFiles) Link(folder string, files []FileHandle) {
	m := make(map[string]FileHandle, len(files))
	for _, f := range files {
		m[f.Name()] = f
	}

	r.mu.Lock()
	r.folder = folder
	r.files = m
	r.mu.Unlock()
}

// Get returns the handle registered under name.
func (r *FolderFiles) Get(name string) (FileHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.files[name]
	return f, ok
}

// Remove drops the handle registered under name.
func (r *FolderFiles) Remove(name string) {
	r.mu.Lock()
	delete(r.files, name)
	r.mu.Unlock()
}

// Clear empties the registry and forgets the folder.
func (r *FolderFiles) Clear() {
	r.mu.Lock()
	r.folder = ""
	r.files = make(map[string]FileHandle)
	r.mu.Unlock()
}

// Folder returns the display name of the linked folder, or "" when none.
func (r *FolderFiles) Folder() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.folder
}

// Len returns the number of registered files.
func (r *FolderFiles) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.files)
}

// Names returns the registered file names, sorted.
func (r *FolderFiles) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.files))
}
