package catalogs

// Reader provides read-only access to catalog data.
type Reader interface {
	// Collections
	Videos() *Videos
	Favorites() *Favorites
	FolderFiles() *FolderFiles

	// Video gets a record by id
	Video(id string) (*Video, error)
	IsFavorite(id string) bool

	// Snapshot returns the persisted view of the catalog
	Snapshot() ([]*Video, []string)
	Revision() uint64
}

// Writer provides the catalog mutations.
type Writer interface {
	AddVideos(at Placement, videos ...*Video) error
	ReplaceFolder(folder string, files []FileHandle, videos []*Video) ([]*Video, error)
	DeleteVideo(id string) (*Video, error)
	Clear() int
	ToggleFavorite(id string) bool
	Reset(videos []*Video, favorites []string)
}

// Store is the complete catalog store interface.
type Store interface {
	Reader
	Writer
}
