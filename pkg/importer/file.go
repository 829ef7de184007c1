package importer

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/errors"
)

// File is a user-granted file: a name, a declared media type and a whole-file read.
type File = catalogs.FileHandle

// videoTypes maps extensions to media types for containers the platform
// mime table may not know.
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".mpg":  "video/mpeg",
	".mpeg": "video/mpeg",
	".3gp":  "video/3gpp",
	".ogv":  "video/ogg",
}

// MediaType returns the declared media type of a file name, from its
// extension. Unknown extensions are application/octet-stream.
func MediaType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := videoTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = strings.TrimSpace(t[:i])
		}
		return t
	}
	return "application/octet-stream"
}

// IsVideo reports whether f declares a video media type.
func IsVideo(f File) bool {
	return strings.HasPrefix(strings.ToLower(f.MediaType()), "video/")
}

// FilterVideos keeps the video files, in order.
func FilterVideos(files []File) []File {
	out := make([]File, 0, len(files))
	for _, f := range files {
		if f != nil && IsVideo(f) {
			out = append(out, f)
		}
	}
	return out
}

// DataURL reads f whole and encodes it as data:<type>;base64,<payload>.
func DataURL(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.ErrCanceled
	}
	rc, err := f.Open()
	if err != nil {
		return "", errors.WrapIO("open", f.Name(), err)
	}
	defer func() { _ = rc.Close() }()

	var b strings.Builder
	b.WriteString("data:")
	b.WriteString(f.MediaType())
	b.WriteString(";base64,")
	enc := base64.NewEncoder(base64.StdEncoding, &b)
	if _, err := io.Copy(enc, rc); err != nil {
		return "", errors.WrapIO("read", f.Name(), err)
	}
	if err := enc.Close(); err != nil {
		return "", errors.WrapIO("read", f.Name(), err)
	}
	return b.String(), nil
}

// ParseDataURL splits a base64 data URL into its media type and bytes.
func ParseDataURL(s string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, errors.NewParseError("dataurl", "", "missing data: prefix", nil)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.NewParseError("dataurl", "", "missing comma", nil)
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if mediaType == "" {
		mediaType = "text/plain"
	}
	if !isBase64 {
		return mediaType, []byte(payload), nil
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.WrapParse("dataurl", "", err)
	}
	return mediaType, data, nil
}

// OSFile is a File on the local filesystem.
type OSFile struct {
	path      string
	size      int64
	mediaType string
}

var _ File = (*OSFile)(nil)

// OpenFile stats path and returns it as a File.
func OpenFile(path string) (*OSFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.WrapIO("stat", path, err)
	}
	if info.IsDir() {
		return nil, errors.NewValidationError("file", path, "is a directory")
	}
	return &OSFile{path: path, size: info.Size(), mediaType: MediaType(path)}, nil
}

// Name implements File.
func (f *OSFile) Name() string { return filepath.Base(f.path) }

// Path returns the full path.
func (f *OSFile) Path() string { return f.path }

// MediaType implements File.
func (f *OSFile) MediaType() string { return f.mediaType }

// Size implements File.
func (f *OSFile) Size() int64 { return f.size }

// Open implements File.
func (f *OSFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// OpenFiles opens each path as a File.
func OpenFiles(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		f, err := OpenFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// WalkFolder lists every regular file below root, sorted by path, and
// returns the folder's display name. Hidden entries are skipped.
func WalkFolder(ctx context.Context, root string) (string, []File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", nil, errors.WrapIO("stat", root, err)
	}
	if !info.IsDir() {
		return "", nil, errors.NewValidationError("folder", root, "is not a directory")
	}

	var found []*OSFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return errors.ErrCanceled
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		found = append(found, &OSFile{path: path, size: fi.Size(), mediaType: MediaType(path)})
		return nil
	})
	if err != nil {
		if errors.Is(err, errors.ErrCanceled) {
			return "", nil, err
		}
		return "", nil, errors.WrapIO("walk", root, err)
	}

	slices.SortFunc(found, func(a, b *OSFile) int {
		return strings.Compare(a.path, b.path)
	})
	files := make([]File, len(found))
	for i, f := range found {
		files[i] = f
	}
	name := root
	if abs, err := filepath.Abs(root); err == nil {
		name = abs
	}
	return FolderName(name), files, nil
}

// FolderName returns the display name of a folder path, "Folder" when it has none.
func FolderName(root string) string {
	name := filepath.Base(filepath.Clean(root))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "Folder"
	}
	return name
}

// MemFile is an in-memory File, used for uploads and tests.
type MemFile struct {
	name      string
	mediaType string
	data      []byte
}

var _ File = (*MemFile)(nil)

// NewMemFile creates a MemFile. An empty mediaType is derived from the name.
func NewMemFile(name, mediaType string, data []byte) *MemFile {
	if mediaType == "" {
		mediaType = MediaType(name)
	}
	return &MemFile{name: name, mediaType: mediaType, data: data}
}

// Name implements File.
func (f *MemFile) Name() string { return f.name }

// MediaType implements File.
func (f *MemFile) MediaType() string { return f.mediaType }

// Size implements File.
func (f *MemFile) Size() int64 { return int64(len(f.data)) }

// Open implements File.
func (f *MemFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}
