package storage

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
)

const fileExt = ".json"

// File is a KV storing one file per key under a directory.
// Writes go to a temp file that is renamed into place.
type File struct {
	mu  sync.Mutex
	dir string
}

var _ KV = (*File)(nil)

// NewFile creates the directory if needed and returns a file substrate over it.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.NewConfigError("storage", "file backend requires a path", errors.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the storage directory.
func (f *File) Dir() string { return f.dir }

func (f *File) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+fileExt)
}

// Get implements KV.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(key)
		}
		return nil, errors.WrapIO("read", f.path(key), err)
	}
	return data, nil
}

// Set implements KV.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, ".tmp_*")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Chmod(constants.SecureFilePermissions); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", tmpPath, err)
	}

	if err := os.Rename(tmpPath, f.path(key)); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", f.path(key), err)
	}
	return nil
}

// Delete implements KV.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", f.path(key), err)
	}
	return nil
}

// Size implements KV.
func (f *File) Size(_ context.Context) (int64, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0, errors.WrapIO("read", f.dir, err)
	}
	var n int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return 0, errors.WrapIO("stat", e.Name(), err)
		}
		n += info.Size()
	}
	return n, nil
}

// Close implements KV.
func (f *File) Close() error { return nil }
