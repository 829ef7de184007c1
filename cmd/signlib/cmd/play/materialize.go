package play

import (
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/importer"
)

// Materialize returns a filesystem path holding the playback's bytes.
// Files already on disk are used in place.
func Materialize(p signlib.Playback) (path string, cleanup func(), err error) {
	if f, ok := p.File.(*importer.OSFile); ok {
		return f.Path(), func() {}, nil
	}

	rc, err := p.Open()
	if err != nil {
		return "", nil, err
	}
	defer rc.Close()

	tmp, err := os.CreateTemp("", "signlib-*"+extension(p))
	if err != nil {
		return "", nil, errors.WrapIO("create", os.TempDir(), err)
	}
	cleanup = func() { _ = os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, rc); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", nil, errors.WrapIO("write", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, errors.WrapIO("close", tmp.Name(), err)
	}
	return tmp.Name(), cleanup, nil
}

// extension picks a file suffix players can sniff the container from.
func extension(p signlib.Playback) string {
	if p.Video != nil {
		if ext := filepath.Ext(p.Video.FileName); ext != "" {
			return ext
		}
	}
	if exts, err := mime.ExtensionsByType(p.MediaType()); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
