package signlib

import (
	"bytes"
	"context"
	"io"

	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/logging"
	"github.com/agentstation/signlib/pkg/notify"
)

// Playback is the resolved media of a record. At most one of DataURL and
// File is set; neither is set when the record has nothing to play.
type Playback struct {
	Video   *catalogs.Video
	DataURL string
	File    importer.File
}

// Empty reports whether there is nothing to play.
func (p Playback) Empty() bool {
	return p.DataURL == "" && p.File == nil
}

// MediaType returns the declared media type of the playable content.
func (p Playback) MediaType() string {
	switch {
	case p.File != nil:
		return p.File.MediaType()
	case p.DataURL != "":
		mediaType, _, err := importer.ParseDataURL(p.DataURL)
		if err == nil {
			return mediaType
		}
	}
	return ""
}

// Open returns a reader over the playable bytes.
func (p Playback) Open() (io.ReadCloser, error) {
	switch {
	case p.File != nil:
		rc, err := p.File.Open()
		if err != nil {
			return nil, errors.WrapIO("open", p.File.Name(), err)
		}
		return rc, nil
	case p.DataURL != "":
		_, data, err := importer.ParseDataURL(p.DataURL)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return nil, errors.NewNotFoundError("media", p.videoID())
}

func (p Playback) videoID() string {
	if p.Video == nil {
		return ""
	}
	return p.Video.ID
}

// Resolve returns the playable media of id. Folder records resolve through
// the session's folder registry; when the handle is gone a relink warning is
// published and the playback is empty. An unknown id is a NotFoundError.
func (l *Library) Resolve(ctx context.Context, id string) (Playback, error) {
	v, err := l.catalog.Video(id)
	if err != nil {
		return Playback{}, err
	}

	p := Playback{Video: v}
	if v.IsFolder() && v.FileName != "" {
		if f, ok := l.catalog.FolderFiles().Get(v.FileName); ok {
			p.File = f
			return p, nil
		}
	}
	if v.FilePath != nil {
		p.DataURL = *v.FilePath
	}
	if p.Empty() && v.IsFolder() {
		logging.FromContext(logging.WithVideo(ctx, id)).Debug().Str("file", v.FileName).Msg("Folder handle missing")
		l.notify(ctx, notify.LevelWarn, constants.MsgRelinkFolder)
	}
	return p, nil
}
