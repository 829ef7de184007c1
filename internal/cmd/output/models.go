package output

import (
	"io"

	"github.com/agentstation/signlib/internal/cmd/table"
	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/query"
)

// FormatVideos writes videos as a table or as structured records.
func FormatVideos(w io.Writer, format Format, videos []*catalogs.Video, favs table.Favorites) error {
	var data any = videos
	if format.IsTable() {
		data = table.VideosToTableData(videos, favs, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatVideo writes a single record.
func FormatVideo(w io.Writer, format Format, v *catalogs.Video, favorite bool) error {
	var data any = v
	if format.IsTable() {
		data = table.VideoDetails(v, favorite)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatSummary writes sidebar counts.
func FormatSummary(w io.Writer, format Format, s query.Summary) error {
	var data any = s
	if format.IsTable() {
		data = table.SummaryToTableData(s)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatAny writes data that has no table form.
func FormatAny(w io.Writer, format Format, data any) error {
	return NewFormatter(format).Format(w, data)
}
