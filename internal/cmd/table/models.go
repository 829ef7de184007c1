// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/signlib/internal/cmd/emoji"
	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/query"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// Favorites reports favorite membership for the ♥ column.
type Favorites interface {
	Has(id string) bool
}

// VideosToTableData converts videos to table format. Wide output adds the
// id, source and creation date.
func VideosToTableData(videos []*catalogs.Video, favs Favorites, wide bool) Data {
	headers := []string{"", "Title", "Category", "Tags"}
	align := []Align{AlignCenter, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append([]string{"ID"}, headers...)
		headers = append(headers, "Source", "Added")
		align = append([]Align{AlignLeft}, align...)
		align = append(align, AlignLeft, AlignRight)
	}

	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		heart := ""
		if favs != nil && favs.Has(v.ID) {
			heart = emoji.Favorite
		}
		row := []string{heart, v.Title, v.DisplayCategory(), FormatTags(v.Tags)}
		if wide {
			row = append([]string{v.ID}, row...)
			row = append(row, v.Source.Label(), v.Created().Format(constants.TimeFormatDate))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// VideoDetails converts one video to a property/value table.
func VideoDetails(v *catalogs.Video, favorite bool) Data {
	file := "-"
	switch {
	case v.IsFolder():
		file = v.FileName
	case v.HasEmbeddedFile():
		file = "embedded (" + FormatBytes(int64(len(*v.FilePath))) + ")"
	}
	fav := "no"
	if favorite {
		fav = "yes"
	}
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"ID", v.ID},
			{"Title", v.Title},
			{"Category", v.DisplayCategory()},
			{"Tags", FormatTags(v.Tags)},
			{"Source", v.Source.Label()},
			{"File", file},
			{"Favorite", fav},
			{"Added", v.Created().Format(constants.TimeFormatHuman)},
		},
	}
}

// SummaryToTableData converts sidebar counts to a table.
func SummaryToTableData(s query.Summary) Data {
	rows := [][]string{
		{query.Title(query.CategoryAll), strconv.Itoa(s.Total)},
		{query.Title(query.CategoryFavorites), strconv.Itoa(s.Favorites)},
	}
	for _, c := range s.Categories {
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Count)})
	}
	return Data{
		Headers:         []string{"Category", "Videos"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// PreviewToTableData converts an import preview to a table.
func PreviewToTableData(items []importer.PreviewItem) Data {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{it.Name, it.Title, it.Category}
	}
	return Data{Headers: []string{"File", "Title", "Category"}, Rows: rows}
}

// FormatTags joins tags for a table cell.
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(n)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
