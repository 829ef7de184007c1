// Package export writes a snapshot of the library as a Markdown report or as
// JSON/YAML documents.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	md "github.com/nao1215/markdown"

	"github.com/agentstation/signlib/internal/cmd/emoji"
	"github.com/agentstation/signlib/internal/cmd/table"
	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/query"
)

// Format is an export format.
type Format string

// Supported export formats.
const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat validates an export format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.NewValidationError("format", s, "must be one of markdown, json, yaml")
}

// Extension returns the usual file extension for f.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".md"
	}
}

// Record is one exported video. Embedded bytes are never exported.
type Record struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Category  string    `json:"category" yaml:"category"`
	Tags      []string  `json:"tags" yaml:"tags"`
	Source    string    `json:"source" yaml:"source"`
	FileName  string    `json:"fileName,omitempty" yaml:"file_name,omitempty"`
	HasFile   bool      `json:"hasFile" yaml:"has_file"`
	Favorite  bool      `json:"favorite" yaml:"favorite"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// Document is a library snapshot.
type Document struct {
	GeneratedAt time.Time     `json:"generatedAt" yaml:"generated_at"`
	View        string        `json:"view" yaml:"view"`
	Summary     query.Summary `json:"summary" yaml:"summary"`
	Videos      []Record      `json:"videos" yaml:"videos"`
}

// Build snapshots the videos matching q. The summary always covers the
// whole catalog.
func Build(videos []*catalogs.Video, favorites query.Favorites, q query.Query, now time.Time) Document {
	if favorites == nil {
		favorites = query.Set(nil)
	}

	visible := query.Apply(videos, favorites, q)
	doc := Document{
		GeneratedAt: now.UTC(),
		View:        query.Title(q.Category),
		Summary:     query.Count(videos, favorites),
		Videos:      make([]Record, 0, len(visible)),
	}
	for _, v := range visible {
		tags := v.Tags
		if tags == nil {
			tags = []string{}
		}
		doc.Videos = append(doc.Videos, Record{
			ID:        v.ID,
			Title:     v.Title,
			Category:  v.Category,
			Tags:      tags,
			Source:    v.Source.String(),
			FileName:  v.FileName,
			HasFile:   v.HasEmbeddedFile() || v.IsFolder(),
			Favorite:  favorites.Has(v.ID),
			CreatedAt: v.Created().UTC(),
		})
	}
	return doc
}

// Write renders doc in format f.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return errors.WrapParse("yaml", "export", err)
		}
		_, err = w.Write(data)
		return err
	case FormatMarkdown, "":
		return writeMarkdown(w, doc)
	}
	return errors.NewValidationError("format", string(f), "unsupported export format")
}

func writeMarkdown(w io.Writer, doc Document) error {
	m := md.NewMarkdown(w)
	m.H1("SignLib Library").LF()
	m.PlainTextf("%s · exported %s", doc.View, doc.GeneratedAt.Format(constants.TimeFormatHuman)).LF()

	m.H2("Summary").LF()
	m.BulletList(
		fmt.Sprintf("%s %d", md.Bold("Videos:"), doc.Summary.Total),
		fmt.Sprintf("%s %d", md.Bold("Favorites:"), doc.Summary.Favorites),
		fmt.Sprintf("%s %d", md.Bold("Categories:"), len(doc.Summary.Categories)),
	).LF()

	if len(doc.Summary.Categories) > 0 {
		rows := make([][]string, 0, len(doc.Summary.Categories))
		for _, c := range doc.Summary.Categories {
			rows = append(rows, []string{cell(c.Name), fmt.Sprintf("%d", c.Count)})
		}
		m.H2("Categories").LF()
		m.Table(md.TableSet{Header: []string{"Category", "Videos"}, Rows: rows}).LF()
	}

	m.H2(doc.View).LF()
	if len(doc.Videos) == 0 {
		m.PlainText(md.Italic("No videos")).LF()
		return m.Build()
	}

	rows := make([][]string, 0, len(doc.Videos))
	for _, r := range doc.Videos {
		fav := ""
		if r.Favorite {
			fav = emoji.Favorite
		}
		category := r.Category
		if category == "" {
			category = catalogs.UncategorizedLabel
		}
		rows = append(rows, []string{
			fav,
			cell(r.Title),
			cell(category),
			cell(table.FormatTags(r.Tags)),
			sourceLabel(r.Source),
			r.CreatedAt.Format(constants.TimeFormatDate),
		})
	}
	m.Table(md.TableSet{
		Header: []string{emoji.Favorite, "Title", "Category", "Tags", "Source", "Added"},
		Rows:   rows,
	})
	return m.Build()
}

// cell escapes pipes so user text cannot break the table.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func sourceLabel(s string) string {
	src, err := catalogs.ParseSource(s)
	if err != nil {
		return s
	}
	return src.Label()
}
