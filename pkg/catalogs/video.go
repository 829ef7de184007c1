package catalogs

import (
	"strings"
	"time"

	"github.com/agentstation/signlib/pkg/errors"
)

// Source records how a video's bytes, if any, were obtained.
type Source string

// Source values.
const (
	SourceDemo   Source = "demo"   // SourceDemo is a record installed by the demo seed.
	SourceManual Source = "manual" // SourceManual is a record added without a file.
	SourceUpload Source = "upload" // SourceUpload is a record with embedded bytes.
	SourceFolder Source = "folder" // SourceFolder is a record bound to a linked folder file.
)

// String returns the string representation of a source.
func (s Source) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known sources.
func (s Source) IsValid() bool {
	switch s {
	case SourceDemo, SourceManual, SourceUpload, SourceFolder:
		return true
	}
	return false
}

// Label returns the badge text shown next to a video.
func (s Source) Label() string {
	switch s {
	case SourceDemo:
		return "Demo"
	case SourceUpload:
		return "Uploaded"
	case SourceFolder:
		return "Folder"
	default:
		return "Manual"
	}
}

// ParseSource parses a source name.
func ParseSource(s string) (Source, error) {
	src := Source(strings.ToLower(strings.TrimSpace(s)))
	if !src.IsValid() {
		return "", errors.NewValidationError("source", s, "must be one of demo, manual, upload, folder")
	}
	return src, nil
}

// UncategorizedLabel is displayed for videos with an empty category.
const UncategorizedLabel = "Uncategorized"

// Video is a single catalog entry.
//
// The JSON field names are the persisted format and must not change without
// bumping the catalog storage key.
type Video struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Category  string   `json:"category" yaml:"category"`
	Tags      []string `json:"tags" yaml:"tags"`
	FilePath  *string  `json:"filePath" yaml:"-"`
	FileName  string   `json:"fileName,omitempty" yaml:"file_name,omitempty"`
	Source    Source   `json:"source" yaml:"source"`
	CreatedAt int64    `json:"createdAt" yaml:"created_at"`
}

// Created returns CreatedAt as a time.
func (v *Video) Created() time.Time {
	return time.UnixMilli(v.CreatedAt)
}

// HasEmbeddedFile reports whether the record carries its own bytes as a data URL.
func (v *Video) HasEmbeddedFile() bool {
	return v.FilePath != nil && *v.FilePath != ""
}

// IsFolder reports whether the record is bound to a linked folder file.
func (v *Video) IsFolder() bool {
	return v.Source == SourceFolder
}

// DisplayCategory returns the category, or UncategorizedLabel when empty.
func (v *Video) DisplayCategory() string {
	if v.Category == "" {
		return UncategorizedLabel
	}
	return v.Category
}

// Copy returns a deep copy of the video.
func (v *Video) Copy() *Video {
	if v == nil {
		return nil
	}
	c := *v
	c.Tags = append([]string{}, v.Tags...)
	if v.FilePath != nil {
		p := *v.FilePath
		c.FilePath = &p
	}
	return &c
}

// normalize fills zero values that must serialize as empty collections.
func (v *Video) normalize() {
	if v.Tags == nil {
		v.Tags = []string{}
	}
}

// ParseTags splits a comma-separated tag list, trimming spaces and
// dropping empty entries.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
