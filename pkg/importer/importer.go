// Package importer turns user-granted files into candidate catalog records.
//
// Three modes are supported: a single form entry with an optional file, a
// bulk upload that embeds every file as a data URL, and a folder link that
// keeps live file handles and stores only file names. The importer never
// commits; it returns records for the catalog store to insert.
package importer

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/classify"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/logging"
)

// OnError is the bulk import failure policy.
type OnError string

// Failure policies.
const (
	// Abort fails the whole batch on the first unreadable file; nothing is committed.
	Abort OnError = "abort"
	// Skip leaves unreadable files out and reports them; readable files are committed.
	Skip OnError = "skip"
)

// ParseOnError validates a policy name. The empty string is Abort.
func ParseOnError(s string) (OnError, error) {
	switch p := OnError(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Abort, nil
	case Abort, Skip:
		return p, nil
	}
	return "", errors.NewValidationError("on_error", s, "must be abort or skip")
}

// Progress is called before each file of a bulk import with the zero-based
// index, the total, and the file name, then once with (total, total, "").
type Progress func(done, total int, name string)

// Defaults are the category and tags applied to every record of a batch.
// An empty Category lets the classifier guess per file.
type Defaults struct {
	Category string
	Tags     []string
}

// SingleInput is the single add form.
type SingleInput struct {
	Title    string
	Category string
	Tags     []string
	// File is optional; without it the record is a manual entry.
	File File
}

// Failure is one unreadable file of a bulk import.
type Failure struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

// BulkResult is the outcome of a bulk import.
type BulkResult struct {
	// Videos are the new records in input order, newest first.
	Videos []*catalogs.Video
	// Failed lists files skipped under the Skip policy.
	Failed []Failure
	// Rejected counts non-video files dropped from the selection.
	Rejected int
}

// FolderResult is the outcome of a folder link.
type FolderResult struct {
	Folder   string
	Files    []File
	Videos   []*catalogs.Video
	Rejected int
}

// PreviewItem is what an import would assign to one file.
type PreviewItem struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// Importer builds records from files.
type Importer struct {
	classifier *classify.Classifier
	ids        *catalogs.IDGenerator
	onError    OnError
	logger     *zerolog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithClassifier replaces the default classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(im *Importer) {
		im.classifier = c
	}
}

// WithIDGenerator shares an id generator, e.g. with the catalog loader.
func WithIDGenerator(g *catalogs.IDGenerator) Option {
	return func(im *Importer) {
		im.ids = g
	}
}

// WithOnError sets the bulk failure policy.
func WithOnError(p OnError) Option {
	return func(im *Importer) {
		im.onError = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(im *Importer) {
		im.logger = logger
	}
}

// New creates an Importer.
func New(opts ...Option) *Importer {
	im := &Importer{
		classifier: classify.New(),
		onError:    Abort,
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(im)
	}
	if im.ids == nil {
		im.ids = catalogs.NewIDGenerator(nil)
	}
	return im
}

// OnError returns the bulk failure policy.
func (im *Importer) OnError() OnError { return im.onError }

// Classifier returns the classifier in use.
func (im *Importer) Classifier() *classify.Classifier { return im.classifier }

// Suggest returns the title and category a form should pre-fill for a file name.
func (im *Importer) Suggest(name string) (title, category string) {
	return im.classifier.Classify(name)
}

// Single builds one record from the add form. An empty title is rejected.
// The category is taken as given.
func (im *Importer) Single(ctx context.Context, in SingleInput) (*catalogs.Video, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.NewValidationError("title", in.Title, "Please enter a title")
	}

	v := &catalogs.Video{
		Title:    title,
		Category: in.Category,
		Tags:     copyTags(in.Tags),
		Source:   catalogs.SourceManual,
	}

	if in.File != nil {
		url, err := DataURL(ctx, in.File)
		if err != nil {
			return nil, err
		}
		v.FilePath = &url
		v.Source = catalogs.SourceUpload
	}

	stamp := im.ids.Stamp()
	v.ID = catalogs.SingleID(stamp)
	v.CreatedAt = stamp

	logging.FromContext(ctx).Debug().Str("video_id", v.ID).Str("source", v.Source.String()).Msg("Built single record")
	return v, nil
}

// Bulk embeds each video file as a data URL, sequentially. Non-video files
// are dropped; an empty selection fails with ErrNoVideos. Record i is dated
// i milliseconds before the first so input order survives newest-first sorting.
func (im *Importer) Bulk(ctx context.Context, files []File, d Defaults, progress Progress) (*BulkResult, error) {
	videos := FilterVideos(files)
	if len(videos) == 0 {
		return nil, errors.NewSelectionError("bulk", len(files))
	}
	if progress == nil {
		progress = func(int, int, string) {}
	}

	result := &BulkResult{Rejected: len(files) - len(videos)}
	stamp := im.ids.Stamp()
	total := len(videos)

	for i, f := range videos {
		progress(i, total, f.Name())

		url, err := DataURL(ctx, f)
		if err != nil {
			if errors.IsCanceled(err) {
				return nil, errors.NewImportError("bulk", f.Name(), i, err)
			}
			if im.onError == Skip {
				im.logger.Warn().Err(err).Str("file", f.Name()).Msg("Skipping unreadable file")
				result.Failed = append(result.Failed, Failure{Name: f.Name(), Err: err})
				continue
			}
			return nil, errors.NewImportError("bulk", f.Name(), i, err)
		}

		result.Videos = append(result.Videos, &catalogs.Video{
			ID:        catalogs.BulkID(stamp, i),
			Title:     classify.CleanTitle(f.Name()),
			Category:  im.category(d.Category, f.Name()),
			Tags:      copyTags(d.Tags),
			FilePath:  &url,
			Source:    catalogs.SourceUpload,
			CreatedAt: stamp - int64(i),
		})
	}
	progress(total, total, "")

	if len(result.Videos) == 0 && len(result.Failed) > 0 {
		first := result.Failed[0]
		return result, errors.NewImportError("bulk", first.Name, 0, first.Err)
	}
	return result, nil
}

// Folder builds folder-sourced records for the video files of a linked
// folder. Only file names are stored; the handles are returned for the
// session registry. An empty selection fails with ErrNoVideos.
func (im *Importer) Folder(folder string, files []File, d Defaults) (*FolderResult, error) {
	videos := FilterVideos(files)
	if len(videos) == 0 {
		return nil, errors.NewSelectionError("folder", len(files))
	}
	if folder == "" {
		folder = "Folder"
	}

	stamp := im.ids.Stamp()
	result := &FolderResult{
		Folder:   folder,
		Files:    videos,
		Videos:   make([]*catalogs.Video, 0, len(videos)),
		Rejected: len(files) - len(videos),
	}
	for i, f := range videos {
		result.Videos = append(result.Videos, &catalogs.Video{
			ID:        catalogs.FolderID(stamp, i),
			Title:     classify.CleanTitle(f.Name()),
			Category:  im.category(d.Category, f.Name()),
			Tags:      copyTags(d.Tags),
			FileName:  f.Name(),
			Source:    catalogs.SourceFolder,
			CreatedAt: stamp - int64(i),
		})
	}
	return result, nil
}

// Preview reports the title and category each video file would receive.
func (im *Importer) Preview(files []File, defaultCategory string) []PreviewItem {
	videos := FilterVideos(files)
	items := make([]PreviewItem, len(videos))
	for i, f := range videos {
		items[i] = PreviewItem{
			Name:     f.Name(),
			Title:    classify.CleanTitle(f.Name()),
			Category: im.category(defaultCategory, f.Name()),
		}
	}
	return items
}

func (im *Importer) category(def, name string) string {
	if def != "" {
		return def
	}
	return im.classifier.GuessCategory(name)
}

func copyTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return slices.Clone(tags)
}
