package importer_test

import (
	"context"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/logging"
)

const stamp = int64(1_700_000_000_000)

// brokenFile is a video whose contents cannot be read.
type brokenFile struct{ name string }

func (f brokenFile) Name() string      { return f.name }
func (f brokenFile) MediaType() string { return "video/mp4" }
func (f brokenFile) Size() int64       { return 0 }
func (f brokenFile) Open() (io.ReadCloser, error) {
	return nil, os.ErrPermission
}

func newImporter(t *testing.T, opts ...importer.Option) *importer.Importer {
	t.Helper()
	clock := func() time.Time { return time.UnixMilli(stamp) }
	opts = append([]importer.Option{
		importer.WithIDGenerator(catalogs.NewIDGenerator(clock)),
		importer.WithLogger(logging.NewTestLogger(t).Logger),
	}, opts...)
	return importer.New(opts...)
}

func mp4(name string) importer.File {
	return importer.NewMemFile(name, "video/mp4", []byte("frames:"+name))
}

func TestSingleWithFile(t *testing.T) {
	im := newImporter(t)
	f := importer.NewMemFile("hello.mp4", "video/mp4", []byte{0, 1, 2})

	v, err := im.Single(context.Background(), importer.SingleInput{
		Title:    "  Hello  ",
		Category: "Greetings",
		Tags:     []string{"basic"},
		File:     f,
	})
	require.NoError(t, err)

	assert.Equal(t, "v_1700000000000", v.ID)
	assert.Equal(t, "Hello", v.Title)
	assert.Equal(t, "Greetings", v.Category)
	assert.Equal(t, []string{"basic"}, v.Tags)
	assert.Equal(t, catalogs.SourceUpload, v.Source)
	assert.Equal(t, stamp, v.CreatedAt)
	require.NotNil(t, v.FilePath)
	assert.Equal(t, "data:video/mp4;base64,"+base64.StdEncoding.EncodeToString([]byte{0, 1, 2}), *v.FilePath)
}

func TestSingleWithoutFile(t *testing.T) {
	v, err := newImporter(t).Single(context.Background(), importer.SingleInput{Title: "Water"})
	require.NoError(t, err)
	assert.Equal(t, catalogs.SourceManual, v.Source)
	assert.Nil(t, v.FilePath)
	assert.Equal(t, "", v.Category)
	assert.Equal(t, []string{}, v.Tags)
}

func TestSingleRejectsEmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		v, err := newImporter(t).Single(context.Background(), importer.SingleInput{Title: title})
		assert.Nil(t, v)
		assert.True(t, errors.IsValidationError(err), "title %q", title)
	}
}

func TestSingleIDsAreUnique(t *testing.T) {
	im := newImporter(t)
	a, err := im.Single(context.Background(), importer.SingleInput{Title: "A"})
	require.NoError(t, err)
	b, err := im.Single(context.Background(), importer.SingleInput{Title: "B"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Greater(t, b.CreatedAt, a.CreatedAt)
}

func TestSuggest(t *testing.T) {
	title, category := newImporter(t).Suggest("thank-you_v2.mp4")
	assert.Equal(t, "Thank You V2", title)
	assert.Equal(t, "Greetings", category)
}

func TestBulk(t *testing.T) {
	im := newImporter(t)
	files := []importer.File{
		mp4("hello.mp4"),
		importer.NewMemFile("notes.txt", "text/plain", []byte("x")),
		mp4("one.mp4"),
		mp4("happy_face.mp4"),
	}

	var calls [][2]int
	res, err := im.Bulk(context.Background(), files, importer.Defaults{Tags: []string{"lesson"}},
		func(done, total int, _ string) { calls = append(calls, [2]int{done, total}) })
	require.NoError(t, err)

	require.Len(t, res.Videos, 3)
	assert.Equal(t, 1, res.Rejected)
	assert.Empty(t, res.Failed)
	assert.Equal(t, [][2]int{{0, 3}, {1, 3}, {2, 3}, {3, 3}}, calls)

	ids := map[string]bool{}
	for i, v := range res.Videos {
		ids[v.ID] = true
		assert.Equal(t, stamp-int64(i), v.CreatedAt)
		assert.Equal(t, catalogs.SourceUpload, v.Source)
		assert.Equal(t, []string{"lesson"}, v.Tags)
		if i > 0 {
			assert.Less(t, v.CreatedAt, res.Videos[i-1].CreatedAt)
		}
	}
	assert.Len(t, ids, 3)
	assert.Equal(t, "b_1700000000000_0", res.Videos[0].ID)

	assert.Equal(t, "Hello", res.Videos[0].Title)
	assert.Equal(t, "Greetings", res.Videos[0].Category)
	assert.Equal(t, "Numbers", res.Videos[1].Category)
	assert.Equal(t, "Happy Face", res.Videos[2].Title)
	assert.Equal(t, "Alphabet", res.Videos[2].Category, "the single letter a is matched before Emotions")

	// Tags are not shared between records.
	res.Videos[0].Tags[0] = "changed"
	assert.Equal(t, "lesson", res.Videos[1].Tags[0])
}

func TestBulkDefaultCategoryOverridesGuess(t *testing.T) {
	res, err := newImporter(t).Bulk(context.Background(), []importer.File{mp4("hello.mp4")},
		importer.Defaults{Category: "Lesson 1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Lesson 1", res.Videos[0].Category)
}

func TestBulkNoVideos(t *testing.T) {
	im := newImporter(t)

	_, err := im.Bulk(context.Background(), nil, importer.Defaults{}, nil)
	assert.True(t, errors.IsNoVideos(err))

	_, err = im.Bulk(context.Background(), []importer.File{
		importer.NewMemFile("a.txt", "", nil),
		importer.NewMemFile("b.png", "", nil),
	}, importer.Defaults{}, nil)
	assert.True(t, errors.IsNoVideos(err))
	assert.Contains(t, err.Error(), "0 of 2 files are videos")
}

func TestBulkAbortOnUnreadableFile(t *testing.T) {
	im := newImporter(t)
	files := []importer.File{mp4("hello.mp4"), brokenFile{"bad.mp4"}, mp4("one.mp4")}

	res, err := im.Bulk(context.Background(), files, importer.Defaults{}, nil)
	assert.Nil(t, res)

	var impErr *errors.ImportError
	require.True(t, errors.As(err, &impErr))
	assert.Equal(t, "bad.mp4", impErr.File)
	assert.Equal(t, 1, impErr.Index)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestBulkSkipOnUnreadableFile(t *testing.T) {
	im := newImporter(t, importer.WithOnError(importer.Skip))
	files := []importer.File{mp4("hello.mp4"), brokenFile{"bad.mp4"}, mp4("one.mp4")}

	res, err := im.Bulk(context.Background(), files, importer.Defaults{}, nil)
	require.NoError(t, err)
	require.Len(t, res.Videos, 2)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "bad.mp4", res.Failed[0].Name)
	// Positions keep the index of the original file.
	assert.Equal(t, "b_1700000000000_2", res.Videos[1].ID)
}

func TestBulkSkipAllFailed(t *testing.T) {
	im := newImporter(t, importer.WithOnError(importer.Skip))
	_, err := im.Bulk(context.Background(), []importer.File{brokenFile{"bad.mp4"}}, importer.Defaults{}, nil)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestBulkCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newImporter(t, importer.WithOnError(importer.Skip)).
		Bulk(ctx, []importer.File{mp4("hello.mp4")}, importer.Defaults{}, nil)
	assert.True(t, errors.IsCanceled(err))
}

func TestFolder(t *testing.T) {
	im := newImporter(t)
	files := []importer.File{
		mp4("thank-you_v2.mp4"),
		importer.NewMemFile("cover.jpg", "", nil),
		mp4("water.mov"),
	}

	res, err := im.Folder("Signs", files, importer.Defaults{})
	require.NoError(t, err)
	assert.Equal(t, "Signs", res.Folder)
	assert.Equal(t, 1, res.Rejected)
	require.Len(t, res.Files, 2)
	require.Len(t, res.Videos, 2)

	v := res.Videos[0]
	assert.Equal(t, "fl_1700000000000_0", v.ID)
	assert.Equal(t, "Thank You V2", v.Title)
	assert.Equal(t, "Greetings", v.Category)
	assert.Equal(t, "thank-you_v2.mp4", v.FileName)
	assert.Nil(t, v.FilePath)
	assert.Equal(t, catalogs.SourceFolder, v.Source)
	assert.Equal(t, stamp-1, res.Videos[1].CreatedAt)
}

func TestFolderDefaultsName(t *testing.T) {
	res, err := newImporter(t).Folder("", []importer.File{mp4("a.mp4")}, importer.Defaults{})
	require.NoError(t, err)
	assert.Equal(t, "Folder", res.Folder)
}

func TestFolderNoVideos(t *testing.T) {
	_, err := newImporter(t).Folder("Signs", []importer.File{importer.NewMemFile("a.txt", "", nil)}, importer.Defaults{})
	assert.True(t, errors.IsNoVideos(err))
}

func TestPreview(t *testing.T) {
	items := newImporter(t).Preview([]importer.File{
		mp4("hello_there.mp4"),
		importer.NewMemFile("readme.md", "", nil),
	}, "")
	require.Len(t, items, 1)
	assert.Equal(t, importer.PreviewItem{Name: "hello_there.mp4", Title: "Hello There", Category: "Greetings"}, items[0])
}

func TestParseOnError(t *testing.T) {
	p, err := importer.ParseOnError("")
	require.NoError(t, err)
	assert.Equal(t, importer.Abort, p)

	p, err = importer.ParseOnError("SKIP")
	require.NoError(t, err)
	assert.Equal(t, importer.Skip, p)

	_, err = importer.ParseOnError("retry")
	assert.True(t, errors.IsValidationError(err))
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "video/mp4", importer.MediaType("x.MP4"))
	assert.Equal(t, "video/quicktime", importer.MediaType("clip.mov"))
	assert.Equal(t, "application/octet-stream", importer.MediaType("noext"))
}

func TestDataURLRoundTrip(t *testing.T) {
	data := []byte("some video bytes")
	url, err := importer.DataURL(context.Background(), importer.NewMemFile("a.webm", "", data))
	require.NoError(t, err)

	mediaType, got, err := importer.ParseDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "video/webm", mediaType)
	assert.Equal(t, data, got)

	_, _, err = importer.ParseDataURL("http://example.com/a.mp4")
	assert.Error(t, err)
}

func TestWalkFolder(t *testing.T) {
	root := filepath.Join(t.TempDir(), "My Signs")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".cache"), 0o755))
	for _, p := range []string{"b.mp4", "a.mov", "notes.txt", "sub/c.mp4", ".hidden.mp4", ".cache/d.mp4"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, p), []byte(p), 0o644))
	}

	name, files, err := importer.WalkFolder(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, "My Signs", name)

	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"a.mov", "b.mp4", "notes.txt", "c.mp4"}, names)
	assert.Len(t, importer.FilterVideos(files), 3)

	_, _, err = importer.WalkFolder(context.Background(), filepath.Join(root, "b.mp4"))
	assert.True(t, errors.IsValidationError(err))
}

func TestFolderName(t *testing.T) {
	assert.Equal(t, "signs", importer.FolderName("/home/me/signs/"))
	assert.Equal(t, "Folder", importer.FolderName("/"))
}
