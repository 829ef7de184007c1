package signlib

import (
	"context"
	"fmt"

	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/logging"
	"github.com/agentstation/signlib/pkg/notify"
)

// AddSingle creates one record from the add form and inserts it at the front.
// An empty title is rejected with a ValidationError and a notice.
func (l *Library) AddSingle(ctx context.Context, in importer.SingleInput) (*catalogs.Video, error) {
	v, err := l.importer.Single(ctx, in)
	if err != nil {
		if errors.IsValidationError(err) {
			l.notify(ctx, notify.LevelInfo, "Please enter a title")
		}
		return nil, err
	}

	out := &outcome{}
	l.mu.Lock()
	if err := l.catalog.AddVideos(catalogs.Prepend, v); err != nil {
		l.mu.Unlock()
		return nil, err
	}
	l.persistLocked(ctx, out)
	out.change = &Change{Kind: ChangeAdded, Revision: l.catalog.Revision(), IDs: []string{v.ID}}
	l.mu.Unlock()

	if v.Source == catalogs.SourceUpload {
		out.notices = append([]notify.Notice{{Level: notify.LevelSuccess, Message: fmt.Sprintf("\"%s\" added!", v.Title)}}, out.notices...)
	} else {
		out.notices = append([]notify.Notice{{Level: notify.LevelInfo, Message: fmt.Sprintf("\"%s\" saved (no file attached)", v.Title)}}, out.notices...)
	}

	logging.FromContext(ctx).Info().Str("video_id", v.ID).Str("source", v.Source.String()).Msg("Added video")
	l.publish(ctx, out)
	return v, nil
}

// ImportBulk embeds every video file and prepends the batch in input order.
// File reads happen before the catalog is locked; the commit is atomic.
func (l *Library) ImportBulk(ctx context.Context, files []importer.File, d importer.Defaults, progress importer.Progress) (*importer.BulkResult, error) {
	ctx = logging.WithOperation(ctx, "import_bulk")
	res, err := l.importer.Bulk(ctx, files, d, progress)
	if err != nil {
		if errors.IsNoVideos(err) {
			l.notify(ctx, notify.LevelWarn, "No video files selected")
		}
		return res, err
	}

	out := &outcome{}
	l.mu.Lock()
	if err := l.catalog.AddVideos(catalogs.Prepend, res.Videos...); err != nil {
		l.mu.Unlock()
		return nil, err
	}
	l.persistLocked(ctx, out)
	out.change = &Change{Kind: ChangeAdded, Revision: l.catalog.Revision(), IDs: videoIDs(res.Videos)}
	l.mu.Unlock()

	n := len(res.Videos)
	out.notices = append([]notify.Notice{{Level: notify.LevelSuccess, Message: fmt.Sprintf("%d video%s imported ✓", n, plural(n))}}, out.notices...)
	if len(res.Failed) > 0 {
		out.add(notify.LevelWarn, fmt.Sprintf("%d file%s could not be read", len(res.Failed), plural(len(res.Failed))))
	}

	logging.FromContext(ctx).Info().Int("imported", n).Int("failed", len(res.Failed)).Msg("Bulk import committed")
	l.publish(ctx, out)
	return res, nil
}

// LinkFolder replaces every folder-sourced record with records for the
// given files and rebinds the folder registry. Other records are kept and
// the new ones are appended after them.
func (l *Library) LinkFolder(ctx context.Context, folder string, files []importer.File, d importer.Defaults) (*importer.FolderResult, error) {
	ctx = logging.WithFolder(logging.WithOperation(ctx, "link_folder"), folder)
	res, err := l.importer.Folder(folder, files, d)
	if err != nil {
		if errors.IsNoVideos(err) {
			l.notify(ctx, notify.LevelWarn, "No video files found in that folder")
		}
		return nil, err
	}

	out := &outcome{}
	l.mu.Lock()
	dropped, err := l.catalog.ReplaceFolder(res.Folder, res.Files, res.Videos)
	if err != nil {
		l.mu.Unlock()
		return nil, err
	}
	l.persistLocked(ctx, out)
	out.change = &Change{Kind: ChangeLinked, Revision: l.catalog.Revision(), IDs: append(videoIDs(dropped), videoIDs(res.Videos)...)}
	l.mu.Unlock()

	out.notices = append([]notify.Notice{{
		Level:   notify.LevelSuccess,
		Message: fmt.Sprintf("Linked %d videos from \"%s\" ✓", len(res.Videos), res.Folder),
	}}, out.notices...)

	logging.FromContext(ctx).Info().
		Int("linked", len(res.Videos)).
		Int("replaced", len(dropped)).
		Msg("Linked folder")
	l.publish(ctx, out)
	return res, nil
}

// DeleteVideo removes a record with its favorite and folder handle.
// An unknown id is a no-op and reports false.
func (l *Library) DeleteVideo(ctx context.Context, id string) bool {
	out := &outcome{}
	l.mu.Lock()
	v, err := l.catalog.DeleteVideo(id)
	if err != nil {
		l.mu.Unlock()
		logging.FromContext(ctx).Debug().Str("video_id", id).Msg("Delete of unknown video ignored")
		return false
	}
	l.persistLocked(ctx, out)
	out.change = &Change{Kind: ChangeDeleted, Revision: l.catalog.Revision(), IDs: []string{id}}
	l.mu.Unlock()

	out.notices = append([]notify.Notice{{Level: notify.LevelInfo, Message: fmt.Sprintf("\"%s\" removed", v.Title)}}, out.notices...)
	l.publish(ctx, out)
	return true
}

// DeleteConfirmation returns the prompt shown before removing v.
func DeleteConfirmation(v *catalogs.Video) notify.Confirmation {
	return notify.Confirmation{
		Icon:    "🗑",
		Title:   fmt.Sprintf("Remove \"%s\"?", v.Title),
		Message: "This removes the video from SignLib. Your original file on disk is not affected.",
		OKLabel: "Remove",
	}
}

// ClearConfirmation returns the prompt shown before removing all n videos.
func ClearConfirmation(n int) notify.Confirmation {
	return notify.Confirmation{
		Icon:    "⚠️",
		Title:   "Clear all videos?",
		Message: fmt.Sprintf("This will permanently remove all %d videos from SignLib. Your original files on disk are not affected.", n),
		OKLabel: "Clear All",
	}
}

// RequestDelete asks the confirmer before deleting id. It reports whether
// the record was removed. An unknown id is not prompted for.
func (l *Library) RequestDelete(ctx context.Context, id string) (bool, error) {
	v, err := l.catalog.Video(id)
	if err != nil {
		return false, nil
	}
	ok, err := l.confirmer.Confirm(ctx, DeleteConfirmation(v))
	if err != nil {
		return false, err
	}
	if !ok {
		logging.FromContext(ctx).Debug().Str("video_id", id).Msg("Delete declined")
		return false, nil
	}
	return l.DeleteVideo(ctx, id), nil
}

// ClearAll empties the catalog, favorites and folder registry, and returns
// the number of records removed.
func (l *Library) ClearAll(ctx context.Context) int {
	out := &outcome{}
	l.mu.Lock()
	n := l.catalog.Clear()
	l.persistLocked(ctx, out)
	out.change = &Change{Kind: ChangeCleared, Revision: l.catalog.Revision()}
	l.mu.Unlock()

	out.notices = append([]notify.Notice{{Level: notify.LevelInfo, Message: "All videos removed"}}, out.notices...)
	logging.FromContext(ctx).Info().Int("removed", n).Msg("Cleared catalog")
	l.publish(ctx, out)
	return n
}

// RequestClear asks the confirmer before clearing. It reports whether the
// catalog was cleared.
func (l *Library) RequestClear(ctx context.Context) (bool, error) {
	ok, err := l.confirmer.Confirm(ctx, ClearConfirmation(l.catalog.Videos().Len()))
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	l.ClearAll(ctx)
	return true, nil
}

// ToggleFavorite flips the favorite state of id and reports the new state.
// The id need not name a live record.
func (l *Library) ToggleFavorite(ctx context.Context, id string) bool {
	out := &outcome{}
	l.mu.Lock()
	on := l.catalog.ToggleFavorite(id)
	l.persistLocked(ctx, out)
	out.change = &Change{Kind: ChangeFavorite, Revision: l.catalog.Revision(), IDs: []string{id}}
	l.mu.Unlock()

	notice := notify.Notice{Level: notify.LevelInfo, Message: "Removed from favorites"}
	if on {
		notice = notify.Notice{Level: notify.LevelSuccess, Message: "Added to favorites ♥"}
	}
	out.notices = append([]notify.Notice{notice}, out.notices...)
	l.publish(ctx, out)
	return on
}

func videoIDs(videos []*catalogs.Video) []string {
	ids := make([]string, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}
	return ids
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
