package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/signlib/internal/server/response"
	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/logging"
	"github.com/agentstation/signlib/pkg/query"
)

// VideoView is the API representation of a record. Embedded bytes are
// never inlined; StreamURL serves them.
type VideoView struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Tags      []string        `json:"tags"`
	FileName  string          `json:"fileName,omitempty"`
	Source    catalogs.Source `json:"source"`
	CreatedAt int64           `json:"createdAt"`
	Favorite  bool            `json:"favorite"`
	HasFile   bool            `json:"hasFile"`
	StreamURL string          `json:"streamUrl,omitempty"`
}

// VideoList is the response of GET /videos.
type VideoList struct {
	Title    string      `json:"title"`
	Query    query.Query `json:"query"`
	Revision uint64      `json:"revision"`
	Count    int         `json:"count"`
	Videos   []VideoView `json:"videos"`
}

func (h *Handlers) view(v *catalogs.Video) VideoView {
	out := VideoView{
		ID:        v.ID,
		Title:     v.Title,
		Category:  v.Category,
		Tags:      v.Tags,
		FileName:  v.FileName,
		Source:    v.Source,
		CreatedAt: v.CreatedAt,
		Favorite:  h.lib.IsFavorite(v.ID),
		HasFile:   v.HasEmbeddedFile() || v.IsFolder(),
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.HasFile {
		out.StreamURL = h.pathPrefix + "/videos/" + url.PathEscape(v.ID) + "/stream"
	}
	return out
}

// HandleListVideos handles GET /api/v1/videos.
// @Summary List videos
// @Description Filter, search and sort the catalog
// @Tags videos
// @Produce json
// @Param category query string false "all, favorites, or a category label"
// @Param search query string false "Case-insensitive search text"
// @Param sort query string false "newest, oldest, az or za"
// @Success 200 {object} response.Response{data=VideoList}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/videos [get].
func (h *Handlers) HandleListVideos(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	sort, err := query.ParseSort(params.Get("sort"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	q := query.Query{
		Category: params.Get("category"),
		Search:   params.Get("search"),
		Sort:     sort,
	}

	revision := h.lib.Revision()
	if cached, ok := h.cache.Lookup(revision, q); ok {
		response.OK(w, cached)
		return
	}

	videos := h.lib.Query(q)
	list := VideoList{
		Title:    query.Title(q.Category),
		Query:    q,
		Revision: revision,
		Count:    len(videos),
		Videos:   make([]VideoView, 0, len(videos)),
	}
	for _, v := range videos {
		list.Videos = append(list.Videos, h.view(v))
	}

	h.cache.Store(revision, q, list)
	response.OK(w, list)
}

// HandleGetVideo handles GET /api/v1/videos/{id}.
// @Summary Get video
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} response.Response{data=VideoView}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/videos/{id} [get].
func (h *Handlers) HandleGetVideo(w http.ResponseWriter, r *http.Request) {
	v, err := h.lib.Video(chi.URLParam(r, "id"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, h.view(v))
}

// HandleStreamVideo handles GET /api/v1/videos/{id}/stream.
// @Summary Stream video bytes
// @Description Embedded data or the linked folder file. Folder records from
// @Description an earlier session answer 404 until the folder is linked again.
// @Tags videos
// @Produce octet-stream
// @Param id path string true "Video ID"
// @Success 200 "Video bytes"
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/videos/{id}/stream [get].
func (h *Handlers) HandleStreamVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := logging.FromContext(r.Context())

	p, err := h.lib.Resolve(r.Context(), id)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if p.Empty() {
		msg := "No file attached to this video"
		if p.Video.IsFolder() {
			msg = constants.MsgRelinkFolder
		}
		response.NotFound(w, msg, id)
		return
	}

	rc, err := p.Open()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	defer func() { _ = rc.Close() }()

	if mediaType := p.MediaType(); mediaType != "" {
		w.Header().Set("Content-Type", mediaType)
	}
	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, p.Video.FileName, time.UnixMilli(p.Video.CreatedAt), rs)
		return
	}
	if p.File != nil && p.File.Size() > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(p.File.Size(), 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		logger.Warn().Err(err).Str("video_id", id).Msg("Stream interrupted")
	}
}

// HandleDeleteVideo handles DELETE /api/v1/videos/{id}. Deleting an unknown
// id changes nothing and reports deleted=false.
// @Summary Delete video
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/videos/{id} [delete].
func (h *Handlers) HandleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted := h.lib.DeleteVideo(r.Context(), id)
	response.OK(w, map[string]any{
		"id":       id,
		"deleted":  deleted,
		"revision": h.lib.Revision(),
	})
}

// HandleClearVideos handles DELETE /api/v1/videos.
// @Summary Clear all videos
// @Tags videos
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/videos [delete].
func (h *Handlers) HandleClearVideos(w http.ResponseWriter, r *http.Request) {
	removed := h.lib.ClearAll(r.Context())
	response.OK(w, map[string]any{
		"removed":  removed,
		"revision": h.lib.Revision(),
	})
}
