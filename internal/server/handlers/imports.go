package handlers

import (
	"encoding/json"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/agentstation/signlib/internal/server/response"
	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/logging"
)

// multipartMemory is how much of a multipart body is held in memory before
// parts spill to temporary files.
const multipartMemory = 32 << 20

// BulkView is the response of POST /videos/bulk.
type BulkView struct {
	Imported []VideoView `json:"imported"`
	Failed   []string    `json:"failed"`
	Rejected int         `json:"rejected"`
}

// FolderView is the response of POST /folders.
type FolderView struct {
	Folder   string      `json:"folder"`
	Linked   []VideoView `json:"linked"`
	Rejected int         `json:"rejected"`
}

// FolderRequest is the body of POST /folders.
type FolderRequest struct {
	Path     string   `json:"path"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// HandleAddVideo handles POST /api/v1/videos.
// @Summary Add one video
// @Description Multipart form with title, category, comma-separated tags and
// @Description an optional file. Without a file the record is a manual entry.
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Response{data=VideoView}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/videos [post].
func (h *Handlers) HandleAddVideo(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	in := importer.SingleInput{
		Title:    r.FormValue("title"),
		Category: strings.TrimSpace(r.FormValue("category")),
		Tags:     catalogs.ParseTags(r.FormValue("tags")),
	}
	if headers := r.MultipartForm.File["file"]; len(headers) > 0 {
		f, err := readUpload(headers[0])
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		in.File = f
	}

	v, err := h.lib.AddSingle(r.Context(), in)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, h.view(v))
}

// HandleBulkImport handles POST /api/v1/videos/bulk.
// @Summary Import many videos
// @Description Multipart form with repeated "files" parts plus an optional
// @Description category and tags applied to every record.
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Response{data=BulkView}
// @Failure 422 {object} response.Response{error=response.Error}
// @Router /api/v1/videos/bulk [post].
func (h *Handlers) HandleBulkImport(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["files"]
	files := make([]importer.File, 0, len(headers))
	for _, fh := range headers {
		f, err := readUpload(fh)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		files = append(files, f)
	}
	d := importer.Defaults{
		Category: strings.TrimSpace(r.FormValue("category")),
		Tags:     catalogs.ParseTags(r.FormValue("tags")),
	}

	res, err := h.lib.ImportBulk(r.Context(), files, d, nil)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	out := BulkView{
		Imported: make([]VideoView, 0, len(res.Videos)),
		Failed:   make([]string, 0, len(res.Failed)),
		Rejected: res.Rejected,
	}
	for _, v := range res.Videos {
		out.Imported = append(out.Imported, h.view(v))
	}
	for _, f := range res.Failed {
		out.Failed = append(out.Failed, f.Name)
	}
	response.Created(w, out)
}

// HandleLinkFolder handles POST /api/v1/folders.
// @Summary Link a folder
// @Description Replaces every folder record with the videos found below a
// @Description directory on the server host.
// @Tags folders
// @Accept json
// @Produce json
// @Param request body FolderRequest true "Folder to link"
// @Success 201 {object} response.Response{data=FolderView}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/folders [post].
func (h *Handlers) HandleLinkFolder(w http.ResponseWriter, r *http.Request) {
	var req FolderRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}
	path, err := h.folderPath(req.Path)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	name, files, err := importer.WalkFolder(r.Context(), path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			response.NotFound(w, "Folder not found", req.Path)
			return
		}
		response.ErrorFromType(w, err)
		return
	}

	res, err := h.lib.LinkFolder(r.Context(), name, files, importer.Defaults{
		Category: strings.TrimSpace(req.Category),
		Tags:     req.Tags,
	})
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	logging.FromContext(r.Context()).Info().Str("path", path).Int("linked", len(res.Videos)).Msg("Folder linked over HTTP")
	out := FolderView{
		Folder:   res.Folder,
		Linked:   make([]VideoView, 0, len(res.Videos)),
		Rejected: res.Rejected,
	}
	for _, v := range res.Videos {
		out.Linked = append(out.Linked, h.view(v))
	}
	response.Created(w, out)
}

// folderPath cleans p and, when a folder root is configured, rejects paths
// outside it. Relative paths resolve against the root.
func (h *Handlers) folderPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.NewValidationError("path", p, "folder path is required")
	}
	if h.folderRoot == "" {
		return filepath.Clean(p), nil
	}

	root, err := filepath.Abs(h.folderRoot)
	if err != nil {
		return "", errors.WrapIO("resolve", h.folderRoot, err)
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	p = filepath.Clean(p)
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.NewValidationError("path", p, "must be inside the configured folder root")
	}
	return p, nil
}

// parseMultipart bounds and parses a multipart body, writing the error
// response itself when parsing fails.
func (h *Handlers) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.JSON(w, http.StatusRequestEntityTooLarge, response.Fail(
				"PAYLOAD_TOO_LARGE",
				"Upload too large",
				"Request bodies are limited to the server's upload size",
			))
			return false
		}
		response.BadRequest(w, "Invalid multipart form", err.Error())
		return false
	}
	return true
}

// readUpload buffers one uploaded part. The media type comes from the file
// extension, falling back to the part's declared type.
func readUpload(fh *multipart.FileHeader) (importer.File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, errors.WrapIO("open", fh.Filename, err)
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.WrapIO("read", fh.Filename, err)
	}

	name := filepath.Base(fh.Filename)
	mediaType := importer.MediaType(name)
	if mediaType == "application/octet-stream" {
		if declared := fh.Header.Get("Content-Type"); declared != "" {
			mediaType = declared
		}
	}
	return importer.NewMemFile(name, mediaType, data), nil
}
