package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/signlib/internal/server/response"
	"github.com/agentstation/signlib/pkg/query"
)

// CategoriesView is the sidebar: counts plus the classifier's labels for
// the category pickers.
type CategoriesView struct {
	query.Summary
	Labels []string `json:"labels"`
	Folder string   `json:"folder,omitempty"`
}

// HandleToggleFavorite handles POST /api/v1/favorites/{id}.
// @Summary Toggle favorite
// @Tags favorites
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/favorites/{id} [post].
func (h *Handlers) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	on := h.lib.ToggleFavorite(r.Context(), id)
	response.OK(w, map[string]any{
		"id":       id,
		"favorite": on,
		"revision": h.lib.Revision(),
	})
}

// HandleCategories handles GET /api/v1/categories.
// @Summary Category summary
// @Tags videos
// @Produce json
// @Success 200 {object} response.Response{data=CategoriesView}
// @Router /api/v1/categories [get].
func (h *Handlers) HandleCategories(w http.ResponseWriter, _ *http.Request) {
	name, _ := h.lib.Folder()
	response.OK(w, CategoriesView{
		Summary: h.lib.Summary(),
		Labels:  h.lib.Categories(),
		Folder:  name,
	})
}
