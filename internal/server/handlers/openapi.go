package handlers

import (
	"net/http"

	"github.com/agentstation/signlib/internal/embedded/openapi"
	"github.com/agentstation/signlib/internal/server/response"
)

// HandleOpenAPIJSON handles GET /api/v1/openapi.json.
// @Summary OpenAPI document (JSON)
// @Tags health
// @Produce json
// @Router /api/v1/openapi.json [get].
func (h *Handlers) HandleOpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	data, err := openapi.SpecJSON()
	if err != nil {
		h.logger.Error().Err(err).Msg("OpenAPI document could not be converted")
		response.InternalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// HandleOpenAPIYAML handles GET /api/v1/openapi.yaml.
// @Summary OpenAPI document (YAML)
// @Tags health
// @Produce application/x-yaml
// @Router /api/v1/openapi.yaml [get].
func (h *Handlers) HandleOpenAPIYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	_, _ = w.Write(openapi.SpecYAML)
}
